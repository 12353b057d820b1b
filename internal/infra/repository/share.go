package repository

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ShareRepository struct {
	db db.DBTX
}

func NewShareRepository(dbtx db.DBTX) *ShareRepository {
	return &ShareRepository{db: dbtx}
}

func (r *ShareRepository) Create(ctx context.Context, s *booking.PaymentShare) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payment_shares (id, booking_id, payer_id, amount_cents, status,
		                             paid_at, proof_note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID(), s.BookingID(), pgconv.UUIDPtrToPgtype(s.PayerID()), s.Amount().Cents(),
		s.Status().String(), pgconv.TimePtrToPgtype(s.PaidAt()),
		pgconv.StringPtrToPgtype(s.ProofNote()), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment share", err, infra.KindFromPgErr(err))
	}
	return nil
}

// ListByBookingForUpdate locks the booking's shares in creation order so the
// all-paid check cannot race a concurrent confirmation.
func (r *ShareRepository) ListByBookingForUpdate(ctx context.Context, bookingID uuid.UUID) ([]*booking.PaymentShare, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, booking_id, payer_id, amount_cents, status, paid_at, proof_note, created_at, updated_at
		 FROM payment_shares
		 WHERE booking_id = $1
		 ORDER BY created_at, id
		 FOR UPDATE`,
		bookingID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment shares", err)
	}
	defer rows.Close()

	var shares []*booking.PaymentShare
	for rows.Next() {
		var (
			id, bID              uuid.UUID
			payerID              *uuid.UUID
			amountCents          int64
			status               string
			paidAt               *time.Time
			proofNote            *string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &bID, &payerID, &amountCents, &status,
			&paidAt, &proofNote, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment share", err)
		}
		amount, err := booking.NewMoney(amountCents)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid share amount", err)
		}
		shares = append(shares, booking.ReconstructPaymentShare(
			id, bID, payerID, amount, booking.ShareStatus(status),
			paidAt, proofNote, createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment shares", err)
	}
	return shares, nil
}

func (r *ShareRepository) Update(ctx context.Context, s *booking.PaymentShare) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payment_shares
		 SET payer_id = $2, status = $3, paid_at = $4, proof_note = $5, updated_at = $6
		 WHERE id = $1`,
		s.ID(), pgconv.UUIDPtrToPgtype(s.PayerID()), s.Status().String(),
		pgconv.TimePtrToPgtype(s.PaidAt()), pgconv.StringPtrToPgtype(s.ProofNote()), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment share", err, infra.KindFromPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment share not found", nil, infra.KindNotFound)
	}
	return nil
}
