package readstore

import (
	"context"

	"courtbook/internal/domain/booking"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		guestName pgtype.Text
		seriesID  pgtype.UUID
	)
	err := r.db.QueryRow(ctx,
		`SELECT b.id, b.court_id, c.name, b.user_id, b.guest_name, b.start_time, b.end_time,
		        b.series_id, b.status, b.price_cents, b.expires_at, b.created_at, b.updated_at
		 FROM bookings b
		 JOIN courts c ON c.id = b.court_id
		 WHERE b.id = $1`,
		id,
	).Scan(&view.ID, &view.CourtID, &view.CourtName, &view.UserID, &guestName,
		&view.StartTime, &view.EndTime, &seriesID, &view.Status, &view.PriceCents,
		&view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	view.GuestName = pgconv.StringPtrFromPgtype(guestName)
	view.SeriesID = pgconv.UUIDPtrFromPgtype(seriesID)
	view.PaymentRef = booking.PaymentReference(view.ID)

	shares, err := r.listShares(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Shares = shares
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.court_id, c.name, b.start_time, b.end_time,
		        b.series_id, b.status, b.price_cents, b.created_at
		 FROM bookings b
		 JOIN courts c ON c.id = b.court_id
		 WHERE b.user_id = $1
		    OR EXISTS (SELECT 1 FROM payment_shares s WHERE s.booking_id = b.id AND s.payer_id = $1)
		 ORDER BY b.start_time DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			seriesID pgtype.UUID
		)
		if err := rows.Scan(&item.ID, &item.CourtID, &item.CourtName, &item.StartTime,
			&item.EndTime, &seriesID, &item.Status, &item.PriceCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.SeriesID = pgconv.UUIDPtrFromPgtype(seriesID)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return items, nil
}

func (r *BookingReadStore) listShares(ctx context.Context, bookingID uuid.UUID) ([]queries.ShareView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, payer_id, amount_cents, status, paid_at, proof_note
		 FROM payment_shares
		 WHERE booking_id = $1
		 ORDER BY created_at, id`,
		bookingID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shares", err)
	}
	defer rows.Close()

	var shares []queries.ShareView
	for rows.Next() {
		var (
			share     queries.ShareView
			payerID   pgtype.UUID
			paidAt    pgtype.Timestamptz
			proofNote pgtype.Text
		)
		if err := rows.Scan(&share.ID, &payerID, &share.AmountCents,
			&share.Status, &paidAt, &proofNote); err != nil {
			return nil, infra.WrapRepoErr("failed to scan share", err)
		}
		share.PayerID = pgconv.UUIDPtrFromPgtype(payerID)
		if paidAt.Valid {
			t := paidAt.Time
			share.PaidAt = &t
		}
		share.ProofNote = pgconv.StringPtrFromPgtype(proofNote)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate shares", err)
	}
	return shares, nil
}
