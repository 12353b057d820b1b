// Package repository implements the write-side persistence with hand-written
// SQL over pgx. The bookings table carries an exclusion constraint on
// (court_id, tstzrange(start_time, end_time)) restricted to blocking
// statuses, so an overlap that slips past the in-transaction check still
// fails at commit with 23P01.
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

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings (id, court_id, user_id, guest_name, start_time, end_time,
		                       series_id, price_cents, status, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID(), b.CourtID(), b.UserID(), pgconv.StringPtrToPgtype(b.GuestName()),
		b.Slot().Start(), b.Slot().End(), pgconv.UUIDPtrToPgtype(b.SeriesID()),
		b.Price().Cents(), b.Status().String(), b.ExpiresAt(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err, infra.KindFromPgErr(err))
	}
	return nil
}

func (r *BookingRepository) FindBlockingOverlap(ctx context.Context, courtID uuid.UUID, start, end time.Time) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT id FROM bookings
		 WHERE court_id = $1
		   AND status IN ('pending_payment', 'confirmed')
		   AND start_time < $3
		   AND end_time > $2
		 LIMIT 1`,
		courtID, start, end,
	).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return &id, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, court_id, user_id, guest_name, start_time, end_time,
		        series_id, price_cents, status, expires_at, created_at, updated_at
		 FROM bookings
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	)
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		b.ID(), b.Status().String(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err, infra.KindFromPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings
		 SET status = 'expired', updated_at = $1
		 WHERE status = 'pending_payment' AND expires_at < $1`,
		now,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale bookings", err)
	}
	return tag.RowsAffected(), nil
}

type bookingRow interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingRow) (*booking.Booking, error) {
	var (
		id, courtID, userID  uuid.UUID
		guestName            *string
		startTime, endTime   time.Time
		seriesID             *uuid.UUID
		priceCents           int64
		status               string
		expiresAt            time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &courtID, &userID, &guestName, &startTime, &endTime,
		&seriesID, &priceCents, &status, &expiresAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		id, courtID, userID, guestName,
		booking.ReconstructTimeSlot(startTime, endTime),
		seriesID, price, booking.Status(status),
		expiresAt, createdAt, updatedAt,
	), nil
}
