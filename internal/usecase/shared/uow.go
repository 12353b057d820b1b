package shared

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/club"
	"courtbook/internal/domain/tariff"

	"github.com/google/uuid"
)

// UnitOfWork scopes repository access to one atomic transaction. Booking
// creation and share confirmation both rely on Within for all-or-nothing
// semantics; the implementation retries serialization failures a bounded
// number of times before surfacing the error.
type UnitOfWork interface {
	// Within: full read-committed transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Shares() ShareRepository
	Reads() CommandReads
}

// CommandReads are the write side's snapshot lookups. Values are fetched at
// request time and never cached across requests.
type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*club.CourtSnapshot, error)
	ClubConfigByID(ctx context.Context, id uuid.UUID) (*club.Config, error)
	TariffRulesForCourt(ctx context.Context, clubID, courtID uuid.UUID) ([]tariff.Rule, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindBlockingOverlap returns the id of a pending-or-confirmed booking
	// overlapping [start, end) on the court, or nil when the slot is free.
	FindBlockingOverlap(ctx context.Context, courtID uuid.UUID, start, end time.Time) (*uuid.UUID, error)
	// FindByIDForUpdate locks the booking row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	// ExpireStale transitions all pending-payment bookings whose hold lapsed
	// before now to expired, returning the number of rows swept.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type ShareRepository interface {
	Create(ctx context.Context, s *booking.PaymentShare) error
	// ListByBookingForUpdate locks the booking's shares so a concurrent
	// confirmation cannot race the all-paid check.
	ListByBookingForUpdate(ctx context.Context, bookingID uuid.UUID) ([]*booking.PaymentShare, error)
	Update(ctx context.Context, s *booking.PaymentShare) error
}
