package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyTerminal   = errors.New("booking is in a terminal state")
	ErrNotPendingPayment = errors.New("booking is not pending payment")
)

// Booking is a priced hold on one court for one half-open interval. Created
// exclusively through NewBooking; mutated only through its transition methods.
type Booking struct {
	id        uuid.UUID
	courtID   uuid.UUID
	userID    uuid.UUID
	guestName *string
	slot      TimeSlot
	seriesID  *uuid.UUID
	price     Money
	status    Status
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(
	courtID, userID uuid.UUID,
	guestName *string,
	slot TimeSlot,
	seriesID *uuid.UUID,
	price Money,
	now time.Time,
	holdDuration time.Duration,
) *Booking {
	return &Booking{
		id:        uuid.New(),
		courtID:   courtID,
		userID:    userID,
		guestName: guestName,
		slot:      slot,
		seriesID:  seriesID,
		price:     price,
		status:    StatusPendingPayment,
		expiresAt: now.Add(holdDuration),
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBooking(
	id, courtID, userID uuid.UUID,
	guestName *string,
	slot TimeSlot,
	seriesID *uuid.UUID,
	price Money,
	status Status,
	expiresAt, createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		courtID:   courtID,
		userID:    userID,
		guestName: guestName,
		slot:      slot,
		seriesID:  seriesID,
		price:     price,
		status:    status,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Confirm transitions PENDING_PAYMENT -> CONFIRMED. Confirming an already
// confirmed booking is a no-op so concurrent share confirmations cannot
// double-flip the state.
func (b *Booking) Confirm(now time.Time) error {
	if b.status == StatusConfirmed {
		return nil
	}
	if b.status != StatusPendingPayment {
		return ErrNotPendingPayment
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// Cancel transitions any non-terminal state to CANCELLED.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// HoldExpired reports whether the payment hold has lapsed.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.status == StatusPendingPayment && b.expiresAt.Before(now)
}

// PaymentReference is the opaque payload external payment collaborators embed
// in their prompts. Unique and deterministic per booking; rendering is the
// caller's concern.
func (b *Booking) PaymentReference() string {
	return PaymentReference(b.id)
}

func PaymentReference(bookingID uuid.UUID) string {
	compact := strings.ReplaceAll(bookingID.String(), "-", "")
	return fmt.Sprintf("PB-%s", strings.ToUpper(compact[:8]))
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) CourtID() uuid.UUID   { return b.courtID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) GuestName() *string   { return b.guestName }
func (b *Booking) Slot() TimeSlot       { return b.slot }
func (b *Booking) SeriesID() *uuid.UUID { return b.seriesID }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) ExpiresAt() time.Time { return b.expiresAt }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
