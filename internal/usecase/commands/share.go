package commands

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/identity"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// ShareInfo is the write side's view of one payment share.
type ShareInfo struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	PayerID     *uuid.UUID
	AmountCents int64
	Status      string
	PaidAt      *time.Time
	ProofNote   *string
}

type ShareCommands interface {
	// MarkSharePaidPending is the payer's self-report that the share was paid.
	MarkSharePaidPending(ctx context.Context, actor identity.Actor, bookingID, shareID uuid.UUID, note *string) error
	// ConfirmSharePaid is the reviewer confirmation; when it completes the
	// share set, the booking flips to confirmed in the same transaction.
	ConfirmSharePaid(ctx context.Context, actor identity.Actor, bookingID, shareID uuid.UUID) error
	// JoinShare claims the first unclaimed share on the booking for the actor.
	// Idempotent when the actor already owns a share on that booking.
	JoinShare(ctx context.Context, actor identity.Actor, bookingID uuid.UUID) (*ShareInfo, error)
}

type shareCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewShareCommands(uow shared.UnitOfWork, clk clock.Clock) ShareCommands {
	return &shareCommandsImpl{uow: uow, clock: clk}
}

func (c *shareCommandsImpl) MarkSharePaidPending(
	ctx context.Context,
	actor identity.Actor,
	bookingID, shareID uuid.UUID,
	note *string,
) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusPendingPayment {
			return ErrBookingTerminal
		}

		shares, err := tx.Shares().ListByBookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		share := findShare(shares, shareID)
		if share == nil {
			return ErrShareNotFound
		}
		if !share.IsOwnedBy(actor.ID) {
			return ErrForbidden
		}
		if err := share.MarkPendingReview(note, now); err != nil {
			return errs.Mark(err, ErrShareTransition)
		}
		return tx.Shares().Update(ctx, share)
	})
	return mapRepoErr(err)
}

// ConfirmSharePaid runs the check-then-transition inside one transaction with
// the share rows locked, so two concurrent confirmations cannot both observe
// a partially paid set or flip the booking twice.
func (c *shareCommandsImpl) ConfirmSharePaid(
	ctx context.Context,
	actor identity.Actor,
	bookingID, shareID uuid.UUID,
) error {
	if !actor.CanManage() {
		return ErrForbidden
	}
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusPendingPayment && b.Status() != booking.StatusConfirmed {
			return ErrBookingTerminal
		}

		shares, err := tx.Shares().ListByBookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		share := findShare(shares, shareID)
		if share == nil {
			return ErrShareNotFound
		}
		if err := share.ConfirmPaid(now); err != nil {
			return errs.Mark(err, ErrShareTransition)
		}
		if err := tx.Shares().Update(ctx, share); err != nil {
			return err
		}

		if booking.AllPaid(shares) {
			if err := b.Confirm(now); err != nil {
				return errs.Mark(err, ErrBookingTerminal)
			}
			return tx.Bookings().UpdateStatus(ctx, b)
		}
		return nil
	})
	return mapRepoErr(err)
}

func (c *shareCommandsImpl) JoinShare(
	ctx context.Context,
	actor identity.Actor,
	bookingID uuid.UUID,
) (*ShareInfo, error) {
	now := c.clock.Now()

	var joined *ShareInfo
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusPendingPayment {
			return ErrBookingTerminal
		}

		shares, err := tx.Shares().ListByBookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		// Already a participant: return the existing share instead of erroring.
		for _, s := range shares {
			if s.IsOwnedBy(actor.ID) {
				joined = toShareInfo(s)
				return nil
			}
		}

		for _, s := range shares {
			if s.IsUnclaimed() {
				if err := s.Claim(actor.ID, now); err != nil {
					return errs.Mark(err, ErrShareTransition)
				}
				if err := tx.Shares().Update(ctx, s); err != nil {
					return err
				}
				joined = toShareInfo(s)
				return nil
			}
		}
		return ErrShareNoCapacity
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return joined, nil
}

func findShare(shares []*booking.PaymentShare, id uuid.UUID) *booking.PaymentShare {
	for _, s := range shares {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

func toShareInfo(s *booking.PaymentShare) *ShareInfo {
	return &ShareInfo{
		ID:          s.ID(),
		BookingID:   s.BookingID(),
		PayerID:     s.PayerID(),
		AmountCents: s.Amount().Cents(),
		Status:      s.Status().String(),
		PaidAt:      s.PaidAt(),
		ProofNote:   s.ProofNote(),
	}
}
