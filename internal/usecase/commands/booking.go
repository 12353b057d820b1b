package commands

import (
	"context"
	"fmt"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/club"
	"courtbook/internal/domain/identity"
	"courtbook/internal/domain/recurrence"
	"courtbook/internal/domain/tariff"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound     = errs.New("court not found")
	ErrCourtInactive     = errs.New("court is inactive")
	ErrInvalidTimeSlot   = errs.New("invalid time slot")
	ErrInvalidSplit      = errs.New("invalid payment split")
	ErrInvalidRecurrence = errs.New("invalid recurrence rule")
	ErrSeriesTooLong     = errs.New("recurrence expands to too many occurrences")
	ErrBookingConflict   = errs.New("booking conflict")
	ErrBookingTooSoon    = errs.New("booking starts too soon")
	ErrBookingOutOfHours = errs.New("booking outside opening hours")
	ErrNoApplicableRate  = errs.New("no applicable tariff rate")
	ErrBookingNotFound   = errs.New("booking not found")
	ErrBookingTerminal   = errs.New("booking is in a terminal state")
	ErrShareNotFound     = errs.New("payment share not found")
	ErrShareNoCapacity   = errs.New("no unclaimed share left")
	ErrShareTransition   = errs.New("invalid share transition")
	ErrForbidden         = errs.New("operation not allowed")
)

// OccurrenceFailure reports which occurrence of a requested series could not
// be booked and why. The whole request is aborted; nothing is persisted.
type OccurrenceFailure struct {
	Index int
	Start time.Time
	Err   error
}

func (e *OccurrenceFailure) Error() string {
	return fmt.Sprintf("occurrence %d (%s): %v", e.Index, e.Start.Format(time.RFC3339), e.Err)
}

func (e *OccurrenceFailure) Unwrap() error {
	return e.Err
}

type CreateBookingInput struct {
	CourtID      uuid.UUID
	Start        time.Time
	End          time.Time
	GuestName    *string
	Split        booking.SplitStrategy
	Participants []uuid.UUID
	// SplitWays is the total share count under the equal split; zero means
	// one share per named participant.
	SplitWays  int
	Recurrence *recurrence.Rule
}

// CreatedBooking is the write side's view of one persisted occurrence.
type CreatedBooking struct {
	ID         uuid.UUID
	CourtID    uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	SeriesID   *uuid.UUID
	Status     string
	PriceCents int64
	ExpiresAt  time.Time
}

// PaymentInstruction is the opaque payment payload per booking (§ external
// collaborators build the actual prompt from it).
type PaymentInstruction struct {
	BookingID   uuid.UUID
	Reference   string
	AmountCents int64
	ExpiresAt   time.Time
}

type CreateBookingResult struct {
	Bookings            []CreatedBooking
	TotalPriceCents     int64
	PaymentInstructions []PaymentInstruction
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor identity.Actor, input CreateBookingInput) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, actor identity.Actor, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		clock: clk,
		cfg:   cfg,
	}
}

// CreateBooking resolves the requested occurrences, validates and prices each
// in chronological order, and persists bookings plus payment shares in one
// transaction. The first failing occurrence aborts the entire request.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	actor identity.Actor,
	input CreateBookingInput,
) (*CreateBookingResult, error) {
	now := c.clock.Now()

	// An absent strategy means the requester pays alone.
	if input.Split == "" {
		input.Split = booking.SplitSingle
	}

	occurrences, err := c.resolveOccurrences(input)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		court, cfg, rules, err := c.loadCourtContext(ctx, tx, input.CourtID)
		if err != nil {
			return err
		}

		ways, err := resolveSplit(input, court.Capacity)
		if err != nil {
			return err
		}

		var seriesID *uuid.UUID
		if len(occurrences) > 1 {
			id := uuid.New()
			seriesID = &id
		}

		hold := cfg.HoldDuration(actor.Role.Class())
		if hold <= 0 {
			hold = c.holdFallback(actor)
		}

		res := &CreateBookingResult{}
		for i, occ := range occurrences {
			b, err := c.bookOccurrence(ctx, tx, court, cfg, rules, actor, input, occ, seriesID, ways, hold, now)
			if err != nil {
				return &OccurrenceFailure{Index: i, Start: occ.Start, Err: err}
			}
			res.Bookings = append(res.Bookings, toCreatedBooking(b))
			res.TotalPriceCents += b.Price().Cents()
			res.PaymentInstructions = append(res.PaymentInstructions, PaymentInstruction{
				BookingID:   b.ID(),
				Reference:   b.PaymentReference(),
				AmountCents: b.Price().Cents(),
				ExpiresAt:   b.ExpiresAt(),
			})
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return result, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor identity.Actor, bookingID uuid.UUID) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID() != actor.ID && !actor.CanManage() {
			return ErrForbidden
		}
		if err := b.Cancel(now); err != nil {
			return errs.Mark(err, ErrBookingTerminal)
		}
		return tx.Bookings().UpdateStatus(ctx, b)
	})
	return mapRepoErr(err)
}

// resolveOccurrences expands the recurrence rule, or wraps the single
// requested interval. Invalid occurrences abort with the index that failed.
func (c *bookingCommandsImpl) resolveOccurrences(input CreateBookingInput) ([]recurrence.Occurrence, error) {
	if input.Recurrence == nil {
		if booking.CrossesMidnight(input.Start, input.End) || !input.Start.Before(input.End) {
			return nil, ErrInvalidTimeSlot
		}
		return []recurrence.Occurrence{{Start: input.Start, End: input.End, Valid: true}}, nil
	}

	occurrences, err := recurrence.Generate(input.Start, input.End, *input.Recurrence)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRecurrence)
	}
	if len(occurrences) == 0 {
		return nil, ErrInvalidRecurrence
	}
	if c.cfg.MaxSeriesOccurrence > 0 && len(occurrences) > c.cfg.MaxSeriesOccurrence {
		return nil, ErrSeriesTooLong
	}
	for i, occ := range occurrences {
		if !occ.Valid {
			return nil, &OccurrenceFailure{Index: i, Start: occ.Start, Err: ErrInvalidTimeSlot}
		}
	}
	return occurrences, nil
}

func (c *bookingCommandsImpl) loadCourtContext(
	ctx context.Context,
	tx shared.Tx,
	courtID uuid.UUID,
) (*club.CourtSnapshot, *club.Config, []tariff.Rule, error) {
	court, err := tx.Reads().CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil, ErrCourtNotFound
		}
		return nil, nil, nil, err
	}
	if !court.Active {
		return nil, nil, nil, ErrCourtInactive
	}

	cfg, err := tx.Reads().ClubConfigByID(ctx, court.ClubID)
	if err != nil {
		return nil, nil, nil, err
	}
	rules, err := tx.Reads().TariffRulesForCourt(ctx, court.ClubID, courtID)
	if err != nil {
		return nil, nil, nil, err
	}
	return court, cfg, rules, nil
}

// bookOccurrence runs the per-occurrence protocol: availability checks,
// pricing, then booking + share creation inside the caller's transaction.
func (c *bookingCommandsImpl) bookOccurrence(
	ctx context.Context,
	tx shared.Tx,
	court *club.CourtSnapshot,
	cfg *club.Config,
	rules []tariff.Rule,
	actor identity.Actor,
	input CreateBookingInput,
	occ recurrence.Occurrence,
	seriesID *uuid.UUID,
	ways int,
	hold time.Duration,
	now time.Time,
) (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(occ.Start, occ.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	if err := club.CheckAdvanceWindow(slot, cfg.MinAdvanceMin, now); err != nil {
		return nil, ErrBookingTooSoon
	}
	if err := club.CheckOpeningHours(slot, *cfg); err != nil {
		return nil, ErrBookingOutOfHours
	}

	blocking, err := tx.Bookings().FindBlockingOverlap(ctx, court.ID, slot.Start(), slot.End())
	if err != nil {
		return nil, err
	}
	if blocking != nil {
		return nil, ErrBookingConflict
	}

	quote, err := tariff.Price(slot, court.ID, rules, cfg.GranularityMin, cfg.FallbackHourlyCents)
	if err != nil {
		return nil, errs.Mark(err, ErrNoApplicableRate)
	}
	price, err := booking.NewMoney(quote.TotalCents)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	b := booking.NewBooking(court.ID, actor.ID, input.GuestName, slot, seriesID, price, now, hold)
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, err
	}

	shares, err := booking.BuildShares(b, input.Split, input.Participants, ways, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSplit)
	}
	for _, s := range shares {
		if err := tx.Shares().Create(ctx, s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (c *bookingCommandsImpl) holdFallback(actor identity.Actor) time.Duration {
	if actor.Role.Class() == identity.ClassStaff {
		return c.cfg.HoldStaff
	}
	return c.cfg.HoldSelfService
}

// resolveSplit validates the strategy and returns the share count.
func resolveSplit(input CreateBookingInput, capacity int) (int, error) {
	switch input.Split {
	case booking.SplitSingle:
		return 1, nil
	case booking.SplitEqual:
		ways := input.SplitWays
		if ways == 0 {
			ways = len(input.Participants)
		}
		if ways < 2 || ways < len(input.Participants) {
			return 0, ErrInvalidSplit
		}
		if capacity > 0 && ways > capacity {
			return 0, ErrInvalidSplit
		}
		return ways, nil
	default:
		return 0, ErrInvalidSplit
	}
}

func toCreatedBooking(b *booking.Booking) CreatedBooking {
	return CreatedBooking{
		ID:         b.ID(),
		CourtID:    b.CourtID(),
		StartTime:  b.Slot().Start(),
		EndTime:    b.Slot().End(),
		SeriesID:   b.SeriesID(),
		Status:     b.Status().String(),
		PriceCents: b.Price().Cents(),
		ExpiresAt:  b.ExpiresAt(),
	}
}

// mapRepoErr translates infra error kinds the transaction can surface:
// a commit-time exclusion violation is a booking conflict, a missing row is
// not found. Usecase sentinels pass through untouched.
func mapRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, ErrBookingConflict)
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrBookingNotFound)
	}
	return err
}
