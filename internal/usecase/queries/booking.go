package queries

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/identity"
	"courtbook/internal/domain/tariff"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrForbidden        = errs.New("not allowed to view this booking")
	ErrInvalidTimeSlot  = errs.New("invalid time slot")
	ErrNoApplicableRate = errs.New("no applicable tariff rate")
	ErrCourtNotFound    = errs.New("court not found")
)

// Read models (DTO for read side)
type BookingView struct {
	ID         uuid.UUID   `json:"id"`
	CourtID    uuid.UUID   `json:"court_id"`
	CourtName  string      `json:"court_name"`
	UserID     uuid.UUID   `json:"user_id"`
	GuestName  *string     `json:"guest_name,omitempty"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	SeriesID   *uuid.UUID  `json:"series_id,omitempty"`
	Status     string      `json:"status"`
	PriceCents int64       `json:"price_cents"`
	PaymentRef string      `json:"payment_ref"`
	ExpiresAt  time.Time   `json:"expires_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Shares     []ShareView `json:"shares"`
}

type ShareView struct {
	ID          uuid.UUID  `json:"id"`
	PayerID     *uuid.UUID `json:"payer_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ProofNote   *string    `json:"proof_note,omitempty"`
}

type BookingListItem struct {
	ID         uuid.UUID  `json:"id"`
	CourtID    uuid.UUID  `json:"court_id"`
	CourtName  string     `json:"court_name"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	SeriesID   *uuid.UUID `json:"series_id,omitempty"`
	Status     string     `json:"status"`
	PriceCents int64      `json:"price_cents"`
	CreatedAt  time.Time  `json:"created_at"`
}

type QuoteLine struct {
	Start           time.Time `json:"start"`
	Minutes         int       `json:"minutes"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	CostCents       int64     `json:"cost_cents"`
}

type QuoteView struct {
	TotalCents int64       `json:"total_cents"`
	Breakdown  []QuoteLine `json:"breakdown"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor identity.Actor, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// Quote prices an interval without persisting anything.
	Quote(ctx context.Context, courtID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo  BookingViewRepo
	reads shared.CommandReads
}

func NewBookingQueries(repo BookingViewRepo, reads shared.CommandReads) BookingQueries {
	return &bookingQueriesImpl{repo: repo, reads: reads}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor identity.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}
	if view.UserID != actor.ID && !actor.CanManage() && !ownsAnyShare(view.Shares, actor.ID) {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *bookingQueriesImpl) Quote(ctx context.Context, courtID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	court, err := q.reads.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	cfg, err := q.reads.ClubConfigByID(ctx, court.ClubID)
	if err != nil {
		return nil, err
	}
	rules, err := q.reads.TariffRulesForCourt(ctx, court.ClubID, courtID)
	if err != nil {
		return nil, err
	}

	quote, err := tariff.Price(slot, courtID, rules, cfg.GranularityMin, cfg.FallbackHourlyCents)
	if err != nil {
		return nil, errs.Mark(err, ErrNoApplicableRate)
	}

	return toQuoteView(quote), nil
}

func ownsAnyShare(shares []ShareView, userID uuid.UUID) bool {
	for _, s := range shares {
		if s.PayerID != nil && *s.PayerID == userID {
			return true
		}
	}
	return false
}

func toQuoteView(q tariff.Quote) *QuoteView {
	lines := make([]QuoteLine, len(q.Breakdown))
	for i, seg := range q.Breakdown {
		lines[i] = QuoteLine{
			Start:           seg.Start,
			Minutes:         seg.Minutes,
			HourlyRateCents: seg.HourlyRateCents,
			CostCents:       seg.CostCents,
		}
	}
	return &QuoteView{TotalCents: q.TotalCents, Breakdown: lines}
}
