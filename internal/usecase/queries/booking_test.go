//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/domain/club"
	"courtbook/internal/domain/identity"
	"courtbook/internal/domain/tariff"
	"courtbook/internal/infra"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewRepo struct {
	views map[uuid.UUID]*queries.BookingView
	items []*queries.BookingListItem
}

func (r *fakeViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, ok := r.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *fakeViewRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.items, nil
}

type fakeReads struct {
	court *club.CourtSnapshot
	cfg   *club.Config
	rules []tariff.Rule
}

func (r *fakeReads) CourtByID(_ context.Context, id uuid.UUID) (*club.CourtSnapshot, error) {
	if r.court == nil || r.court.ID != id {
		return nil, infra.WrapRepoErr("court not found", nil, infra.KindNotFound)
	}
	return r.court, nil
}

func (r *fakeReads) ClubConfigByID(_ context.Context, _ uuid.UUID) (*club.Config, error) {
	return r.cfg, nil
}

func (r *fakeReads) TariffRulesForCourt(_ context.Context, _, _ uuid.UUID) ([]tariff.Rule, error) {
	return r.rules, nil
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	shareHolder := uuid.New()
	bookingID := uuid.New()

	repo := &fakeViewRepo{views: map[uuid.UUID]*queries.BookingView{
		bookingID: {
			ID:     bookingID,
			UserID: owner,
			Shares: []queries.ShareView{
				{ID: uuid.New(), PayerID: &shareHolder, AmountCents: 1500},
			},
		},
	}}
	q := queries.NewBookingQueries(repo, &fakeReads{})

	t.Run("owner sees the booking", func(t *testing.T) {
		view, err := q.GetByID(ctx, identity.Actor{ID: owner, Role: identity.RoleMember}, bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, view.ID)
	})

	t.Run("share holder sees the booking", func(t *testing.T) {
		_, err := q.GetByID(ctx, identity.Actor{ID: shareHolder, Role: identity.RoleMember}, bookingID)
		require.NoError(t, err)
	})

	t.Run("staff sees any booking", func(t *testing.T) {
		_, err := q.GetByID(ctx, identity.Actor{ID: uuid.New(), Role: identity.RoleStaff}, bookingID)
		require.NoError(t, err)
	})

	t.Run("unrelated member forbidden", func(t *testing.T) {
		_, err := q.GetByID(ctx, identity.Actor{ID: uuid.New(), Role: identity.RoleMember}, bookingID)
		assert.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := q.GetByID(ctx, identity.Actor{ID: owner, Role: identity.RoleMember}, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	courtID := uuid.New()
	clubID := uuid.New()

	reads := &fakeReads{
		court: &club.CourtSnapshot{ID: courtID, ClubID: clubID, Active: true},
		cfg:   &club.Config{ID: clubID, GranularityMin: 30},
		rules: []tariff.Rule{{
			ID:              uuid.New(),
			HourlyRateCents: 2000,
			Weekdays:        tariff.AllWeek,
			WindowStartMin:  0,
			WindowEndMin:    1440,
		}},
	}
	q := queries.NewBookingQueries(&fakeViewRepo{}, reads)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("prices without persisting", func(t *testing.T) {
		quote, err := q.Quote(ctx, courtID, start, start.Add(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(3000), quote.TotalCents)
		assert.Len(t, quote.Breakdown, 3)
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := q.Quote(ctx, courtID, start, start)
		assert.Error(t, err)
	})

	t.Run("no rate and no fallback", func(t *testing.T) {
		reads.rules = nil
		defer func() {
			reads.rules = []tariff.Rule{{
				ID:              uuid.New(),
				HourlyRateCents: 2000,
				Weekdays:        tariff.AllWeek,
				WindowEndMin:    1440,
			}}
		}()

		_, err := q.Quote(ctx, courtID, start, start.Add(time.Hour))
		assert.Error(t, err)
	})
}
