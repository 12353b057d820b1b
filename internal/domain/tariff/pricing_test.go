//go:build unit

package tariff_test

import (
	"testing"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/tariff"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is a fixed Monday so weekday-scoped rules behave predictably.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func slotAt(t *testing.T, startHour, startMin, endHour, endMin int) booking.TimeSlot {
	t.Helper()
	start := monday.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)
	end := monday.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)
	slot, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)
	return slot
}

func clubRule(rateCents int64, startMin, endMin int) tariff.Rule {
	return tariff.Rule{
		ID:              uuid.New(),
		HourlyRateCents: rateCents,
		Weekdays:        tariff.AllWeek,
		WindowStartMin:  startMin,
		WindowEndMin:    endMin,
	}
}

func TestPrice(t *testing.T) {
	courtID := uuid.New()

	t.Run("uniform rate across the interval", func(t *testing.T) {
		rules := []tariff.Rule{clubRule(2000, 0, 1440)}
		quote, err := tariff.Price(slotAt(t, 10, 0, 11, 30), courtID, rules, 30, nil)
		require.NoError(t, err)

		// 90 minutes at 2000/h
		assert.Equal(t, int64(3000), quote.TotalCents)
		assert.Len(t, quote.Breakdown, 3)
	})

	t.Run("rate boundary mid-interval bills each side", func(t *testing.T) {
		// Day rate until 22:00, night rate after.
		rules := []tariff.Rule{
			clubRule(2000, 0, 22*60),
			clubRule(1500, 22*60, 1440),
		}
		quote, err := tariff.Price(slotAt(t, 21, 0, 23, 0), courtID, rules, 30, nil)
		require.NoError(t, err)

		// One hour at 2000 plus one hour at 1500.
		assert.Equal(t, int64(3500), quote.TotalCents)
		require.Len(t, quote.Breakdown, 4)
		assert.Equal(t, int64(2000), quote.Breakdown[0].HourlyRateCents)
		assert.Equal(t, int64(1500), quote.Breakdown[3].HourlyRateCents)
	})

	t.Run("court-specific rule beats club-wide", func(t *testing.T) {
		courtRule := tariff.Rule{
			ID:              uuid.New(),
			CourtID:         &courtID,
			HourlyRateCents: 2600,
			Weekdays:        tariff.AllWeek,
			WindowStartMin:  0,
			WindowEndMin:    1440,
		}
		rules := []tariff.Rule{clubRule(2000, 0, 1440), courtRule}

		quote, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, rules, 60, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2600), quote.TotalCents)
	})

	t.Run("court rule for another court is ignored", func(t *testing.T) {
		otherCourt := uuid.New()
		courtRule := tariff.Rule{
			ID:              uuid.New(),
			CourtID:         &otherCourt,
			HourlyRateCents: 9900,
			Weekdays:        tariff.AllWeek,
			WindowStartMin:  0,
			WindowEndMin:    1440,
		}
		rules := []tariff.Rule{courtRule, clubRule(2000, 0, 1440)}

		quote, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, rules, 60, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), quote.TotalCents)
	})

	t.Run("uncovered segment without fallback fails", func(t *testing.T) {
		rules := []tariff.Rule{clubRule(2000, 0, 10*60+30)}
		_, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, rules, 30, nil)
		assert.ErrorIs(t, err, tariff.ErrNoApplicableRate)
	})

	t.Run("uncovered segment uses fallback rate", func(t *testing.T) {
		rules := []tariff.Rule{clubRule(2000, 0, 10*60+30)}
		fallback := int64(1000)

		quote, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, rules, 30, &fallback)
		require.NoError(t, err)

		// First half hour at 2000, second at the 1000 fallback.
		assert.Equal(t, int64(1500), quote.TotalCents)
	})

	t.Run("per-segment round half up", func(t *testing.T) {
		// 15-minute segment at 1990/h: 497.5 rounds to 498 on each segment.
		rules := []tariff.Rule{clubRule(1990, 0, 1440)}
		quote, err := tariff.Price(slotAt(t, 10, 0, 10, 30), courtID, rules, 15, nil)
		require.NoError(t, err)

		require.Len(t, quote.Breakdown, 2)
		assert.Equal(t, int64(498), quote.Breakdown[0].CostCents)
		assert.Equal(t, int64(996), quote.TotalCents)
	})

	t.Run("last segment truncated to slot end", func(t *testing.T) {
		rules := []tariff.Rule{clubRule(3000, 0, 1440)}
		quote, err := tariff.Price(slotAt(t, 10, 0, 10, 45), courtID, rules, 30, nil)
		require.NoError(t, err)

		require.Len(t, quote.Breakdown, 2)
		assert.Equal(t, 30, quote.Breakdown[0].Minutes)
		assert.Equal(t, 15, quote.Breakdown[1].Minutes)
		assert.Equal(t, int64(1500+750), quote.TotalCents)
	})

	t.Run("weekday-scoped rule does not match other days", func(t *testing.T) {
		saturdayOnly := tariff.Rule{
			ID:              uuid.New(),
			HourlyRateCents: 2500,
			Weekdays:        tariff.NewWeekdaySet(time.Saturday),
			WindowStartMin:  0,
			WindowEndMin:    1440,
		}
		_, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, []tariff.Rule{saturdayOnly}, 60, nil)
		assert.ErrorIs(t, err, tariff.ErrNoApplicableRate)
	})

	t.Run("invalid granularity", func(t *testing.T) {
		_, err := tariff.Price(slotAt(t, 10, 0, 11, 0), courtID, nil, 0, nil)
		assert.ErrorIs(t, err, tariff.ErrInvalidGranularity)
	})

	t.Run("breakdown sums to total", func(t *testing.T) {
		rules := []tariff.Rule{
			clubRule(1990, 0, 21*60),
			clubRule(1490, 21*60, 1440),
		}
		quote, err := tariff.Price(slotAt(t, 20, 0, 22, 30), courtID, rules, 15, nil)
		require.NoError(t, err)

		var sum int64
		for _, seg := range quote.Breakdown {
			sum += seg.CostCents
		}
		assert.Equal(t, quote.TotalCents, sum)
	})
}

func TestWeekdaySet(t *testing.T) {
	s := tariff.NewWeekdaySet(time.Monday, time.Wednesday)

	assert.True(t, s.Contains(time.Monday))
	assert.True(t, s.Contains(time.Wednesday))
	assert.False(t, s.Contains(time.Sunday))

	s = s.Add(time.Sunday)
	assert.True(t, s.Contains(time.Sunday))

	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday, time.Wednesday}, s.Days())

	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, tariff.AllWeek.Contains(d))
	}
}
