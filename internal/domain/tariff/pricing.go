package tariff

import (
	"errors"
	"time"

	"courtbook/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrNoApplicableRate   = errors.New("no tariff rule matches segment and no fallback rate configured")
	ErrInvalidGranularity = errors.New("granularity must be positive")
)

// SegmentCharge is one priced slice of the requested interval, kept for
// auditability of the total.
type SegmentCharge struct {
	Start           time.Time
	Minutes         int
	HourlyRateCents int64
	CostCents       int64
}

// Quote is the result of pricing an interval.
type Quote struct {
	TotalCents int64
	Breakdown  []SegmentCharge
}

// Price slices the slot into granularityMin-sized segments (the last one
// truncated to the slot end) and prices each against the rule table. Segment
// cost is round-half-up of durationHours x hourlyRate, applied per segment
// and summed; the interval is never priced against a blended rate.
func Price(
	slot booking.TimeSlot,
	courtID uuid.UUID,
	rules []Rule,
	granularityMin int,
	fallbackHourlyCents *int64,
) (Quote, error) {
	if granularityMin <= 0 {
		return Quote{}, ErrInvalidGranularity
	}

	step := time.Duration(granularityMin) * time.Minute
	breakdown := make([]SegmentCharge, 0, int(slot.Duration()/step)+1)
	var total int64

	for segStart := slot.Start(); segStart.Before(slot.End()); segStart = segStart.Add(step) {
		segEnd := segStart.Add(step)
		if segEnd.After(slot.End()) {
			segEnd = slot.End()
		}
		minutes := int(segEnd.Sub(segStart) / time.Minute)

		rate, ok := selectRate(courtID, segStart, rules)
		if !ok {
			if fallbackHourlyCents == nil {
				return Quote{}, ErrNoApplicableRate
			}
			rate = *fallbackHourlyCents
		}

		cost := roundHalfUpCents(minutes, rate)
		breakdown = append(breakdown, SegmentCharge{
			Start:           segStart,
			Minutes:         minutes,
			HourlyRateCents: rate,
			CostCents:       cost,
		})
		total += cost
	}

	return Quote{TotalCents: total, Breakdown: breakdown}, nil
}

// selectRate picks the matching rule for a segment start, preferring a
// court-specific rule over a club-wide one. Within the same scope the first
// matching rule in table order wins.
func selectRate(courtID uuid.UUID, segStart time.Time, rules []Rule) (int64, bool) {
	minute := segStart.Hour()*60 + segStart.Minute()
	weekday := segStart.Weekday()

	var clubRate int64
	clubFound := false
	for _, r := range rules {
		if !r.AppliesTo(courtID, weekday, minute) {
			continue
		}
		if r.IsCourtSpecific() {
			return r.HourlyRateCents, true
		}
		if !clubFound {
			clubRate = r.HourlyRateCents
			clubFound = true
		}
	}
	return clubRate, clubFound
}

// roundHalfUpCents computes minutes/60 x rate in cents, rounding half up.
// Rates are non-negative so integer arithmetic suffices.
func roundHalfUpCents(minutes int, hourlyRateCents int64) int64 {
	return (int64(minutes)*hourlyRateCents + 30) / 60
}
