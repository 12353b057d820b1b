// Package tariff prices a booking interval against a club's layered rate
// table. Intervals are sliced into granularity-sized segments and each
// segment is priced independently, so a rate boundary mid-interval bills the
// correct rate on each side.
package tariff

import (
	"time"

	"github.com/google/uuid"
)

// Rule is one row of the tariff table. A rule matches a segment when the
// segment's weekday is in Weekdays and its start minute-of-day falls inside
// [WindowStartMin, WindowEndMin). CourtID nil means the rule is club-wide;
// court-specific rules take precedence over club-wide ones.
type Rule struct {
	ID              uuid.UUID
	CourtID         *uuid.UUID
	HourlyRateCents int64
	Weekdays        WeekdaySet
	WindowStartMin  int
	WindowEndMin    int
}

func (r Rule) IsCourtSpecific() bool {
	return r.CourtID != nil
}

// AppliesTo reports whether the rule covers a segment starting at the given
// weekday and minute-of-day on the given court.
func (r Rule) AppliesTo(courtID uuid.UUID, weekday time.Weekday, minuteOfDay int) bool {
	if r.CourtID != nil && *r.CourtID != courtID {
		return false
	}
	if !r.Weekdays.Contains(weekday) {
		return false
	}
	return minuteOfDay >= r.WindowStartMin && minuteOfDay < r.WindowEndMin
}

// WeekdaySet is a bitmask over time.Weekday (Sunday = bit 0).
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// AllWeek covers every weekday.
const AllWeek WeekdaySet = 0x7F

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}
