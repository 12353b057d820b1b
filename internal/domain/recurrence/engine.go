// Package recurrence expands a weekly recurrence rule into concrete dated
// occurrences. Generation is pure: it never touches persistence and never
// fails once the rule is validated; unbookable occurrences come back flagged
// so callers can report which one is the problem.
package recurrence

import (
	"errors"
	"time"

	"courtbook/internal/domain/booking"
)

// maxIterations bounds the day walk regardless of rule input.
const maxIterations = 500

var (
	ErrInvalidInterval = errors.New("recurrence: interval must be at least 1")
	ErrNoStopCondition = errors.New("recurrence: rule needs a count or an end date")
	ErrInvalidCount    = errors.New("recurrence: count must be positive")
)

// InvalidReasonCrossesMidnight flags occurrences whose anchored interval
// would span two calendar days.
const InvalidReasonCrossesMidnight = "occurrence crosses midnight"

// Rule describes a weekly recurrence: emit on the listed weekdays, every
// IntervalWeeks-th week, stopping after Count occurrences or past Until
// (inclusive), whichever is set.
type Rule struct {
	IntervalWeeks int
	Weekdays      []time.Weekday
	Count         int
	Until         *time.Time
}

func (r Rule) Validate() error {
	if r.IntervalWeeks < 1 {
		return ErrInvalidInterval
	}
	if r.Until == nil && r.Count == 0 {
		return ErrNoStopCondition
	}
	if r.Until == nil && r.Count < 0 {
		return ErrInvalidCount
	}
	return nil
}

// Occurrence is one concrete instance expanded from a rule. Invalid
// occurrences are returned rather than dropped.
type Occurrence struct {
	Start         time.Time
	End           time.Time
	Valid         bool
	InvalidReason string
}

// Generate walks calendar days starting at the base interval's date. On each
// day whose weekday is in the rule's set it emits an occurrence anchored to
// the base time-of-day and duration. After a full weekday cycle it skips
// (IntervalWeeks-1) extra weeks. Stops on the rule's stop condition or the
// hard iteration ceiling.
func Generate(baseStart, baseEnd time.Time, rule Rule) ([]Occurrence, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if !baseEnd.After(baseStart) {
		return nil, booking.ErrInvalidInterval
	}

	weekdays := rule.Weekdays
	if len(weekdays) == 0 {
		weekdays = []time.Weekday{baseStart.Weekday()}
	}
	wanted := make(map[time.Weekday]struct{}, len(weekdays))
	for _, d := range weekdays {
		wanted[d] = struct{}{}
	}

	duration := baseEnd.Sub(baseStart)
	loc := baseStart.Location()
	day := time.Date(baseStart.Year(), baseStart.Month(), baseStart.Day(), 0, 0, 0, 0, loc)

	seen := make(map[time.Weekday]struct{}, len(wanted))
	occurrences := make([]Occurrence, 0)

	for iter := 0; iter < maxIterations; iter++ {
		start := time.Date(day.Year(), day.Month(), day.Day(),
			baseStart.Hour(), baseStart.Minute(), baseStart.Second(), 0, loc)

		if rule.Until != nil && start.After(endOfDay(*rule.Until)) {
			break
		}

		if _, ok := wanted[day.Weekday()]; ok {
			occurrences = append(occurrences, newOccurrence(start, duration))
			seen[day.Weekday()] = struct{}{}

			if rule.Count > 0 && len(occurrences) >= rule.Count {
				break
			}
		}

		// A completed weekday cycle advances one day plus the multi-week gap.
		if len(seen) == len(wanted) && rule.IntervalWeeks > 1 {
			day = day.AddDate(0, 0, 1+7*(rule.IntervalWeeks-1))
			seen = make(map[time.Weekday]struct{}, len(wanted))
		} else {
			if len(seen) == len(wanted) {
				seen = make(map[time.Weekday]struct{}, len(wanted))
			}
			day = day.AddDate(0, 0, 1)
		}
	}

	return occurrences, nil
}

func newOccurrence(start time.Time, duration time.Duration) Occurrence {
	end := start.Add(duration)
	if booking.CrossesMidnight(start, end) {
		return Occurrence{
			Start:         start,
			End:           end,
			Valid:         false,
			InvalidReason: InvalidReasonCrossesMidnight,
		}
	}
	return Occurrence{Start: start, End: end, Valid: true}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
