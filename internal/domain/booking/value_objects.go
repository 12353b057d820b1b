package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval  = errors.New("start time must be before end time")
	ErrCrossesMidnight  = errors.New("booking cannot span two calendar days")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidShareWays = errors.New("share count must be positive")
)

// TimeSlot is a half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidInterval
	}
	if CrossesMidnight(start, end) {
		return TimeSlot{}, ErrCrossesMidnight
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from persisted values, which were
// validated at write time.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

// CrossesMidnight reports whether [start, end) spans two calendar days.
// An end landing exactly on midnight after start's day counts as a same-day
// 24:00 boundary, not a crossing.
func CrossesMidnight(start, end time.Time) bool {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy == ey && sm == em && sd == ed {
		return false
	}
	nextMidnight := time.Date(sy, sm, sd, 0, 0, 0, 0, start.Location()).AddDate(0, 0, 1)
	return !end.Equal(nextMidnight)
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && s2 < e1. Back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// MeetsAdvanceNotice reports whether the slot starts no earlier than
// now + the minimum advance notice.
func (ts TimeSlot) MeetsAdvanceNotice(now time.Time, minAdvanceMinutes int) bool {
	earliest := now.Add(time.Duration(minAdvanceMinutes) * time.Minute)
	return !ts.start.Before(earliest)
}

// StartMinuteOfDay returns minutes since midnight of the slot's start.
func (ts TimeSlot) StartMinuteOfDay() int {
	return ts.start.Hour()*60 + ts.start.Minute()
}

// EndMinuteOfDay returns minutes since midnight of the slot's end, mapping a
// midnight end to 1440 so same-day 24:00 slots compare correctly.
func (ts TimeSlot) EndMinuteOfDay() int {
	m := ts.end.Hour()*60 + ts.end.Minute()
	if m == 0 {
		return 24 * 60
	}
	return m
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// SplitEven divides the amount into ways equal parts, assigning the rounding
// remainder to the first part so the parts always sum to the original amount.
func (m Money) SplitEven(ways int) ([]int64, error) {
	if ways <= 0 {
		return nil, ErrInvalidShareWays
	}
	base := m.cents / int64(ways)
	remainder := m.cents - base*int64(ways)

	parts := make([]int64, ways)
	for i := range parts {
		parts[i] = base
	}
	parts[0] += remainder
	return parts, nil
}
