package club

import (
	"errors"
	"time"

	"courtbook/internal/domain/booking"
)

var (
	ErrTooSoon    = errors.New("slot starts before the minimum advance notice")
	ErrOutOfHours = errors.New("slot falls outside opening hours")
)

// CheckAdvanceWindow rejects slots starting earlier than now + the club's
// minimum advance notice.
func CheckAdvanceWindow(slot booking.TimeSlot, minAdvanceMin int, now time.Time) error {
	if !slot.MeetsAdvanceNotice(now, minAdvanceMin) {
		return ErrTooSoon
	}
	return nil
}

// CheckOpeningHours rejects slots whose time-of-day window is not fully
// contained within the club's hours for the slot's weekday. A slot ending at
// same-day 24:00 is inside hours only when the club closes at midnight.
func CheckOpeningHours(slot booking.TimeSlot, cfg Config) error {
	hours := cfg.HoursFor(slot.Start().Weekday())
	if hours.IsClosed() {
		return ErrOutOfHours
	}
	if slot.StartMinuteOfDay() < hours.OpenMin || slot.EndMinuteOfDay() > hours.CloseMin {
		return ErrOutOfHours
	}
	return nil
}
