package request

import (
	"strings"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/recurrence"
	"courtbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type RecurrenceRequest struct {
	IntervalWeeks int        `json:"interval_weeks" binding:"required,min=1"`
	Weekdays      []int      `json:"weekdays" binding:"omitempty,dive,min=0,max=6"`
	Count         int        `json:"count,omitempty" binding:"omitempty,min=1"`
	Until         *time.Time `json:"until,omitempty"`
}

type CreateBookingRequest struct {
	CourtID      uuid.UUID          `json:"court_id" binding:"required"`
	StartTime    time.Time          `json:"start_time" binding:"required"`
	EndTime      time.Time          `json:"end_time" binding:"required"`
	GuestName    *string            `json:"guest_name,omitempty"`
	Split        string             `json:"split,omitempty" binding:"omitempty,oneof=single equal"`
	Participants []uuid.UUID        `json:"participants,omitempty"`
	SplitWays    int                `json:"split_ways,omitempty" binding:"omitempty,min=2"`
	Recurrence   *RecurrenceRequest `json:"recurrence,omitempty"`
}

func (r CreateBookingRequest) GetGuestName() *string {
	if r.GuestName == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.GuestName)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	input := commands.CreateBookingInput{
		CourtID:      r.CourtID,
		Start:        r.StartTime,
		End:          r.EndTime,
		GuestName:    r.GetGuestName(),
		Split:        booking.SplitStrategy(r.Split),
		Participants: r.Participants,
		SplitWays:    r.SplitWays,
	}
	if r.Recurrence != nil {
		rule := recurrence.Rule{
			IntervalWeeks: r.Recurrence.IntervalWeeks,
			Count:         r.Recurrence.Count,
			Until:         r.Recurrence.Until,
		}
		for _, wd := range r.Recurrence.Weekdays {
			rule.Weekdays = append(rule.Weekdays, time.Weekday(wd))
		}
		input.Recurrence = &rule
	}
	return input
}

type QuoteRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type MarkSharePaidRequest struct {
	ProofNote *string `json:"proof_note,omitempty"`
}

func (r MarkSharePaidRequest) GetProofNote() *string {
	if r.ProofNote == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.ProofNote)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
