// Package club holds the facility configuration snapshot the engine reads at
// the start of each request, plus the pure availability checks that depend
// only on that snapshot. The engine never caches or mutates this state; the
// configuration collaborators own it.
package club

import (
	"time"

	"courtbook/internal/domain/identity"

	"github.com/google/uuid"
)

// DayHours is the opening window for one weekday in minutes since midnight.
// CloseMin may be 1440 for a midnight close. Open == Close means closed.
type DayHours struct {
	OpenMin  int
	CloseMin int
}

func (h DayHours) IsClosed() bool {
	return h.OpenMin >= h.CloseMin
}

// Config is a read-only snapshot of one club's booking parameters.
type Config struct {
	ID                  uuid.UUID
	Name                string
	Hours               [7]DayHours // indexed by time.Weekday
	GranularityMin      int
	MinAdvanceMin       int
	HoldSelfServiceMin  int
	HoldStaffMin        int
	FallbackHourlyCents *int64
}

// HoldDuration returns the payment-hold window for a requester class.
func (c Config) HoldDuration(class identity.Class) time.Duration {
	if class == identity.ClassStaff {
		return time.Duration(c.HoldStaffMin) * time.Minute
	}
	return time.Duration(c.HoldSelfServiceMin) * time.Minute
}

func (c Config) HoursFor(day time.Weekday) DayHours {
	return c.Hours[int(day)]
}

// CourtSnapshot is the engine's read-only view of one court.
type CourtSnapshot struct {
	ID       uuid.UUID
	ClubID   uuid.UUID
	Name     string
	Capacity int
	Active   bool
}
