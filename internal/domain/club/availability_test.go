//go:build unit

package club_test

import (
	"testing"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/club"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-03-02.
func slotOn(t *testing.T, startHour, endHour int) booking.TimeSlot {
	t.Helper()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slot, err := booking.NewTimeSlot(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return slot
}

func openConfig(openMin, closeMin int) club.Config {
	var cfg club.Config
	for i := range cfg.Hours {
		cfg.Hours[i] = club.DayHours{OpenMin: openMin, CloseMin: closeMin}
	}
	return cfg
}

func TestCheckAdvanceWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	slot := slotOn(t, 10, 11)

	assert.NoError(t, club.CheckAdvanceWindow(slot, 60, now))
	assert.NoError(t, club.CheckAdvanceWindow(slot, 120, now))
	assert.ErrorIs(t, club.CheckAdvanceWindow(slot, 121, now), club.ErrTooSoon)
}

func TestCheckOpeningHours(t *testing.T) {
	t.Run("slot inside hours", func(t *testing.T) {
		cfg := openConfig(8*60, 22*60)
		assert.NoError(t, club.CheckOpeningHours(slotOn(t, 10, 12), cfg))
	})

	t.Run("slot touching open and close is inside", func(t *testing.T) {
		cfg := openConfig(8*60, 22*60)
		assert.NoError(t, club.CheckOpeningHours(slotOn(t, 8, 22), cfg))
	})

	t.Run("starts before open", func(t *testing.T) {
		cfg := openConfig(8*60, 22*60)
		assert.ErrorIs(t, club.CheckOpeningHours(slotOn(t, 7, 9), cfg), club.ErrOutOfHours)
	})

	t.Run("ends after close", func(t *testing.T) {
		cfg := openConfig(8*60, 22*60)
		assert.ErrorIs(t, club.CheckOpeningHours(slotOn(t, 21, 23), cfg), club.ErrOutOfHours)
	})

	t.Run("midnight close accepts a 24:00 end", func(t *testing.T) {
		cfg := openConfig(8*60, 24*60)
		assert.NoError(t, club.CheckOpeningHours(slotOn(t, 22, 24), cfg))
	})

	t.Run("22:00 close rejects a 24:00 end", func(t *testing.T) {
		cfg := openConfig(8*60, 22*60)
		assert.ErrorIs(t, club.CheckOpeningHours(slotOn(t, 22, 24), cfg), club.ErrOutOfHours)
	})

	t.Run("closed day", func(t *testing.T) {
		cfg := openConfig(0, 0)
		assert.ErrorIs(t, club.CheckOpeningHours(slotOn(t, 10, 11), cfg), club.ErrOutOfHours)
	})
}

func TestHoldDuration(t *testing.T) {
	cfg := club.Config{HoldSelfServiceMin: 30, HoldStaffMin: 1440}

	assert.Equal(t, 30*time.Minute, cfg.HoldDuration("self_service"))
	assert.Equal(t, 24*time.Hour, cfg.HoldDuration("staff"))
}
