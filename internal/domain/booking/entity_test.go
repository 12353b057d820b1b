//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"courtbook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, now time.Time) *booking.Booking {
	t.Helper()
	slot := mustSlot(t, at(10, 0), at(11, 0))
	price, err := booking.NewMoney(3000)
	require.NoError(t, err)
	return booking.NewBooking(uuid.New(), uuid.New(), nil, slot, nil, price, now, 30*time.Minute)
}

func TestNewBooking(t *testing.T) {
	now := at(9, 0)
	b := newTestBooking(t, now)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, booking.StatusPendingPayment, b.Status())
	assert.Equal(t, now.Add(30*time.Minute), b.ExpiresAt())
	assert.Equal(t, now, b.CreatedAt())
}

func TestBookingConfirm(t *testing.T) {
	now := at(9, 0)
	later := at(9, 5)

	t.Run("pending to confirmed", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Confirm(later))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, later, b.UpdatedAt())
	})

	t.Run("confirming twice is a no-op", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Confirm(later))
		require.NoError(t, b.Confirm(at(9, 10)))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cancelled booking cannot confirm", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Cancel(later))
		assert.ErrorIs(t, b.Confirm(at(9, 10)), booking.ErrNotPendingPayment)
	})
}

func TestBookingCancel(t *testing.T) {
	now := at(9, 0)

	t.Run("pending booking cancels", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Cancel(at(9, 5)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("confirmed booking is terminal", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Confirm(at(9, 5)))
		assert.ErrorIs(t, b.Cancel(at(9, 10)), booking.ErrAlreadyTerminal)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		b := newTestBooking(t, now)
		require.NoError(t, b.Cancel(at(9, 5)))
		assert.ErrorIs(t, b.Cancel(at(9, 10)), booking.ErrAlreadyTerminal)
	})
}

func TestHoldExpired(t *testing.T) {
	now := at(9, 0)
	b := newTestBooking(t, now)

	assert.False(t, b.HoldExpired(now.Add(29*time.Minute)))
	assert.False(t, b.HoldExpired(now.Add(30*time.Minute)))
	assert.True(t, b.HoldExpired(now.Add(31*time.Minute)))

	require.NoError(t, b.Confirm(at(9, 5)))
	assert.False(t, b.HoldExpired(now.Add(2*time.Hour)))
}

func TestPaymentReference(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000")

	ref := booking.PaymentReference(id)
	assert.Equal(t, "PB-A1B2C3D4", ref)

	t.Run("deterministic per booking", func(t *testing.T) {
		assert.Equal(t, ref, booking.PaymentReference(id))
	})

	t.Run("shape", func(t *testing.T) {
		other := booking.PaymentReference(uuid.New())
		assert.True(t, strings.HasPrefix(other, "PB-"))
		assert.Len(t, other, 11)
	})
}
