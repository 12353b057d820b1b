//go:build unit

package booking_test

import (
	"testing"

	"courtbook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShares(t *testing.T) {
	now := at(9, 0)
	b := newTestBooking(t, now)

	t.Run("single split assigns full price to requester", func(t *testing.T) {
		shares, err := booking.BuildShares(b, booking.SplitSingle, nil, 1, now)
		require.NoError(t, err)
		require.Len(t, shares, 1)

		s := shares[0]
		require.NotNil(t, s.PayerID())
		assert.Equal(t, b.UserID(), *s.PayerID())
		assert.Equal(t, b.Price().Cents(), s.Amount().Cents())
		assert.Equal(t, booking.ShareInitiated, s.Status())
	})

	t.Run("equal split with named participants", func(t *testing.T) {
		p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
		shares, err := booking.BuildShares(b, booking.SplitEqual, []uuid.UUID{p1, p2, p3}, 3, now)
		require.NoError(t, err)
		require.Len(t, shares, 3)

		assert.Equal(t, int64(1000), shares[0].Amount().Cents())
		assert.Equal(t, p1, *shares[0].PayerID())
		assert.Equal(t, p2, *shares[1].PayerID())
		assert.Equal(t, p3, *shares[2].PayerID())
	})

	t.Run("extra ways stay unclaimed", func(t *testing.T) {
		p1 := uuid.New()
		shares, err := booking.BuildShares(b, booking.SplitEqual, []uuid.UUID{p1}, 4, now)
		require.NoError(t, err)
		require.Len(t, shares, 4)

		assert.False(t, shares[0].IsUnclaimed())
		for _, s := range shares[1:] {
			assert.True(t, s.IsUnclaimed())
		}
	})

	t.Run("amounts sum to booking price", func(t *testing.T) {
		shares, err := booking.BuildShares(b, booking.SplitEqual, nil, 7, now)
		require.NoError(t, err)

		var sum int64
		for _, s := range shares {
			sum += s.Amount().Cents()
		}
		assert.Equal(t, b.Price().Cents(), sum)
	})
}

func TestShareTransitions(t *testing.T) {
	now := at(9, 0)
	bookingID := uuid.New()
	payer := uuid.New()
	amount, err := booking.NewMoney(1500)
	require.NoError(t, err)

	newShare := func() *booking.PaymentShare {
		return booking.NewPaymentShare(bookingID, &payer, amount, now)
	}

	t.Run("initiated to pending review", func(t *testing.T) {
		s := newShare()
		note := "transfer sent"
		require.NoError(t, s.MarkPendingReview(&note, at(9, 5)))
		assert.Equal(t, booking.SharePendingReview, s.Status())
		require.NotNil(t, s.ProofNote())
		assert.Equal(t, note, *s.ProofNote())
	})

	t.Run("marking twice fails", func(t *testing.T) {
		s := newShare()
		require.NoError(t, s.MarkPendingReview(nil, at(9, 5)))
		assert.ErrorIs(t, s.MarkPendingReview(nil, at(9, 10)), booking.ErrShareNotInitiated)
	})

	t.Run("pending review to paid", func(t *testing.T) {
		s := newShare()
		require.NoError(t, s.MarkPendingReview(nil, at(9, 5)))
		require.NoError(t, s.ConfirmPaid(at(9, 10)))
		assert.Equal(t, booking.SharePaid, s.Status())
		require.NotNil(t, s.PaidAt())
		assert.Equal(t, at(9, 10), *s.PaidAt())
	})

	t.Run("confirming a paid share is a no-op", func(t *testing.T) {
		s := newShare()
		require.NoError(t, s.MarkPendingReview(nil, at(9, 5)))
		require.NoError(t, s.ConfirmPaid(at(9, 10)))
		require.NoError(t, s.ConfirmPaid(at(9, 15)))
		assert.Equal(t, at(9, 10), *s.PaidAt())
	})

	t.Run("confirming an initiated share fails", func(t *testing.T) {
		s := newShare()
		assert.ErrorIs(t, s.ConfirmPaid(at(9, 5)), booking.ErrShareNotReviewable)
	})
}

func TestShareClaim(t *testing.T) {
	now := at(9, 0)
	bookingID := uuid.New()
	amount, err := booking.NewMoney(500)
	require.NoError(t, err)

	t.Run("claim unclaimed share", func(t *testing.T) {
		s := booking.NewPaymentShare(bookingID, nil, amount, now)
		claimer := uuid.New()

		require.NoError(t, s.Claim(claimer, at(9, 5)))
		assert.True(t, s.IsOwnedBy(claimer))
	})

	t.Run("claiming a claimed share fails", func(t *testing.T) {
		owner := uuid.New()
		s := booking.NewPaymentShare(bookingID, &owner, amount, now)
		assert.ErrorIs(t, s.Claim(uuid.New(), at(9, 5)), booking.ErrShareClaimed)
	})
}

func TestAllPaid(t *testing.T) {
	now := at(9, 0)
	bookingID := uuid.New()
	payer := uuid.New()
	amount, err := booking.NewMoney(100)
	require.NoError(t, err)

	paidShare := func() *booking.PaymentShare {
		s := booking.NewPaymentShare(bookingID, &payer, amount, now)
		require.NoError(t, s.MarkPendingReview(nil, now))
		require.NoError(t, s.ConfirmPaid(now))
		return s
	}

	t.Run("empty set is never paid", func(t *testing.T) {
		assert.False(t, booking.AllPaid(nil))
	})

	t.Run("all paid", func(t *testing.T) {
		assert.True(t, booking.AllPaid([]*booking.PaymentShare{paidShare(), paidShare()}))
	})

	t.Run("one outstanding share", func(t *testing.T) {
		open := booking.NewPaymentShare(bookingID, &payer, amount, now)
		assert.False(t, booking.AllPaid([]*booking.PaymentShare{paidShare(), open}))
	})
}
