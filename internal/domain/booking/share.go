package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrShareNotInitiated  = errors.New("share is not in initiated state")
	ErrShareNotReviewable = errors.New("share is not pending review")
	ErrShareClaimed       = errors.New("share already has a payer")
)

// PaymentShare is one participant's portion of a booking's price.
type PaymentShare struct {
	id        uuid.UUID
	bookingID uuid.UUID
	payerID   *uuid.UUID
	amount    Money
	status    ShareStatus
	paidAt    *time.Time
	proofNote *string
	createdAt time.Time
	updatedAt time.Time
}

func NewPaymentShare(bookingID uuid.UUID, payerID *uuid.UUID, amount Money, now time.Time) *PaymentShare {
	return &PaymentShare{
		id:        uuid.New(),
		bookingID: bookingID,
		payerID:   payerID,
		amount:    amount,
		status:    ShareInitiated,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructPaymentShare(
	id, bookingID uuid.UUID,
	payerID *uuid.UUID,
	amount Money,
	status ShareStatus,
	paidAt *time.Time,
	proofNote *string,
	createdAt, updatedAt time.Time,
) *PaymentShare {
	return &PaymentShare{
		id:        id,
		bookingID: bookingID,
		payerID:   payerID,
		amount:    amount,
		status:    status,
		paidAt:    paidAt,
		proofNote: proofNote,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// BuildShares creates the share set for a booking according to the split
// strategy. Under SplitEqual the price is divided into ways parts with the
// remainder on the first share; payers beyond the named participants stay
// unclaimed until someone joins.
func BuildShares(
	b *Booking,
	strategy SplitStrategy,
	participants []uuid.UUID,
	ways int,
	now time.Time,
) ([]*PaymentShare, error) {
	if strategy == SplitSingle {
		owner := b.UserID()
		return []*PaymentShare{NewPaymentShare(b.ID(), &owner, b.Price(), now)}, nil
	}

	parts, err := b.Price().SplitEven(ways)
	if err != nil {
		return nil, err
	}

	shares := make([]*PaymentShare, ways)
	for i := range shares {
		var payer *uuid.UUID
		if i < len(participants) {
			id := participants[i]
			payer = &id
		}
		amount, err := NewMoney(parts[i])
		if err != nil {
			return nil, err
		}
		shares[i] = NewPaymentShare(b.ID(), payer, amount, now)
	}
	return shares, nil
}

// MarkPendingReview is the payer's self-report: INITIATED -> PENDING_REVIEW.
func (s *PaymentShare) MarkPendingReview(note *string, now time.Time) error {
	if s.status != ShareInitiated {
		return ErrShareNotInitiated
	}
	s.status = SharePendingReview
	s.proofNote = note
	s.updatedAt = now
	return nil
}

// ConfirmPaid is the reviewer's confirmation: PENDING_REVIEW -> PAID.
// Confirming an already paid share is a no-op.
func (s *PaymentShare) ConfirmPaid(now time.Time) error {
	if s.status == SharePaid {
		return nil
	}
	if s.status != SharePendingReview {
		return ErrShareNotReviewable
	}
	s.status = SharePaid
	s.paidAt = &now
	s.updatedAt = now
	return nil
}

// Claim assigns a payer to an unclaimed share.
func (s *PaymentShare) Claim(payerID uuid.UUID, now time.Time) error {
	if s.payerID != nil {
		return ErrShareClaimed
	}
	s.payerID = &payerID
	s.updatedAt = now
	return nil
}

// IsOwnedBy reports whether the share belongs to the given requester.
func (s *PaymentShare) IsOwnedBy(userID uuid.UUID) bool {
	return s.payerID != nil && *s.payerID == userID
}

func (s *PaymentShare) IsUnclaimed() bool {
	return s.payerID == nil
}

func (s *PaymentShare) ID() uuid.UUID        { return s.id }
func (s *PaymentShare) BookingID() uuid.UUID { return s.bookingID }
func (s *PaymentShare) PayerID() *uuid.UUID  { return s.payerID }
func (s *PaymentShare) Amount() Money        { return s.amount }
func (s *PaymentShare) Status() ShareStatus  { return s.status }
func (s *PaymentShare) PaidAt() *time.Time   { return s.paidAt }
func (s *PaymentShare) ProofNote() *string   { return s.proofNote }
func (s *PaymentShare) CreatedAt() time.Time { return s.createdAt }
func (s *PaymentShare) UpdatedAt() time.Time { return s.updatedAt }

// AllPaid reports whether every share in the set is PAID. An empty set is
// never considered paid.
func AllPaid(shares []*PaymentShare) bool {
	if len(shares) == 0 {
		return false
	}
	for _, s := range shares {
		if s.Status() != SharePaid {
			return false
		}
	}
	return true
}
