package booking

// Status is the booking lifecycle state machine.
//
// PENDING_PAYMENT -> CONFIRMED   (all shares paid)
// PENDING_PAYMENT -> EXPIRED     (hold timed out, swept)
// any non-terminal -> CANCELLED  (explicit cancellation)
//
// CONFIRMED, EXPIRED and CANCELLED are terminal for this engine.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusExpired        Status = "expired"
	StatusCancelled      Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// Blocks reports whether a booking in this status occupies its court for
// overlap purposes. Cancelled and expired bookings never block.
func (s Status) Blocks() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// ShareStatus is the linear payment share progression:
// INITIATED -> PENDING_REVIEW -> PAID. No back-transitions.
type ShareStatus string

const (
	ShareInitiated     ShareStatus = "initiated"
	SharePendingReview ShareStatus = "pending_review"
	SharePaid          ShareStatus = "paid"
)

func (s ShareStatus) String() string {
	return string(s)
}

func (s ShareStatus) IsValid() bool {
	switch s {
	case ShareInitiated, SharePendingReview, SharePaid:
		return true
	default:
		return false
	}
}

// SplitStrategy selects how a booking's price is divided into shares.
type SplitStrategy string

const (
	// SplitSingle creates one share for the full price owned by the requester.
	SplitSingle SplitStrategy = "single"
	// SplitEqual creates one share per participant slot, equal fractions,
	// rounding remainder on the first share.
	SplitEqual SplitStrategy = "equal"
)

func (s SplitStrategy) IsValid() bool {
	return s == SplitSingle || s == SplitEqual
}
