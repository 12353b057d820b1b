package response

import (
	"time"

	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID       `json:"id"`
	CourtID    uuid.UUID       `json:"courtId"`
	CourtName  string          `json:"courtName"`
	UserID     uuid.UUID       `json:"userId"`
	GuestName  *string         `json:"guestName,omitempty"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	SeriesID   *uuid.UUID      `json:"seriesId,omitempty"`
	Status     string          `json:"status"`
	PriceCents int64           `json:"priceCents"`
	PaymentRef string          `json:"paymentRef"`
	ExpiresAt  time.Time       `json:"expiresAt"`
	Shares     []ShareResponse `json:"shares"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type ShareResponse struct {
	ID          uuid.UUID  `json:"id"`
	PayerID     *uuid.UUID `json:"payerId,omitempty"`
	AmountCents int64      `json:"amountCents"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ProofNote   *string    `json:"proofNote,omitempty"`
}

type BookingListResponse struct {
	ID         uuid.UUID  `json:"id"`
	CourtID    uuid.UUID  `json:"courtId"`
	CourtName  string     `json:"courtName"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"`
	SeriesID   *uuid.UUID `json:"seriesId,omitempty"`
	Status     string     `json:"status"`
	PriceCents int64      `json:"priceCents"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type PaymentInstructionResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	Reference   string    `json:"reference"`
	AmountCents int64     `json:"amountCents"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type CreatedBookingResponse struct {
	ID         uuid.UUID  `json:"id"`
	CourtID    uuid.UUID  `json:"courtId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"`
	SeriesID   *uuid.UUID `json:"seriesId,omitempty"`
	Status     string     `json:"status"`
	PriceCents int64      `json:"priceCents"`
	ExpiresAt  time.Time  `json:"expiresAt"`
}

type CreateBookingResponse struct {
	Bookings            []CreatedBookingResponse     `json:"bookings"`
	TotalPriceCents     int64                        `json:"totalPriceCents"`
	PaymentInstructions []PaymentInstructionResponse `json:"paymentInstructions"`
}

type QuoteLineResponse struct {
	Start           time.Time `json:"start"`
	Minutes         int       `json:"minutes"`
	HourlyRateCents int64     `json:"hourlyRateCents"`
	CostCents       int64     `json:"costCents"`
}

type QuoteResponse struct {
	TotalCents int64               `json:"totalCents"`
	Breakdown  []QuoteLineResponse `json:"breakdown"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	shares := make([]ShareResponse, len(rm.Shares))
	for i, s := range rm.Shares {
		shares[i] = ShareResponse{
			ID:          s.ID,
			PayerID:     s.PayerID,
			AmountCents: s.AmountCents,
			Status:      s.Status,
			PaidAt:      s.PaidAt,
			ProofNote:   s.ProofNote,
		}
	}
	return &BookingResponse{
		ID:         rm.ID,
		CourtID:    rm.CourtID,
		CourtName:  rm.CourtName,
		UserID:     rm.UserID,
		GuestName:  rm.GuestName,
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		SeriesID:   rm.SeriesID,
		Status:     rm.Status,
		PriceCents: rm.PriceCents,
		PaymentRef: rm.PaymentRef,
		ExpiresAt:  rm.ExpiresAt,
		Shares:     shares,
		CreatedAt:  rm.CreatedAt,
		UpdatedAt:  rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         rm.ID,
		CourtID:    rm.CourtID,
		CourtName:  rm.CourtName,
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		SeriesID:   rm.SeriesID,
		Status:     rm.Status,
		PriceCents: rm.PriceCents,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromCreateBookingResult(res *commands.CreateBookingResult) *CreateBookingResponse {
	out := &CreateBookingResponse{
		TotalPriceCents:     res.TotalPriceCents,
		Bookings:            make([]CreatedBookingResponse, len(res.Bookings)),
		PaymentInstructions: make([]PaymentInstructionResponse, len(res.PaymentInstructions)),
	}
	for i, b := range res.Bookings {
		out.Bookings[i] = CreatedBookingResponse{
			ID:         b.ID,
			CourtID:    b.CourtID,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			SeriesID:   b.SeriesID,
			Status:     b.Status,
			PriceCents: b.PriceCents,
			ExpiresAt:  b.ExpiresAt,
		}
	}
	for i, p := range res.PaymentInstructions {
		out.PaymentInstructions[i] = PaymentInstructionResponse{
			BookingID:   p.BookingID,
			Reference:   p.Reference,
			AmountCents: p.AmountCents,
			ExpiresAt:   p.ExpiresAt,
		}
	}
	return out
}

func FromQuoteView(rm *queries.QuoteView) *QuoteResponse {
	lines := make([]QuoteLineResponse, len(rm.Breakdown))
	for i, l := range rm.Breakdown {
		lines[i] = QuoteLineResponse{
			Start:           l.Start,
			Minutes:         l.Minutes,
			HourlyRateCents: l.HourlyRateCents,
			CostCents:       l.CostCents,
		}
	}
	return &QuoteResponse{TotalCents: rm.TotalCents, Breakdown: lines}
}

type ShareInfoResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"bookingId"`
	PayerID     *uuid.UUID `json:"payerId,omitempty"`
	AmountCents int64      `json:"amountCents"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ProofNote   *string    `json:"proofNote,omitempty"`
}

func FromShareInfo(s *commands.ShareInfo) *ShareInfoResponse {
	return &ShareInfoResponse{
		ID:          s.ID,
		BookingID:   s.BookingID,
		PayerID:     s.PayerID,
		AmountCents: s.AmountCents,
		Status:      s.Status,
		PaidAt:      s.PaidAt,
		ProofNote:   s.ProofNote,
	}
}
