package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		var occFailure *commands.OccurrenceFailure
		if errors.As(err, &occFailure) {
			status := statusForBookingError(occFailure.Err)
			c.JSON(status, gin.H{
				"error": "Occurrence could not be booked",
				"occurrence": gin.H{
					"index": occFailure.Index,
					"start": occFailure.Start.Format(time.RFC3339),
				},
			})
			return
		}

		switch {
		case errors.Is(err, commands.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, commands.ErrCourtInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Court is not bookable",
			})
		case errors.Is(err, commands.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time slot",
			})
		case errors.Is(err, commands.ErrInvalidSplit):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment split",
			})
		case errors.Is(err, commands.ErrInvalidRecurrence):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid recurrence rule",
			})
		case errors.Is(err, commands.ErrSeriesTooLong):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Recurrence expands to too many occurrences",
			})
		case errors.Is(err, commands.ErrBookingTooSoon):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking starts too soon",
			})
		case errors.Is(err, commands.ErrBookingOutOfHours):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking outside opening hours",
			})
		case errors.Is(err, commands.ErrNoApplicableRate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No applicable tariff rate for the requested interval",
			})
		case errors.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Time slot is no longer available",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to view this booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// Quote prices an interval without reserving it.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.bookingQueries.Quote(c.Request.Context(), req.CourtID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time slot",
			})
		case errors.Is(err, queries.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, queries.ErrNoApplicableRate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No applicable tariff rate for the requested interval",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(quote))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to cancel this booking",
			})
		case errors.Is(err, commands.ErrBookingTerminal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is already in a terminal state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// statusForBookingError maps per-occurrence failures onto the same statuses
// single-occurrence requests get.
func statusForBookingError(err error) int {
	switch {
	case errors.Is(err, commands.ErrBookingConflict):
		return http.StatusConflict
	case errors.Is(err, commands.ErrInvalidTimeSlot):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrBookingTooSoon),
		errors.Is(err, commands.ErrBookingOutOfHours),
		errors.Is(err, commands.ErrNoApplicableRate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
