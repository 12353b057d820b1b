package api

import (
	"errors"
	"net/http"

	"courtbook/internal/domain/identity"
	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/httperr"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errActorMissing = errs.New("authenticated actor missing from context")

type ShareHandler struct {
	shareCommands commands.ShareCommands
}

func NewShareHandler(shareCommands commands.ShareCommands) *ShareHandler {
	return &ShareHandler{
		shareCommands: shareCommands,
	}
}

// MarkPaid is the payer's self-report; the share moves to review.
func (h *ShareHandler) MarkPaid(c *gin.Context) {
	actor, bookingID, shareID, ok := h.shareContext(c)
	if !ok {
		return
	}

	var req reqdto.MarkSharePaidRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid request format", nil)
			return
		}
	}

	err := h.shareCommands.MarkSharePaidPending(c.Request.Context(), actor, bookingID, shareID, req.GetProofNote())
	if err != nil {
		h.abortShareError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Confirm is the reviewer's acknowledgement. Staff only.
func (h *ShareHandler) Confirm(c *gin.Context) {
	actor, bookingID, shareID, ok := h.shareContext(c)
	if !ok {
		return
	}

	err := h.shareCommands.ConfirmSharePaid(c.Request.Context(), actor, bookingID, shareID)
	if err != nil {
		h.abortShareError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join claims an unclaimed share on the booking for the caller.
func (h *ShareHandler) Join(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errActorMissing, "internal", "Internal server error", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid booking ID format", nil)
		return
	}

	share, err := h.shareCommands.JoinShare(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.abortShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromShareInfo(share))
}

func (h *ShareHandler) shareContext(c *gin.Context) (actor identity.Actor, bookingID, shareID uuid.UUID, ok bool) {
	actor, found := middleware.GetActor(c)
	if !found {
		httperr.AbortWithError(c, http.StatusInternalServerError, errActorMissing, "internal", "Internal server error", nil)
		return actor, uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid booking ID format", nil)
		return actor, uuid.Nil, uuid.Nil, false
	}

	shareID, err = uuid.Parse(c.Param("shareId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid share ID format", nil)
		return actor, uuid.Nil, uuid.Nil, false
	}

	return actor, bookingID, shareID, true
}

func (h *ShareHandler) abortShareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "booking_not_found", "Booking not found", nil)
	case errors.Is(err, commands.ErrShareNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "share_not_found", "Payment share not found", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "forbidden", "Not allowed to act on this share", nil)
	case errors.Is(err, commands.ErrBookingTerminal):
		httperr.AbortWithError(c, http.StatusConflict, err, "booking_terminal", "Booking no longer accepts payment updates", nil)
	case errors.Is(err, commands.ErrShareTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "share_transition", "Share is not in a state that allows this transition", nil)
	case errors.Is(err, commands.ErrShareNoCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "share_full", "No unclaimed share left on this booking", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal", "Internal server error", nil)
	}
}
