package api

import (
	"errors"
	"net/http"

	reqdto "courtside/internal/handler/dto/request"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/httperr"
	"courtside/internal/handler/middleware"
	"courtside/internal/infra/courtapi"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings     commands.BookingCommands
	availability queries.AvailabilityQueries
}

func NewBookingHandler(bookings commands.BookingCommands, availability queries.AvailabilityQueries) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
	}
}

// @Summary Join a team
// @Description Reserve one team seat on a court, racing other users for it
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.JoinTeamRequest true "Join request"
// @Success 201 {object} resdto.JoinTeamResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) JoinTeam(c *gin.Context) {
	uid, ok := middleware.GetUID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.JoinTeamRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid booking request", nil)
		return
	}

	result, err := h.bookings.JoinTeam(c.Request.Context(), req.ToParams(uid, middleware.GetDisplayName(c)))
	if err != nil {
		h.abortJoinError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromJoinTeamResult(result))
}

// @Summary Cancel a booking
// @Description Cancel a confirmed booking while outside the 2-hour cutoff
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	uid, ok := middleware.GetUID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "invalid_request", "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Booking date is required", nil)
		return
	}

	result, err := h.bookings.CancelBooking(c.Request.Context(), commands.CancelBookingParams{
		BookingID: bookingID,
		Date:      req.Date,
		UserID:    uid,
	})
	if err != nil {
		h.abortCancelError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelBookingResponse{
		Success:         true,
		AlreadyResolved: result.AlreadyResolved,
	})
}

// @Summary My bookings
// @Description List the caller's bookings in a date range, with cancellability
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	uid, ok := middleware.GetUID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.MyBookingsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_search", "Date range is required", nil)
		return
	}

	bookings, err := h.availability.MyBookings(c.Request.Context(), uid, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSearchRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_search", "Date range is required", nil)
		case courtapi.IsKind(err, courtapi.KindTransient):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "backend_unavailable", "Booking service is temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal", "Internal server error", nil)
		}
		return
	}

	response := make([]resdto.BookingResponse, len(bookings))
	for i, b := range bookings {
		response[i] = resdto.FromBookingView(b)
	}
	c.JSON(http.StatusOK, response)
}

// Each rejection class keeps its own code and message: the corrective action
// differs, so they must not collapse into a generic conflict.
func (h *BookingHandler) abortJoinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrTeamFull):
		httperr.AbortWithError(c, http.StatusConflict, err, "team_full",
			"That team just filled up. Refresh to see current availability", nil)
	case errors.Is(err, errs.ErrDuplicateDay):
		httperr.AbortWithError(c, http.StatusConflict, err, "duplicate_day",
			"You already have a booking on this date. Pick another day", nil)
	case errors.Is(err, errs.ErrAlreadyOnCourt):
		httperr.AbortWithError(c, http.StatusConflict, err, "already_on_court",
			"You are already booked on this court", nil)
	case errors.Is(err, errs.ErrBookingInFlight):
		httperr.AbortWithError(c, http.StatusConflict, err, "booking_in_flight",
			"A booking for this team is already being submitted", nil)
	case errors.Is(err, errs.ErrScheduleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "schedule_not_found",
			"This slot is no longer available", nil)
	case errors.Is(err, errs.ErrInvalidCourtNumber), errors.Is(err, errs.ErrInvalidTeamNumber):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_request",
			"Invalid court or team number", nil)
	case errors.Is(err, errs.ErrBackendUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "backend_unavailable",
			"Booking could not be confirmed. Please try again", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "validation_failed",
			"Booking request failed validation", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal",
			"Internal server error", nil)
	}
}

func (h *BookingHandler) abortCancelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotCancellable):
		httperr.AbortWithError(c, http.StatusConflict, err, "cancellation_cutoff",
			"Bookings can only be cancelled more than 2 hours before the start", nil)
	case errors.Is(err, errs.ErrBackendUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "backend_unavailable",
			"Cancellation could not be confirmed. Please try again", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal",
			"Internal server error", nil)
	}
}
