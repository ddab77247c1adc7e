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
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary List venues
// @Description List all venues from the booking backend
// @Tags venues
// @Produce json
// @Success 200 {array} resdto.VenueResponse
// @Failure 502 {object} httperr.Response
// @Router /venues [get]
func (h *AvailabilityHandler) Venues(c *gin.Context) {
	venues, err := h.availability.Venues(c.Request.Context())
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	response := make([]resdto.VenueResponse, len(venues))
	for i, v := range venues {
		response[i] = resdto.FromVenueView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Search availability
// @Description Project the live court/team availability grid for a venue and date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param venue_id query string true "Venue ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	uid, ok := middleware.GetUID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.SearchAvailabilityRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_search", "Venue and date range are required", nil)
		return
	}
	venueID, parseErr := uuid.Parse(req.VenueID)
	if parseErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "invalid_search", "Invalid venue id", nil)
		return
	}

	slots, err := h.availability.Search(c.Request.Context(), uid, venueID, req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidSearchRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_search", "Venue and date range are required", nil)
			return
		}
		h.abortQueryError(c, err)
		return
	}

	response := make([]resdto.SlotResponse, len(slots))
	for i, s := range slots {
		response[i] = resdto.FromSlotView(s)
	}
	c.JSON(http.StatusOK, response)
}

func (h *AvailabilityHandler) abortQueryError(c *gin.Context, err error) {
	switch {
	case courtapi.IsKind(err, courtapi.KindTransient):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "backend_unavailable", "Booking service is temporarily unavailable", nil)
	case courtapi.IsKind(err, courtapi.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "not_found", "Requested data was not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal", "Internal server error", nil)
	}
}
