package api

import (
	"net/http"
	"strconv"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/httperr"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	bookings     commands.ReservationCommands
	reservations queries.ReservationQueries
}

func NewReservationHandler(bookings commands.ReservationCommands, reservations queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		bookings:     bookings,
		reservations: reservations,
	}
}

// @Summary Create booking
// @Description Book a slot on a resource, optionally with guest line items
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateBookingRequest true "Booking request"
// @Success 201 {object} response.BookingCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *ReservationHandler) CreateBooking(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	role, roleOK := middleware.GetMemberRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "VALIDATION", "Invalid request format", nil)
		return
	}

	id, err := h.bookings.Create(c.Request.Context(), commands.CreateBookingInput{
		ResourceID: req.ResourceID,
		MemberID:   memberID,
		Role:       role,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Guests:     req.GuestInputs(),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BookingCreatedResponse{ID: id})
}

// @Summary Cancel booking
// @Description Cancel a booking; repeating the call is a no-op
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *ReservationHandler) CancelBooking(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	role, roleOK := middleware.GetMemberRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid reservation ID format", nil)
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), id, memberID, role); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get booking
// @Description Booking details; members only see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *ReservationHandler) GetBooking(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	role, roleOK := middleware.GetMemberRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid reservation ID format", nil)
		return
	}

	view, err := h.reservations.GetByID(c.Request.Context(), memberID, role.String(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List own bookings
// @Description Bookings of the authenticated member, newest slot first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 50)"
// @Success 200 {array} response.ReservationListResponse
// @Router /bookings [get]
func (h *ReservationHandler) ListBookings(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	items, err := h.reservations.ListByMember(c.Request.Context(), memberID, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	resp := make([]*resdto.ReservationListResponse, len(items))
	for i, item := range items {
		resp[i] = resdto.FromReservationListItem(item)
	}
	c.JSON(http.StatusOK, resp)
}
