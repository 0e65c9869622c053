package api

import (
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/httperr"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WaitlistHandler struct {
	waitlist commands.WaitlistCommands
}

func NewWaitlistHandler(waitlist commands.WaitlistCommands) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

// @Summary Join waitlist
// @Description Register interest in a booked slot; rejoining returns the live entry
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.JoinWaitlistRequest true "Waitlist request"
// @Success 201 {object} response.WaitlistEntryResponse
// @Success 200 {object} response.WaitlistEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /waitlist [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.JoinWaitlistRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "VALIDATION", "Invalid request format", nil)
		return
	}

	entry, created, err := h.waitlist.Join(c.Request.Context(), commands.JoinWaitlistInput{
		ResourceID: req.ResourceID,
		MemberID:   memberID,
		SlotStart:  req.TargetSlotStart,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, resdto.FromWaitlistSnapshot(entry))
}

// @Summary Withdraw from waitlist
// @Description Withdraw a pending waitlist entry
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Waitlist entry ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /waitlist/{id} [delete]
func (h *WaitlistHandler) Withdraw(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	role, roleOK := middleware.GetMemberRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid waitlist entry ID format", nil)
		return
	}

	if err := h.waitlist.Withdraw(c.Request.Context(), id, memberID, role); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
