package api

import (
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/httperr"
	"courtbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	maintenance commands.MaintenanceCommands
}

func NewMaintenanceHandler(maintenance commands.MaintenanceCommands) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// @Summary Create maintenance window
// @Description Block a time range on a resource (admin only)
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body request.CreateMaintenanceRequest true "Maintenance window"
// @Success 201 {object} response.MaintenanceCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/maintenance [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid resource ID format", nil)
		return
	}

	var req reqdto.CreateMaintenanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "VALIDATION", "Invalid request format", nil)
		return
	}

	id, err := h.maintenance.Create(c.Request.Context(), commands.CreateMaintenanceInput{
		ResourceID: resourceID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Reason:     req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.MaintenanceCreatedResponse{ID: id})
}

// @Summary Delete maintenance window
// @Description Remove a maintenance window (admin only)
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Maintenance window ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /maintenance/{id} [delete]
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid maintenance window ID format", nil)
		return
	}

	if err := h.maintenance.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
