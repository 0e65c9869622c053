package api

import (
	"log/slog"
	"net/http"

	"courtbook/internal/handler/httperr"
	"courtbook/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type EventsHandler struct {
	hub      *notifier.Hub
	upgrader websocket.Upgrader
}

func NewEventsHandler(hub *notifier.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are already filtered by the CORS layer; the
			// upgrade itself accepts any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// @Summary Event stream
// @Description WebSocket push of booking, waitlist and maintenance events
// @Tags events
// @Security BearerAuth
// @Param resource_id query string false "Only receive events for this resource"
// @Success 101
// @Router /events/ws [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	var filter *uuid.UUID
	if raw := c.Query("resource_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid resource_id filter", nil)
			return
		}
		filter = &id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	// Serve blocks for the lifetime of the connection.
	h.hub.Serve(conn, filter)
}
