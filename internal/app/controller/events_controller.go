package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "github.com/ebuka-odih/mini-ecommerce-backend/internal/errors"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
	ws "github.com/ebuka-odih/mini-ecommerce-backend/internal/websocket"
)

// EventsController streams media batch progress to admin dashboards.
type EventsController struct {
	hub            *ws.Hub
	allowedOrigins map[string]bool
}

func NewEventsController(hub *ws.Hub, allowedOrigins []string) *EventsController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}
	return &EventsController{
		hub:            hub,
		allowedOrigins: origins,
	}
}

func (ctrl *EventsController) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return ctrl.allowedOrigins[r.Header.Get("Origin")]
		},
	}
}

// Stream upgrades the connection and registers the admin session
// GET /api/v1/admin/events/ws
func (ctrl *EventsController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	upgrader := ctrl.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 2048),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
	})
}
