package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
	ws "github.com/artigianatoshop/artigianato-backend/internal/websocket"
)

type OrderFeedController struct {
	hub            *ws.Hub
	allowedOrigins map[string]bool
}

func NewOrderFeedController(hub *ws.Hub, allowedOrigins []string) *OrderFeedController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}
	return &OrderFeedController{
		hub:            hub,
		allowedOrigins: origins,
	}
}

func (ctrl *OrderFeedController) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return ctrl.allowedOrigins[r.Header.Get("Origin")]
		},
	}
}

// Connect upgrades to WebSocket and streams order events for the
// authenticated user
// GET /api/v1/ws/orders?token=<jwt>
func (ctrl *OrderFeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	upgrader := ctrl.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, userID, role)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
}
