package http

import (
	"github.com/gin-gonic/gin"

	"coup-server/internal/api/ws"
	"coup-server/internal/config"
	"coup-server/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket endpoint carrying all game commands
	r.GET("/ws", hub.HandleWS)

	r.GET("/healthz", HealthHandler())
	r.GET("/rooms/:code", RoomHandler(rm))
	r.GET("/rooms/:code/qr", RoomQRHandler(rm, cfg))

	return r
}
