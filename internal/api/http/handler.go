package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"coup-server/internal/config"
	"coup-server/internal/game"
	"coup-server/internal/room"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// RoomHandler returns a spectator snapshot of a room: the projection for
// an unknown viewer, so every unrevealed card stays hidden.
func RoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, ok := rm.Get(c.Param("code"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		var view game.RoomView
		rx.Do(func(g *game.Game) {
			view = g.ViewFor("")
		})
		c.JSON(http.StatusOK, gin.H{"room": view})
	}
}

// RoomQRHandler serves a QR code with the join link for a room, for
// getting phones into a lobby quickly.
func RoomQRHandler(rm *room.Manager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		if _, ok := rm.Get(code); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		joinURL := fmt.Sprintf("%s/?join=%s", cfg.PublicURL, code)
		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
