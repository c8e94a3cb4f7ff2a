package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcristea/roomcast/internal/handlers"
	"github.com/mcristea/roomcast/internal/metrics"
)

func registerRoutes(r *gin.Engine, wsH *handlers.WebSocketHandler, roomH *handlers.RoomHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/ws", wsH.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/rooms", roomH.ListRooms)
	}
}
