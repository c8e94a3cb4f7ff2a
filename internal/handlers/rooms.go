package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcristea/roomcast/internal/chat"
)

// RoomHandler serves observational room data over REST.
type RoomHandler struct {
	store *chat.RoomStore
}

func NewRoomHandler(store *chat.RoomStore) *RoomHandler {
	return &RoomHandler{store: store}
}

// ListRooms returns every room with its live member count and history size.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.store.Stats()})
}
