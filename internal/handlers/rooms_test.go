package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mcristea/roomcast/internal/chat"
)

func TestListRooms(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := chat.NewRoomStore()
	store.GetOrCreate("general")
	store.IncrementMembers("general")
	store.Append("general", chat.NewTextMessage("alice", "hi", "10:00:00"))

	router := gin.New()
	router.GET("/api/rooms", NewRoomHandler(store).ListRooms)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Rooms []chat.RoomStats `json:"rooms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(body.Rooms))
	}
	got := body.Rooms[0]
	if got.Name != "general" || got.Members != 1 || got.Messages != 1 {
		t.Errorf("unexpected stats %+v", got)
	}
}
