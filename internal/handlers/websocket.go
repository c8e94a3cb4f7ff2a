// Package handlers exposes the HTTP surface: the websocket upgrade endpoint
// with its event dispatch, and the room stats API.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	ws "github.com/mcristea/roomcast/internal/websocket"
)

const maxRoomNameLen = 128

// WebSocketHandler upgrades connections and dispatches their inbound events
// to the hub. It implements ws.EventHandler.
type WebSocketHandler struct {
	hub      *ws.Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, logger *slog.Logger, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// HandleWebSocket upgrades the request and starts the connection's pumps.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", c.Request.RemoteAddr, "err", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h)
}

// HandleEvent routes one inbound envelope. Returned errors are reported back
// to the sending connection only.
func (h *WebSocketHandler) HandleEvent(client *ws.Client, env *ws.Envelope) error {
	switch env.Event {
	case ws.EventJoinRoom:
		room, err := decodeRoomName(env.Data)
		if err != nil {
			return err
		}
		h.hub.Join(client, room)
		return nil

	case ws.EventSendMessage:
		var req ws.SendMessageRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return fmt.Errorf("%w: %v", ws.ErrInvalidPayload, err)
		}
		if req.User == "" || req.Text == "" {
			return fmt.Errorf("%w: user and text are required", ws.ErrInvalidPayload)
		}
		_, err := h.hub.SendMessage(client, req.Room, req.User, req.Text, req.Time)
		return err

	case ws.EventSendFile:
		var req ws.SendFileRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return fmt.Errorf("%w: %v", ws.ErrInvalidPayload, err)
		}
		if req.User == "" {
			return fmt.Errorf("%w: user is required", ws.ErrInvalidPayload)
		}
		_, err := h.hub.SendFile(client, req.Room, req.User, req.Text, req.Time, req.FileData)
		return err

	case ws.EventGetMessageHistory:
		room, err := decodeRoomName(env.Data)
		if err != nil {
			return err
		}
		return h.hub.History(client, room)

	case ws.EventUpdateUsername:
		var req ws.RenameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return fmt.Errorf("%w: %v", ws.ErrInvalidPayload, err)
		}
		if req.NewName == "" {
			return fmt.Errorf("%w: newName is required", ws.ErrInvalidPayload)
		}
		return h.hub.RenameUser(client, req.Room, req.OldName, req.NewName)

	default:
		h.log.Debug("ignoring unknown event", "event", env.Event, "client", client.ID)
		return nil
	}
}

// decodeRoomName parses a bare JSON string room name. Room names are
// case-sensitive and client-supplied.
func decodeRoomName(data json.RawMessage) (string, error) {
	var room string
	if err := json.Unmarshal(data, &room); err != nil {
		return "", fmt.Errorf("%w: room name must be a string", ws.ErrInvalidPayload)
	}
	room = strings.TrimSpace(room)
	if room == "" || len(room) > maxRoomNameLen {
		return "", fmt.Errorf("%w: bad room name", ws.ErrInvalidPayload)
	}
	return room, nil
}

// originChecker builds the upgrade origin check from the configured
// allowlist; a "*" entry allows every origin.
func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
			continue
		}
		set[strings.ToLower(origin)] = struct{}{}
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return false
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
