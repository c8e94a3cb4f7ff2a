// Package websocket implements the room membership and broadcast engine:
// the hub owns every join/leave/disconnect transition and fans messages out
// to the subscribers of the affected room only.
package websocket

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcristea/roomcast/internal/chat"
	"github.com/mcristea/roomcast/internal/metrics"
)

// delivery is a marshaled event bound for a set of clients. Deliveries are
// collected inside the critical section and flushed after the lock is
// released so transport never blocks room mutation.
type delivery struct {
	targets []*Client
	payload []byte
}

// Hub coordinates the connection registry, the room store and the per-room
// subscriber sets. Every membership or send operation runs as an indivisible
// critical section under one mutex; operations therefore observe consistent
// counts and history across concurrent connections.
type Hub struct {
	log      *slog.Logger
	store    *chat.RoomStore
	registry *chat.Registry

	maxFileBytes int64

	mu      sync.Mutex
	clients map[uuid.UUID]*Client
	rooms   map[string]map[uuid.UUID]*Client
}

// NewHub wires the hub to its store and registry. maxFileBytes bounds the
// declared size of an inline file payload.
func NewHub(logger *slog.Logger, store *chat.RoomStore, registry *chat.Registry, maxFileBytes int64) *Hub {
	return &Hub{
		log:          logger,
		store:        store,
		registry:     registry,
		maxFileBytes: maxFileBytes,
		clients:      make(map[uuid.UUID]*Client),
		rooms:        make(map[string]map[uuid.UUID]*Client),
	}
}

// ReadLimit is the websocket frame limit handed to each connection. It sits
// well above the encoded size of payloads the hub rejects itself, so an
// oversize send is read and answered with an error event instead of the
// transport tearing the connection down.
func (h *Hub) ReadLimit() int64 {
	return h.encodedCap()*2 + 64*1024
}

// encodedCap is the largest acceptable data-URI length for an in-limit
// file: base64 inflates the payload by 4/3, plus scheme and MIME header
// slack.
func (h *Hub) encodedCap() int64 {
	return h.maxFileBytes/3*4 + 512
}

// Register adds a freshly upgraded connection. The client starts Unjoined.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	total := len(h.clients)
	h.mu.Unlock()

	metrics.ActiveConnections.Inc()
	h.log.Info("client registered", "client", c.ID, "total", total)
}

// Join moves the connection into roomName, leaving its current room first if
// it has one. Joining the room the connection is already in is deliberately a
// full leave+rejoin so the client receives a fresh history snapshot.
func (h *Hub) Join(c *Client, roomName string) {
	var pending []delivery

	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}

	if old, ok := h.registry.Room(c.ID); ok {
		pending = append(pending, h.leaveLocked(c, old)...)
	}

	if created := h.store.GetOrCreate(roomName); created {
		metrics.RoomsCreated.Inc()
		h.log.Info("room created", "room", roomName)
	}

	if h.rooms[roomName] == nil {
		h.rooms[roomName] = make(map[uuid.UUID]*Client)
	}
	h.rooms[roomName][c.ID] = c
	h.registry.SetRoom(c.ID, roomName)
	count := h.store.IncrementMembers(roomName)

	pending = append(pending, h.countDeliveryLocked(roomName, count))
	pending = append(pending, h.historyDeliveryLocked(c, roomName))
	h.mu.Unlock()

	h.flush(pending)
	h.log.Info("client joined", "client", c.ID, "room", roomName, "members", count)
}

// Disconnect tears the connection down, performing leave semantics for its
// current room. It is idempotent: a duplicate disconnect signal finds the
// client already gone and does nothing.
func (h *Hub) Disconnect(c *Client) {
	var pending []delivery

	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}

	if room, ok := h.registry.Room(c.ID); ok {
		pending = append(pending, h.leaveLocked(c, room)...)
	}
	delete(h.clients, c.ID)
	total := len(h.clients)
	h.mu.Unlock()

	c.markClosed()
	h.flush(pending)

	metrics.ActiveConnections.Dec()
	h.log.Info("client disconnected", "client", c.ID, "total", total)
}

// SendMessage builds a text message from the sender's asserted display name,
// appends it to the sender's current room and fans it out to every member of
// that room, the sender included. The server echo is the acknowledgment; the
// client renders from it rather than from local optimistic state.
func (h *Hub) SendMessage(c *Client, claimedRoom, user, text, displayTime string) (chat.Message, error) {
	msg := chat.NewTextMessage(user, text, displayTime)
	if err := h.broadcast(c, claimedRoom, EventReceiveMessage, msg); err != nil {
		return chat.Message{}, err
	}
	metrics.MessagesTotal.WithLabelValues(chat.TypeText).Inc()
	return msg, nil
}

// SendFile behaves like SendMessage for file messages, after validating the
// inline payload against the configured limit. Oversize payloads are
// rejected outright, never truncated, and nothing is appended or broadcast.
func (h *Hub) SendFile(c *Client, claimedRoom, user, text, displayTime string, fd *chat.FileData) (chat.Message, error) {
	if fd == nil {
		return chat.Message{}, fmt.Errorf("%w: missing fileData", ErrInvalidPayload)
	}
	if fd.Size > h.maxFileBytes || int64(len(fd.URL)) > h.encodedCap() {
		return chat.Message{}, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, fd.Size, h.maxFileBytes)
	}

	msg := chat.NewFileMessage(user, text, displayTime, fd)
	if err := h.broadcast(c, claimedRoom, EventReceiveFile, msg); err != nil {
		return chat.Message{}, err
	}
	metrics.MessagesTotal.WithLabelValues(chat.TypeFile).Inc()
	return msg, nil
}

// History redelivers the current room's snapshot privately to the requester.
func (h *Hub) History(c *Client, claimedRoom string) error {
	var pending []delivery

	h.mu.Lock()
	room, err := h.currentRoomLocked(c, claimedRoom)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	pending = append(pending, h.historyDeliveryLocked(c, room))
	h.mu.Unlock()

	h.flush(pending)
	return nil
}

// RenameUser announces a display-name change to the sender's current room.
// Names ride on each message, so the hub keeps no username state itself.
func (h *Hub) RenameUser(c *Client, claimedRoom, oldName, newName string) error {
	var pending []delivery

	h.mu.Lock()
	room, err := h.currentRoomLocked(c, claimedRoom)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	payload, merr := marshalEvent(EventUsernameUpdated, RenamePayload{OldName: oldName, NewName: newName})
	if merr != nil {
		h.mu.Unlock()
		return merr
	}
	pending = append(pending, delivery{targets: h.subscribersLocked(room), payload: payload})
	h.mu.Unlock()

	h.flush(pending)
	return nil
}

// Shutdown disconnects every client. Used on process teardown.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		h.Disconnect(c)
	}
	h.log.Info("hub shut down", "clients", len(clients))
}

func (h *Hub) broadcast(c *Client, claimedRoom, event string, msg chat.Message) error {
	var pending []delivery

	h.mu.Lock()
	room, err := h.currentRoomLocked(c, claimedRoom)
	if err != nil {
		h.mu.Unlock()
		return err
	}

	if !h.store.Append(room, msg) {
		// Invariant violation: the registry pointed at a room the store has
		// never seen. Drop the message rather than corrupt other state.
		h.mu.Unlock()
		h.log.Warn("append targeted missing room", "room", room, "client", c.ID)
		return nil
	}

	payload, merr := marshalEvent(event, msg)
	if merr != nil {
		h.mu.Unlock()
		return merr
	}
	pending = append(pending, delivery{targets: h.subscribersLocked(room), payload: payload})
	h.mu.Unlock()

	h.flush(pending)
	return nil
}

// currentRoomLocked resolves the sender's room from the registry and checks
// any room name the client asserted on the wire against it.
func (h *Hub) currentRoomLocked(c *Client, claimedRoom string) (string, error) {
	room, ok := h.registry.Room(c.ID)
	if !ok {
		return "", ErrNotInRoom
	}
	if claimedRoom != "" && claimedRoom != room {
		return "", fmt.Errorf("%w: joined %q, addressed %q", ErrNotInRoom, room, claimedRoom)
	}
	return room, nil
}

// leaveLocked removes the client from roomName and returns the count update
// for the remaining members.
func (h *Hub) leaveLocked(c *Client, roomName string) []delivery {
	if subs, ok := h.rooms[roomName]; ok {
		delete(subs, c.ID)
	}
	h.registry.ClearRoom(c.ID)
	count := h.store.DecrementMembers(roomName)
	return []delivery{h.countDeliveryLocked(roomName, count)}
}

func (h *Hub) countDeliveryLocked(roomName string, count int) delivery {
	payload, err := marshalEvent(EventUpdateUserCount, count)
	if err != nil {
		h.log.Warn("marshaling count update failed", "room", roomName, "err", err)
		return delivery{}
	}
	return delivery{targets: h.subscribersLocked(roomName), payload: payload}
}

func (h *Hub) historyDeliveryLocked(c *Client, roomName string) delivery {
	payload, err := marshalEvent(EventMessageHistory, h.store.History(roomName))
	if err != nil {
		h.log.Warn("marshaling history failed", "room", roomName, "client", c.ID, "err", err)
		return delivery{}
	}
	return delivery{targets: []*Client{c}, payload: payload}
}

// subscribersLocked snapshots the room's member set so delivery can happen
// outside the critical section.
func (h *Hub) subscribersLocked(roomName string) []*Client {
	subs := h.rooms[roomName]
	out := make([]*Client, 0, len(subs))
	for _, c := range subs {
		out = append(out, c)
	}
	return out
}

func (h *Hub) flush(pending []delivery) {
	for _, d := range pending {
		for _, c := range d.targets {
			if err := c.enqueue(d.payload); err != nil {
				metrics.DroppedDeliveries.Inc()
				h.log.Warn("delivery dropped", "client", c.ID, "err", err)
			}
		}
	}
}
