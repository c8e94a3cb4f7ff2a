package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which room each live connection currently belongs to.
// A connection is in at most one room at a time; unknown connections read
// as having no room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]string
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[uuid.UUID]string)}
}

// SetRoom points the connection at a room, replacing any previous pointer.
func (r *Registry) SetRoom(conn uuid.UUID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[conn] = room
}

// ClearRoom removes the connection's room pointer. Clearing an unknown
// connection is a no-op.
func (r *Registry) ClearRoom(conn uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, conn)
}

// Room returns the connection's current room, if any.
func (r *Registry) Room(conn uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[conn]
	return room, ok
}
