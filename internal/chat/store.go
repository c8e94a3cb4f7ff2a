// Package chat holds the room-scoped data model: messages, the room store
// and the connection registry. It has no transport knowledge; the hub owns
// the transitions that mutate it.
package chat

import (
	"sort"
	"sync"
)

type roomState struct {
	history []Message
	members int
}

// RoomStore maps room names to their ordered message history and live member
// count. Rooms are created lazily on first join and never deleted; a room
// with zero members keeps its history for the lifetime of the process.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*roomState
}

// RoomStats is the observational snapshot of one room, used by the REST surface.
type RoomStats struct {
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Messages int    `json:"messages"`
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*roomState)}
}

// GetOrCreate ensures the named room exists. It reports whether the room was
// created by this call. Idempotent.
func (s *RoomStore) GetOrCreate(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[name]; ok {
		return false
	}
	s.rooms[name] = &roomState{}
	return true
}

// History returns an order-preserving snapshot of the room's messages. Later
// appends never mutate a returned slice. An unknown room yields an empty
// history.
func (s *RoomStore) History(name string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[name]
	if !ok {
		return []Message{}
	}
	out := make([]Message, len(room.history))
	copy(out, room.history)
	return out
}

// Append adds msg to the end of the room's history. It reports false if the
// room does not exist, in which case nothing is stored.
func (s *RoomStore) Append(name string, msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[name]
	if !ok {
		return false
	}
	room.history = append(room.history, msg)
	return true
}

// IncrementMembers bumps the room's live member count and returns the new
// value. Unknown rooms report 0.
func (s *RoomStore) IncrementMembers(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[name]
	if !ok {
		return 0
	}
	room.members++
	return room.members
}

// DecrementMembers lowers the room's live member count and returns the new
// value. The count is clamped at zero so duplicate disconnect signals cannot
// drive it negative.
func (s *RoomStore) DecrementMembers(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[name]
	if !ok {
		return 0
	}
	if room.members > 0 {
		room.members--
	}
	return room.members
}

// Members returns the room's current live member count.
func (s *RoomStore) Members(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[name]
	if !ok {
		return 0
	}
	return room.members
}

// Stats lists every room sorted by name.
func (s *RoomStore) Stats() []RoomStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RoomStats, 0, len(s.rooms))
	for name, room := range s.rooms {
		out = append(out, RoomStats{
			Name:     name,
			Members:  room.members,
			Messages: len(room.history),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
