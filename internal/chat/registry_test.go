package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistryTracksSingleRoomPerConnection(t *testing.T) {
	reg := NewRegistry()
	conn := uuid.New()

	if _, ok := reg.Room(conn); ok {
		t.Error("unknown connection must read as having no room")
	}

	reg.SetRoom(conn, "general")
	if room, ok := reg.Room(conn); !ok || room != "general" {
		t.Errorf("expected general, got %q (%v)", room, ok)
	}

	reg.SetRoom(conn, "other")
	if room, _ := reg.Room(conn); room != "other" {
		t.Errorf("SetRoom must replace the pointer, got %q", room)
	}

	reg.ClearRoom(conn)
	if _, ok := reg.Room(conn); ok {
		t.Error("cleared connection must have no room")
	}
}

func TestRegistryClearUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry()
	reg.ClearRoom(uuid.New())
}

func TestRegistryIsolatesConnections(t *testing.T) {
	reg := NewRegistry()
	a, b := uuid.New(), uuid.New()

	reg.SetRoom(a, "general")
	if _, ok := reg.Room(b); ok {
		t.Error("connection b must be unaffected by a's pointer")
	}
}
