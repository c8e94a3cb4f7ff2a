package chat

import (
	"testing"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	store := NewRoomStore()

	if created := store.GetOrCreate("general"); !created {
		t.Error("first GetOrCreate should report creation")
	}
	if created := store.GetOrCreate("general"); created {
		t.Error("second GetOrCreate must not create again")
	}
	if got := store.Members("general"); got != 0 {
		t.Errorf("new room should have 0 members, got %d", got)
	}
	if got := store.History("general"); len(got) != 0 {
		t.Errorf("new room should have empty history, got %d", len(got))
	}
}

func TestAppendToMissingRoomIsNoOp(t *testing.T) {
	store := NewRoomStore()

	if ok := store.Append("ghost", NewTextMessage("alice", "hi", "10:00:00")); ok {
		t.Error("append to a missing room must report failure")
	}
	if stats := store.Stats(); len(stats) != 0 {
		t.Errorf("no room should have been created, got %+v", stats)
	}
}

func TestHistoryIsOrderPreserving(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("general")

	texts := []string{"one", "two", "three"}
	for _, txt := range texts {
		store.Append("general", NewTextMessage("alice", txt, "10:00:00"))
	}

	hist := store.History("general")
	if len(hist) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(hist))
	}
	for i, txt := range texts {
		if hist[i].Text != txt {
			t.Errorf("position %d: expected %q, got %q", i, txt, hist[i].Text)
		}
	}
}

func TestHistorySnapshotIsDefensive(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("general")
	store.Append("general", NewTextMessage("alice", "first", "10:00:00"))

	snapshot := store.History("general")
	store.Append("general", NewTextMessage("alice", "second", "10:00:01"))

	if len(snapshot) != 1 {
		t.Errorf("snapshot must not grow after later appends, got %d", len(snapshot))
	}
	if len(store.History("general")) != 2 {
		t.Errorf("store history should have 2 messages")
	}
}

func TestMemberCountClampsAtZero(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("general")

	if got := store.IncrementMembers("general"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := store.DecrementMembers("general"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := store.DecrementMembers("general"); got != 0 {
		t.Errorf("decrement at zero must stay 0, got %d", got)
	}
}

func TestCountsOnUnknownRoomAreZero(t *testing.T) {
	store := NewRoomStore()

	if got := store.IncrementMembers("ghost"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := store.DecrementMembers("ghost"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestStatsListsRoomsSortedByName(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("zebra")
	store.GetOrCreate("alpha")
	store.IncrementMembers("alpha")
	store.Append("zebra", NewTextMessage("bob", "hi", "09:00:00"))

	stats := store.Stats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(stats))
	}
	if stats[0].Name != "alpha" || stats[1].Name != "zebra" {
		t.Errorf("stats not sorted: %+v", stats)
	}
	if stats[0].Members != 1 {
		t.Errorf("alpha should have 1 member, got %d", stats[0].Members)
	}
	if stats[1].Messages != 1 {
		t.Errorf("zebra should have 1 message, got %d", stats[1].Messages)
	}
}

func TestRoomNamesAreCaseSensitive(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("General")
	store.GetOrCreate("general")

	if len(store.Stats()) != 2 {
		t.Error("differently cased names must be distinct rooms")
	}
}
