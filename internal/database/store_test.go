package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "journal.db"), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { Close(db, nil) })
	return NewStore(db, nil)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	if _, err := Open("", nil); err == nil {
		t.Error("Open(\"\") error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "journal.db")
	for i := range 2 {
		db, err := Open(path, nil)
		if err != nil {
			t.Fatalf("Open() attempt %d error = %v", i+1, err)
		}
		if err := NewStore(db, nil).Ping(context.Background()); err != nil {
			t.Errorf("Ping() attempt %d error = %v", i+1, err)
		}
		Close(db, nil)
	}
}

func TestStore_SaveAndCountEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	events := []*Event{
		{Channel: "#a", Kind: EventPhrase, Author: "alice", TriggerContent: "hello!", SentContent: "hello in bed!"},
		{Channel: "#a", Kind: EventMention, Author: "bob", TriggerContent: "@bot yes", SentContent: "@bob sure"},
		{Channel: "#b", Kind: EventPhrase, Author: "carol", TriggerContent: "hi", SentContent: "hi in bed"},
	}
	for _, e := range events {
		if err := store.SaveEvent(ctx, e); err != nil {
			t.Fatalf("SaveEvent() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("SaveEvent() did not set ID")
		}
	}

	tests := []struct {
		channel string
		kind    EventKind
		want    int
	}{
		{"", "", 3},
		{"#a", "", 2},
		{"#a", EventPhrase, 1},
		{"", EventPhrase, 2},
		{"#c", "", 0},
	}
	for _, tt := range tests {
		got, err := store.CountEvents(ctx, tt.channel, tt.kind)
		if err != nil {
			t.Fatalf("CountEvents(%q, %q) error = %v", tt.channel, tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("CountEvents(%q, %q) = %d, want %d", tt.channel, tt.kind, got, tt.want)
		}
	}
}

func TestStore_SaveEventValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	invalid := []*Event{
		nil,
		{Kind: EventPhrase, SentContent: "x"},
		{Channel: "#a", Kind: "other", SentContent: "x"},
		{Channel: "#a", Kind: EventPhrase},
	}
	for i, e := range invalid {
		if err := store.SaveEvent(ctx, e); err == nil {
			t.Errorf("SaveEvent(invalid #%d) error = nil, want error", i)
		}
	}
}

func TestStore_PruneAndMaintenance(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	origNow := timestampNow
	t.Cleanup(func() { timestampNow = origNow })

	timestampNow = func() time.Time { return old }
	if err := store.SaveEvent(ctx, &Event{Channel: "#a", Kind: EventPhrase, SentContent: "old"}); err != nil {
		t.Fatalf("SaveEvent() error = %v", err)
	}
	timestampNow = func() time.Time { return recent }
	if err := store.SaveEvent(ctx, &Event{Channel: "#a", Kind: EventPhrase, SentContent: "new"}); err != nil {
		t.Fatalf("SaveEvent() error = %v", err)
	}

	removed, err := store.PruneEventsBefore(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("PruneEventsBefore() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("PruneEventsBefore() removed %d, want 1", removed)
	}

	count, err := store.CountEvents(ctx, "#a", "")
	if err != nil || count != 1 {
		t.Errorf("CountEvents() = %d, %v; want 1", count, err)
	}

	if err := store.RunSQLMaintenance(ctx); err != nil {
		t.Errorf("RunSQLMaintenance() error = %v", err)
	}
}
