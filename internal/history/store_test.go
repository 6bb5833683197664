package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), limit)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t, 10)
	ctx := context.Background()

	entries := []Entry{
		{VideoID: "aaaaaaaaaaa", URL: "https://youtu.be/aaaaaaaaaaa", Segments: 10, Changed: 2},
		{VideoID: "bbbbbbbbbbb", URL: "https://youtu.be/bbbbbbbbbbb", Segments: 5, Degraded: 1},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	// Newest first.
	if recent[0].VideoID != "bbbbbbbbbbb" || recent[1].VideoID != "aaaaaaaaaaa" {
		t.Errorf("unexpected order: %q, %q", recent[0].VideoID, recent[1].VideoID)
	}
	if recent[0].Segments != 5 || recent[0].Degraded != 1 {
		t.Errorf("counts not persisted: %+v", recent[0])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRecordPrunesBeyondLimit(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc", "ddddddddddd", "eeeeeeeeeee"}
	for _, id := range ids {
		if err := store.Record(ctx, Entry{VideoID: id, URL: "https://youtu.be/" + id}); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected retention limit of 3, got %d", len(recent))
	}
	if recent[0].VideoID != "eeeeeeeeeee" || recent[2].VideoID != "ccccccccccc" {
		t.Errorf("expected newest 3 kept, got %+v", recent)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t, 10)
	ctx := context.Background()

	if err := store.Record(ctx, Entry{VideoID: "aaaaaaaaaaa", URL: "u"}); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	recent, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected empty history, got %d entries", len(recent))
	}
}
