package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dowserhq/dowser/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func completedState(query string) *models.ResearchState {
	state := models.NewResearchState(query)
	state.RecordIteration(query, "findings", models.DefaultOptimisticVerdict())
	state.FinalSynthesis = "the answer"
	state.IsComplete = true
	return state
}

func TestSaveAndGet(t *testing.T) {
	db := openTestDB(t)
	state := completedState("what is X?")

	if err := db.SaveResult(state, 1000, 500); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	entry, ok, err := db.Get(state.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("saved session not found")
	}
	if entry.Query != "what is X?" || entry.Synthesis != "the answer" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", entry.Iterations)
	}
	if entry.InputTokens != 1000 || entry.OutputTokens != 500 {
		t.Errorf("tokens = (%d, %d), want (1000, 500)", entry.InputTokens, entry.OutputTokens)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get("no-such-id")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get should report not-found for unknown id")
	}
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)

	older := completedState("older query")
	older.StartedAt = time.Now().Add(-time.Hour)
	newer := completedState("newer query")

	if err := db.SaveResult(older, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveResult(newer, 0, 0); err != nil {
		t.Fatal(err)
	}

	entries, err := db.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Query != "newer query" {
		t.Errorf("first entry = %q, want newest first", entries[0].Query)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := openTestDB(t)

	old := completedState("ancient")
	old.StartedAt = time.Now().Add(-48 * time.Hour)
	fresh := completedState("fresh")

	if err := db.SaveResult(old, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveResult(fresh, 0, 0); err != nil {
		t.Fatal(err)
	}

	n, err := db.PurgeOlderThan(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d rows, want 1", n)
	}

	if _, ok, _ := db.Get(fresh.ID); !ok {
		t.Error("fresh session should survive the purge")
	}
}
