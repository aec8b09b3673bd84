package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	first := Session{GameID: "smolgame", Platform: "desktop", Seed: 42, Ticks: 300, Moves: 40, Bumps: 3, FinalX: 12, FinalY: 9}
	if _, err := store.SaveSession(first); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	second := Session{GameID: "smolgame", Platform: "ssh", Seed: 7, Ticks: 20, Moves: 1}
	if _, err := store.SaveSession(second); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	// Different game
	if _, err := store.SaveSession(Session{GameID: "smolgame_mini", Seed: 1}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	sessions, err := store.RecentSessions("smolgame", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	// Newest first
	if sessions[0].Platform != "ssh" || sessions[0].Seed != 7 {
		t.Errorf("Expected the ssh session first, got %+v", sessions[0])
	}
	got := sessions[1]
	if got.Ticks != 300 || got.Moves != 40 || got.Bumps != 3 || got.FinalX != 12 || got.FinalY != 9 {
		t.Errorf("Session fields not round-tripped: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled by the database")
	}
}

func TestStoreRecentSessionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveSession(Session{GameID: "smolgame", Seed: int64(i)}); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	sessions, err := store.RecentSessions("smolgame", 5)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 5 {
		t.Errorf("Expected 5 sessions, got %d", len(sessions))
	}
	if sessions[0].Seed != 19 {
		t.Errorf("Expected the newest session first, got seed %d", sessions[0].Seed)
	}

	// Non-positive limit falls back to 10
	sessions, err = store.RecentSessions("smolgame", 0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 10 {
		t.Errorf("Expected 10 sessions, got %d", len(sessions))
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)

	// No sessions yet
	totals, err := store.Totals("smolgame")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if totals != (Totals{}) {
		t.Errorf("Expected zero totals, got %+v", totals)
	}

	store.SaveSession(Session{GameID: "smolgame", Ticks: 100, Moves: 10, Bumps: 2})
	store.SaveSession(Session{GameID: "smolgame", Ticks: 50, Moves: 5, Bumps: 1})
	store.SaveSession(Session{GameID: "smolgame_mini", Ticks: 999, Moves: 99, Bumps: 9})

	totals, err = store.Totals("smolgame")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{Sessions: 2, Ticks: 150, Moves: 15, Bumps: 3}
	if totals != want {
		t.Errorf("Totals = %+v, expected %+v", totals, want)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(Session{GameID: "smolgame"})
	store.SaveSession(Session{GameID: "smolgame_mini"})

	if err := store.ClearSessions("smolgame"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	sessions, _ := store.RecentSessions("smolgame", 10)
	if len(sessions) != 0 {
		t.Errorf("Expected 0 sessions after clear, got %d", len(sessions))
	}
	sessions, _ = store.RecentSessions("smolgame_mini", 10)
	if len(sessions) != 1 {
		t.Errorf("Other games should be untouched, got %d sessions", len(sessions))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.smolgame/history.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".smolgame", "history.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
