package session

import (
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), SnapshotFile))
}

func TestSaveAndLoad(t *testing.T) {
	store := tempStore(t)

	pausedAt := time.Date(2026, time.August, 20, 22, 15, 0, 0, time.Local)
	snap := Snapshot{
		IsStudying:          true,
		IsPaused:            true,
		StartTime:           time.Date(2026, time.August, 20, 21, 0, 0, 0, time.Local),
		AccumulatedPausedMs: 90000,
		LastPauseTime:       &pausedAt,
		Category:            "Math",
		Content:             "Linear algebra",
		Location:            "library",
	}
	if err := store.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil for saved snapshot")
	}
	if !got.IsStudying || !got.IsPaused {
		t.Errorf("state flags lost: %+v", got)
	}
	if !got.StartTime.Equal(snap.StartTime) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, snap.StartTime)
	}
	if got.AccumulatedPausedMs != 90000 {
		t.Errorf("AccumulatedPausedMs = %d, want 90000", got.AccumulatedPausedMs)
	}
	if got.LastPauseTime == nil || !got.LastPauseTime.Equal(pausedAt) {
		t.Errorf("LastPauseTime = %v, want %v", got.LastPauseTime, pausedAt)
	}
	if got.Category != "Math" || got.Content != "Linear algebra" || got.Location != "library" {
		t.Errorf("session fields lost: %+v", got)
	}
}

func TestLoadAbsentReturnsNil(t *testing.T) {
	store := tempStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent snapshot, got %+v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := tempStore(t)

	first := Snapshot{IsStudying: true, Category: "Math", Content: "a"}
	second := Snapshot{IsStudying: true, IsPaused: true, Category: "English", Content: "b"}

	if err := store.Save(first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Category != "English" || !got.IsPaused {
		t.Errorf("expected second snapshot, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	store := tempStore(t)

	if err := store.Save(Snapshot{IsStudying: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after Clear, got %+v", got)
	}

	// Clearing again is a no-op.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
