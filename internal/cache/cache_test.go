package cache

import (
	"testing"

	"studyrec/internal/record"
)

func TestRecordsRoundTrip(t *testing.T) {
	c := New(t.TempDir())

	recs := []record.Record{
		{ID: "r1", Date: "2026/08/20", StartTime: "21:00", EndTime: "22:00", Duration: 60, Category: "Math", Content: "a", UserName: "alice"},
		{ID: "r2", Date: "2026/08/21", StartTime: "09:00", EndTime: "09:45", Duration: 45, Category: "English", Content: "b", UserName: "alice"},
	}
	if err := c.SaveRecords("alice", recs); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	got, err := c.LoadRecords("alice")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].Category != "English" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadRecordsAbsent(t *testing.T) {
	c := New(t.TempDir())

	got, err := c.LoadRecords("nobody")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent user, got %+v", got)
	}
}

func TestUsersArePartitioned(t *testing.T) {
	c := New(t.TempDir())

	if err := c.SaveRecords("alice", []record.Record{{ID: "a", Category: "Math", Content: "x"}}); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}
	if err := c.SaveRecords("bob", []record.Record{{ID: "b", Category: "English", Content: "y"}}); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	alice, err := c.LoadRecords("alice")
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(alice) != 1 || alice[0].ID != "a" {
		t.Errorf("alice partition = %+v", alice)
	}
}

func TestAwkwardUserNames(t *testing.T) {
	c := New(t.TempDir())

	// Names go straight into the key, so separators and non-ASCII must
	// round trip.
	names := []string{"alice smith", "a/b\\c", "日本語", "dots.and..dots"}
	for _, name := range names {
		if err := c.SaveRecords(name, []record.Record{{ID: name, Category: "c", Content: "x"}}); err != nil {
			t.Fatalf("SaveRecords(%q) failed: %v", name, err)
		}
		got, err := c.LoadRecords(name)
		if err != nil {
			t.Fatalf("LoadRecords(%q) failed: %v", name, err)
		}
		if len(got) != 1 || got[0].ID != name {
			t.Errorf("partition for %q = %+v", name, got)
		}
	}
}

func TestMasterDataRoundTrip(t *testing.T) {
	c := New(t.TempDir())

	absent, err := c.LoadMasterData()
	if err != nil {
		t.Fatalf("LoadMasterData failed: %v", err)
	}
	if absent != nil {
		t.Errorf("expected nil before save, got %+v", absent)
	}

	m := record.MasterData{
		Categories:     []string{"Math", "English"},
		FinishMessages: []string{"[A30]Nice!"},
	}
	if err := c.SaveMasterData(m); err != nil {
		t.Fatalf("SaveMasterData failed: %v", err)
	}

	got, err := c.LoadMasterData()
	if err != nil {
		t.Fatalf("LoadMasterData failed: %v", err)
	}
	if got == nil || len(got.Categories) != 2 || got.FinishMessages[0] != "[A30]Nice!" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
