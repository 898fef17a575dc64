package storage

import (
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetPastes(t *testing.T) {
	db := openTestDB(t)

	p := &Paste{
		JobID:      1,
		Speed:      "fast",
		CharCount:  1000,
		TypedCount: 250,
		ChunkCount: 5,
		DurationMs: 2600,
		Outcome:    "cancelled",
	}
	if err := db.SavePaste(p); err != nil {
		t.Fatalf("SavePaste failed: %v", err)
	}
	if p.ID == 0 {
		t.Error("SavePaste did not set the row ID")
	}

	got, err := db.GetPastes(10, 0)
	if err != nil {
		t.Fatalf("GetPastes failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d pastes, want 1", len(got))
	}
	if got[0].JobID != 1 || got[0].TypedCount != 250 || got[0].Outcome != "cancelled" {
		t.Errorf("round-tripped paste does not match: %+v", got[0])
	}
}

func TestOverallStats(t *testing.T) {
	db := openTestDB(t)

	records := []Paste{
		{JobID: 1, Speed: "normal", CharCount: 100, TypedCount: 100, ChunkCount: 1, DurationMs: 2500, Outcome: "completed"},
		{JobID: 2, Speed: "normal", CharCount: 300, TypedCount: 150, ChunkCount: 2, DurationMs: 3800, Outcome: "cancelled"},
		{JobID: 3, Speed: "fast", CharCount: 50, TypedCount: 10, ChunkCount: 1, DurationMs: 120, Outcome: "failed"},
	}
	for i := range records {
		if err := db.SavePaste(&records[i]); err != nil {
			t.Fatalf("SavePaste failed: %v", err)
		}
	}

	stats, err := db.GetOverallStats(7)
	if err != nil {
		t.Fatalf("GetOverallStats failed: %v", err)
	}
	if stats.TotalJobs != 3 {
		t.Errorf("TotalJobs = %d, want 3", stats.TotalJobs)
	}
	if stats.TotalTyped != 260 {
		t.Errorf("TotalTyped = %d, want 260", stats.TotalTyped)
	}
	if stats.CompletedCount != 1 || stats.CancelledCount != 1 || stats.FailedCount != 1 {
		t.Errorf("outcome counts = %d/%d/%d, want 1/1/1",
			stats.CompletedCount, stats.CancelledCount, stats.FailedCount)
	}

	count, err := db.GetPasteCount()
	if err != nil || count != 3 {
		t.Errorf("GetPasteCount = %d, %v; want 3", count, err)
	}
}
