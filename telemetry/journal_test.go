package telemetry

import (
	"path/filepath"
	"testing"
)

func TestJournalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(dir)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}

	want := []JournalEntry{
		{Tick: 0, Reason: "food", Amount: -1, Balance: 49},
		{Tick: 90, Reason: "feed_reward", Amount: 8, Balance: 57},
		{Tick: 600, Reason: "passive", Amount: 1, Balance: 58},
	}
	for _, e := range want {
		if err := j.Write(e); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if j.Entries() != len(want) {
		t.Errorf("entries: got %d, want %d", j.Entries(), len(want))
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := j.Write(want[0]); err == nil {
		t.Error("write after close should fail")
	}

	got, err := ReadJournal(filepath.Join(dir, JournalFile))
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
