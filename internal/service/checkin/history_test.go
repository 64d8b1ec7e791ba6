package checkin

import (
	"fmt"
	"testing"
	"time"
)

func TestHistoryBoundedMostRecentFirst(t *testing.T) {
	h := NewHistory(20)

	for i := 0; i < 25; i++ {
		h.Add(ScanRecord{Query: fmt.Sprintf("q%d", i), Success: i%2 == 0, At: time.Now()})
	}

	got := h.Snapshot()
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	if got[0].Query != "q24" {
		t.Fatalf("newest = %q, want q24", got[0].Query)
	}
	if got[19].Query != "q5" {
		t.Fatalf("oldest kept = %q, want q5", got[19].Query)
	}
}

func TestHistoryTally(t *testing.T) {
	h := NewHistory(20)
	h.Add(ScanRecord{Success: true})
	h.Add(ScanRecord{Success: true})
	h.Add(ScanRecord{Success: false})

	authorized, rejected := h.Tally()
	if authorized != 2 || rejected != 1 {
		t.Fatalf("tally = (%d, %d), want (2, 1)", authorized, rejected)
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory(20)
	h.Add(ScanRecord{Query: "a"})

	snap := h.Snapshot()
	snap[0].Query = "mutated"

	if h.Snapshot()[0].Query != "a" {
		t.Fatal("snapshot mutation leaked into the history")
	}
}
