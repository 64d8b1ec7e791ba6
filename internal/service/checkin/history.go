package checkin

import (
	"sync"
	"time"
)

// ScanRecord is one terminal verification outcome kept for the operator's
// local scan log. Records live for the process lifetime only and are never
// persisted.
type ScanRecord struct {
	Query       string    `json:"query"`
	Success     bool      `json:"success"`
	StudentName string    `json:"student_name,omitempty"`
	EventName   string    `json:"event_name,omitempty"`
	At          time.Time `json:"at"`
}

// History is a bounded, most-recent-first log of scan outcomes. It is the
// only shared mutable state in the check-in workflow.
type History struct {
	mu      sync.Mutex
	max     int
	entries []ScanRecord
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = 20
	}
	return &History{max: max}
}

// Add prepends a record, dropping the oldest entry once the log is full.
func (h *History) Add(rec ScanRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]ScanRecord{rec}, h.entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Snapshot returns a copy of the log, most recent first.
func (h *History) Snapshot() []ScanRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]ScanRecord, len(h.entries))
	copy(out, h.entries)
	return out
}

// Tally returns the number of authorized and rejected scans in the log.
// An already-used ticket counts as rejected.
func (h *History) Tally() (authorized, rejected int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.Success {
			authorized++
		} else {
			rejected++
		}
	}
	return authorized, rejected
}
