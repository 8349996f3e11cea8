package account

import (
	"strings"
	"time"
)

// Entry is a single immutable history record.
type Entry struct {
	At          time.Time
	Description string
}

// History is the append-only transaction log of one account.
// Entries are never mutated or removed once appended.
type History struct {
	entries []Entry
}

func NewHistory() *History {
	return &History{entries: make([]Entry, 0)}
}

// Append stores the description with the current timestamp.
func (h *History) Append(description string) {
	h.entries = append(h.entries, Entry{At: now(), Description: description})
}

// Entries returns a copy of all recorded entries in insertion order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Report formats entries in insertion order as "<timestamp> - <description>".
// When filter is non-empty only entries whose description contains it
// (case-insensitive) are included. Each call recomputes the report from
// the current log, so iterating twice yields the same sequence.
func (h *History) Report(filter string) []string {
	filter = strings.ToLower(filter)
	out := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		if filter != "" && !strings.Contains(strings.ToLower(e.Description), filter) {
			continue
		}
		out = append(out, e.At.Format(timeLayout)+" - "+e.Description)
	}
	return out
}

const timeLayout = "2006-01-02 15:04:05"
