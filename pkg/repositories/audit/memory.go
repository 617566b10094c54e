package audit

import (
	"context"
	"sync"
)

// MemorySink keeps the most recent entries in a bounded ring. Used when no
// Elasticsearch URL is configured, and by tests to inspect what was recorded.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
}

// NewMemorySink creates a sink holding at most limit entries
func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 1000
	}
	return &MemorySink{limit: limit}
}

// Record implements Sink
func (s *MemorySink) Record(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
	return nil
}

// Entries returns a copy of the recorded entries, oldest first
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Close implements Sink
func (s *MemorySink) Close() error {
	return nil
}
