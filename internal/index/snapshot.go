package index

import (
	"sync"
	"time"

	"github.com/portico-home/portico/internal/domain"
)

// Snapshot holds the entry list produced by the most recent generation pass.
// The HTTP surface serves from here; generation passes replace the whole
// list atomically, so readers never observe a partial merge.
type Snapshot struct {
	mu          sync.RWMutex
	entries     []domain.AppEntry
	generatedAt time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Update replaces the held entry list.
func (s *Snapshot) Update(entries []domain.AppEntry, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.generatedAt = at
}

// Entries returns a copy of the current entry list.
func (s *Snapshot) Entries() []domain.AppEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AppEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// GeneratedAt returns the time of the last completed pass, zero before the
// first one.
func (s *Snapshot) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

// Count returns the number of entries in the current list.
func (s *Snapshot) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
