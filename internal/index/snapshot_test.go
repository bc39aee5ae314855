package index

import (
	"sync"
	"testing"
	"time"

	"github.com/portico-home/portico/internal/domain"
)

func TestSnapshotUpdateAndRead(t *testing.T) {
	s := NewSnapshot()

	if !s.GeneratedAt().IsZero() {
		t.Error("GeneratedAt() not zero before first update")
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}

	at := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	entries := []domain.AppEntry{
		{Name: "Omv", URLs: []string{"http://omv.local.dev"}, PrimaryURL: "http://omv.local.dev"},
	}
	s.Update(entries, at)

	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
	if !s.GeneratedAt().Equal(at) {
		t.Errorf("GeneratedAt() = %v, want %v", s.GeneratedAt(), at)
	}
}

func TestSnapshotEntriesReturnsACopy(t *testing.T) {
	s := NewSnapshot()
	s.Update([]domain.AppEntry{{Name: "Omv"}}, time.Now())

	got := s.Entries()
	got[0].Name = "mutated"

	if s.Entries()[0].Name != "Omv" {
		t.Error("Entries() shares its backing array with callers")
	}
}

func TestSnapshotConcurrentAccess(t *testing.T) {
	s := NewSnapshot()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Update([]domain.AppEntry{{Name: "Omv"}}, time.Now())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Entries()
				_ = s.Count()
				_ = s.GeneratedAt()
			}
		}()
	}
	wg.Wait()
}
