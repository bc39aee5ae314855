package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portico-home/portico/internal/domain"
)

// DefaultSnapshotTTL bounds how long a stale snapshot may be served after
// the sources became unreachable.
const DefaultSnapshotTTL = 7 * 24 * time.Hour

// Store caches the last generated entry list in Redis so a restarted
// instance can serve it before its first generation pass completes.
type Store struct {
	client *redis.Client
}

// NewStore creates a snapshot store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

type snapshotDoc struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Entries     []domain.AppEntry `json:"entries"`
}

// SaveSnapshot stores the entry list with its generation time.
func (s *Store) SaveSnapshot(ctx context.Context, entries []domain.AppEntry, at time.Time) error {
	data, err := json.Marshal(snapshotDoc{GeneratedAt: at, Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, KeySnapshot, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the cached entry list. A missing key returns an
// empty list with a zero time, not an error.
func (s *Store) LoadSnapshot(ctx context.Context) ([]domain.AppEntry, time.Time, error) {
	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return doc.Entries, doc.GeneratedAt, nil
}
