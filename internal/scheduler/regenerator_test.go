package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/portico-home/portico/internal/generator"
	"github.com/portico-home/portico/internal/index"
	"github.com/portico-home/portico/internal/logger"
	"github.com/portico-home/portico/internal/sources/docker"
	"github.com/portico-home/portico/internal/sources/overrides"
	"github.com/portico-home/portico/internal/sources/traefik"
)

// countingLister counts generation passes through the entity listing call,
// which every pass makes exactly once.
type countingLister struct {
	calls atomic.Int64
}

func (c *countingLister) ListEntities(context.Context) ([]docker.Entity, error) {
	c.calls.Add(1)
	return nil, nil
}

func newTestGenerator(lister generator.EntityLister) (*generator.Generator, *index.Snapshot) {
	log := logger.New("error", false)
	snapshot := index.NewSnapshot()
	gen := generator.New(generator.Options{
		Entities:  lister,
		Collector: docker.NewCollector("portico", log),
		Router:    traefik.NewResolver(traefik.NewClient("http://127.0.0.1:1", 50*time.Millisecond, log), log),
		Overrides: overrides.NewLoader("", log),
		Snapshot:  snapshot,
		Logger:    log,
	})
	return gen, snapshot
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestRegeneratorRunsInitialPass(t *testing.T) {
	lister := &countingLister{}
	gen, snapshot := newTestGenerator(lister)

	r := NewRegenerator(gen, logger.New("error", false), time.Hour, make(chan struct{}, 1))
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	if lister.calls.Load() != 1 {
		t.Errorf("passes = %d after Start, want 1", lister.calls.Load())
	}
	if snapshot.GeneratedAt().IsZero() {
		t.Error("snapshot not updated by the initial pass")
	}
}

func TestRegeneratorManualTrigger(t *testing.T) {
	lister := &countingLister{}
	gen, _ := newTestGenerator(lister)

	trigger := make(chan struct{}, 1)
	r := NewRegenerator(gen, logger.New("error", false), time.Hour, trigger)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	trigger <- struct{}{}
	waitFor(t, 2*time.Second, func() bool {
		return lister.calls.Load() >= 2
	}, "manual trigger did not run a pass")
}

func TestRegeneratorPeriodicTicks(t *testing.T) {
	lister := &countingLister{}
	gen, _ := newTestGenerator(lister)

	r := NewRegenerator(gen, logger.New("error", false), 20*time.Millisecond, make(chan struct{}, 1))
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	waitFor(t, 2*time.Second, func() bool {
		return lister.calls.Load() >= 3
	}, "ticker did not drive repeated passes")
}

func TestRegeneratorStop(t *testing.T) {
	lister := &countingLister{}
	gen, _ := newTestGenerator(lister)

	r := NewRegenerator(gen, logger.New("error", false), 10*time.Millisecond, make(chan struct{}, 1))
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	r.Stop()

	// Give the loop a moment to observe the stop, then verify no more
	// passes happen.
	time.Sleep(30 * time.Millisecond)
	after := lister.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if lister.calls.Load() != after {
		t.Errorf("passes kept running after Stop: %d -> %d", after, lister.calls.Load())
	}
}

func TestRegeneratorContextCancellation(t *testing.T) {
	lister := &countingLister{}
	gen, _ := newTestGenerator(lister)

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRegenerator(gen, logger.New("error", false), 10*time.Millisecond, make(chan struct{}, 1))
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	time.Sleep(30 * time.Millisecond)
	after := lister.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if lister.calls.Load() != after {
		t.Errorf("passes kept running after cancellation: %d -> %d", after, lister.calls.Load())
	}
}
