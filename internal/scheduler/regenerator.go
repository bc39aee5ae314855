package scheduler

import (
	"context"
	"time"

	"github.com/portico-home/portico/internal/generator"
	"github.com/portico-home/portico/internal/logger"
)

// Regenerator runs generation passes periodically and on manual trigger.
// Passes are serialized: a tick or trigger arriving while a pass runs waits
// for the select loop to come back around.
type Regenerator struct {
	gen           *generator.Generator
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRegenerator creates a regenerator.
func NewRegenerator(
	gen *generator.Generator,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Regenerator {
	return &Regenerator{
		gen:           gen,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one pass immediately, then keeps regenerating on the interval.
// An initial failure is logged, not fatal: sources may still be coming up
// and the next tick retries from scratch.
func (r *Regenerator) Start(ctx context.Context) error {
	if err := r.gen.Generate(ctx); err != nil {
		r.logger.Warn("initial generation failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.gen.Generate(ctx); err != nil {
					r.logger.Error("generation failed",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual generation triggered")
				if err := r.gen.Generate(ctx); err != nil {
					r.logger.Error("generation failed",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the regenerator.
func (r *Regenerator) Stop() {
	close(r.stopCh)
}
