package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/portico-home/portico/internal/domain"
	"github.com/portico-home/portico/internal/index"
	"github.com/portico-home/portico/internal/logger"
	"github.com/portico-home/portico/internal/sources/docker"
	"github.com/portico-home/portico/internal/sources/overrides"
	"github.com/portico-home/portico/internal/sources/traefik"
	redisstore "github.com/portico-home/portico/internal/store/redis"
)

// EntityLister provides the raw runtime entities for one pass.
type EntityLister interface {
	ListEntities(ctx context.Context) ([]docker.Entity, error)
}

// Generator runs one full reconciliation pass: gather all sources, merge,
// then publish. Passes are independent; the generator keeps no state of its
// own between runs beyond the shared snapshot.
type Generator struct {
	entities  EntityLister
	collector *docker.Collector
	router    *traefik.Resolver
	overrides *overrides.Loader

	snapshot *index.Snapshot
	store    *redisstore.Store // nil when the snapshot cache is disabled

	outputDir    string
	templateFile string
	page         PageConfig

	log logger.Logger
	now func() time.Time
}

// Options wires a Generator.
type Options struct {
	Entities     EntityLister
	Collector    *docker.Collector
	Router       *traefik.Resolver
	Overrides    *overrides.Loader
	Snapshot     *index.Snapshot
	Store        *redisstore.Store
	OutputDir    string // empty disables file publication
	TemplateFile string
	Page         PageConfig
	Logger       logger.Logger
	TimeNow      func() time.Time // for testing, defaults to time.Now
}

// New creates a Generator.
func New(opts Options) *Generator {
	now := opts.TimeNow
	if now == nil {
		now = time.Now
	}
	return &Generator{
		entities:     opts.Entities,
		collector:    opts.Collector,
		router:       opts.Router,
		overrides:    opts.Overrides,
		snapshot:     opts.Snapshot,
		store:        opts.Store,
		outputDir:    opts.OutputDir,
		templateFile: opts.TemplateFile,
		page:         opts.Page,
		log:          opts.Logger,
		now:          now,
	}
}

// Generate runs one pass. Source failures degrade that source to empty data;
// only publication failures are returned as errors.
func (g *Generator) Generate(ctx context.Context) error {
	start := g.now()

	entities, err := g.entities.ListEntities(ctx)
	if err != nil {
		g.log.Warn("runtime listing unavailable, continuing without labels",
			logger.Error(err))
		entities = nil
	}

	urlMap, metadata := g.collector.Collect(entities)
	external := g.collector.ExternalApps(entities)
	urlMap.Merge(g.router.Resolve(ctx))

	overrideRecords, err := g.overrides.Load()
	if err != nil {
		g.log.Warn("override file unusable, continuing without overrides",
			logger.Error(err))
		overrideRecords = map[string]domain.OverrideRecord{}
	}

	entries := domain.Merge(domain.MergeInput{
		URLs:      urlMap,
		Metadata:  metadata,
		External:  external,
		Overrides: overrideRecords,
	}, g.log)

	generatedAt := g.now()
	g.snapshot.Update(entries, generatedAt)

	g.log.Info("generation pass complete",
		logger.Int("entries", len(entries)),
		logger.Duration("took", generatedAt.Sub(start)))

	if g.store != nil {
		if err := g.store.SaveSnapshot(ctx, entries, generatedAt); err != nil {
			g.log.Warn("failed to save snapshot to redis", logger.Error(err))
		}
	}

	if g.outputDir == "" {
		return nil
	}
	return g.publish(entries, generatedAt)
}

// publish writes apps.json and index.html atomically into the output dir.
func (g *Generator) publish(entries []domain.AppEntry, at time.Time) error {
	doc := Document{GeneratedAt: at.UTC(), Config: g.page, Apps: entries}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal apps document: %w", err)
	}

	appsPath := filepath.Join(g.outputDir, "apps.json")
	if err := writeFileAtomic(appsPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to publish apps.json: %w", err)
	}

	pagePath := filepath.Join(g.outputDir, "index.html")
	if err := writeFileAtomic(pagePath, loadPage(g.templateFile), 0o644); err != nil {
		return fmt.Errorf("failed to publish index.html: %w", err)
	}

	g.log.Debug("published output files",
		logger.String("dir", g.outputDir))
	return nil
}

// Restore primes the snapshot from the Redis cache so the HTTP surface can
// serve entries before the first pass completes. Best effort.
func (g *Generator) Restore(ctx context.Context) {
	if g.store == nil {
		return
	}
	entries, at, err := g.store.LoadSnapshot(ctx)
	if err != nil {
		g.log.Warn("failed to restore snapshot from redis", logger.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}
	g.snapshot.Update(entries, at)
	g.log.Info("restored snapshot from redis",
		logger.Int("entries", len(entries)))
}
