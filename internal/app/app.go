package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/portico-home/portico/internal/config"
	"github.com/portico-home/portico/internal/generator"
	"github.com/portico-home/portico/internal/httpserver"
	"github.com/portico-home/portico/internal/httpserver/deps"
	"github.com/portico-home/portico/internal/index"
	"github.com/portico-home/portico/internal/logger"
	"github.com/portico-home/portico/internal/redis"
	"github.com/portico-home/portico/internal/scheduler"
	"github.com/portico-home/portico/internal/sources/docker"
	"github.com/portico-home/portico/internal/sources/overrides"
	"github.com/portico-home/portico/internal/sources/traefik"
	redisstore "github.com/portico-home/portico/internal/store/redis"
	"github.com/portico-home/portico/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	gen         *generator.Generator
	regenerator *scheduler.Regenerator
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is an optional snapshot cache; an empty addr disables it.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)
	} else {
		loggerClient.Info("Redis not configured, snapshot cache disabled")
	}

	// Initialize source clients. A bad Docker endpoint URL is a configuration
	// error, not a runtime degradation, so it fails hard here.
	dockerClient, err := docker.NewClient(cfg.DockerHost, cfg.HTTPTimeout, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to initialize docker client: %v", err)
		os.Exit(1)
	}
	collector := docker.NewCollector(cfg.ControlEntity, loggerClient)
	router := traefik.NewResolver(traefik.NewClient(cfg.TraefikAPIURL, cfg.HTTPTimeout, loggerClient), loggerClient)
	loader := overrides.NewLoader(cfg.OverridesFile, loggerClient)

	snapshot := index.NewSnapshot()

	page := generator.PageConfig{
		Title:        cfg.PageTitle,
		ShowFooter:   cfg.ShowFooter,
		OpenInNewTab: cfg.OpenInNewTab,
		SortBy:       cfg.SortBy,
	}

	gen := generator.New(generator.Options{
		Entities:     dockerClient,
		Collector:    collector,
		Router:       router,
		Overrides:    loader,
		Snapshot:     snapshot,
		Store:        store,
		OutputDir:    cfg.OutputDir,
		TemplateFile: cfg.TemplateFile,
		Page:         page,
		Logger:       loggerClient,
	})

	// Prime the snapshot from the cache so /api/apps and readiness don't wait
	// for the first generation pass after a restart.
	if store != nil {
		gen.Restore(context.Background())
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	regenerator := scheduler.NewRegenerator(gen, loggerClient, cfg.RefreshInterval, reloadTrigger)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RedisClient:   redisClient,
		Snapshot:      snapshot,
		Page:          page,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		gen:         gen,
		regenerator: regenerator,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Portico v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Portico %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the regenerator (runs the first pass and the periodic refresh)
	if err := a.regenerator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start regenerator: %w", err)
	}
	a.logger.Info("regenerator started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.regenerator.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Portico stopped cleanly")
	return nil
}
