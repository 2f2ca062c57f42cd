package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/pactify-backend/internal/data/db"
	"github.com/yungbote/pactify-backend/internal/data/seed"
	apphttp "github.com/yungbote/pactify-backend/internal/http"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	SSEHub   *realtime.SSEHub
	Metrics  *observability.Metrics
	Server   *apphttp.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenDB connects using cfg.DB and migrates the schema.
func OpenDB(log *logger.Logger, cfg Config) (*db.Service, error) {
	svc, err := db.NewService(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	return svc, nil
}

// SeedTemplates upserts the contract template catalog.
func SeedTemplates(ctx context.Context, log *logger.Logger, conn *gorm.DB) (int, error) {
	return seed.Templates(dbctx.Context{Ctx: ctx}, wireRepos(conn, log).ContractTemplate, log)
}

func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	dbService, err := OpenDB(log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	theDB := dbService.DB()
	if _, err := SeedTemplates(ctx, log, theDB); err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("seed templates: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(cfg.MetricsScrape)
	}

	hub := realtime.NewSSEHub(log)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, hub, metrics)
	handlerset := wireHandlers(log, theDB, cfg, serviceset, hub, metrics)
	middleware := wireMiddleware(log, serviceset)
	server, err := wireServer(log, cfg, handlerset, middleware, metrics)
	if err != nil {
		clients.Close()
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		SSEHub:       hub,
		Metrics:      metrics,
		Server:       server,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled. With a redis bus configured, the
// forwarder delivers bus messages to this instance's hub for the same lifetime.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.Metrics != nil {
		a.Metrics.StartServer(gctx, a.Log, a.Cfg.MetricsAddr)
		a.Metrics.StartDBCollector(gctx, a.Log, a.DB)
		if a.Clients.Redis != nil {
			a.Metrics.StartRedisCollector(gctx, a.Log, a.Clients.Redis)
		}
	}

	if a.Clients.SSEBus != nil {
		g.Go(func() error {
			if err := a.Clients.SSEBus.StartForwarder(gctx, a.SSEHub.Broadcast); err != nil {
				return fmt.Errorf("start SSE forwarder: %w", err)
			}
			<-gctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		return a.Server.Run(gctx, a.Cfg.Addr())
	})

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
