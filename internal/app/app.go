package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lawrencium-103/finstrat/config"
	"github.com/Lawrencium-103/finstrat/internal/api"
	"github.com/Lawrencium-103/finstrat/internal/market"
	"github.com/Lawrencium-103/finstrat/internal/refresh"
	"github.com/Lawrencium-103/finstrat/internal/scheduler"
	"github.com/Lawrencium-103/finstrat/internal/service"
	"github.com/Lawrencium-103/finstrat/internal/snapshot"
	"github.com/Lawrencium-103/finstrat/internal/storage"
)

// restoreSnapshot is an indirection for unit testing; defaults to
// snapshot.Restore.
var restoreSnapshot = snapshot.Restore

// App bundles the wired application: the HTTP router plus the pieces the
// run modes need direct access to (refresh job, scheduler, open store).
type App struct {
	Router    *gin.Engine
	Refresher *refresh.Service
	Scheduler *scheduler.Scheduler
	DB        *sql.DB
}

// InitializeApp sets up all application dependencies and returns the wired
// app, a cleanup function for graceful shutdown, and any error encountered
// during initialization.
//
// Responsibilities:
//   - Seeds an absent or empty local store from the durable snapshot.
//   - Opens the SQLite store via InitSQLite() and runs migrations.
//   - Initializes the repository, market client, services, and refresh job.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources.
func InitializeApp() (*App, func(), error) {
	cfg := config.AppConfig

	// Seed the local store from the durable copy when starting cold.
	if err := restoreSnapshot(cfg.Store.Path, cfg.Store.SnapshotPath); err != nil {
		return nil, nil, fmt.Errorf("failed to restore snapshot: %w", err)
	}

	// indirection for unit testing
	db, err := sqliteOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sqlite: %w", err)
	}

	repo := storage.NewStockRepository(db)
	client := market.NewClient(cfg.Market)
	refresher := refresh.NewService(repo, client, cfg.Refresh)

	marketSvc := service.NewMarketService(repo)
	picksSvc := service.NewPicksService(repo, cfg.Refresh.Tickers)

	handler := api.NewHandler(marketSvc, picksSvc, refresher)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	sched := scheduler.New(refresher, time.Duration(cfg.Refresh.IntervalMinutes)*time.Minute)

	cleanup := func() {
		sched.Stop()
		_ = db.Close()
	}

	return &App{
		Router:    router,
		Refresher: refresher,
		Scheduler: sched,
		DB:        db,
	}, cleanup, nil
}
