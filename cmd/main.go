package main

//
//  @title           finstrat API
//  @version         1.0
//  @description     Stock data refresh & strategy picks service.
//  @termsOfService  https://github.com/Lawrencium-103/finstrat
//  @contact.name    API Support
//  @contact.url     https://github.com/Lawrencium-103/finstrat
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        market
//  @tag.description Quotes, candles and indicator snapshots
//
//  @tag.name        picks
//  @tag.description Strategy picks and pick history
//
//  @tag.name        refresh
//  @tag.description Manual data refresh trigger
//
//  @tag.name        status
//  @tag.description Store freshness
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lawrencium-103/finstrat/config"
	_ "github.com/Lawrencium-103/finstrat/docs" // swagger docs
	"github.com/Lawrencium-103/finstrat/internal/app"
	"github.com/Lawrencium-103/finstrat/internal/logger"
	"github.com/Lawrencium-103/finstrat/internal/snapshot"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and releases resources when an
// OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the finstrat application.
//
// Modes (selected via --mode flag):
//   - serve:   Starts the REST API; the in-process scheduler refreshes the
//     local store on its interval when REFRESH_ENABLED is true.
//   - refresh: Runs one refresh against the local store, exports the durable
//     snapshot, and exits. This is the mode the scheduled CI job runs.
//
// Flags:
//   - --mode: Execution mode ("serve" or "refresh"). Default: "serve".
//   - --port: Port for serve mode. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "serve", "Mode: serve or refresh")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for serve mode")
	flag.Parse()

	switch *mode {
	case "refresh":
		logger.L().Info().Msg("running one-shot refresh")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		res, err := a.Refresher.Run(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("refresh failed")
		}

		// Only the one-shot job writes the durable copy; serve-mode
		// refreshes stay local.
		cfg := config.AppConfig
		if err := snapshot.Export(a.DB, cfg.Store.Path, cfg.Store.SnapshotPath); err != nil {
			logger.L().Fatal().Err(err).Msg("snapshot export failed")
		}
		logger.L().Info().
			Int("refreshed", res.Refreshed).
			Int64("rows", res.RowsInserted).
			Int("failed", len(res.Failed)).
			Msg("refresh completed successfully")

	case "serve":
		logger.L().Info().Msg("starting API server")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		if config.AppConfig.Refresh.Enabled {
			if err := a.Scheduler.Start(ctx); err != nil {
				logger.L().Fatal().Err(err).Msg("scheduler start error")
			}
		} else {
			logger.L().Info().Msg("scheduled refresh disabled")
		}

		server := startServer(a.Router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
