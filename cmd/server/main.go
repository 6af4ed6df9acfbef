package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/gameday-weather-service/internal/adapter/http"
	"github.com/couchcryptid/gameday-weather-service/internal/app"
	"github.com/couchcryptid/gameday-weather-service/internal/config"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
	"github.com/couchcryptid/gameday-weather-service/internal/scheduler"
)

// reportRunTimeout bounds one scheduled report, pacing included.
const reportRunTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	a := app.New(cfg, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, a.Runner, a.Runner, cfg.ScheduleCacheTTL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Build today's report now, then on every cron tick.
	sched := scheduler.New(cfg.ReportCron, cfg.ReportLocation, reportRunTimeout, func(ctx context.Context) error {
		_, err := a.Runner.RunToday(ctx)
		return err
	}, logger)
	if err := sched.Start(ctx, true); err != nil {
		logger.Error("failed to start report scheduler", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	a.Close()

	logger.Info("shutdown complete")
}
