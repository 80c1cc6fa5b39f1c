package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/console"
	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/roster"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/journal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	os.Exit(run())
}

func run() int {
	var wgr sync.WaitGroup

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env, os.Stderr)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dispatcher := events.NewInMemoryDispatcher()

	var pinger server.DBPinger
	if cfg.JournalEnabled() {
		dtb, err := repository.NewDatabase(ctx,
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to connect to journal DB", sl.Err(err))
			return 1
		}
		defer dtb.Close()

		pinger = dtb
		journalRepo := repository.NewJournalRepository(dtb, appMetrics)
		journal.NewJournal(logger, journalRepo, appMetrics, cfg.JournalTimeout).Subscribe(dispatcher)
		logger.InfoContext(ctx, "Change journal enabled", slog.String("host", cfg.Postgres.Host))
	}

	company := roster.NewCompany(
		roster.WithLogger(logger),
		roster.WithMetrics(appMetrics),
		roster.WithDispatcher(dispatcher),
	)

	if cfg.MonitoringPort > 0 {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			server.StartMonitoringServer(ctx, logger, reg, pinger, company, cfg.MonitoringPort)
		}()
	}

	code := 0
	if err := console.New(company, os.Stdin, os.Stdout, logger, appMetrics).Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Console failed", sl.Err(err))
		code = 1
	}

	stop()
	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")

	return code
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{Key: "", Value: slog.Value{}}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(out, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
