package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/i474232898/snorkel-forecast/internal/api/http"
	"github.com/i474232898/snorkel-forecast/internal/config"
	"github.com/i474232898/snorkel-forecast/internal/logging"
	"github.com/i474232898/snorkel-forecast/internal/observability"
	"github.com/i474232898/snorkel-forecast/internal/report"
	"github.com/i474232898/snorkel-forecast/internal/scheduler"
	"github.com/i474232898/snorkel-forecast/internal/weather"
	"github.com/i474232898/snorkel-forecast/internal/weather/providers"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of printing one report")
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg, "snorkel-forecast")

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	service, err := newService(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to set up forecast service", "error", err)
		os.Exit(1)
	}

	if *serve {
		if err := runServer(cfg, service, registry, logger); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	rep, err := service.BuildReport(ctx, cfg.Site, cfg.ReportOptions())
	if err != nil {
		logger.Error("failed to build report", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(rep)
	} else {
		err = report.Render(os.Stdout, rep)
	}
	if err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}

func newService(cfg *config.AppConfig, logger *slog.Logger, metrics *observability.Metrics) (*weather.Service, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	normalizer, err := weather.NewNormalizer(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	atmospheric, err := providers.NewAtmospheric(cfg.AtmosphericProvider, httpClient, cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	opts := []weather.Option{
		weather.WithNormalizer(normalizer),
		weather.WithLogger(logger),
		weather.WithMetrics(metrics),
	}

	marine, err := providers.NewMarine(cfg.MarineProvider, httpClient, cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	if marine != nil {
		opts = append(opts, weather.WithMarine(marine))
	}

	if cfg.BathingSiteID != "" {
		opts = append(opts, weather.WithBathing(providers.NewBadplatsenProvider(httpClient, cfg.UserAgent, cfg.BathingSiteID)))
	}

	return weather.NewService(atmospheric, opts...)
}

func runServer(cfg *config.AppConfig, service *weather.Service, registry *prometheus.Registry, logger *slog.Logger) error {
	sched := scheduler.New(service, cfg.Site, cfg.ReportOptions(), cfg.WatchInterval, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.Defaults{
		Site:    cfg.Site,
		Options: cfg.ReportOptions(),
	}, registry)

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
