package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/snorkel-forecast/internal/report"
	"github.com/i474232898/snorkel-forecast/internal/weather"
)

// ReportBuilder is satisfied by *weather.Service.
type ReportBuilder interface {
	BuildReport(ctx context.Context, loc weather.Location, opts weather.ReportOptions) (weather.Report, error)
}

// Scheduler periodically rebuilds the report for the configured site and logs it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	builder   ReportBuilder
	site      weather.Location
	opts      weather.ReportOptions
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(builder ReportBuilder, site weather.Location, opts weather.ReportOptions, interval time.Duration, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		builder:   builder,
		site:      site,
		opts:      opts,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

// Start schedules the watch job and starts the underlying scheduler.
// A non-positive interval schedules nothing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: watch interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: started", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rep, err := s.builder.BuildReport(ctx, s.site, s.opts)
	if err != nil {
		s.logger.Error("scheduler: report failed", "site", s.site.Name, "error", err)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, rep); err != nil {
		s.logger.Error("scheduler: render failed", "error", err)
		return
	}

	suitable := 0
	for _, d := range rep.Days {
		if d.Suitable() {
			suitable++
		}
	}
	s.logger.Info("scheduler: report ready",
		"report_id", rep.ID.String(),
		"days", len(rep.Days),
		"suitable", suitable,
		"report", buf.String(),
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
