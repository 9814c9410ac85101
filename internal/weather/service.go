package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrFetchFailed wraps any upstream failure. A run with a failed fetch produces no report.
var ErrFetchFailed = errors.New("forecast fetch failed")

// ErrInvalidOptions is returned when ReportOptions are out of range.
var ErrInvalidOptions = errors.New("invalid report options")

var validate = validator.New()

// DefaultTimeZone is used when no normalizer is configured.
const DefaultTimeZone = "Europe/Stockholm"

// ReportOptions controls slot selection.
type ReportOptions struct {
	Hour int `validate:"gte=0,lte=23"`
	Days int `validate:"gte=1,lte=10"`
}

// Service orchestrates fetching, merging and evaluating forecasts.
type Service struct {
	atmospheric SeriesProvider
	marine      []SeriesProvider
	bathing     BathingProvider

	normalizer *Normalizer
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMarine adds secondary series merged onto the atmospheric one.
func WithMarine(providers ...SeriesProvider) Option {
	return func(s *Service) {
		s.marine = append(s.marine, providers...)
	}
}

func WithBathing(p BathingProvider) Option {
	return func(s *Service) { s.bathing = p }
}

func WithNormalizer(n *Normalizer) Option {
	return func(s *Service) { s.normalizer = n }
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a new Service around a required atmospheric provider.
func NewService(atmospheric SeriesProvider, opts ...Option) (*Service, error) {
	if atmospheric == nil {
		return nil, errors.New("atmospheric provider is required")
	}
	s := &Service{
		atmospheric: atmospheric,
		clock:       clockwork.NewRealClock(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:     noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalizer == nil {
		n, err := NewNormalizer(DefaultTimeZone)
		if err != nil {
			return nil, err
		}
		s.normalizer = n
	}
	return s, nil
}

// BuildReport fetches every configured source one after the other, merges
// the series and picks one slot per day. Any fetch failure aborts the run.
// An empty Days slice is a valid result meaning no slot matched.
func (s *Service) BuildReport(ctx context.Context, loc Location, opts ReportOptions) (Report, error) {
	if err := validate.Struct(opts); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	id := uuid.New()
	log := s.logger.With("report_id", id.String(), "site", loc.Name)

	primary, dropped, err := s.fetchSeries(ctx, log, s.atmospheric, loc)
	if err != nil {
		return Report{}, err
	}

	secondaries := make([]Series, 0, len(s.marine))
	for _, p := range s.marine {
		series, n, err := s.fetchSeries(ctx, log, p, loc)
		if err != nil {
			return Report{}, err
		}
		dropped += n
		secondaries = append(secondaries, series)
	}

	var bathing *BathingWater
	if s.bathing != nil {
		bw, err := s.bathing.FetchBathing(ctx)
		s.metrics.ObserveFetch(s.bathing.Name(), err)
		if err != nil {
			log.Error("bathing site fetch failed", "provider", s.bathing.Name(), "error", err)
			return Report{}, fmt.Errorf("%w: %s: %w", ErrFetchFailed, s.bathing.Name(), err)
		}
		bathing = &bw
	}

	merged := MergeSeries(primary, secondaries...)
	slots := SelectDailySlots(merged, opts.Hour, opts.Days)

	days := make([]DailyForecast, 0, len(slots))
	suitable := 0
	for _, rec := range slots {
		d := DailyForecast{
			Record:       rec,
			SunElevation: SunElevation(loc.Lat, loc.Lon, rec.Time.Time()),
		}
		if d.Suitable() {
			suitable++
		}
		days = append(days, d)
	}
	s.metrics.ObserveReport(len(days), suitable)

	if len(days) == 0 {
		log.Warn("no forecast slot matched", "hour", opts.Hour, "steps", len(merged))
	} else {
		log.Info("report built", "days", len(days), "suitable", suitable, "dropped", dropped)
	}

	return Report{
		ID:          id,
		GeneratedAt: s.clock.Now().UTC(),
		Location:    loc,
		TargetHour:  opts.Hour,
		Days:        days,
		Bathing:     bathing,
		Dropped:     dropped,
	}, nil
}

func (s *Service) fetchSeries(ctx context.Context, log *slog.Logger, p SeriesProvider, loc Location) (Series, int, error) {
	raw, err := p.FetchSeries(ctx, loc)
	s.metrics.ObserveFetch(p.Name(), err)
	if err != nil {
		log.Error("provider fetch failed", "provider", p.Name(), "error", err)
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrFetchFailed, p.Name(), err)
	}

	series, errs := NormalizeSeries(raw, s.normalizer)
	for _, e := range errs {
		log.Warn("dropping time step", "provider", p.Name(), "error", e)
	}
	s.metrics.ObserveDropped(p.Name(), len(errs))
	log.Debug("series fetched", "provider", p.Name(), "steps", len(series))
	return series, len(errs), nil
}
