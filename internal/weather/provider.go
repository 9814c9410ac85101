package weather

import (
	"context"
)

// SeriesProvider abstracts an upstream time-series forecast (e.g. SMHI, MET Norway, Open-Meteo Marine).
type SeriesProvider interface {
	Name() string
	FetchSeries(ctx context.Context, loc Location) ([]RawTimeStep, error)
}

// BathingProvider fetches the detail document for one bathing-water site.
type BathingProvider interface {
	Name() string
	FetchBathing(ctx context.Context) (BathingWater, error)
}

// Metrics is the subset of observability the service reports to.
type Metrics interface {
	ObserveFetch(provider string, err error)
	ObserveDropped(provider string, n int)
	ObserveReport(days, suitable int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, error) {}
func (noopMetrics) ObserveDropped(string, int) {}
func (noopMetrics) ObserveReport(int, int)     {}
