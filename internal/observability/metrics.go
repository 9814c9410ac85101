package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for report runs.
type Metrics struct {
	Fetches      *prometheus.CounterVec // labels: provider, outcome={success,error}
	DroppedSteps *prometheus.CounterVec // labels: provider
	Reports      prometheus.Counter
	EmptyReports prometheus.Counter
	SuitableDays prometheus.Gauge
	ReportedDays prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snorkel",
			Name:      "provider_fetches_total",
			Help:      "Upstream fetches by provider and outcome.",
		}, []string{"provider", "outcome"}),
		DroppedSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snorkel",
			Name:      "dropped_time_steps_total",
			Help:      "Upstream time steps skipped for malformed timestamps.",
		}, []string{"provider"}),
		Reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snorkel",
			Name:      "reports_total",
			Help:      "Reports built successfully.",
		}),
		EmptyReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snorkel",
			Name:      "empty_reports_total",
			Help:      "Reports where no forecast slot matched the target hour.",
		}),
		SuitableDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snorkel",
			Name:      "suitable_days",
			Help:      "Days flagged suitable in the latest report.",
		}),
		ReportedDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snorkel",
			Name:      "reported_days",
			Help:      "Days included in the latest report.",
		}),
	}
}

// NewMetrics creates and registers all metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Fetches,
		m.DroppedSteps,
		m.Reports,
		m.EmptyReports,
		m.SuitableDays,
		m.ReportedDays,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build many.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) ObserveFetch(provider string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Fetches.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveDropped(provider string, n int) {
	if n > 0 {
		m.DroppedSteps.WithLabelValues(provider).Add(float64(n))
	}
}

func (m *Metrics) ObserveReport(days, suitable int) {
	m.Reports.Inc()
	if days == 0 {
		m.EmptyReports.Inc()
	}
	m.ReportedDays.Set(float64(days))
	m.SuitableDays.Set(float64(suitable))
}
