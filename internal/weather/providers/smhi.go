package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/i474232898/snorkel-forecast/internal/weather"
	"github.com/sony/gobreaker"
)

// SMHIProvider implements weather.SeriesProvider for the SMHI pmp3g point forecast.
// Its payload already uses the canonical parameter names.
type SMHIProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSMHIProvider(client *http.Client, userAgent string) *SMHIProvider {
	return &SMHIProvider{
		name:    "smhi",
		baseURL: "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2",
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("smhi"),
	}
}

func (p *SMHIProvider) Name() string {
	return p.name
}

func (p *SMHIProvider) FetchSeries(ctx context.Context, loc weather.Location) ([]weather.RawTimeStep, error) {
	u := fmt.Sprintf("%s/geotype/point/lon/%.6f/lat/%.6f/data.json",
		strings.TrimRight(p.baseURL, "/"), loc.Lon, loc.Lat)

	var payload struct {
		ApprovedTime string                `json:"approvedTime"`
		TimeSeries   []weather.RawTimeStep `json:"timeSeries"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.TimeSeries) == 0 {
		return nil, fmt.Errorf("smhi returned no time series")
	}
	return payload.TimeSeries, nil
}
