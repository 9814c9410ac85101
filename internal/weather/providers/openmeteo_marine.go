package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/snorkel-forecast/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenMeteoMarineProvider implements weather.SeriesProvider for the Open-Meteo Marine API.
// It needs no API key.
type OpenMeteoMarineProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoMarineProvider(client *http.Client, userAgent string) *OpenMeteoMarineProvider {
	return &OpenMeteoMarineProvider{
		name:    "openmeteo-marine",
		baseURL: "https://marine-api.open-meteo.com/v1/marine",
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("openmeteo-marine"),
	}
}

func (p *OpenMeteoMarineProvider) Name() string {
	return p.name
}

// hourly variable -> canonical parameter name
var openMeteoMarineVars = [][2]string{
	{"wave_height", weather.ParamWaveHeight},
	{"wave_direction", weather.ParamWaveDirection},
	{"wave_period", weather.ParamWavePeriod},
	{"sea_surface_temperature", weather.ParamSeaTemperature},
}

func (p *OpenMeteoMarineProvider) FetchSeries(ctx context.Context, loc weather.Location) ([]weather.RawTimeStep, error) {
	hourly := ""
	for i, v := range openMeteoMarineVars {
		if i > 0 {
			hourly += ","
		}
		hourly += v[0]
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	values.Set("hourly", hourly)
	values.Set("timeformat", "unixtime")
	values.Set("forecast_days", "7")
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Hourly map[string][]any `json:"hourly"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, err
	}

	times, ok := payload.Hourly["time"]
	if !ok || len(times) == 0 {
		return nil, fmt.Errorf("openmeteo marine returned no hourly data")
	}

	steps := make([]weather.RawTimeStep, 0, len(times))
	for i, rawTS := range times {
		steps = append(steps, weather.RawTimeStep{
			ValidTime:  unixToRFC3339(rawTS),
			Parameters: hourlyParameters(payload.Hourly, i),
		})
	}
	return steps, nil
}

func hourlyParameters(hourly map[string][]any, i int) []weather.RawParameter {
	params := make([]weather.RawParameter, 0, len(openMeteoMarineVars))
	for _, v := range openMeteoMarineVars {
		column, ok := hourly[v[0]]
		if !ok || i >= len(column) {
			continue
		}
		params = append(params, weather.RawParameter{Name: v[1], Values: []any{column[i]}})
	}
	return params
}

// unixToRFC3339 renders an epoch-seconds value as an explicit UTC timestamp.
// Unparseable input is passed through as text so the normalizer rejects it.
func unixToRFC3339(v any) string {
	s := fmt.Sprint(v)
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return time.Unix(secs, 0).UTC().Format(time.RFC3339)
}
