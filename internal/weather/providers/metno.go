package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/snorkel-forecast/internal/weather"
	"github.com/sony/gobreaker"
)

// MetNoProvider implements weather.SeriesProvider for MET Norway (Yr) locationforecast.
type MetNoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewMetNoProvider(client *http.Client, userAgent string) *MetNoProvider {
	return &MetNoProvider{
		name:    "metno",
		baseURL: "https://api.met.no/weatherapi/locationforecast/2.0/complete",
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("metno"),
	}
}

func (p *MetNoProvider) Name() string {
	return p.name
}

// metNoInstantNames maps locationforecast instant details to canonical names.
var metNoInstantNames = [][2]string{
	{"air_temperature", weather.ParamTemperature},
	{"wind_speed", weather.ParamWindSpeed},
	{"wind_speed_of_gust", weather.ParamGustSpeed},
	{"wind_from_direction", weather.ParamWindDirection},
}

// metNoWaveNames maps data.waves details, present near coasts, to canonical names.
var metNoWaveNames = [][2]string{
	{"significant_wave_height", weather.ParamWaveHeight},
	{"wave_from_direction", weather.ParamWaveDirection},
	{"wave_period", weather.ParamWavePeriod},
}

func (p *MetNoProvider) FetchSeries(ctx context.Context, loc weather.Location) ([]weather.RawTimeStep, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%.4f", loc.Lat))
	values.Set("lon", fmt.Sprintf("%.4f", loc.Lon))
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Properties struct {
			Timeseries []struct {
				Time string `json:"time"`
				Data struct {
					Instant struct {
						Details map[string]any `json:"details"`
					} `json:"instant"`
					Next1Hours *struct {
						Details map[string]any `json:"details"`
					} `json:"next_1_hours"`
					Waves *struct {
						Details map[string]any `json:"details"`
					} `json:"waves"`
				} `json:"data"`
			} `json:"timeseries"`
		} `json:"properties"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Properties.Timeseries) == 0 {
		return nil, fmt.Errorf("metno returned no timeseries")
	}

	steps := make([]weather.RawTimeStep, 0, len(payload.Properties.Timeseries))
	for _, ts := range payload.Properties.Timeseries {
		details := ts.Data.Instant.Details
		params := make([]weather.RawParameter, 0, len(metNoInstantNames)+len(metNoWaveNames)+2)
		params = appendMapped(params, details, metNoInstantNames)
		// cloud_area_fraction is a percentage; SMHI reports octas.
		if v, ok := details["cloud_area_fraction"]; ok {
			params = append(params, weather.RawParameter{Name: weather.ParamCloudCover, Values: []any{percentToOctas(v)}})
		}
		if ts.Data.Next1Hours != nil {
			if v, ok := ts.Data.Next1Hours.Details["precipitation_amount"]; ok {
				params = append(params, weather.RawParameter{Name: weather.ParamPrecipitation, Values: []any{v}})
			}
		}
		if ts.Data.Waves != nil {
			params = appendMapped(params, ts.Data.Waves.Details, metNoWaveNames)
		}
		steps = append(steps, weather.RawTimeStep{ValidTime: ts.Time, Parameters: params})
	}
	return steps, nil
}

func appendMapped(params []weather.RawParameter, details map[string]any, names [][2]string) []weather.RawParameter {
	for _, n := range names {
		v, ok := details[n[0]]
		if !ok {
			continue
		}
		params = append(params, weather.RawParameter{Name: n[1], Values: []any{v}})
	}
	return params
}

// percentToOctas converts a 0-100 percentage to eighths, passing through
// anything that is not a number so the extractor can mark it unknown.
func percentToOctas(v any) any {
	n, ok := v.(interface{ Float64() (float64, error) })
	if !ok {
		return v
	}
	f, err := n.Float64()
	if err != nil {
		return v
	}
	return f / 100 * 8
}
