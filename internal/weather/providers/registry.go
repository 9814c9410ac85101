package providers

import (
	"fmt"
	"net/http"

	"github.com/i474232898/snorkel-forecast/internal/weather"
)

// NewAtmospheric returns the atmospheric provider registered under name.
func NewAtmospheric(name string, client *http.Client, userAgent string) (weather.SeriesProvider, error) {
	switch name {
	case "smhi":
		return NewSMHIProvider(client, userAgent), nil
	case "metno":
		return NewMetNoProvider(client, userAgent), nil
	default:
		return nil, fmt.Errorf("unknown atmospheric provider %q", name)
	}
}

// NewMarine returns the marine provider registered under name, or nil for "none".
func NewMarine(name string, client *http.Client, userAgent string) (weather.SeriesProvider, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "openmeteo":
		return NewOpenMeteoMarineProvider(client, userAgent), nil
	default:
		return nil, fmt.Errorf("unknown marine provider %q", name)
	}
}
