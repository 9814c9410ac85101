package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/snorkel-forecast/internal/weather"
)

type AppConfig struct {
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level
	Port     string `validate:"required,numeric"`

	// Site is the coastal point reports are built for.
	Site     weather.Location
	TimeZone string `validate:"required"`

	// SlotHour is the local hour picked from each day; SlotDays caps the number of days.
	SlotHour int `validate:"gte=0,lte=23"`
	SlotDays int `validate:"gte=1,lte=10"`

	AtmosphericProvider string `validate:"oneof=smhi metno"`
	MarineProvider      string `validate:"oneof=openmeteo none"`
	BathingSiteID       string

	HTTPTimeout time.Duration `validate:"gt=0"`
	UserAgent   string        `validate:"required"`

	// WatchInterval re-runs the report periodically in serve mode (0 = off).
	WatchInterval time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.Port = getenvDefault("PORT", "8080")

	// Defaults point at Skaftö on the Swedish west coast.
	lat, err := getenvFloat("SITE_LAT", 58.316)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("SITE_LON", 11.468)
	if err != nil {
		return nil, err
	}
	cfg.Site = weather.Location{
		Name: getenvDefault("SITE_NAME", "Skaftö"),
		Lat:  lat,
		Lon:  lon,
	}
	cfg.TimeZone = getenvDefault("SITE_TIMEZONE", weather.DefaultTimeZone)

	if cfg.SlotHour, err = getenvInt("SLOT_HOUR", weather.DefaultSlotHour); err != nil {
		return nil, err
	}
	if cfg.SlotDays, err = getenvInt("SLOT_DAYS", weather.DefaultSlotCount); err != nil {
		return nil, err
	}

	cfg.AtmosphericProvider = strings.ToLower(getenvDefault("ATMOSPHERIC_PROVIDER", "smhi"))
	cfg.MarineProvider = strings.ToLower(getenvDefault("MARINE_PROVIDER", "openmeteo"))
	cfg.BathingSiteID = strings.TrimSpace(os.Getenv("BATHING_SITE_ID"))

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.UserAgent = getenvDefault("USER_AGENT", "snorkel-forecast/1.0")

	if cfg.WatchInterval, err = getenvDuration("WATCH_INTERVAL", "0s"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ReportOptions returns the slot selection settings.
func (c *AppConfig) ReportOptions() weather.ReportOptions {
	return weather.ReportOptions{Hour: c.SlotHour, Days: c.SlotDays}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
