package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTimestamp is returned when an upstream valid time cannot be parsed.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const (
	dateLayout = "2006-01-02"
	keyLayout  = "2006-01-02T15:04"
)

// accepted layouts, all with an explicit offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// LocalTime is an instant expressed in the normalizer's zone.
type LocalTime struct {
	t time.Time
}

func (l LocalTime) Time() time.Time {
	return l.t
}

// Date returns the local calendar date as YYYY-MM-DD.
func (l LocalTime) Date() string {
	return l.t.Format(dateLayout)
}

func (l LocalTime) Hour() int {
	return l.t.Hour()
}

// Key is the minute-resolution local timestamp used to match series.
func (l LocalTime) Key() string {
	return l.t.Format(keyLayout)
}

// Normalizer converts upstream UTC timestamps into one configured local zone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer loads the IANA zone by name, e.g. "Europe/Stockholm".
func NewNormalizer(zone string) (*Normalizer, error) {
	if zone == "" {
		return nil, errors.New("time zone name is empty")
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return &Normalizer{loc: loc}, nil
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize parses an ISO-8601 timestamp and converts it to local time.
// A trailing "Z" is read as +00:00. Timestamps without an offset are rejected
// rather than interpreted in some default zone.
func (n *Normalizer) Normalize(s string) (LocalTime, error) {
	raw := strings.TrimSpace(s)
	if strings.HasSuffix(raw, "Z") || strings.HasSuffix(raw, "z") {
		raw = raw[:len(raw)-1] + "+00:00"
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return LocalTime{t: t.In(n.loc)}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}
