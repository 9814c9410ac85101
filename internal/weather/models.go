package weather

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// Canonical parameter names. Providers translate their own vocabulary into these.
const (
	ParamTemperature    = "t"
	ParamWindSpeed      = "ws"
	ParamGustSpeed      = "gust"
	ParamWindDirection  = "wd"
	ParamPrecipitation  = "pmean"
	ParamCloudCover     = "tcc_mean"
	ParamVisibility     = "vis"
	ParamWaveHeight     = "swh"
	ParamWaveDirection  = "dir"
	ParamWavePeriod     = "tp"
	ParamSeaTemperature = "sst"
)

// Value is a forecast number that may be unknown.
// The zero Value is unknown.
type Value struct {
	v  float64
	ok bool
}

// Known wraps f. NaN and infinities are not real measurements and yield Unknown.
func Known(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{v: f, ok: true}
}

// Unknown returns the unknown Value.
func Unknown() Value {
	return Value{}
}

func (v Value) Float() (float64, bool) {
	return v.v, v.ok
}

func (v Value) IsKnown() bool {
	return v.ok
}

// MarshalJSON encodes unknown as null so it never reads as zero.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// Location is a coastal point a report is built for.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// RawParameter is one upstream name/values pair. Values hold whatever the
// JSON decoder produced (float64, json.Number, string, nil).
type RawParameter struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// RawTimeStep is one upstream entry as received from a provider.
type RawTimeStep struct {
	ValidTime  string         `json:"validTime"`
	Parameters []RawParameter `json:"parameters"`
}

// ParameterMap maps a parameter name to its value. A missing name is unknown.
type ParameterMap map[string]Value

// Get returns the value for name, or Unknown when absent.
func (m ParameterMap) Get(name string) Value {
	return m[name]
}

// TimeStep is a RawTimeStep after timestamp normalization and parameter extraction.
type TimeStep struct {
	Time   LocalTime
	Params ParameterMap
}

// Series is a chronologically ordered list of time steps from one provider.
type Series []TimeStep

// MergedRecord is the union of every series' parameters at one local timestamp.
type MergedRecord struct {
	Time LocalTime `json:"-"`

	Temperature    Value `json:"temperatureC"`
	WindSpeed      Value `json:"windSpeedMs"`
	GustSpeed      Value `json:"gustSpeedMs"`
	WindDirection  Value `json:"windDirectionDeg"`
	Precipitation  Value `json:"precipitationMmH"`
	CloudCover     Value `json:"cloudCoverOctas"`
	Visibility     Value `json:"visibilityKm"`
	WaveHeight     Value `json:"waveHeightM"`
	WaveDirection  Value `json:"waveDirectionDeg"`
	WavePeriod     Value `json:"wavePeriodS"`
	SeaTemperature Value `json:"seaTemperatureC"`
}

func newMergedRecord(t LocalTime, m ParameterMap) MergedRecord {
	return MergedRecord{
		Time:           t,
		Temperature:    m.Get(ParamTemperature),
		WindSpeed:      m.Get(ParamWindSpeed),
		GustSpeed:      m.Get(ParamGustSpeed),
		WindDirection:  m.Get(ParamWindDirection),
		Precipitation:  m.Get(ParamPrecipitation),
		CloudCover:     m.Get(ParamCloudCover),
		Visibility:     m.Get(ParamVisibility),
		WaveHeight:     m.Get(ParamWaveHeight),
		WaveDirection:  m.Get(ParamWaveDirection),
		WavePeriod:     m.Get(ParamWavePeriod),
		SeaTemperature: m.Get(ParamSeaTemperature),
	}
}

// DailyForecast is the record picked for one day's slot.
// The verdict is derived from the record each time it is asked for.
type DailyForecast struct {
	Record MergedRecord

	// SunElevation is the sun's altitude in degrees at the slot time.
	SunElevation float64
}

func (d DailyForecast) Date() string {
	return d.Record.Time.Date()
}

func (d DailyForecast) Suitable() bool {
	return Suitable(d.Record)
}

func (d DailyForecast) Assess() Assessment {
	return Assess(d.Record)
}

// WindArrow returns the compass arrow for the wind direction, if known.
func (d DailyForecast) WindArrow() (string, bool) {
	deg, ok := d.Record.WindDirection.Float()
	if !ok {
		return "", false
	}
	return CompassArrow(deg)
}

// WaveArrow returns the compass arrow for the wave direction, if known.
func (d DailyForecast) WaveArrow() (string, bool) {
	deg, ok := d.Record.WaveDirection.Float()
	if !ok {
		return "", false
	}
	return CompassArrow(deg)
}

// MarshalJSON adds the derived verdict and arrows next to the record fields.
func (d DailyForecast) MarshalJSON() ([]byte, error) {
	a := d.Assess()
	out := struct {
		Date         string       `json:"date"`
		LocalTime    string       `json:"localTime"`
		Suitable     bool         `json:"suitable"`
		Reasons      []string     `json:"reasons,omitempty"`
		WindArrow    *string      `json:"windArrow"`
		WaveArrow    *string      `json:"waveArrow"`
		SunElevation float64      `json:"sunElevationDeg"`
		Record       MergedRecord `json:"conditions"`
	}{
		Date:         d.Date(),
		LocalTime:    d.Record.Time.Key(),
		Suitable:     a.Suitable,
		Reasons:      a.Reasons,
		SunElevation: math.Round(d.SunElevation*10) / 10,
		Record:       d.Record,
	}
	if s, ok := d.WindArrow(); ok {
		out.WindArrow = &s
	}
	if s, ok := d.WaveArrow(); ok {
		out.WaveArrow = &s
	}
	return json.Marshal(out)
}

// BathingWater is site-level data from a bathing-water monitoring point.
type BathingWater struct {
	WaterTemperature Value  `json:"waterTemperatureC"`
	ObservedAt       string `json:"observedAt,omitempty"`
	Quality          string `json:"quality,omitempty"`
}

// Report is the result of one run.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Location    Location        `json:"location"`
	TargetHour  int             `json:"targetHour"`
	Days        []DailyForecast `json:"days"`
	Bathing     *BathingWater   `json:"bathing,omitempty"`

	// Dropped counts upstream steps skipped for malformed timestamps.
	Dropped int `json:"dropped"`
}

// Empty reports whether no slot matched; this is not the same as unsuitable.
func (r Report) Empty() bool {
	return len(r.Days) == 0
}
