package weather

import "fmt"

// Snorkeling thresholds. Temperature is a lower bound; the rest are upper bounds.
const (
	MinAirTemperatureC = 0.0
	MaxWindSpeedMS     = 5.0
	MaxGustSpeedMS     = 8.0
	MaxWaveHeightM     = 1.0
)

// Assessment is a verdict with the reasons it failed, if any.
type Assessment struct {
	Suitable bool
	Reasons  []string
}

// Suitable applies the snorkeling rule to r.
//
// Temperature, wind and gust are mandatory: if any is unknown the verdict is
// false. Wave height only counts when known, since marine data is optional.
func Suitable(r MergedRecord) bool {
	t, ok := r.Temperature.Float()
	if !ok || t <= MinAirTemperatureC {
		return false
	}
	ws, ok := r.WindSpeed.Float()
	if !ok || ws >= MaxWindSpeedMS {
		return false
	}
	gust, ok := r.GustSpeed.Float()
	if !ok || gust >= MaxGustSpeedMS {
		return false
	}
	if swh, ok := r.WaveHeight.Float(); ok && swh >= MaxWaveHeightM {
		return false
	}
	return true
}

// Assess evaluates every rule and collects why r is unsuitable.
// Assess(r).Suitable always equals Suitable(r).
func Assess(r MergedRecord) Assessment {
	var reasons []string

	if t, ok := r.Temperature.Float(); !ok {
		reasons = append(reasons, "air temperature unknown")
	} else if t <= MinAirTemperatureC {
		reasons = append(reasons, fmt.Sprintf("air temperature %.1f°C not above %.0f°C", t, MinAirTemperatureC))
	}

	if ws, ok := r.WindSpeed.Float(); !ok {
		reasons = append(reasons, "wind speed unknown")
	} else if ws >= MaxWindSpeedMS {
		reasons = append(reasons, fmt.Sprintf("wind %.1f m/s not below %.0f m/s", ws, MaxWindSpeedMS))
	}

	if gust, ok := r.GustSpeed.Float(); !ok {
		reasons = append(reasons, "gust speed unknown")
	} else if gust >= MaxGustSpeedMS {
		reasons = append(reasons, fmt.Sprintf("gusts %.1f m/s not below %.0f m/s", gust, MaxGustSpeedMS))
	}

	if swh, ok := r.WaveHeight.Float(); ok && swh >= MaxWaveHeightM {
		reasons = append(reasons, fmt.Sprintf("waves %.1f m not below %.0f m", swh, MaxWaveHeightM))
	}

	return Assessment{
		Suitable: len(reasons) == 0,
		Reasons:  reasons,
	}
}
