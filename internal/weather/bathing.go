package weather

import (
	"fmt"
	"strings"
)

// Bathing-site detail keys as published by the Swedish bathing-water register.
const (
	bathingObservationsKey = "observations"
	bathingWaterTempKey    = "vattentemperatur"
	bathingObservedAtKey   = "observationstid"
	bathingPropertiesKey   = "properties"
	bathingQualityKey      = "badvattenklass"
)

// ParseBathingDetail reads a decoded bathing-site detail document. v may be a
// mapping or a list of mappings, in which case the first is used. Missing
// parts are left unknown or empty; it never fails.
func ParseBathingDetail(v any) BathingWater {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return BathingWater{}
		}
		v = list[0]
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return BathingWater{}
	}

	var out BathingWater
	if obs, ok := doc[bathingObservationsKey].([]any); ok && len(obs) > 0 {
		if first, ok := obs[0].(map[string]any); ok {
			out.WaterTemperature = toValue(first[bathingWaterTempKey])
			out.ObservedAt = scalarText(first[bathingObservedAtKey])
		}
	}
	if props, ok := doc[bathingPropertiesKey].(map[string]any); ok {
		out.Quality = scalarText(props[bathingQualityKey])
	}
	return out
}

func scalarText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64, bool, fmt.Stringer:
		return fmt.Sprint(s)
	default:
		return ""
	}
}
