package weather

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ExtractParameters flattens one time step's parameter list.
// Only the first value of each parameter is kept. Values that are missing or
// not numeric become Unknown; range checks are left to the evaluator.
func ExtractParameters(params []RawParameter) ParameterMap {
	m := make(ParameterMap, len(params))
	for _, p := range params {
		if _, seen := m[p.Name]; seen {
			continue
		}
		if len(p.Values) == 0 {
			m[p.Name] = Unknown()
			continue
		}
		m[p.Name] = toValue(p.Values[0])
	}
	return m
}

func toValue(raw any) Value {
	switch v := raw.(type) {
	case float64:
		return Known(v)
	case float32:
		return Known(float64(v))
	case int:
		return Known(float64(v))
	case int64:
		return Known(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Unknown()
		}
		return Known(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Unknown()
		}
		return Known(f)
	default:
		return Unknown()
	}
}
