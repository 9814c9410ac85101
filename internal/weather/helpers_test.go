package weather

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

const testZone = "Europe/Stockholm"

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(testZone)
	require.NoError(t, err)
	return n
}

// rawStep builds a RawTimeStep from alternating name/value pairs.
func rawStep(validTime string, kv ...any) RawTimeStep {
	step := RawTimeStep{ValidTime: validTime}
	for i := 0; i+1 < len(kv); i += 2 {
		step.Parameters = append(step.Parameters, RawParameter{
			Name:   kv[i].(string),
			Values: []any{kv[i+1]},
		})
	}
	return step
}

func mustSeries(t *testing.T, steps ...RawTimeStep) Series {
	t.Helper()
	s, errs := NormalizeSeries(steps, testNormalizer(t))
	require.Empty(t, errs)
	return s
}

func record(kv ...any) MergedRecord {
	m := ParameterMap{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = Known(kv[i+1].(float64))
	}
	return newMergedRecord(LocalTime{}, m)
}
