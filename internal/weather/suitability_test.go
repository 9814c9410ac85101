package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuitable(t *testing.T) {
	tests := []struct {
		name string
		rec  MergedRecord
		want bool
	}{
		{"all pass without waves", record("t", 15.0, "ws", 3.0, "gust", 6.0), true},
		{"all pass with calm waves", record("t", 15.0, "ws", 3.0, "gust", 6.0, "swh", 0.5), true},
		{"temperature at zero", record("t", 0.0, "ws", 3.0, "gust", 6.0), false},
		{"temperature below zero", record("t", -1.0, "ws", 3.0, "gust", 6.0), false},
		{"wind at limit", record("t", 15.0, "ws", 5.0, "gust", 6.0), false},
		{"gust at limit", record("t", 15.0, "ws", 3.0, "gust", 8.0), false},
		{"waves at limit", record("t", 15.0, "ws", 3.0, "gust", 6.0, "swh", 1.0), false},
		{"waves high", record("t", 15.0, "ws", 3.0, "gust", 6.0, "swh", 2.4), false},
		{"just inside every limit", record("t", 0.1, "ws", 4.99, "gust", 7.99, "swh", 0.99), true},
		{"temperature unknown", record("ws", 3.0, "gust", 6.0, "swh", 0.2), false},
		{"wind unknown", record("t", 15.0, "gust", 6.0), false},
		{"gust unknown", record("t", 15.0, "ws", 3.0), false},
		{"everything unknown", record(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Suitable(tc.rec))
			a := Assess(tc.rec)
			assert.Equal(t, tc.want, a.Suitable)
			if tc.want {
				assert.Empty(t, a.Reasons)
			} else {
				assert.NotEmpty(t, a.Reasons)
			}
		})
	}
}

func TestSuitable_UnknownMandatoryAlwaysFails(t *testing.T) {
	mandatory := []string{ParamTemperature, ParamWindSpeed, ParamGustSpeed}
	for _, missing := range mandatory {
		m := ParameterMap{
			ParamTemperature: Known(20),
			ParamWindSpeed:   Known(1),
			ParamGustSpeed:   Known(2),
			ParamWaveHeight:  Known(0.1),
		}
		m[missing] = Unknown()
		assert.False(t, Suitable(newMergedRecord(LocalTime{}, m)), missing)
	}
}

func TestAssess_Reasons(t *testing.T) {
	a := Assess(record("t", -2.0, "ws", 6.0, "swh", 1.5))

	assert.False(t, a.Suitable)
	assert.Equal(t, []string{
		"air temperature -2.0°C not above 0°C",
		"wind 6.0 m/s not below 5 m/s",
		"gust speed unknown",
		"waves 1.5 m not below 1 m",
	}, a.Reasons)
}
