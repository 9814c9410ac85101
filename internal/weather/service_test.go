package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = Location{Name: "Skaftö", Lat: 58.316, Lon: 11.468}

type fakeSeries struct {
	name  string
	steps []RawTimeStep
	err   error
	calls int
}

func (f *fakeSeries) Name() string { return f.name }

func (f *fakeSeries) FetchSeries(context.Context, Location) ([]RawTimeStep, error) {
	f.calls++
	return f.steps, f.err
}

type fakeBathing struct {
	bw  BathingWater
	err error
}

func (f *fakeBathing) Name() string { return "bathing" }

func (f *fakeBathing) FetchBathing(context.Context) (BathingWater, error) {
	return f.bw, f.err
}

type recordedMetrics struct {
	fetches  map[string]int
	failed   map[string]int
	dropped  int
	days     int
	suitable int
}

func newRecordedMetrics() *recordedMetrics {
	return &recordedMetrics{fetches: map[string]int{}, failed: map[string]int{}}
}

func (m *recordedMetrics) ObserveFetch(p string, err error) {
	m.fetches[p]++
	if err != nil {
		m.failed[p]++
	}
}
func (m *recordedMetrics) ObserveDropped(_ string, n int) { m.dropped += n }
func (m *recordedMetrics) ObserveReport(days, suitable int) {
	m.days, m.suitable = days, suitable
}

// threeEvenings is an atmospheric series with hourly steps around 19:00
// local time on three June days.
func threeEvenings(temps [3]float64) []RawTimeStep {
	days := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	var steps []RawTimeStep
	for i, d := range days {
		steps = append(steps,
			rawStep(d+"T16:00:00Z", "t", 20.0, "ws", 9.0, "gust", 12.0),
			rawStep(d+"T17:00:00Z", "t", temps[i], "ws", 2.0, "gust", 5.0, "wd", 180.0),
			rawStep(d+"T18:00:00Z", "t", 20.0, "ws", 9.0, "gust", 12.0),
		)
	}
	return steps
}

func TestBuildReport_AtmosphericOnly(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC))
	atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{12, -1, 8})}
	metrics := newRecordedMetrics()

	svc, err := NewService(atmo, WithClock(clock), WithMetrics(metrics), WithNormalizer(testNormalizer(t)))
	require.NoError(t, err)

	rep, err := svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
	require.NoError(t, err)

	require.Len(t, rep.Days, 3)
	verdicts := make([]bool, 0, 3)
	for _, d := range rep.Days {
		verdicts = append(verdicts, d.Suitable())
		assert.False(t, d.Record.WaveHeight.IsKnown())
		assert.False(t, d.Record.WaveDirection.IsKnown())
		assert.False(t, d.Record.WavePeriod.IsKnown())
		_, ok := d.WaveArrow()
		assert.False(t, ok)
		arrow, ok := d.WindArrow()
		assert.True(t, ok)
		assert.Equal(t, "↓", arrow)
	}
	assert.Equal(t, []bool{true, false, true}, verdicts)
	assert.Equal(t, "2024-06-01", rep.Days[0].Date())
	assert.Equal(t, "2024-06-03", rep.Days[2].Date())

	assert.Equal(t, clock.Now().UTC(), rep.GeneratedAt)
	assert.NotEqual(t, uuid.Nil, rep.ID)
	assert.Equal(t, 19, rep.TargetHour)
	assert.Nil(t, rep.Bathing)
	assert.False(t, rep.Empty())

	assert.Equal(t, 1, metrics.fetches["smhi"])
	assert.Equal(t, 3, metrics.days)
	assert.Equal(t, 2, metrics.suitable)
}

func TestBuildReport_WithMarineAndBathing(t *testing.T) {
	atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{15, 15, 15})}
	marine := &fakeSeries{name: "marine", steps: []RawTimeStep{
		rawStep("2024-06-01T17:00:00Z", "swh", 0.4, "dir", 270.0, "tp", 3.0, "sst", 16.0),
		rawStep("2024-06-02T17:00:00Z", "swh", 1.3, "dir", 250.0),
		rawStep("not a time", "swh", 0.1),
	}}
	bathing := &fakeBathing{bw: BathingWater{WaterTemperature: Known(17), Quality: "Utmärkt"}}
	metrics := newRecordedMetrics()

	svc, err := NewService(atmo, WithMarine(marine), WithBathing(bathing), WithMetrics(metrics))
	require.NoError(t, err)

	rep, err := svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
	require.NoError(t, err)

	require.Len(t, rep.Days, 3)
	assert.True(t, rep.Days[0].Suitable())
	assert.False(t, rep.Days[1].Suitable(), "waves too high")
	assert.True(t, rep.Days[2].Suitable(), "no wave data does not block")

	arrow, ok := rep.Days[0].WaveArrow()
	assert.True(t, ok)
	assert.Equal(t, "←", arrow)
	assertKnown(t, 16, rep.Days[0].Record.SeaTemperature)

	require.NotNil(t, rep.Bathing)
	assert.Equal(t, "Utmärkt", rep.Bathing.Quality)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, 1, metrics.dropped)
}

func TestBuildReport_FetchFailureIsFatal(t *testing.T) {
	upstream := errors.New("503 from upstream")

	t.Run("atmospheric", func(t *testing.T) {
		atmo := &fakeSeries{name: "smhi", err: upstream}
		marine := &fakeSeries{name: "marine"}
		svc, err := NewService(atmo, WithMarine(marine))
		require.NoError(t, err)

		rep, err := svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.ErrorIs(t, err, upstream)
		assert.Empty(t, rep.Days)
		assert.Equal(t, 0, marine.calls, "fetches are sequential and stop at the first failure")
	})

	t.Run("marine", func(t *testing.T) {
		atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{15, 15, 15})}
		marine := &fakeSeries{name: "marine", err: upstream}
		svc, err := NewService(atmo, WithMarine(marine))
		require.NoError(t, err)

		_, err = svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.Contains(t, err.Error(), "marine")
	})

	t.Run("bathing", func(t *testing.T) {
		atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{15, 15, 15})}
		svc, err := NewService(atmo, WithBathing(&fakeBathing{err: upstream}))
		require.NoError(t, err)

		_, err = svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestBuildReport_EmptySelection(t *testing.T) {
	atmo := &fakeSeries{name: "smhi", steps: []RawTimeStep{
		rawStep("2024-06-01T08:00:00Z", "t", 15.0, "ws", 1.0, "gust", 2.0),
	}}
	svc, err := NewService(atmo)
	require.NoError(t, err)

	rep, err := svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 3})
	require.NoError(t, err)
	assert.True(t, rep.Empty())
}

func TestNewService_RequiresAtmospheric(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestBuildReport_InvalidOptions(t *testing.T) {
	atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{12, -1, 8})}
	svc, err := NewService(atmo)
	require.NoError(t, err)

	for _, opts := range []ReportOptions{
		{Hour: 25, Days: 3},
		{Hour: -1, Days: 3},
		{Hour: 19, Days: 0},
		{Hour: 19, Days: 11},
	} {
		_, err := svc.BuildReport(context.Background(), testSite, opts)
		assert.ErrorIs(t, err, ErrInvalidOptions, "%+v", opts)
	}
	assert.Zero(t, atmo.calls)
}

func TestDailyForecast_JSON(t *testing.T) {
	atmo := &fakeSeries{name: "smhi", steps: threeEvenings([3]float64{12, -1, 8})}
	svc, err := NewService(atmo)
	require.NoError(t, err)

	rep, err := svc.BuildReport(context.Background(), testSite, ReportOptions{Hour: 19, Days: 1})
	require.NoError(t, err)
	require.Len(t, rep.Days, 1)

	b, err := rep.Days[0].MarshalJSON()
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"date":"2024-06-01"`)
	assert.Contains(t, s, `"localTime":"2024-06-01T19:00"`)
	assert.Contains(t, s, `"suitable":true`)
	assert.Contains(t, s, `"windArrow":"↓"`)
	assert.Contains(t, s, `"waveArrow":null`)
	assert.Contains(t, s, `"waveHeightM":null`)
	assert.Contains(t, s, `"temperatureC":12`)
}
