package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := testNormalizer(t)

	t.Run("Z suffix in summer", func(t *testing.T) {
		lt, err := n.Normalize("2024-06-01T17:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, 19, lt.Hour())
		assert.Equal(t, "2024-06-01", lt.Date())
		assert.Equal(t, "2024-06-01T19:00", lt.Key())
	})

	t.Run("Z suffix in winter", func(t *testing.T) {
		lt, err := n.Normalize("2024-01-15T18:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, 19, lt.Hour())
	})

	t.Run("local date rolls over", func(t *testing.T) {
		lt, err := n.Normalize("2024-06-01T23:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-02", lt.Date())
		assert.Equal(t, 1, lt.Hour())
	})

	t.Run("explicit offset", func(t *testing.T) {
		lt, err := n.Normalize("2024-06-01T19:00:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T19:00", lt.Key())
	})

	t.Run("minutes without seconds", func(t *testing.T) {
		lt, err := n.Normalize("2024-06-01T17:00Z")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01T19:00", lt.Key())
	})

	t.Run("same instant in different notation shares a key", func(t *testing.T) {
		a, err := n.Normalize("2024-06-01T17:00:00Z")
		require.NoError(t, err)
		b, err := n.Normalize("2024-06-01T18:00:00+01:00")
		require.NoError(t, err)
		assert.Equal(t, a.Key(), b.Key())
	})

	for _, bad := range []string{"", "tomorrow", "2024-06-01", "2024-06-01T17:00:00", "2024-13-01T17:00:00Z"} {
		t.Run("malformed "+bad, func(t *testing.T) {
			_, err := n.Normalize(bad)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
		})
	}
}

func TestNewNormalizer_InvalidZone(t *testing.T) {
	_, err := NewNormalizer("Mars/Olympus_Mons")
	require.Error(t, err)

	_, err = NewNormalizer("")
	require.Error(t, err)
}
