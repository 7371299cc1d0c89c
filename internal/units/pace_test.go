package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePace(t *testing.T) {
	v, err := ParsePace("6:00")
	require.NoError(t, err)
	assert.InDelta(t, 2.778, v, 0.001)

	v, err = ParsePace("6:30")
	require.NoError(t, err)
	assert.InDelta(t, 2.564, v, 0.001)
}

func TestParsePace_Invalid(t *testing.T) {
	for _, in := range []string{"0:00", "fast", ""} {
		_, err := ParsePace(in)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %q", in)
		assert.Equal(t, "pace", pe.Kind)
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"400m", 400},
		{"5km", 5000},
		{"1.5 KM", 1500},
		{"800M", 800},
	}
	for _, tt := range tests {
		got, err := ParseDistance(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestParseDistance_Invalid(t *testing.T) {
	for _, in := range []string{"400", "5 miles", "km", "", "-3km"} {
		_, err := ParseDistance(in)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %q", in)
		assert.Equal(t, "distance", pe.Kind)
	}
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsClock("5:00"))
	assert.False(t, IsClock("300"))
	assert.True(t, HasDistanceUnit("1km"))
	assert.True(t, HasDistanceUnit("400 M"))
	assert.False(t, HasDistanceUnit("300"))
}
