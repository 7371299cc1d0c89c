package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePower_Relative(t *testing.T) {
	for _, in := range []string{"80%", "80", " 80 % "} {
		p, err := ParsePower(in)
		require.NoError(t, err, in)
		assert.False(t, p.Absolute())
		assert.InDelta(t, 0.8, p.Fraction(), 1e-9)
		assert.Equal(t, 160, p.ToWatts(200, 0))
	}
}

func TestParsePower_Absolute(t *testing.T) {
	p, err := ParsePower("250W")
	require.NoError(t, err)
	assert.True(t, p.Absolute())
	assert.Equal(t, 250, p.ToWatts(200, 0))
	assert.Equal(t, 250, p.ToWatts(0, 0))
}

func TestPowerCorridor(t *testing.T) {
	p, err := ParsePower("80%")
	require.NoError(t, err)

	low := p.ToWatts(200, -0.05)
	high := p.ToWatts(200, 0.05)
	assert.Equal(t, 152, low)
	assert.Equal(t, 168, high)
	assert.Less(t, low, high)
}

func TestParsePower_Malformed(t *testing.T) {
	for _, in := range []string{"", "%", "fast", "-10%", "W"} {
		_, err := ParsePower(in)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %q", in)
		assert.Equal(t, "power", pe.Kind)
	}
}
