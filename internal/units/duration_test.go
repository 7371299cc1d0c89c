package units

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"90", 90 * time.Second},
		{"90.5", 90500 * time.Millisecond},
		{" 45 ", 45 * time.Second},
		{"4:30", 4*time.Minute + 30*time.Second},
		{"10:00", 10 * time.Minute},
		{"1:05:00", time.Hour + 5*time.Minute},
		{"75:00", 75 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "1:xx", "1::00", "1:2:3:4", "5:75", "-1:00", "NaN", "1e10", "1e300", "3000000:00:00", "99999999999999999999:00"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, "duration", pe.Kind)
		})
	}
}

func TestSeconds(t *testing.T) {
	got, err := Seconds("10:00")
	require.NoError(t, err)
	assert.Equal(t, 600, got)

	_, err = Seconds("ten minutes")
	assert.Error(t, err)
}
