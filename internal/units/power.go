package units

import (
	"math"
	"strconv"
	"strings"
)

// Power is either a fraction of a reference value (FTP) or absolute watts.
type Power struct {
	relative float64
	watts    float64
	absolute bool
}

// ParsePower accepts "80%", "80" (both relative to the reference) or
// "250W" (absolute).
func ParsePower(s string) (Power, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Power{}, parseErr("power", raw, "empty")
	}

	absolute := false
	switch {
	case strings.HasSuffix(s, "%"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	case strings.HasSuffix(s, "W"), strings.HasSuffix(s, "w"):
		s = strings.TrimSpace(s[:len(s)-1])
		absolute = true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Power{}, parseErr("power", raw, "not a number")
	}
	if v < 0 {
		return Power{}, parseErr("power", raw, "negative")
	}
	if absolute {
		return Power{watts: v, absolute: true}, nil
	}
	return Power{relative: v / 100}, nil
}

// Absolute reports whether p was written in watts.
func (p Power) Absolute() bool { return p.absolute }

// Fraction returns the relative value (0.8 for "80%"); zero for absolute power.
func (p Power) Fraction() float64 { return p.relative }

// ToWatts resolves p against the reference and widens it by the tolerance
// diff: ToWatts(200, -0.05) for "80%" is 152, ToWatts(200, 0.05) is 168.
// diff = 0 yields the point estimate.
func (p Power) ToWatts(reference, diff float64) int {
	w := p.watts
	if !p.absolute {
		w = reference * p.relative
	}
	return int(math.Round(w * (1 + diff)))
}
