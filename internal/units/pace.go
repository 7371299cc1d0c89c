package units

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParsePace converts a time-per-kilometer clock string ("5:30") to a speed
// in meters per second.
func ParsePace(s string) (float64, error) {
	d, err := ParseDuration(s)
	if err != nil {
		reason := err.Error()
		var pe *ParseError
		if errors.As(err, &pe) {
			reason = pe.Reason
		}
		return 0, parseErr("pace", s, reason)
	}
	secs := d.Seconds()
	if secs <= 0 {
		return 0, parseErr("pace", s, "zero pace")
	}
	return 1000 / secs, nil
}

// ParseDistance converts "400m", "5km" or "1.5 KM" to meters.
func ParseDistance(s string) (float64, error) {
	lower := strings.ToLower(strings.TrimSpace(s))

	mult := 1.0
	switch {
	case strings.HasSuffix(lower, "km"):
		lower = strings.TrimSuffix(lower, "km")
		mult = 1000
	case strings.HasSuffix(lower, "m"):
		lower = strings.TrimSuffix(lower, "m")
	default:
		return 0, parseErr("distance", s, "missing unit (m or km)")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(lower), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseErr("distance", s, "not a number")
	}
	if v < 0 {
		return 0, parseErr("distance", s, "negative")
	}
	return v * mult, nil
}

// HasDistanceUnit reports whether s ends in a distance unit token.
func HasDistanceUnit(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasSuffix(lower, "m")
}

// ParseNumber parses a literal numeric bound.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseErr("number", s, "not a number")
	}
	return v, nil
}
