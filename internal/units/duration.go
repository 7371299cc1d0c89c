// Package units converts human-authored quantities (durations, power,
// pace, distance) into canonical numeric units.
package units

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxSeconds is the largest whole-second count a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// ParseDuration accepts a bare seconds count ("90", "90.5") or a clock
// string with two or three segments ("4:30", "1:05:00").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, parseErr("duration", s, "empty")
	}

	if !IsClock(s) {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, parseErr("duration", s, "not a number")
		}
		if secs < 0 {
			return 0, parseErr("duration", s, "negative")
		}
		if secs > float64(maxSeconds) {
			return 0, parseErr("duration", s, "out of range")
		}
		return time.Duration(secs * float64(time.Second)), nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, parseErr("duration", s, "too many segments")
	}

	var total int64
	for i, p := range parts {
		if p == "" {
			return 0, parseErr("duration", s, "empty segment")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, parseErr("duration", s, "non-numeric segment "+strconv.Quote(p))
		}
		if n < 0 {
			return 0, parseErr("duration", s, "negative")
		}
		if i > 0 && n >= 60 {
			return 0, parseErr("duration", s, "segment "+p+" out of range")
		}
		if total > (maxSeconds-int64(n))/60 {
			return 0, parseErr("duration", s, "out of range")
		}
		total = total*60 + int64(n)
	}
	return time.Duration(total) * time.Second, nil
}

// Seconds parses s like ParseDuration and returns whole seconds.
func Seconds(s string) (int, error) {
	d, err := ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return int(math.Round(d.Seconds())), nil
}

// IsClock reports whether s uses the clock separator.
func IsClock(s string) bool {
	return strings.Contains(s, ":")
}
