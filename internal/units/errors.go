package units

import "fmt"

// ParseError reports a malformed textual quantity.
type ParseError struct {
	Kind   string // "duration", "power", "pace", "distance", "number"
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %s", e.Kind, e.Input, e.Reason)
}

func parseErr(kind, input, reason string) error {
	return &ParseError{Kind: kind, Input: input, Reason: reason}
}
