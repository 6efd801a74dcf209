// Package convert translates colors between hex, rgb() and hsl() notations.
//
// RGB is the pivot representation: hex and HSL never convert into each other
// directly. All functions are pure and safe for concurrent use.
package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports input that is syntactically wrong: a bad hex length,
	// a non-hex digit, a malformed rgb()/hsl() string, a fractional channel
	// or a number that is not finite.
	ErrFormat = errors.New("invalid color format")

	// ErrRange reports a well-formed number outside its domain.
	ErrRange = errors.New("color value out of range")
)

func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFormat}, args...)...)
}

func rangeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRange}, args...)...)
}

// Kind names the error class of err: "format", "range" or "" when err does
// not come from this package.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrRange):
		return "range"
	default:
		return ""
	}
}
