package animspec

import (
	"errors"
	"fmt"
)

// Common errors returned by spec constructors and animations.
var (
	// ErrInvalidSpec indicates invalid spec parameters.
	ErrInvalidSpec = errors.New("invalid animation spec")

	// ErrNonFinite indicates an evaluation produced a NaN channel. It is
	// raised by panicking with a *NonFiniteError.
	ErrNonFinite = errors.New("animation produced a non-finite value")
)

// NonFiniteError describes an evaluation that produced NaN.
type NonFiniteError struct {
	Spec          string // spec kind, e.g. "tween" or "decay"
	PlayTimeNanos int64
	Channel       int
	Value         *Vector
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%v: %s spec at playtime %dns, channel %d of %v",
		ErrNonFinite, e.Spec, e.PlayTimeNanos, e.Channel, e.Value)
}

func (e *NonFiniteError) Unwrap() error {
	return ErrNonFinite
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...)
}
