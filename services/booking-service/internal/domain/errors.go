package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the booking engine. Everything the engine returns
// wraps exactly one of these, so transports map them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid request")
	ErrForbidden  = errors.New("forbidden")

	// ErrUnavailable marks a transient storage conflict (deadlock, lock
	// timeout). The engine retries these a bounded number of times.
	ErrUnavailable = errors.New("temporarily unavailable")
)

func NotFoundf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrNotFound)
}

func Validationf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrValidation)
}

func Forbiddenf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrForbidden)
}
