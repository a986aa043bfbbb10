package game

import (
	"errors"
	"fmt"
)

var (
	// ErrSetup marks problems with the deck, the catalog or the settings.
	ErrSetup = errors.New("invalid game setup")
	// ErrInvariantViolation marks an internal inconsistency of the engine.
	// Runs failing with it are bugs and are never retried.
	ErrInvariantViolation = errors.New("engine invariant violated")
)

func setupError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSetup, fmt.Sprintf(format, args...))
}

func invariantError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
