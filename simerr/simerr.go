/*
Package simerr centralizes the error kinds used across the simulator,
mirroring the teacher's generic/errors.go: sentinel errors for use with
errors.Is, plus structured error types that carry the offending ids so a
fatal abort can name exactly what broke.

Per the error-handling design (spec §7):
  - InvariantViolation and EmptyPool and ConfigError are fatal: the run
    aborts with a diagnostic naming offending ids.
  - CapacityExhausted is recovered locally by the caller (the month's
    actual project count is lowered); it is still returned as an error
    so the caller can log it as ClippedDraw-style info, not silently
    swallowed.
*/
package simerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation is wrapped by InvariantViolation. Fatal.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCapacityExhausted is wrapped by CapacityExhausted. Recovered locally.
	ErrCapacityExhausted = errors.New("capacity exhausted")

	// ErrEmptyPool is wrapped by EmptyPool. Fatal.
	ErrEmptyPool = errors.New("reference pool is empty")

	// ErrConfigError is wrapped by ConfigError. Fatal at startup.
	ErrConfigError = errors.New("invalid configuration")

	// ErrBadHistoryWrite is returned by the Workforce Store when an
	// insert would break the gapless, non-overlapping title-history
	// invariant.
	ErrBadHistoryWrite = errors.New("title history write would violate invariant")
)

// InvariantViolation is a fatal write that would break a stated
// invariant. Aborts the run with the offending ids and date.
type InvariantViolation struct {
	Rule   string
	Ids    []string
	At     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation [%s] ids=%v at=%s: %s", e.Rule, e.Ids, e.At, e.Detail)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }

// CapacityExhausted records that a planned project could not be staffed
// (no eligible PM, or no team members with free capacity). Recovered
// locally: the caller lowers that month's actual project count.
type CapacityExhausted struct {
	YearMonth string
	Reason    string
}

func (e *CapacityExhausted) Error() string {
	return fmt.Sprintf("capacity exhausted for %s: %s", e.YearMonth, e.Reason)
}

func (e *CapacityExhausted) Unwrap() error { return ErrCapacityExhausted }

// EmptyPool records that a reference table (clients, business units) was
// empty when a component needed to draw from it. Fatal.
type EmptyPool struct {
	Pool string
}

func (e *EmptyPool) Error() string { return fmt.Sprintf("reference pool %q is empty", e.Pool) }
func (e *EmptyPool) Unwrap() error  { return ErrEmptyPool }

// ConfigError records an out-of-range or missing configuration constant.
// Fatal at startup.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config error: %s: %s", e.Field, e.Detail) }
func (e *ConfigError) Unwrap() error  { return ErrConfigError }

// BadHistoryWrite records a rejected title-history insert.
type BadHistoryWrite struct {
	ConsultantID string
	Detail       string
}

func (e *BadHistoryWrite) Error() string {
	return fmt.Sprintf("bad history write for %s: %s", e.ConsultantID, e.Detail)
}
func (e *BadHistoryWrite) Unwrap() error { return ErrBadHistoryWrite }

// IsFatal reports whether err should abort the run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvariantViolation) ||
		errors.Is(err, ErrEmptyPool) ||
		errors.Is(err, ErrConfigError) ||
		errors.Is(err, ErrBadHistoryWrite)
}

// IsRecoverable reports whether err is handled locally without aborting.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCapacityExhausted)
}
