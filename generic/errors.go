/*
errors.go - Centralized error types shared by the calculators

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculator packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Parse errors - dates, year-month keys, amounts
  2. Reference data errors - rate documents and stores
  3. Validation errors - user-facing field messages

USAGE:
  if errors.Is(err, generic.ErrInvalidYearMonth) {
      // reject the rate document
  }

  var verr *generic.ValidationError
  if errors.As(err, &verr) {
      // verr.Fields holds per-field Spanish messages
  }

SEE ALSO:
  - time.go: Date and YearMonth parsing
  - money.go: Amount parsing
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidYearMonth is returned when a rate key is not in YYYY-MM form.
	ErrInvalidYearMonth = errors.New("invalid year-month")

	// ErrInvalidAmount is returned when a monetary amount or rate cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when an amount must be non-negative.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrEmptyRateTable is returned when a reference source holds no index rates.
	ErrEmptyRateTable = errors.New("rate table is empty")

	// ErrValidation is the parent of every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError groups user-facing messages keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil returns nil when no field failed so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidYearMonth) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount)
}
