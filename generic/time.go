package generic

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// CLOCK - Injected source of "now" so calculations can be pinned in tests
// =============================================================================

// Clock returns the current instant.
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
// A nil loc means UTC.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t. Used by tests and the CLI --now flag.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// =============================================================================
// CALENDAR DATES
// =============================================================================

// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf is the calendar day of t in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// StartOfMonth returns the first calendar day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), 1)
}

// LastDayOfMonth returns the last calendar day of t's month, computed as
// day 0 of the following month. 2024-02-15 yields 2024-02-29.
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// StartOfNextMonth returns the first calendar day of the month after t.
func StartOfNextMonth(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month()+1, 1)
}

// StartOfYear returns January 1 of year.
func StartOfYear(year int) time.Time { return NewDate(year, time.January, 1) }

// CeilDaysBetween returns the absolute distance between a and b in days,
// rounded up to the next whole day.
func CeilDaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}

// =============================================================================
// YEAR-MONTH KEY
// =============================================================================

// YearMonth identifies a calendar month. Its String form (YYYY-MM) is the key
// used by the price-index tables.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM key.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string { return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month)) }

// Start returns the first day of the month.
func (ym YearMonth) Start() time.Time { return NewDate(ym.Year, ym.Month, 1) }

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth { return YearMonthOf(ym.Start().AddDate(0, 1, 0)) }

// Before reports whether ym is an earlier month than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}
