package generic_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasc/site/generic"
)

// =============================================================================
// CALENDAR TESTS
// =============================================================================

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"leap february", generic.NewDate(2024, time.February, 15), generic.NewDate(2024, time.February, 29)},
		{"plain february", generic.NewDate(2023, time.February, 1), generic.NewDate(2023, time.February, 28)},
		{"december rolls year", generic.NewDate(2025, time.December, 31), generic.NewDate(2025, time.December, 31)},
		{"thirty day month", generic.NewDate(2025, time.April, 30), generic.NewDate(2025, time.April, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(generic.LastDayOfMonth(tt.in)), "got %s", generic.LastDayOfMonth(tt.in))
		})
	}
}

func TestLastDayOfMonth_UsesCallerLocationForMonth(t *testing.T) {
	// 2025-10-31 23:30 in Bogota is already November in UTC.
	bogota := time.FixedZone("COT", -5*60*60)
	now := time.Date(2025, time.October, 31, 23, 30, 0, 0, bogota)

	assert.Equal(t, generic.NewDate(2025, time.October, 31), generic.LastDayOfMonth(now))
	assert.Equal(t, generic.NewDate(2025, time.November, 1), generic.StartOfNextMonth(now))
}

func TestCeilDaysBetween(t *testing.T) {
	a := generic.NewDate(2020, time.January, 1)
	b := generic.NewDate(2020, time.March, 1)

	assert.Equal(t, 60, generic.CeilDaysBetween(a, b))
	assert.Equal(t, 60, generic.CeilDaysBetween(b, a), "distance is absolute")
	assert.Equal(t, 0, generic.CeilDaysBetween(a, a))
	assert.Equal(t, 1, generic.CeilDaysBetween(a, a.Add(time.Hour)), "partial days round up")
}

func TestYearMonth(t *testing.T) {
	ym, err := generic.ParseYearMonth("2024-12")
	require.NoError(t, err)

	assert.Equal(t, "2024-12", ym.String())
	assert.Equal(t, "2025-01", ym.Next().String())
	assert.True(t, ym.Before(ym.Next()))
	assert.False(t, ym.Next().Before(ym))
	assert.Equal(t, generic.NewDate(2024, time.December, 1), ym.Start())

	_, err = generic.ParseYearMonth("2024-13")
	assert.ErrorIs(t, err, generic.ErrInvalidYearMonth)
	_, err = generic.ParseYearMonth("24-1")
	assert.ErrorIs(t, err, generic.ErrInvalidYearMonth)
}

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("2020-03-01")
	require.NoError(t, err)
	assert.Equal(t, generic.NewDate(2020, time.March, 1), d)

	_, err = generic.ParseDate("01/03/2020")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

// =============================================================================
// MONEY TESTS
// =============================================================================

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$ 0"},
		{"999", "$ 999"},
		{"1000", "$ 1.000"},
		{"1847575.06", "$ 1.847.575"},
		{"1847575.5", "$ 1.847.576"},
		{"1300000", "$ 1.300.000"},
		{"-1234.4", "-$ 1.234"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, generic.FormatCOP(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := generic.ParseAmount(" 1000000 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(1000000)))

	d, err = generic.ParseAmount("-100.5")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("-100.5")))

	// 15 integer digits is the largest accepted amount.
	_, err = generic.ParseAmount("999999999999999.99")
	require.NoError(t, err)
	_, err = generic.ParseAmount("000000001000000")
	require.NoError(t, err)

	for _, bad := range []string{
		"", "abc", "1.000.000", "1e1000", "1E5", "1e2000000000", "0x10",
		"Infinity", "NaN", ".5", "5.", "1000000000000000", "0.1234567890123456",
	} {
		_, err := generic.ParseAmount(bad)
		assert.ErrorIs(t, err, generic.ErrInvalidAmount, bad)
	}
}

func TestWithinAmountLimit(t *testing.T) {
	assert.True(t, generic.WithinAmountLimit(decimal.RequireFromString("999999999999999.99")))
	assert.True(t, generic.WithinAmountLimit(decimal.RequireFromString("-999999999999999")))
	assert.False(t, generic.WithinAmountLimit(decimal.New(1, 15)))
	assert.False(t, generic.WithinAmountLimit(decimal.RequireFromString("1e1000")))
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"360", 360},
		{" 120 ", 120},
		{"-30", -30},
		{"+15", 15},
		{"1.5", 1},
		{"30 días", 30},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{"9223372036854775808", math.MaxInt},
		{"-9223372036854775809", math.MinInt},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, generic.ParseLeadingInt(tt.in))
		})
	}
}

func TestParseDigits(t *testing.T) {
	assert.True(t, generic.ParseDigits("1.300.000").Equal(decimal.NewFromInt(1300000)))
	assert.True(t, generic.ParseDigits("$ 162,000").Equal(decimal.NewFromInt(162000)))
	assert.True(t, generic.ParseDigits("").IsZero())
	assert.True(t, generic.ParseDigits("n/a").IsZero())
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestValidationError(t *testing.T) {
	verr := generic.NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("salary", "Ingrese el salario")
	verr.Add("salary", "ignored")
	verr.Add("endDate", "Ingrese la fecha final")

	err := verr.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrValidation))
	assert.True(t, generic.IsClientError(err))
	assert.Equal(t, "Ingrese el salario", verr.Fields["salary"])
	assert.Equal(t, "validation failed: endDate: Ingrese la fecha final; salary: Ingrese el salario", err.Error())
}

func TestDateOf(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	evening := time.Date(2021, time.February, 10, 20, 0, 0, 0, bogota)

	assert.Equal(t, generic.NewDate(2021, time.February, 10), generic.DateOf(evening))
	assert.Equal(t, generic.NewDate(2021, time.February, 11), generic.DateOf(evening.UTC()))
}
