/*
Package generic provides the calculator-agnostic building blocks shared by
the actuarial and liquidation estimators.

PURPOSE:
  Both calculators work in Colombian pesos over calendar dates. This package
  owns the pieces they have in common so neither depends on the other:
  - Money: parsing and COP formatting of decimal amounts
  - Calendar: dates, month boundaries, YYYY-MM keys, injectable clocks
  - Errors: sentinel and structured validation errors

DESIGN PRINCIPLES:
  1. Precision: Money is decimal.Decimal, never float64
  2. Determinism: "now" is always an injected Clock
  3. Calendar dates are midnight UTC values

USAGE:
  salary, err := generic.ParseAmount("1000000")
  fmt.Println(generic.FormatCOP(salary)) // $ 1.000.000

SEE ALSO:
  - time.go: Calendar helpers
  - errors.go: Error types
*/
package generic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PARSING
// =============================================================================

// MaxAmountDigits bounds the integer and fractional parts of an amount the
// calculators accept.
const MaxAmountDigits = 15

var (
	plainAmount = regexp.MustCompile(`^[+-]?(\d+)(?:\.(\d+))?$`)
	maxAmount   = decimal.New(1, MaxAmountDigits)
)

// ParseAmount parses a plain decimal string such as "1000000" or "1250.50".
// Surrounding whitespace is ignored; an empty string is an error. Exponents,
// separators and more than MaxAmountDigits digits on either side of the point
// are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	m := plainAmount.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(strings.TrimLeft(m[1], "0")) > MaxAmountDigits || len(m[2]) > MaxAmountDigits {
		return decimal.Zero, fmt.Errorf("%w: more than %d digits", ErrInvalidAmount, MaxAmountDigits)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// WithinAmountLimit reports whether |d| has at most MaxAmountDigits integer
// digits.
func WithinAmountLimit(d decimal.Decimal) bool {
	return d.Abs().LessThan(maxAmount)
}

// ParseDigits keeps only the ASCII digits of s, so grouped input such as
// "1.300.000" or "$ 1,300,000" reads as 1300000. No digits means zero.
func ParseDigits(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseLeadingInt reads an integer the way a form's parseInt does: optional
// sign, then the leading run of digits; anything after it is ignored, so
// "1.5" is 1 and "30 días" is 30. No digits means zero. Values beyond the int
// range saturate at the bound instead of wrapping.
func ParseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, _ := strconv.ParseInt(s[:end], 10, strconv.IntSize)
	return int(n)
}

// MustParseDecimal parses s and panics on failure. Only for literals.
func MustParseDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// FORMATTING
// =============================================================================

// copSymbol is the peso sign followed by a no-break space, as es-CO renders it.
const copSymbol = "$ "

// FormatCOP renders amount as Colombian pesos with no decimals and "." as the
// thousands separator: 1847575.06 becomes "$ 1.847.575". Halves round away
// from zero; negatives render as "-$ 1.234".
func FormatCOP(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	grouped := strings.ReplaceAll(humanize.BigComma(rounded.BigInt()), ",", ".")
	return sign + copSymbol + grouped
}
