// Package actuarial estimates the debt owed for social-security contributions
// that were not paid during an omission period, projected to the next two
// payment deadlines.
//
// The pipeline is a single-shot pure transformation:
//
//	weeks missing → weekly base → base amount → monthly factors → payment amounts
//
// Reference data (the monthly price-index table) is injected through
// IndexTable and "now" through a generic.Clock, so a Calculator never reads
// global state.
package actuarial

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTANTS
// =============================================================================

var (
	// TechnicalInterestRate is the fixed annual actuarial rate, applied as
	// one twelfth per month alongside the price index.
	TechnicalInterestRate = decimal.RequireFromString("0.035")

	// WeeksPerMonth is the average number of weeks in a month used to turn a
	// monthly salary into a weekly contribution base.
	WeeksPerMonth = decimal.RequireFromString("4.33")

	monthsPerYear = decimal.NewFromInt(12)
)

// factorPlaces bounds the scale of the running product so long omission
// periods do not grow the decimal without limit.
const factorPlaces = 18

// =============================================================================
// INPUT / RESULT
// =============================================================================

// Input is one omission period to estimate.
type Input struct {
	StartDate time.Time
	EndDate   time.Time
	Salary    decimal.Decimal
}

// Result is the full breakdown of one estimate. It is recomputed on every
// request and never stored.
type Result struct {
	BaseAmount   decimal.Decimal
	WeeksMissing int
	WeeklyBase   decimal.Decimal

	FirstPaymentDate  time.Time
	SecondPaymentDate time.Time

	FirstPaymentFactor  decimal.Decimal
	SecondPaymentFactor decimal.Decimal

	FirstPaymentAmount  decimal.Decimal
	SecondPaymentAmount decimal.Decimal
}
