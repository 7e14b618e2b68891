package actuarial

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clasc/site/generic"
)

// Calculator runs the actuarial debt estimate against an injected index
// table and clock. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	Rates IndexTable
	Clock generic.Clock
}

// NewCalculator returns a Calculator. A nil clock means the UTC wall clock.
func NewCalculator(rates IndexTable, clock generic.Clock) *Calculator {
	if clock == nil {
		clock = generic.SystemClock(time.UTC)
	}
	return &Calculator{Rates: rates, Clock: clock}
}

// Calculate estimates the debt for the omission period [start, end] at the
// given monthly salary. It does not validate; run ValidateInputs first.
func (c *Calculator) Calculate(start, end time.Time, salary decimal.Decimal) Result {
	weeks := WeeksBetween(start, end)
	weekly := WeeklyBase(salary)
	base := BaseAmount(weeks, weekly)

	first, second := PaymentDates(c.Clock())

	// Each deadline accumulates independently from the same start month,
	// against one version of the table.
	rates := pinned(c.Rates)
	firstFactor := AccumulatedFactor(rates, end, first)
	secondFactor := AccumulatedFactor(rates, end, second)

	return Result{
		BaseAmount:          base,
		WeeksMissing:        weeks,
		WeeklyBase:          weekly,
		FirstPaymentDate:    first,
		SecondPaymentDate:   second,
		FirstPaymentFactor:  firstFactor,
		SecondPaymentFactor: secondFactor,
		FirstPaymentAmount:  base.Mul(firstFactor),
		SecondPaymentAmount: base.Mul(secondFactor),
	}
}

// CalculateInput is Calculate over an Input value.
func (c *Calculator) CalculateInput(in Input) Result {
	return c.Calculate(in.StartDate, in.EndDate, in.Salary)
}

// =============================================================================
// PIPELINE STAGES
// =============================================================================

// WeeksBetween counts the whole weeks in the omission period:
// floor(ceil(|end - start| in days) / 7).
func WeeksBetween(start, end time.Time) int {
	return generic.CeilDaysBetween(start, end) / 7
}

// WeeklyBase is the monthly salary spread over WeeksPerMonth.
func WeeklyBase(salary decimal.Decimal) decimal.Decimal {
	return salary.Div(WeeksPerMonth)
}

// BaseAmount is the unindexed principal owed before monetary correction.
func BaseAmount(weeks int, weeklyBase decimal.Decimal) decimal.Decimal {
	return weeklyBase.Mul(decimal.NewFromInt(int64(weeks)))
}

// MonthlyFactor is 1 + IPC(ym) + TechnicalInterestRate/12.
func MonthlyFactor(rates IndexTable, ym generic.YearMonth) decimal.Decimal {
	rate := decimal.Zero
	if rates != nil {
		rate = rates.Rate(ym)
	}
	return decimal.NewFromInt(1).
		Add(rate).
		Add(TechnicalInterestRate.Div(monthsPerYear))
}

// AccumulationStart is January 1 of the year after the omission period ends.
// Indexation only begins there.
func AccumulationStart(end time.Time) time.Time {
	return generic.StartOfYear(end.Year() + 1)
}

// AccumulatedFactor multiplies the monthly factor of every calendar month from
// AccumulationStart(end) through the month containing target. When the start
// is already past target the factor stays at 1.
func AccumulatedFactor(rates IndexTable, end, target time.Time) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	for current := AccumulationStart(end); !current.After(target); current = current.AddDate(0, 1, 0) {
		factor = factor.Mul(MonthlyFactor(rates, generic.YearMonthOf(current))).Round(factorPlaces)
	}
	return factor
}

// PaymentDates returns the last calendar day of now's month and of the month
// after it.
func PaymentDates(now time.Time) (first, second time.Time) {
	first = generic.LastDayOfMonth(now)
	second = generic.LastDayOfMonth(generic.StartOfNextMonth(now))
	return first, second
}
