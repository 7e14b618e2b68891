/*
Package liquidation estimates a Colombian labor settlement (liquidación de
prestaciones sociales) for a worker leaving a job.

PURPOSE:
  Given the monthly base salary, the transport aid and the days worked, the
  estimator returns each social benefit and their total. It is pure
  arithmetic over a value: no state, no I/O.

FORMULAS (commercial year of 360 days):
  Severance (cesantías):             salary * days / 360
  Severance interest:                severance * days * 12% / 360
  Service bonus (prima de servicios): salary * days / 360
  Vacation:                          salary * days / 720
  Total:                             sum of the four

  Transport aid is reported back with the breakdown but is not part of the
  total.

USAGE:
  s := liquidation.Settlement{
      BaseSalary:   decimal.NewFromInt(1300000),
      TransportAid: decimal.NewFromInt(162000),
      DaysWorked:   360,
  }
  if err := s.Validate(); err != nil { ... }
  b := s.Breakdown()
  fmt.Println(generic.FormatCOP(b.Total))

SEE ALSO:
  - actuarial/: The other calculator on the site
  - api/handlers.go: LiquidationCalculate endpoint
*/
package liquidation

import (
	"github.com/shopspring/decimal"

	"github.com/clasc/site/generic"
)

var (
	commercialYear     = decimal.NewFromInt(360)
	halfCommercialYear = decimal.NewFromInt(720)

	// SeveranceInterestRate is the annual interest owed on severance.
	SeveranceInterestRate = decimal.RequireFromString("0.12")
)

// MaxDaysWorked is a hundred commercial years.
const MaxDaysWorked = 100 * 360

// =============================================================================
// SETTLEMENT
// =============================================================================

// Settlement is the input to one liquidation estimate.
type Settlement struct {
	BaseSalary   decimal.Decimal
	TransportAid decimal.Decimal
	DaysWorked   int
}

// Breakdown is the result of one estimate.
type Breakdown struct {
	BaseSalary        decimal.Decimal
	TransportAid      decimal.Decimal
	DaysWorked        int
	Severance         decimal.Decimal
	SeveranceInterest decimal.Decimal
	ServiceBonus      decimal.Decimal
	Vacation          decimal.Decimal
	Total             decimal.Decimal
}

// ParseSettlement reads form values. The money fields may be grouped, as in
// "1.300.000": non-digit characters are dropped. Days keep their sign and stop
// at the first non-digit, so "-30" stays negative and "1.5" is 1. Blank fields
// read as zero.
func ParseSettlement(baseSalary, transportAid, daysWorked string) Settlement {
	return Settlement{
		BaseSalary:   generic.ParseDigits(baseSalary),
		TransportAid: generic.ParseDigits(transportAid),
		DaysWorked:   generic.ParseLeadingInt(daysWorked),
	}
}

// Validate rejects negative inputs and values out of any plausible range.
func (s Settlement) Validate() error {
	verr := generic.NewValidationError()
	switch {
	case s.BaseSalary.IsNegative():
		verr.Add("base_salary", "El salario base no puede ser negativo")
	case !generic.WithinAmountLimit(s.BaseSalary):
		verr.Add("base_salary", "El salario base es demasiado alto")
	}
	switch {
	case s.TransportAid.IsNegative():
		verr.Add("transport_aid", "El auxilio de transporte no puede ser negativo")
	case !generic.WithinAmountLimit(s.TransportAid):
		verr.Add("transport_aid", "El auxilio de transporte es demasiado alto")
	}
	switch {
	case s.DaysWorked < 0:
		verr.Add("days_worked", "Los días trabajados no pueden ser negativos")
	case s.DaysWorked > MaxDaysWorked:
		verr.Add("days_worked", "Los días trabajados superan el máximo permitido")
	}
	return verr.OrNil()
}

func (s Settlement) days() decimal.Decimal { return decimal.NewFromInt(int64(s.DaysWorked)) }

// Severance is salary * days / 360.
func (s Settlement) Severance() decimal.Decimal {
	return s.BaseSalary.Mul(s.days()).Div(commercialYear)
}

// SeveranceInterest is severance * days * 12% / 360.
func (s Settlement) SeveranceInterest() decimal.Decimal {
	return s.Severance().Mul(s.days()).Mul(SeveranceInterestRate).Div(commercialYear)
}

// ServiceBonus is salary * days / 360.
func (s Settlement) ServiceBonus() decimal.Decimal {
	return s.BaseSalary.Mul(s.days()).Div(commercialYear)
}

// Vacation is salary * days / 720.
func (s Settlement) Vacation() decimal.Decimal {
	return s.BaseSalary.Mul(s.days()).Div(halfCommercialYear)
}

// Total sums the four benefits.
func (s Settlement) Total() decimal.Decimal {
	return s.Severance().
		Add(s.SeveranceInterest()).
		Add(s.ServiceBonus()).
		Add(s.Vacation())
}

// Breakdown computes every line of the settlement.
func (s Settlement) Breakdown() Breakdown {
	return Breakdown{
		BaseSalary:        s.BaseSalary,
		TransportAid:      s.TransportAid,
		DaysWorked:        s.DaysWorked,
		Severance:         s.Severance(),
		SeveranceInterest: s.SeveranceInterest(),
		ServiceBonus:      s.ServiceBonus(),
		Vacation:          s.Vacation(),
		Total:             s.Total(),
	}
}
