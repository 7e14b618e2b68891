package actuarial

import (
	"time"

	"github.com/clasc/site/generic"
)

// User-facing validation messages, as shown on the calculator form.
const (
	MsgEndBeforeStart = "La fecha final debe ser posterior a la fecha inicial"
	MsgSalaryInvalid  = "El salario debe ser un número positivo"
	MsgStartInFuture  = "La fecha inicial no puede ser futura"
)

// ValidateInputs checks raw form values against the calculator's clock and
// returns user-facing messages, or an empty slice when the inputs are usable.
// It never fails: a date that does not parse simply skips the comparisons it
// takes part in, since presence and format are the form layer's concern.
func (c *Calculator) ValidateInputs(startDate, endDate, salary string) []string {
	return ValidateInputs(startDate, endDate, salary, c.Clock())
}

// ValidateInputs is the clock-free form of Calculator.ValidateInputs.
func ValidateInputs(startDate, endDate, salary string, now time.Time) []string {
	errs := []string{}

	start, startErr := generic.ParseDate(startDate)
	end, endErr := generic.ParseDate(endDate)

	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, MsgEndBeforeStart)
	}

	amount, err := generic.ParseAmount(salary)
	if err != nil || !amount.IsPositive() {
		errs = append(errs, MsgSalaryInvalid)
	}

	// Compare calendar days in the clock's zone: after 19:00 in Bogotá the UTC
	// date is already tomorrow.
	if startErr == nil && start.After(generic.DateOf(now)) {
		errs = append(errs, MsgStartInFuture)
	}

	return errs
}
