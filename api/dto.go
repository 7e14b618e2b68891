/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculators' decimal/time model from the wire contract:
  - Money travels as decimal strings (no float rounding in transit)
  - Every amount also has a *_formatted COP rendering for display
  - Dates are YYYY-MM-DD

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Actuarial:
    ActuarialRequest, ActuarialResultDTO, PaymentDTO
    ValidateRequest, ValidateResponse

  Liquidation:
    LiquidationRequest, LiquidationResultDTO

  Reference data:
    RatesDTO, MonthlyRateDTO, YearlyWageDTO

  Errors:
    ErrorResponse, ValidationErrorResponse

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
  Form fields arrive as strings, exactly as typed, so the handlers can
  report per-field messages.

SEE ALSO:
  - handlers.go: Uses these types
  - site.go: Site content types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
	"github.com/clasc/site/liquidation"
)

// =============================================================================
// ACTUARIAL
// =============================================================================

// ActuarialRequest is the actuarial calculator form.
type ActuarialRequest struct {
	ContributorDocType   string `json:"contributor_doc_type"`
	ContributorDocNumber string `json:"contributor_doc_number"`
	WorkerDocType        string `json:"worker_doc_type"`
	WorkerDocNumber      string `json:"worker_doc_number"`
	Gender               string `json:"gender"`
	BirthDate            string `json:"birth_date"`
	PreviousWeeks        string `json:"previous_weeks"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	Salary               string `json:"salary"`
}

// PaymentDTO is one projected payment deadline.
type PaymentDTO struct {
	Date            string `json:"date"`
	Factor          string `json:"factor"`
	Amount          string `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
}

// ActuarialResultDTO is the actuarial estimate.
type ActuarialResultDTO struct {
	WeeksMissing        int        `json:"weeks_missing"`
	WeeklyBase          string     `json:"weekly_base"`
	WeeklyBaseFormatted string     `json:"weekly_base_formatted"`
	BaseAmount          string     `json:"base_amount"`
	BaseAmountFormatted string     `json:"base_amount_formatted"`
	FirstPayment        PaymentDTO `json:"first_payment"`
	SecondPayment       PaymentDTO `json:"second_payment"`
}

// ValidateRequest carries only the fields the advisory validator reads.
type ValidateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Salary    string `json:"salary"`
}

// ValidateResponse lists advisory messages; Valid is true when there are none.
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// =============================================================================
// LIQUIDATION
// =============================================================================

// LiquidationRequest is the liquidation calculator form. Amounts may be
// grouped ("1.300.000").
type LiquidationRequest struct {
	BaseSalary   string `json:"base_salary"`
	TransportAid string `json:"transport_aid"`
	DaysWorked   string `json:"days_worked"`
}

// AmountDTO is a decimal amount with its COP rendering.
type AmountDTO struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

// LiquidationResultDTO is the liquidation breakdown.
type LiquidationResultDTO struct {
	BaseSalary        AmountDTO `json:"base_salary"`
	TransportAid      AmountDTO `json:"transport_aid"`
	DaysWorked        int       `json:"days_worked"`
	Severance         AmountDTO `json:"severance"`
	SeveranceInterest AmountDTO `json:"severance_interest"`
	ServiceBonus      AmountDTO `json:"service_bonus"`
	Vacation          AmountDTO `json:"vacation"`
	Total             AmountDTO `json:"total"`
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

type MonthlyRateDTO struct {
	Month string `json:"month"`
	Rate  string `json:"rate"`
}

type YearlyWageDTO struct {
	Year      int    `json:"year"`
	Wage      string `json:"wage"`
	Formatted string `json:"formatted"`
}

// RatesDTO publishes the constants and tables behind the estimates.
type RatesDTO struct {
	TechnicalInterestRate string           `json:"technical_interest_rate"`
	WeeksPerMonth         string           `json:"weeks_per_month"`
	IPC                   []MonthlyRateDTO `json:"ipc"`
	MinimumWages          []YearlyWageDTO  `json:"minimum_wages"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ValidationErrorResponse reports per-field form messages.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// moneyPlaces is the precision of raw decimal strings in responses.
const moneyPlaces = 2

func amountDTO(d decimal.Decimal) AmountDTO {
	return AmountDTO{Value: d.StringFixed(moneyPlaces), Formatted: generic.FormatCOP(d)}
}

func formatDate(t time.Time) string { return t.Format(generic.DateLayout) }

func toPaymentDTO(date time.Time, factor, amount decimal.Decimal) PaymentDTO {
	return PaymentDTO{
		Date:            formatDate(date),
		Factor:          factor.StringFixed(10),
		Amount:          amount.StringFixed(moneyPlaces),
		AmountFormatted: generic.FormatCOP(amount),
	}
}

func toActuarialResultDTO(r actuarial.Result) ActuarialResultDTO {
	return ActuarialResultDTO{
		WeeksMissing:        r.WeeksMissing,
		WeeklyBase:          r.WeeklyBase.StringFixed(moneyPlaces),
		WeeklyBaseFormatted: generic.FormatCOP(r.WeeklyBase),
		BaseAmount:          r.BaseAmount.StringFixed(moneyPlaces),
		BaseAmountFormatted: generic.FormatCOP(r.BaseAmount),
		FirstPayment:        toPaymentDTO(r.FirstPaymentDate, r.FirstPaymentFactor, r.FirstPaymentAmount),
		SecondPayment:       toPaymentDTO(r.SecondPaymentDate, r.SecondPaymentFactor, r.SecondPaymentAmount),
	}
}

func toLiquidationResultDTO(b liquidation.Breakdown) LiquidationResultDTO {
	return LiquidationResultDTO{
		BaseSalary:        amountDTO(b.BaseSalary),
		TransportAid:      amountDTO(b.TransportAid),
		DaysWorked:        b.DaysWorked,
		Severance:         amountDTO(b.Severance),
		SeveranceInterest: amountDTO(b.SeveranceInterest),
		ServiceBonus:      amountDTO(b.ServiceBonus),
		Vacation:          amountDTO(b.Vacation),
		Total:             amountDTO(b.Total),
	}
}

func toRatesDTO(table RateTables) RatesDTO {
	dto := RatesDTO{
		TechnicalInterestRate: actuarial.TechnicalInterestRate.String(),
		WeeksPerMonth:         actuarial.WeeksPerMonth.String(),
		IPC:                   []MonthlyRateDTO{},
		MinimumWages:          []YearlyWageDTO{},
	}
	for _, r := range table.Rates() {
		dto.IPC = append(dto.IPC, MonthlyRateDTO{Month: r.Month.String(), Rate: r.Rate.String()})
	}
	for _, w := range table.MinimumWages() {
		dto.MinimumWages = append(dto.MinimumWages, YearlyWageDTO{
			Year:      w.Year,
			Wage:      w.Wage.String(),
			Formatted: generic.FormatCOP(w.Wage),
		})
	}
	return dto
}
