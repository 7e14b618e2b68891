/*
handlers.go - HTTP API handlers for the site and its calculators

PURPOSE:
  Exposes the actuarial and liquidation calculators, their reference data
  and the landing page content over HTTP. Handles request decoding,
  form-level validation and JSON serialization; the arithmetic lives in
  actuarial/ and liquidation/.

ENDPOINTS:
  Calculators:
    POST   /api/calculators/actuarial           Full actuarial estimate
    POST   /api/calculators/actuarial/validate  Advisory checks only
    POST   /api/calculators/liquidation         Labor settlement breakdown

  Reference data:
    GET    /api/rates                           IPC table, minimum wages, constants
    GET    /api/site                            Landing page content

  Operations:
    GET    /healthz                             Liveness

REQUEST FLOW:
  1. Decode JSON body (400 on malformed input)
  2. Field checks: presence, select values, date format
  3. Calculator validation (actuarial.ValidateInputs)
  4. Any message from 2 or 3 → 422 with {"errors": {field: message}}
  5. Calculate and serialize

PRIVACY:
  The actuarial form carries identity documents and birth dates. They are
  checked for presence and never logged, stored or echoed back.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - page.go: Server-rendered landing page
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
	"github.com/clasc/site/liquidation"
	"github.com/clasc/site/metrics"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// RateTables is the reference data published by the API. Both
// actuarial.StaticTable and actuarial.ReloadableTable satisfy it.
type RateTables interface {
	Rates() []actuarial.MonthlyRate
	MinimumWages() []actuarial.YearlyWage
	MinimumWage(year int) (decimal.Decimal, bool)
}

// Handler holds the dependencies of every endpoint. All of them are read-only
// after construction, so a single Handler serves concurrent requests.
type Handler struct {
	Calculator *actuarial.Calculator
	Rates      RateTables
	Site       SiteDTO
	Logger     *zap.Logger
}

// NewHandler wires a Handler. A nil logger discards log output.
func NewHandler(calc *actuarial.Calculator, rates RateTables, site SiteDTO, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Calculator: calc,
		Rates:      rates,
		Site:       site,
		Logger:     logger,
	}
}

// Form messages shown next to each field.
const (
	msgSelectDocType    = "Seleccione el tipo de documento"
	msgEnterDocNumber   = "Ingrese el número de documento"
	msgSelectGender     = "Seleccione el género"
	msgEnterBirthDate   = "Ingrese la fecha de nacimiento"
	msgEnterWeeks       = "Ingrese las semanas cotizadas"
	msgEnterStartDate   = "Ingrese la fecha de inicio"
	msgEnterEndDate     = "Ingrese la fecha final"
	msgEnterSalary      = "Ingrese el salario"
	msgInvalidDate      = "Ingrese una fecha válida (AAAA-MM-DD)"
	msgInvalidWeeks     = "Las semanas cotizadas deben ser un número entero no negativo"
	msgValidationFailed = "Revise los datos del formulario"
)

// =============================================================================
// ACTUARIAL ENDPOINTS
// =============================================================================

// ActuarialCalculate runs the full actuarial estimate.
func (h *Handler) ActuarialCalculate(w http.ResponseWriter, r *http.Request) {
	var req ActuarialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	fields := checkActuarialForm(req)
	for i, msg := range h.Calculator.ValidateInputs(req.StartDate, req.EndDate, req.Salary) {
		fields.Add(fmt.Sprintf("calculation_%d", i), msg)
	}
	if !fields.Empty() {
		h.reject(w, metrics.CalculatorActuarial, fields)
		return
	}

	// Both dates and the salary parsed during validation.
	start, _ := generic.ParseDate(req.StartDate)
	end, _ := generic.ParseDate(req.EndDate)
	salary, _ := generic.ParseAmount(req.Salary)

	began := time.Now()
	result := h.Calculator.Calculate(start, end, salary)
	metrics.CalculationDuration.WithLabelValues(metrics.CalculatorActuarial).Observe(time.Since(began).Seconds())
	metrics.CalculationsTotal.WithLabelValues(metrics.CalculatorActuarial).Inc()

	h.Logger.Debug("actuarial estimate",
		zap.Int("weeks_missing", result.WeeksMissing),
		zap.String("first_payment_date", formatDate(result.FirstPaymentDate)),
	)

	writeJSON(w, http.StatusOK, toActuarialResultDTO(result))
}

// ActuarialValidate runs only the calculator's advisory checks, for inline
// form feedback. It always answers 200.
func (h *Handler) ActuarialValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msgs := h.Calculator.ValidateInputs(req.StartDate, req.EndDate, req.Salary)
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: len(msgs) == 0, Errors: msgs})
}

// checkActuarialForm applies the per-field presence and format checks.
func checkActuarialForm(req ActuarialRequest) *generic.ValidationError {
	fields := generic.NewValidationError()

	requireOption(fields, "contributor_doc_type", req.ContributorDocType, docTypeOptions, msgSelectDocType)
	requireText(fields, "contributor_doc_number", req.ContributorDocNumber, msgEnterDocNumber)
	requireOption(fields, "worker_doc_type", req.WorkerDocType, docTypeOptions, msgSelectDocType)
	requireText(fields, "worker_doc_number", req.WorkerDocNumber, msgEnterDocNumber)
	requireOption(fields, "gender", req.Gender, genderOptions, msgSelectGender)

	requireDate(fields, "birth_date", req.BirthDate, msgEnterBirthDate)
	requireDate(fields, "start_date", req.StartDate, msgEnterStartDate)
	requireDate(fields, "end_date", req.EndDate, msgEnterEndDate)

	if requireText(fields, "previous_weeks", req.PreviousWeeks, msgEnterWeeks) {
		if n, err := strconv.Atoi(strings.TrimSpace(req.PreviousWeeks)); err != nil || n < 0 {
			fields.Add("previous_weeks", msgInvalidWeeks)
		}
	}
	requireText(fields, "salary", req.Salary, msgEnterSalary)

	return fields
}

func requireText(fields *generic.ValidationError, name, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		fields.Add(name, msg)
		return false
	}
	return true
}

func requireOption(fields *generic.ValidationError, name, value string, opts []Option, msg string) {
	if !validOption(opts, value) {
		fields.Add(name, msg)
	}
}

func requireDate(fields *generic.ValidationError, name, value, msg string) {
	if !requireText(fields, name, value, msg) {
		return
	}
	if _, err := generic.ParseDate(value); err != nil {
		fields.Add(name, msgInvalidDate)
	}
}

// =============================================================================
// LIQUIDATION ENDPOINT
// =============================================================================

// LiquidationCalculate estimates a labor settlement.
func (h *Handler) LiquidationCalculate(w http.ResponseWriter, r *http.Request) {
	var req LiquidationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s := liquidation.ParseSettlement(req.BaseSalary, req.TransportAid, req.DaysWorked)
	if err := s.Validate(); err != nil {
		var verr *generic.ValidationError
		if errors.As(err, &verr) {
			h.reject(w, metrics.CalculatorLiquidation, verr)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid settlement", err)
		return
	}

	began := time.Now()
	breakdown := s.Breakdown()
	metrics.CalculationDuration.WithLabelValues(metrics.CalculatorLiquidation).Observe(time.Since(began).Seconds())
	metrics.CalculationsTotal.WithLabelValues(metrics.CalculatorLiquidation).Inc()

	writeJSON(w, http.StatusOK, toLiquidationResultDTO(breakdown))
}

// =============================================================================
// REFERENCE DATA ENDPOINTS
// =============================================================================

// GetRates publishes the reference tables behind the estimates.
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRatesDTO(h.Rates))
}

// GetSite returns the landing page content.
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Site)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// maxBodyBytes bounds request bodies; the forms are a few hundred bytes.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func (h *Handler) reject(w http.ResponseWriter, calculator string, fields *generic.ValidationError) {
	metrics.ValidationRejectionsTotal.WithLabelValues(calculator).Inc()
	h.Logger.Info("calculator input rejected",
		zap.String("calculator", calculator),
		zap.Int("fields", len(fields.Fields)),
	)
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:  msgValidationFailed,
		Errors: fields.Fields,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
