/*
Package factory provides JSON to Go conversion of the calculator reference data.

PURPOSE:
  Converts a JSON rates document into an actuarial.StaticTable. This lets the
  firm publish a new month of IPC (or a new minimum wage) without a code
  change: drop the updated file next to the binary, or import it into the
  SQLite reference store with `clasc rates seed`.

JSON SCHEMA:
  {
    "ipc": {
      "2024-01": "0.0092",
      "2024-02": 0.0123
    },
    "minimum_wage": {
      "2024": "1300000"
    }
  }

  Rates and wages may be JSON strings or numbers. IPC rates may be negative
  (deflation months); wages must be positive.

KEY FEATURES:
  - Validates every YYYY-MM key and every year key
  - Round-trips: ToJSON(FromJSON(doc)) describes the same table
  - Reads from bytes, io.Reader or a file path

USAGE:
  f := factory.NewRateTableFactory()
  table, err := f.ParseFile("rates.json")
  calc := actuarial.NewCalculator(table, clock)

SEE ALSO:
  - actuarial/rates.go: StaticTable and the built-in data
  - store/sqlite/sqlite.go: Persistent reference store
*/
package factory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RatesJSON is the JSON representation of the reference tables.
type RatesJSON struct {
	IPC         map[string]decimal.Decimal `json:"ipc"`
	MinimumWage map[string]decimal.Decimal `json:"minimum_wage,omitempty"`
}

// =============================================================================
// RATE TABLE FACTORY
// =============================================================================

// RateTableFactory converts JSON rate documents to tables.
type RateTableFactory struct{}

// NewRateTableFactory creates a new rate table factory.
func NewRateTableFactory() *RateTableFactory {
	return &RateTableFactory{}
}

// ParseRates parses a JSON document into a StaticTable.
func (f *RateTableFactory) ParseRates(data []byte) (*actuarial.StaticTable, error) {
	var rj RatesJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rates JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// ParseReader parses a JSON document read from r.
func (f *RateTableFactory) ParseReader(r io.Reader) (*actuarial.StaticTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates: %w", err)
	}
	return f.ParseRates(data)
}

// ParseFile parses the JSON document at path.
func (f *RateTableFactory) ParseFile(path string) (*actuarial.StaticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", path, err)
	}
	return f.ParseRates(data)
}

// FromJSON converts RatesJSON to a StaticTable.
func (f *RateTableFactory) FromJSON(rj RatesJSON) (*actuarial.StaticTable, error) {
	if len(rj.IPC) == 0 {
		return nil, generic.ErrEmptyRateTable
	}

	ipc := make(map[generic.YearMonth]decimal.Decimal, len(rj.IPC))
	for key, rate := range rj.IPC {
		ym, err := generic.ParseYearMonth(key)
		if err != nil {
			return nil, err
		}
		ipc[ym] = rate
	}

	wages := make(map[int]decimal.Decimal, len(rj.MinimumWage))
	for key, wage := range rj.MinimumWage {
		year, err := strconv.Atoi(key)
		if err != nil || year < 1900 || year > 9999 {
			return nil, fmt.Errorf("%w: minimum wage year %q", generic.ErrInvalidAmount, key)
		}
		if !wage.IsPositive() {
			return nil, fmt.Errorf("%w: minimum wage for %d must be positive", generic.ErrInvalidAmount, year)
		}
		wages[year] = wage
	}

	return actuarial.NewStaticTable(ipc, wages), nil
}

// ToJSON converts a StaticTable back to RatesJSON.
func (f *RateTableFactory) ToJSON(table *actuarial.StaticTable) RatesJSON {
	rj := RatesJSON{
		IPC:         make(map[string]decimal.Decimal),
		MinimumWage: make(map[string]decimal.Decimal),
	}
	for _, r := range table.Rates() {
		rj.IPC[r.Month.String()] = r.Rate
	}
	for _, w := range table.MinimumWages() {
		rj.MinimumWage[strconv.Itoa(w.Year)] = w.Wage
	}
	return rj
}
