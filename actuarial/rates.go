package actuarial

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/clasc/site/generic"
)

// IndexTable resolves the monthly price-index (IPC) rate for a calendar
// month. Months without data resolve to zero.
type IndexTable interface {
	Rate(ym generic.YearMonth) decimal.Decimal
}

// StaticTable is an immutable in-memory reference table: monthly IPC rates
// plus the historical minimum wage per year. Safe for concurrent reads.
type StaticTable struct {
	ipc   map[string]decimal.Decimal
	wages map[int]decimal.Decimal
}

var _ IndexTable = (*StaticTable)(nil)

// NewStaticTable copies ipc (keyed YYYY-MM) and wages (keyed by year).
// Either map may be nil.
func NewStaticTable(ipc map[generic.YearMonth]decimal.Decimal, wages map[int]decimal.Decimal) *StaticTable {
	t := &StaticTable{
		ipc:   make(map[string]decimal.Decimal, len(ipc)),
		wages: make(map[int]decimal.Decimal, len(wages)),
	}
	for ym, r := range ipc {
		t.ipc[ym.String()] = r
	}
	for y, w := range wages {
		t.wages[y] = w
	}
	return t
}

// Rate returns the IPC rate for ym, or zero when the month is absent.
func (t *StaticTable) Rate(ym generic.YearMonth) decimal.Decimal {
	if r, ok := t.ipc[ym.String()]; ok {
		return r
	}
	return decimal.Zero
}

// MonthlyRate is one row of the IPC table.
type MonthlyRate struct {
	Month generic.YearMonth
	Rate  decimal.Decimal
}

// Rates lists the IPC table in chronological order.
func (t *StaticTable) Rates() []MonthlyRate {
	out := make([]MonthlyRate, 0, len(t.ipc))
	for k, r := range t.ipc {
		ym, err := generic.ParseYearMonth(k)
		if err != nil {
			continue
		}
		out = append(out, MonthlyRate{Month: ym, Rate: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// YearlyWage is one row of the minimum-wage table.
type YearlyWage struct {
	Year int
	Wage decimal.Decimal
}

// MinimumWages lists the minimum-wage table by year. The estimate never reads
// it; it is published as reference data only.
func (t *StaticTable) MinimumWages() []YearlyWage {
	out := make([]YearlyWage, 0, len(t.wages))
	for y, w := range t.wages {
		out = append(out, YearlyWage{Year: y, Wage: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MinimumWage returns the wage for year and whether it is known.
func (t *StaticTable) MinimumWage(year int) (decimal.Decimal, bool) {
	w, ok := t.wages[year]
	return w, ok
}

// Len is the number of IPC months in the table.
func (t *StaticTable) Len() int { return len(t.ipc) }

// =============================================================================
// BUILT-IN REFERENCE DATA
// =============================================================================

// DefaultIndexTable returns the built-in reference table.
//
// TODO: replace the sample IPC rows with the full DANE monthly series once
// it is published in the rates document.
func DefaultIndexTable() *StaticTable {
	ipc := map[generic.YearMonth]decimal.Decimal{}
	for k, v := range defaultIPC {
		ym, err := generic.ParseYearMonth(k)
		if err != nil {
			panic(err)
		}
		ipc[ym] = generic.MustParseDecimal(v)
	}
	wages := map[int]decimal.Decimal{}
	for y, v := range defaultMinimumWage {
		wages[y] = decimal.NewFromInt(v)
	}
	return NewStaticTable(ipc, wages)
}

var defaultIPC = map[string]string{
	"2003-01": "0.008",
	"2003-02": "0.007",
	"2025-04": "0.006",
	"2025-05": "0.006",
}

// Colombian monthly minimum wage (SMMLV). 2025 repeats 2024.
var defaultMinimumWage = map[int]int64{
	2003: 332000,
	2004: 358000,
	2005: 381500,
	2006: 408000,
	2007: 433700,
	2008: 461500,
	2009: 496900,
	2010: 515000,
	2011: 535600,
	2012: 566700,
	2013: 589500,
	2014: 616000,
	2015: 644350,
	2016: 689455,
	2017: 737717,
	2018: 781242,
	2019: 828116,
	2020: 877803,
	2021: 908526,
	2022: 1000000,
	2023: 1160000,
	2024: 1300000,
	2025: 1300000,
}
