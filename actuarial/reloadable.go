package actuarial

import (
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/clasc/site/generic"
)

// ReloadableTable serves a StaticTable that can be replaced while requests
// are reading it. Readers see either the old or the new table, never a mix.
type ReloadableTable struct {
	current atomic.Pointer[StaticTable]
}

var _ IndexTable = (*ReloadableTable)(nil)

// NewReloadableTable starts out serving initial, which must not be nil.
func NewReloadableTable(initial *StaticTable) *ReloadableTable {
	t := &ReloadableTable{}
	t.current.Store(initial)
	return t
}

// Snapshot returns the table in effect now.
func (t *ReloadableTable) Snapshot() *StaticTable { return t.current.Load() }

// Swap installs next and returns the table it replaced.
func (t *ReloadableTable) Swap(next *StaticTable) *StaticTable { return t.current.Swap(next) }

func (t *ReloadableTable) Rate(ym generic.YearMonth) decimal.Decimal {
	return t.Snapshot().Rate(ym)
}

func (t *ReloadableTable) Rates() []MonthlyRate { return t.Snapshot().Rates() }

func (t *ReloadableTable) MinimumWages() []YearlyWage { return t.Snapshot().MinimumWages() }

func (t *ReloadableTable) MinimumWage(year int) (decimal.Decimal, bool) {
	return t.Snapshot().MinimumWage(year)
}

func (t *ReloadableTable) Len() int { return t.Snapshot().Len() }

// snapshotter is implemented by tables that may change between reads.
type snapshotter interface {
	Snapshot() *StaticTable
}

// pinned returns a table that stays fixed for one calculation.
func pinned(rates IndexTable) IndexTable {
	if s, ok := rates.(snapshotter); ok {
		return s.Snapshot()
	}
	return rates
}
