package api

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
	"github.com/clasc/site/store/sqlite"
)

type stubLoader struct {
	table *actuarial.StaticTable
	err   error
	calls atomic.Int32
}

func (s *stubLoader) LoadTable(ctx context.Context) (*actuarial.StaticTable, error) {
	s.calls.Add(1)
	return s.table, s.err
}

func singleRateTable(month string, rate string) *actuarial.StaticTable {
	ym, _ := generic.ParseYearMonth(month)
	return actuarial.NewStaticTable(map[generic.YearMonth]decimal.Decimal{ym: decimal.RequireFromString(rate)}, nil)
}

func TestRatesRefresher_SwapsTable(t *testing.T) {
	// GIVEN: A server table and a store holding a newer IPC figure
	table := actuarial.NewReloadableTable(actuarial.DefaultIndexTable())
	loader := &stubLoader{table: singleRateTable("2025-06", "0.004")}
	rr := NewRatesRefresher(loader, table, zaptest.NewLogger(t))

	// WHEN: It refreshes
	changed := rr.Refresh(context.Background())

	// THEN: The new table is in service
	assert.True(t, changed)
	assert.Equal(t, 1, table.Len())
	assert.True(t, table.Rate(generic.YearMonth{Year: 2025, Month: time.June}).Equal(decimal.RequireFromString("0.004")))
}

func TestRatesRefresher_KeepsTableOnError(t *testing.T) {
	initial := actuarial.DefaultIndexTable()
	table := actuarial.NewReloadableTable(initial)
	rr := NewRatesRefresher(&stubLoader{err: generic.ErrEmptyRateTable}, table, zaptest.NewLogger(t))

	changed := rr.Refresh(context.Background())

	assert.False(t, changed)
	assert.Same(t, initial, table.Snapshot())
}

func TestRatesRefresher_FromSQLite(t *testing.T) {
	// GIVEN: A store seeded after the server started
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	table := actuarial.NewReloadableTable(actuarial.DefaultIndexTable())
	rr := NewRatesRefresher(store, table, zaptest.NewLogger(t))

	// WHEN: The store is empty the refresh is refused
	assert.False(t, rr.Refresh(ctx))

	// WHEN: A figure is added and refreshed
	require.NoError(t, store.SaveIndexRate(ctx, actuarial.MonthlyRate{
		Month: generic.YearMonth{Year: 2025, Month: time.July},
		Rate:  decimal.RequireFromString("0.0028"),
	}))
	require.True(t, rr.Refresh(ctx))

	// THEN: Calculations read it
	rate := table.Rate(generic.YearMonth{Year: 2025, Month: time.July})
	assert.True(t, rate.Equal(decimal.RequireFromString("0.0028")), "got %s", rate)
}

func TestRatesRefresher_StartStop(t *testing.T) {
	loader := &stubLoader{err: errors.New("unavailable")}
	rr := NewRatesRefresher(loader, actuarial.NewReloadableTable(actuarial.DefaultIndexTable()), zaptest.NewLogger(t))
	rr.Interval = 5 * time.Millisecond

	rr.Start()
	rr.Start() // second start is a no-op
	require.Eventually(t, func() bool { return loader.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	rr.Stop()
	rr.Stop()

	settled := loader.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, loader.calls.Load(), "no reloads after Stop")
}

func TestRatesRefresher_DisabledInterval(t *testing.T) {
	loader := &stubLoader{}
	rr := NewRatesRefresher(loader, actuarial.NewReloadableTable(actuarial.DefaultIndexTable()), zaptest.NewLogger(t))
	rr.Interval = 0

	rr.Start()
	rr.Stop()

	assert.Zero(t, loader.calls.Load())
}
