/*
refresher.go - Periodic reference-table reload

PURPOSE:
  IPC figures are published monthly. Operators upsert them into the SQLite
  store (clasc rates seed, or directly), and the refresher swaps the new
  table into the running server without a restart.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - A failed or empty load keeps the table currently in service
  - In-flight calculations keep the table they started with
    (actuarial.ReloadableTable)

USAGE:
  refresher := NewRatesRefresher(store, table, logger)
  refresher.Interval = 6 * time.Hour
  refresher.Start()
  // ... later
  refresher.Stop()

SEE ALSO:
  - store/sqlite/sqlite.go: LoadTable
  - cmd/clasc/serve.go: Wiring (only when rates.db_path is set)
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
)

// TableLoader produces a fresh reference table.
type TableLoader interface {
	LoadTable(ctx context.Context) (*actuarial.StaticTable, error)
}

// RatesRefresher reloads the reference table on a fixed interval.
type RatesRefresher struct {
	Loader   TableLoader
	Table    *actuarial.ReloadableTable
	Logger   *zap.Logger
	Interval time.Duration
	Timeout  time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRatesRefresher creates a refresher checking every hour.
func NewRatesRefresher(loader TableLoader, table *actuarial.ReloadableTable, logger *zap.Logger) *RatesRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatesRefresher{
		Loader:   loader,
		Table:    table,
		Logger:   logger,
		Interval: 1 * time.Hour,
		Timeout:  10 * time.Second,
	}
}

// Start begins the refresh loop. A non-positive Interval disables it.
func (rr *RatesRefresher) Start() {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.Interval <= 0 {
		rr.Logger.Info("rates refresher disabled")
		return
	}
	if rr.ticker != nil {
		return
	}

	rr.ticker = time.NewTicker(rr.Interval)
	rr.stop = make(chan struct{})
	rr.wg.Add(1)
	go rr.run(rr.ticker, rr.stop)

	rr.Logger.Info("rates refresher started", zap.Duration("interval", rr.Interval))
}

// Stop ends the refresh loop and waits for an in-progress reload.
func (rr *RatesRefresher) Stop() {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.ticker == nil {
		return
	}
	rr.ticker.Stop()
	close(rr.stop)
	rr.wg.Wait()
	rr.ticker = nil
	rr.Logger.Info("rates refresher stopped")
}

func (rr *RatesRefresher) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer rr.wg.Done()

	for {
		select {
		case <-ticker.C:
			rr.Refresh(context.Background())
		case <-stop:
			return
		}
	}
}

// Refresh loads the table once and installs it. It reports whether the
// table in service changed.
func (rr *RatesRefresher) Refresh(ctx context.Context) bool {
	if rr.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rr.Timeout)
		defer cancel()
	}

	next, err := rr.Loader.LoadTable(ctx)
	if err != nil {
		rr.Logger.Warn("rates reload failed, keeping current table", zap.Error(err))
		return false
	}

	prev := rr.Table.Swap(next)
	rr.Logger.Info("rates reloaded",
		zap.Int("ipc_months", next.Len()),
		zap.Int("previous_ipc_months", prev.Len()),
	)
	return true
}
