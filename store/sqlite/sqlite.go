/*
Package sqlite provides a SQLite-backed store for the calculator reference data.

PURPOSE:
  Keeps the monthly IPC series and the minimum-wage history in a small local
  database so the firm can maintain them between releases. The server reads
  the tables once at startup into an actuarial.StaticTable; requests never
  touch the database and nothing about a calculation is ever written.

KEY TABLES:
  index_rates:    month (YYYY-MM) → IPC rate, stored as decimal text
  minimum_wages:  year → monthly minimum wage, stored as decimal text

DECIMALS:
  Rates and wages are stored as TEXT in decimal.Decimal's canonical string
  form so no precision is lost to REAL columns.

CONCURRENCY:
  Uses sync.RWMutex around writes and reads. Seed runs in a single SQL
  transaction so a half-imported document is never visible.

USAGE:
  store, err := sqlite.New("./data/rates.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  // First run: import the built-in tables
  if err := store.Seed(ctx, actuarial.DefaultIndexTable()); err != nil { ... }

  table, err := store.LoadTable(ctx)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - actuarial/rates.go: StaticTable
  - factory/rates.go: JSON rate documents
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
)

// Store holds the reference tables in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS index_rates (
		month TEXT PRIMARY KEY,
		rate TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS minimum_wages (
		year INTEGER PRIMARY KEY,
		wage TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// INDEX RATES
// =============================================================================

// SaveIndexRate inserts or replaces the IPC rate for one month.
func (s *Store) SaveIndexRate(ctx context.Context, rate actuarial.MonthlyRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveIndexRate(ctx, s.db, rate)
}

func saveIndexRate(ctx context.Context, db execer, rate actuarial.MonthlyRate) error {
	query := `
		INSERT INTO index_rates (month, rate, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			rate = excluded.rate,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.ExecContext(ctx, query, rate.Month.String(), rate.Rate.String(), now); err != nil {
		return fmt.Errorf("failed to save index rate %s: %w", rate.Month, err)
	}
	return nil
}

// ListIndexRates returns every stored IPC rate in chronological order.
func (s *Store) ListIndexRates(ctx context.Context) ([]actuarial.MonthlyRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT month, rate FROM index_rates ORDER BY month")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []actuarial.MonthlyRate
	for rows.Next() {
		var month, rate string
		if err := rows.Scan(&month, &rate); err != nil {
			return nil, err
		}
		ym, err := generic.ParseYearMonth(month)
		if err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("%w: stored rate for %s: %v", generic.ErrInvalidAmount, month, err)
		}
		rates = append(rates, actuarial.MonthlyRate{Month: ym, Rate: d})
	}
	return rates, rows.Err()
}

// =============================================================================
// MINIMUM WAGES
// =============================================================================

// SaveMinimumWage inserts or replaces the minimum wage for one year.
func (s *Store) SaveMinimumWage(ctx context.Context, wage actuarial.YearlyWage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveMinimumWage(ctx, s.db, wage)
}

func saveMinimumWage(ctx context.Context, db execer, wage actuarial.YearlyWage) error {
	query := `
		INSERT INTO minimum_wages (year, wage, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			wage = excluded.wage,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.ExecContext(ctx, query, wage.Year, wage.Wage.String(), now); err != nil {
		return fmt.Errorf("failed to save minimum wage %d: %w", wage.Year, err)
	}
	return nil
}

// ListMinimumWages returns every stored minimum wage ordered by year.
func (s *Store) ListMinimumWages(ctx context.Context) ([]actuarial.YearlyWage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT year, wage FROM minimum_wages ORDER BY year")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wages []actuarial.YearlyWage
	for rows.Next() {
		var year int
		var wage string
		if err := rows.Scan(&year, &wage); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(wage)
		if err != nil {
			return nil, fmt.Errorf("%w: stored wage for %d: %v", generic.ErrInvalidAmount, year, err)
		}
		wages = append(wages, actuarial.YearlyWage{Year: year, Wage: d})
	}
	return wages, rows.Err()
}

// =============================================================================
// TABLE IMPORT / EXPORT
// =============================================================================

// Seed upserts every row of table in one SQL transaction.
func (s *Store) Seed(ctx context.Context, table *actuarial.StaticTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, r := range table.Rates() {
		if err := saveIndexRate(ctx, sqlTx, r); err != nil {
			return err
		}
	}
	for _, w := range table.MinimumWages() {
		if err := saveMinimumWage(ctx, sqlTx, w); err != nil {
			return err
		}
	}

	return sqlTx.Commit()
}

// LoadTable reads both tables into an immutable StaticTable. An empty IPC
// table is reported as generic.ErrEmptyRateTable so callers can fall back.
func (s *Store) LoadTable(ctx context.Context) (*actuarial.StaticTable, error) {
	rates, err := s.ListIndexRates(ctx)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, generic.ErrEmptyRateTable
	}
	wages, err := s.ListMinimumWages(ctx)
	if err != nil {
		return nil, err
	}

	ipc := make(map[generic.YearMonth]decimal.Decimal, len(rates))
	for _, r := range rates {
		ipc[r.Month] = r.Rate
	}
	byYear := make(map[int]decimal.Decimal, len(wages))
	for _, w := range wages {
		byYear[w.Year] = w.Wage
	}
	return actuarial.NewStaticTable(ipc, byYear), nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing and re-imports).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"index_rates", "minimum_wages"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
