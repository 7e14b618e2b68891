package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/config"
	"github.com/clasc/site/factory"
	"github.com/clasc/site/generic"
	"github.com/clasc/site/store/sqlite"
)

// rateSource is the reference table in use and, when it came from SQLite,
// the open store (the caller closes it).
type rateSource struct {
	Table *actuarial.StaticTable
	Store *sqlite.Store
	Name  string
}

// openRates applies the source precedence: SQLite, then the JSON document,
// then the built-in table. An empty database is seeded from the next source
// down so a fresh deployment starts with data.
func openRates(ctx context.Context, cfg config.RatesConfig, logger *zap.Logger) (*rateSource, error) {
	fallback, fallbackName, err := fileOrBuiltin(cfg.File)
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return &rateSource{Table: fallback, Name: fallbackName}, nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rates database: %w", err)
	}

	table, err := store.LoadTable(ctx)
	if errors.Is(err, generic.ErrEmptyRateTable) {
		logger.Info("rates database empty, seeding", zap.String("from", fallbackName))
		if err := store.Seed(ctx, fallback); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to seed rates database: %w", err)
		}
		table, err = store.LoadTable(ctx)
	}
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load rates database: %w", err)
	}
	return &rateSource{Table: table, Store: store, Name: "sqlite:" + cfg.DBPath}, nil
}

func fileOrBuiltin(path string) (*actuarial.StaticTable, string, error) {
	if path == "" {
		return actuarial.DefaultIndexTable(), "builtin", nil
	}
	table, err := factory.NewRateTableFactory().ParseFile(path)
	if err != nil {
		return nil, "", err
	}
	return table, "file:" + path, nil
}

func (s *rateSource) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// =============================================================================
// rates COMMANDS
// =============================================================================

func newRatesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the IPC and minimum-wage reference data",
	}
	cmd.AddCommand(newRatesSeedCmd(g), newRatesExportCmd(g))
	return cmd
}

func newRatesSeedCmd(g *globals) *cobra.Command {
	var dbPath, file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a rates document (or the built-in table) into the SQLite store",
		Long: `Reads --file (a JSON rates document) or, without it, the built-in table and
upserts every IPC month and minimum wage into the SQLite store at --db.
Existing rows for the same month or year are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.Rates.DBPath
			}
			if dbPath == "" {
				return errors.New("no database: pass --db or set rates.db_path")
			}

			table, from, err := fileOrBuiltin(file)
			if err != nil {
				return err
			}

			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Seed(cmd.Context(), table); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			cmd.Printf("Seeded %d IPC months and %d minimum wages from %s into %s\n",
				table.Len(), len(table.MinimumWages()), from, dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default rates.db_path)")
	cmd.Flags().StringVar(&file, "file", "", "JSON rates document (default built-in table)")
	return cmd
}

func newRatesExportCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the reference data the server would use, as a rates document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			src, err := openRates(cmd.Context(), cfg.Rates, logger)
			if err != nil {
				return err
			}
			defer src.Close()

			data, err := json.MarshalIndent(factory.NewRateTableFactory().ToJSON(src.Table), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal rates: %w", err)
			}
			cmd.Println(string(data))
			return nil
		},
	}
	return cmd
}
