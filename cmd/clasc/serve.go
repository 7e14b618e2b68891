package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/api"
	"github.com/clasc/site/config"
	"github.com/clasc/site/generic"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(g *globals) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Starts the site and calculator API.

STARTUP SEQUENCE:
  1. Load configuration and build the logger
  2. Open the reference data (SQLite, rates file or built-in table)
  3. Build the calculator on the configured timezone's clock
  4. Configure the router and start listening

On SIGINT/SIGTERM the server stops accepting connections and waits up to
30s for in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides server.port)")
	return cmd
}

// serve runs the server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("falling back to UTC", zap.Error(err))
	}

	src, err := openRates(ctx, cfg.Rates, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	table := actuarial.NewReloadableTable(src.Table)
	calc := actuarial.NewCalculator(table, generic.SystemClock(loc))
	handler := api.NewHandler(calc, table, api.NewSite(cfg.Site), logger)

	limiter := api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer limiter.Stop()

	if src.Store != nil {
		refresher := api.NewRatesRefresher(src.Store, table, logger)
		refresher.Interval = cfg.Rates.RefreshInterval
		refresher.Start()
		defer refresher.Stop()
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler, api.RouterOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Limiter:        limiter,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("rates", src.Name),
			zap.Int("ipc_months", src.Table.Len()),
			zap.String("timezone", loc.String()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

