package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/catering-api/internal/config"
	"github.com/pkordes/catering-api/internal/handler"
	"github.com/pkordes/catering-api/internal/repo"
	"github.com/pkordes/catering-api/internal/service"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// serve wires dependencies and blocks until ctx is cancelled, then gives
// in-flight requests up to shutdownTimeout to finish.
func serve(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg.LogLevel, os.Stdout)

	// pgxpool.New does not connect; the ping below verifies the DB is
	// reachable before accepting traffic.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	store := repo.NewStore(pool)
	srv := handler.NewServer(handler.Services{
		Facilities: service.NewFacilityService(store, logger),
		Locations:  service.NewLocationService(store),
		Employees:  service.NewEmployeeService(store),
		Tags:       service.NewTagService(store),
		Export:     service.NewExportService(store),
	}, cfg.DefaultPageSize, logger)

	httpSrv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(srv, handler.RouterConfig{
			Logger:            logger,
			CORSOrigins:       cfg.CORSOrigins,
			MaxBodyBytes:      cfg.MaxBodyBytes,
			APISecret:         cfg.APISecret,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
