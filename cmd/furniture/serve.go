package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Spok95/furniture-db/internal/infra/db"
	httpx "github.com/Spok95/furniture-db/internal/infra/http"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer m.Close()
			a.log.Info("db connected")

			if a.cfg.Postgres.Migrate {
				if err := db.Migrate(ctx, a.cfg.Postgres.DSN, "up"); err != nil {
					return fmt.Errorf("migrations: %w", err)
				}
				a.log.Info("migrations applied")
			}

			srv := httpx.New(m, httpx.Options{
				Addr:          a.cfg.HTTP.Addr,
				ExposeMetrics: a.cfg.Metrics.Enabled,
				Log:           a.log,
				Metrics:       a.metrics,
			})
			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
			case <-ctx.Done():
			}

			timeout := a.cfg.HTTP.ShutdownTimeout
			if timeout <= 0 {
				timeout = 5 * time.Second
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error("http shutdown failed", "err", err)
			}
			a.log.Info("graceful shutdown complete")
			return nil
		},
	}
}
