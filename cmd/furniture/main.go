package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Spok95/furniture-db/internal/config"
	"github.com/Spok95/furniture-db/internal/infra/logger"
	"github.com/Spok95/furniture-db/internal/infra/metrics"
	"github.com/Spok95/furniture-db/internal/inventory"
)

// app хранит общее состояние команд; конфиг и логгер заполняются в PersistentPreRunE.
type app struct {
	configPath string
	cfg        config.Config
	log        *slog.Logger
	metrics    *metrics.Metrics
}

func (a *app) openManager(ctx context.Context) (*inventory.Manager, error) {
	return inventory.Open(ctx, a.cfg.Postgres.DSN, inventory.Options{
		MaxConns:  a.cfg.Postgres.MaxConns,
		Bootstrap: a.cfg.Postgres.Bootstrap,
		Log:       a.log,
		Metrics:   a.metrics,
	})
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "furniture",
		Short:         "Furniture production inventory: storage, reports, import and export",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(cfg.App.Env)
			a.metrics = metrics.New(nil)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config/example.yaml", "path to YAML config (empty for defaults)")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newImportCommand(a),
		newExportCommand(a),
		newProductsCommand(a),
		newWorkshopsCommand(a),
		newStatsCommand(a),
		newReportCommand(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
