package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/Spok95/furniture-db/internal/importer"
	"github.com/Spok95/furniture-db/internal/infra/db"
	"github.com/Spok95/furniture-db/internal/inventory"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect schema migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			if a.cfg.Postgres.Bootstrap {
				// база должна существовать до goose
				m, err := a.openManager(cmd.Context())
				if err != nil {
					return err
				}
				m.Close()
			}
			if err := db.Migrate(cmd.Context(), a.cfg.Postgres.DSN, command); err != nil {
				return err
			}
			a.log.Info("migrate done", "command", command)
			return nil
		},
	}
}

const (
	dirFlag     = "dir"
	datasetFlag = "dataset"
	formatFlag  = "format"
	outFlag     = "out"
)

var importFlags = map[string]cobraflags.Flag{
	dirFlag: &cobraflags.StringFlag{
		Name:  dirFlag,
		Value: "",
		Usage: "Directory with *_import.xlsx / *_import.csv files (default: import.dir from config)",
	},
}

func newImportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load reference data and products from spreadsheet files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := importFlags[dirFlag].GetString()
			if dir == "" {
				dir = a.cfg.Import.Dir
			}

			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			report, err := importer.New(m, a.log).ImportDir(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range report.Files {
				fmt.Fprintf(out, "%-28s imported=%d duplicates=%d\n", f.File, f.Imported, f.Duplicates)
			}
			for _, e := range report.Errors {
				fmt.Fprintln(out, "  ", e.String())
			}
			fmt.Fprintf(out, "run %s: %d rows imported, %d errors\n", report.RunID, report.Imported(), len(report.Errors))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, importFlags)
	return cmd
}

var exportFlags = map[string]cobraflags.Flag{
	datasetFlag: &cobraflags.StringFlag{
		Name:  datasetFlag,
		Value: "",
		Usage: "Dataset: products, workshops, product_workshops, product_types, material_types, statistics (empty for the default set)",
	},
	formatFlag: &cobraflags.StringFlag{
		Name:  formatFlag,
		Value: "csv",
		Usage: "Output format: csv or xlsx",
	},
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "",
		Usage: "Output file (default: <export.dir>/<dataset>_export.<format>)",
	},
}

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write query results to CSV or XLSX files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := os.MkdirAll(a.cfg.Export.Dir, 0o755); err != nil {
				return err
			}

			name := exportFlags[datasetFlag].GetString()
			if name == "" {
				files, err := m.ExportAll(ctx, a.cfg.Export.Dir)
				for _, f := range files {
					fmt.Fprintln(out, f)
				}
				return err
			}

			d, err := inventory.ParseDataset(name)
			if err != nil {
				return err
			}
			format := exportFlags[formatFlag].GetString()
			path := exportFlags[outFlag].GetString()
			if path == "" {
				path = filepath.Join(a.cfg.Export.Dir, fmt.Sprintf("%s_export.%s", d, format))
			}

			switch format {
			case "csv":
				err = m.ExportCSV(ctx, d, path)
			case "xlsx":
				err = m.ExportXLSX(ctx, d, path)
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, path)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, exportFlags)
	return cmd
}
