// Command estimate runs migrations, seeds the catalog and prices section files
// from the command line.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cabinetry/internal/config"
	"github.com/Simplici0/cabinetry/internal/db"
	"github.com/Simplici0/cabinetry/internal/export"
	"github.com/Simplici0/cabinetry/internal/logging"
	"github.com/Simplici0/cabinetry/internal/migrations"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/pricing"
	"github.com/Simplici0/cabinetry/internal/seed"
	"github.com/Simplici0/cabinetry/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Must(cfg.Dev())
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	log    *zap.Logger
	dbPath string
}

func newRootCmd(cfg config.Config, logger *zap.Logger) *cobra.Command {
	a := &app{cfg: cfg, log: logger}

	root := &cobra.Command{
		Use:          "estimate",
		Short:        "Cabinet shop estimating tools",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DBPath, "sqlite database path")

	root.AddCommand(a.migrateCmd(), a.seedCmd(), a.calcCmd())
	return root
}

func (a *app) open() (*sql.DB, error) {
	return db.Open(a.dbPath)
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := a.open()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrations.Up(database); err != nil {
				return err
			}
			v, err := migrations.Version(database)
			if err != nil {
				return err
			}
			a.log.Info("migrations applied", zap.Int64("version", v))
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	var sample string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := a.open()
			if err != nil {
				return err
			}
			defer database.Close()

			stats, err := seed.Run(database, seed.Config{SampleProject: sample})
			if err != nil {
				return err
			}
			a.log.Info("catalog seeded", zap.Int("inserts", stats.Inserts))
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows inserted\n", stats.Inserts)
			return nil
		},
	}
	cmd.Flags().StringVar(&sample, "sample-project", "", "also create a project with this name")
	return cmd
}

func (a *app) calcCmd() *cobra.Command {
	var (
		projectID   int64
		sectionPath string
		xlsxPath    string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Price a section JSON file against a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(sectionPath)
			if err != nil {
				return fmt.Errorf("read section: %w", err)
			}
			var sec model.Section
			if err := json.Unmarshal(raw, &sec); err != nil {
				return fmt.Errorf("decode section %s: %w", sectionPath, err)
			}
			sec.ProjectID = projectID

			database, err := a.open()
			if err != nil {
				return err
			}
			defer database.Close()

			ctx, err := store.New(database).LoadContext(context.Background(), projectID, a.cfg.Engine)
			if err != nil {
				return err
			}
			res := pricing.New(pricing.WithLogger(a.log.Named("pricing"))).Calculate(sec, ctx)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res.Totals); err != nil {
				return fmt.Errorf("write totals: %w", err)
			}

			if xlsxPath == "" {
				return nil
			}
			body, err := export.Workbook(res)
			if err != nil {
				return err
			}
			if err := os.WriteFile(xlsxPath, body, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			a.log.Info("workbook written", zap.String("path", xlsxPath))
			return nil
		},
	}
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id supplying overrides")
	cmd.Flags().StringVar(&sectionPath, "section", "", "section JSON file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the result workbook here")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}
