package cli

import (
	"career-guidance/internal/database/migration"
	"career-guidance/internal/database/seeder"
	"career-guidance/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		sqlDB, err := sqlDBOf(db)
		if err != nil {
			return err
		}
		applied, err := migration.Runner{
			Dir:    cfg.Database.MigrationsDir,
			FS:     migrations.FS,
			Logger: zl,
		}.Run(ctx, sqlDB)
		if err != nil {
			return err
		}
		zl.Info("migrations complete", zap.Int("applied", len(applied)))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the RIASEC question catalog and default careers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		return seeder.Runner{Seeders: seeder.Defaults(), Logger: zl}.Run(ctx, db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
