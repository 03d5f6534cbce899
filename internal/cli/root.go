package cli

import (
	"context"
	"database/sql"
	"errors"

	"career-guidance/internal/config"
	"career-guidance/internal/database"
	dbpostgres "career-guidance/internal/database/postgres"
	"career-guidance/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "careerctl"

var (
	cfg config.Config
	zl  *zap.Logger

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "careerctl runs RIASEC assessments and maintains the career catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			zl, err = logger.New(viper.GetBool("json"), viper.GetBool("debug") || cfg.App.LogDebug)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if zl != nil {
				_ = zl.Sync()
			}
		},
	}
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func connect(ctx context.Context) (database.DB, error) {
	return dbpostgres.Connect(ctx, cfg.Database, zl)
}

func sqlDBOf(db database.DB) (*sql.DB, error) {
	s, ok := db.(interface{ SQLDB() *sql.DB })
	if !ok || s.SQLDB() == nil {
		return nil, errors.New("database does not expose database/sql")
	}
	return s.SQLDB(), nil
}
