package cli

import (
	"strings"

	"career-guidance/internal/app"
	"career-guidance/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-history",
	Short: "Append results missing from user history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		c, err := app.NewContainer(ctx, cfg, zl)
		if err != nil {
			return err
		}
		defer c.Close()

		user, _ := cmd.Flags().GetString("user")
		if user = strings.TrimSpace(user); user != "" {
			ids, err := c.Recorder.ReconcileHistory(ctx, user)
			if err != nil {
				return err
			}
			zl.Info("history reconciled", zap.String("user_id", user), zap.Int("appended", len(ids)))
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		workers, _ := cmd.Flags().GetInt("workers")
		rps, _ := cmd.Flags().GetInt("rps")
		counts, err := c.Recorder.ReconcileAll(ctx, usecase.ReconcileOptions{
			Limit:         limit,
			Workers:       workers,
			RatePerSecond: rps,
		})
		total := 0
		for _, n := range counts {
			total += n
		}
		zl.Info("history reconciled", zap.Int("users", len(counts)), zap.Int("appended", total))
		return err
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringP("user", "u", "", "reconcile a single user")
	reconcileCmd.Flags().Int("limit", 100, "maximum users per run")
	reconcileCmd.Flags().Int("workers", 4, "users reconciled concurrently")
	reconcileCmd.Flags().Int("rps", 0, "maximum users started per second (0 = unlimited)")
}
