package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute [user-id]",
	Short: "Recompute match rankings for one user, or every user with skills",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		l := newLogger()
		defer func() { _ = l.Sync() }()

		c, _ := newContainer(l)
		defer func() { _ = c.Close() }()

		ctx, cancel := commandContext()
		defer cancel()

		if len(args) == 1 {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				l.Fatal("invalid user id", zap.String("arg", args[0]), zap.Error(err))
			}
			if err := c.Recompute.RecomputeUser(ctx, userID); err != nil {
				l.Fatal("recompute failed", zap.Error(err))
			}
			l.Info("recompute finished", zap.String("user_id", userID.String()))
			return
		}

		n, err := c.Recompute.RecomputeAll(ctx)
		if err != nil {
			l.Fatal("bulk recompute failed", zap.Error(err))
		}
		l.Info("bulk recompute finished", zap.Int("users", n))
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
}
