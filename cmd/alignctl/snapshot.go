package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <user-id>",
	Short: "Take an industry alignment snapshot for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l := newLogger()
		defer func() { _ = l.Sync() }()

		userID, err := uuid.Parse(args[0])
		if err != nil {
			l.Fatal("invalid user id", zap.String("arg", args[0]), zap.Error(err))
		}

		c, _ := newContainer(l)
		defer func() { _ = c.Close() }()

		ctx, cancel := commandContext()
		defer cancel()

		industries, _ := cmd.Flags().GetStringSlice("industries")
		items, err := c.Alignment.Snapshot(ctx, userID, industries)
		if err != nil {
			l.Fatal("snapshot failed", zap.Error(err))
		}

		for _, it := range items {
			l.Info("alignment",
				zap.String("industry", it.Industry),
				zap.Float64("score", it.Score),
				zap.Int("skill_count", it.SkillCount),
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringSlice("industries", nil, "limit the snapshot to these industries")
}
