package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbpostgres "skill-align/internal/database/postgres"
	"skill-align/internal/database/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the skill catalog and a demo job corpus",
	Run: func(_ *cobra.Command, _ []string) {
		l := newLogger()
		defer func() { _ = l.Sync() }()

		cfg := loadConfig(l)
		ctx, cancel := commandContext()
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			l.Fatal("connecting to database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		runner := seeder.Runner{Seeders: seeder.Defaults()}
		if err := runner.Run(ctx, db); err != nil {
			l.Fatal("seeding", zap.Error(err))
		}
		l.Info("seed data applied")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
