package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skill-align/internal/database/migration"
	dbpostgres "skill-align/internal/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, _ []string) {
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

		dir, _ := cmd.Flags().GetString("dir")
		runner := migration.Runner{Dir: dir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			l.Fatal("running migrations", zap.Error(err))
		}
		l.Info("migrations applied")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("dir", "migrations", "directory containing migration files")
}
