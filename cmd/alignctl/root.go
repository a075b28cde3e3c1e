package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"skill-align/internal/app"
	"skill-align/internal/config"
	"skill-align/internal/pkg/logger"
)

const appName = "alignctl"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "alignctl administers the matching engine: migrations, seed data, and batch recomputes",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func loadConfig(l *zap.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		l.Fatal("loading config", zap.Error(err))
	}
	return cfg
}

// newContainer builds the full dependency graph for commands that run the
// engine itself rather than just touching the database.
func newContainer(l *zap.Logger) (*app.Container, config.Config) {
	cfg := loadConfig(l)
	c, err := app.NewContainer(cfg, l)
	if err != nil {
		l.Fatal("building container", zap.Error(err))
	}
	return c, cfg
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Minute)
}
