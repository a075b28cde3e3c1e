package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reloadTaxonomyCmd = &cobra.Command{
	Use:   "reload-taxonomy",
	Short: "Rebuild the in-memory skill taxonomy from the catalog",
	Run: func(_ *cobra.Command, _ []string) {
		l := newLogger()
		defer func() { _ = l.Sync() }()

		c, _ := newContainer(l)
		defer func() { _ = c.Close() }()

		ctx, cancel := commandContext()
		defer cancel()

		n, err := c.Skills.ReloadTaxonomy(ctx)
		if err != nil {
			l.Fatal("taxonomy reload failed", zap.Error(err))
		}
		l.Info("taxonomy reloaded", zap.Int("skills", n))
	},
}

func init() {
	rootCmd.AddCommand(reloadTaxonomyCmd)
}
