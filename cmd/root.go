package cmd

import (
	"fmt"
	"os"

	"market-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "market-sync",
	Short: "Marketplace stock and price synchronizer",
	Long: `market-sync keeps a marketplace's published stock counts and prices
aligned with supplier data. It pulls the marketplace catalog, pulls the
supplier feed, joins the two by article, and pushes the computed updates
back in rate-limited batches.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format so CLI failures stay readable without a JSON viewer.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
