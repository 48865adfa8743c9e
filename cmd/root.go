package cmd

import (
	"fmt"
	"os"

	"enumeration-report/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "enumeration-report",
	Short: "AOI Product Enumeration Report",
	Long: `Enumeration Report cross-references the interferogram products of an AOI
(acquisition lists, ifg-cfgs, ifgs and audit trail) against an expected list of
date pairs and publishes one workbook per track.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
