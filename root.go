package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradeline-calculator/config"
	"tradeline-calculator/log"
)

var rootCmd = &cobra.Command{
	Use:          "tradeline",
	Short:        "Compute the AU tradeline credit limit needed to reach a target utilization",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)
}

// setup loads the configuration and installs the global logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger := log.InitLog(cfg.Service.LogLevel)
	zap.ReplaceGlobals(logger)
	return cfg, logger, nil
}
