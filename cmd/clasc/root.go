package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clasc/site/config"
	"github.com/clasc/site/logging"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "clasc",
		Short:         "Clasc site server and social-security calculators",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a config.yaml file")

	root.AddCommand(
		newServeCmd(g),
		newActuarialCmd(g),
		newLiquidationCmd(),
		newRatesCmd(g),
	)
	return root
}

// load reads the configuration and builds the logger it describes.
func (g *globals) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
