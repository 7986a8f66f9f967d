package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/blocks-explorer/internal/config"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:          "blocks-explorer",
	Long:         `Browse Tezos blocks served by a TzKT indexer`,
	SilenceUsage: true,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("indexer", tzkt.DefaultBaseURL, "indexer blocks endpoint")
	flags.Bool("debug", false, "enable debug logging")

	// Bind flags to configuration
	config.BindPFlag("indexer.base_url", flags.Lookup("indexer"))
	config.BindPFlag("logger.debug", flags.Lookup("debug"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewServeCommand(),
		NewBlocksCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Fatal("Failed to execute root command", slogx.Error(err))
	}
}
