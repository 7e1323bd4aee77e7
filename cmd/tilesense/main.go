package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jtomasevic/tilesense/internal/config"
	"github.com/jtomasevic/tilesense/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set up by the root command before any subcommand runs
	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tilesense",
		Short: "Learn tile placement from painted maps and replay it",
		Long: `tilesense learns which tile graphic authors use for a terrain cell given its
8 surrounding terrains, and replays those conventions to pick tiles for new maps.

Typical flow:
  tilesense learn maps/*.json --out tileset.json
  tilesense autotile --snapshot tileset.json --map new_map.json --out tiled.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Logging, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLearnCmd(),
		newMatchCmd(),
		newAutotileCmd(),
		newStatsCmd(),
		newValidateCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
