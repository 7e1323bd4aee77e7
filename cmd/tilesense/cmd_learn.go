package main

import (
	"fmt"

	tg "github.com/jtomasevic/tilesense/pkg/terrain_grid"
	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	learnOut  string
	learnBase string
)

func newLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn [map files...]",
		Short: "Learn tile patterns from painted maps and write a snapshot",
		Long: `Reads painted maps (terrain + tile layers), records one observation per painted
cell and writes the learned patterns with freshly rebuilt indices.

Use --from to extend an existing snapshot instead of starting empty.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLearn,
	}
	cmd.Flags().StringVarP(&learnOut, "out", "o", "tileset.json", "snapshot file to write")
	cmd.Flags().StringVar(&learnBase, "from", "", "existing snapshot to extend")
	return cmd
}

func runLearn(cmd *cobra.Command, args []string) error {
	var store *tp.PatternStore
	if learnBase != "" {
		var err error
		if store, err = loadSnapshot(learnBase); err != nil {
			return err
		}
	} else {
		store = tp.NewPatternStore(cfg.TilesetID, storeOptions()...)
	}

	samples, err := tg.LoadMapFiles(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("failed to load maps: %w", err)
	}

	extractor := tg.NewExtractor(edgePolicy(), logger)
	report, err := extractor.Learn(cmd.Context(), store, samples...)
	if err != nil {
		return fmt.Errorf("learning stopped after %d maps: %w", report.Maps, err)
	}
	store.Rebuild()

	if err := saveSnapshot(store, learnOut); err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("path", learnOut),
		zap.String("tileset", store.TilesetID()),
		zap.Int("patterns", store.Len()),
	)

	printLearnReport(cmd.OutOrStdout(), store, report)
	return nil
}
