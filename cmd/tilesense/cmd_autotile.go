package main

import (
	"fmt"

	tg "github.com/jtomasevic/tilesense/pkg/terrain_grid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	autotileSnapshot string
	autotileMap      string
	autotileOut      string
)

func newAutotileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autotile",
		Short: "Generate a tile layer for a terrain map",
		Args:  cobra.NoArgs,
		RunE:  runAutotile,
	}
	cmd.Flags().StringVarP(&autotileSnapshot, "snapshot", "s", "", "snapshot file with learned patterns")
	cmd.Flags().StringVarP(&autotileMap, "map", "m", "", "map file whose terrain layer is tiled")
	cmd.Flags().StringVarP(&autotileOut, "out", "o", "", "where to write the tiled map (default: print only)")
	return cmd
}

func runAutotile(cmd *cobra.Command, args []string) error {
	if autotileMap == "" {
		return fmt.Errorf("--map is required")
	}
	store, err := loadSnapshot(autotileSnapshot)
	if err != nil {
		return err
	}
	name, terrain, err := tg.LoadTerrainFile(autotileMap)
	if err != nil {
		return fmt.Errorf("failed to load map: %w", err)
	}

	tiles, report, err := tg.NewExtractor(edgePolicy(), logger).Autotile(store, terrain)
	if err != nil {
		return err
	}

	if autotileOut != "" {
		if err := tg.WriteTileLayer(autotileOut, name, terrain, tiles); err != nil {
			return fmt.Errorf("failed to write tiled map: %w", err)
		}
		logger.Info("tiled map written", zap.String("path", autotileOut), zap.String("map", name))
	}

	printAutotileReport(cmd.OutOrStdout(), name, tiles, report)
	return nil
}
