package main

import (
	"fmt"
	"os"

	"github.com/jtomasevic/tilesense/internal/config"
	tg "github.com/jtomasevic/tilesense/pkg/terrain_grid"
	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
)

// storeOptions maps the loaded config onto pattern store options.
func storeOptions() []tp.Option {
	opts := []tp.Option{
		tp.WithLogger(logger),
		tp.WithTileBound(cfg.TileBound),
	}
	if cfg.RepeatMinCount > 0 {
		opts = append(opts, tp.WithObservers(
			tp.NewRepeatWatcher(cfg.RepeatMinCount, tp.NewLogRepeatListener(logger)),
		))
	}
	return opts
}

func edgePolicy() tg.EdgePolicy {
	if cfg.Edge.Policy == config.EdgeFixed {
		return tg.FixedEdgePolicy(cfg.Edge.Terrain)
	}
	return tg.DefaultEdgePolicy()
}

func loadSnapshot(path string) (*tp.PatternStore, error) {
	if path == "" {
		return nil, fmt.Errorf("--snapshot is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	store, err := tp.ImportJSON(data, storeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to import snapshot %s: %w", path, err)
	}
	return store, nil
}

func saveSnapshot(store *tp.PatternStore, path string) error {
	data, err := store.ExportJSON()
	if err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
