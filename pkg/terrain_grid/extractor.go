package terrain_grid

import (
	"context"
	"errors"
	"fmt"

	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
	"go.uber.org/zap"
)

// NoObservation marks a tile cell that should not be learned (unpainted cell).
const NoObservation = -1

// MapSample is one painted map: a terrain layer and the tile layer an author chose for it.
type MapSample struct {
	Name    string
	Terrain *Grid
	Tiles   *Grid
}

// LearnReport summarizes one Learn call.
type LearnReport struct {
	Maps     int
	Cells    int
	Learned  int
	Skipped  int
	Rejected int
}

// AutotileReport counts how each cell was resolved.
type AutotileReport struct {
	Cells  int
	ByTier map[tp.MatchTier]int

	// Uninformed lists cells that got the NoTile sentinel.
	Uninformed []Point
}

// Extractor turns maps into observations and observations back into tile layers.
type Extractor struct {
	Edge   EdgePolicy
	Logger *zap.Logger
}

func NewExtractor(edge EdgePolicy, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{Edge: edge, Logger: logger}
}

// Learn feeds every painted cell of every sample into store, in sample order and
// row-major cell order, using the sample name as source.
//
// Observations the store rejects are counted and skipped. Cancellation is
// checked between maps, so a map is either fully learned or not at all.
// The derived index is NOT rebuilt here.
func (e *Extractor) Learn(ctx context.Context, store *tp.PatternStore, samples ...MapSample) (LearnReport, error) {
	var report LearnReport
	for _, sample := range samples {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if sample.Terrain == nil || !sample.Terrain.SameShape(sample.Tiles) {
			return report, fmt.Errorf("map %q: %w: terrain and tile layers differ", sample.Name, ErrShapeMismatch)
		}

		before := report
		painted := 0
		sample.Terrain.Each(func(p Point, _ int) {
			report.Cells++
			tile, _ := sample.Tiles.Get(p)
			if tile == NoObservation {
				report.Skipped++
				return
			}
			painted++
			center, neighbors, err := ContextAt(sample.Terrain, p, e.Edge)
			if err != nil {
				report.Skipped++
				return
			}
			if err := store.AddPattern(center, neighbors, tile, sample.Name); err != nil {
				report.Rejected++
				if !errors.Is(err, tp.ErrTileOutOfRange) {
					e.Logger.Warn("unexpected rejection", zap.String("map", sample.Name), zap.Error(err))
				}
				return
			}
			report.Learned++
		})
		report.Maps++
		store.RecordExtraction(1, painted)

		e.Logger.Info("map learned",
			zap.String("map", sample.Name),
			zap.Int("width", sample.Terrain.Width),
			zap.Int("height", sample.Terrain.Height),
			zap.Int("learned", report.Learned-before.Learned),
			zap.Int("rejected", report.Rejected-before.Rejected),
			zap.Int("patterns", store.Len()),
		)
	}
	return report, nil
}

// Autotile resolves a tile for every cell of a terrain layer.
// The store index should be rebuilt first, otherwise the terrain default tier sees stale buckets.
func (e *Extractor) Autotile(store *tp.PatternStore, terrain *Grid) (*Grid, AutotileReport, error) {
	report := AutotileReport{ByTier: make(map[tp.MatchTier]int)}
	if terrain == nil {
		return nil, report, fmt.Errorf("%w: nil terrain layer", ErrShapeMismatch)
	}
	if store.IndexState() == tp.IndexStale {
		e.Logger.Warn("autotiling with a stale index", zap.String("tileset", store.TilesetID()))
	}

	cache := tp.NewMatchCache(store)
	out := NewGrid(terrain.Width, terrain.Height, tp.NoTile)
	var firstErr error
	terrain.Each(func(p Point, _ int) {
		center, neighbors, err := ContextAt(terrain, p, e.Edge)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		r := cache.Match(center, neighbors)
		out.Set(p, r.Tile)
		report.Cells++
		report.ByTier[r.Tier]++
		if !r.Informed() {
			report.Uninformed = append(report.Uninformed, p)
		}
	})
	if firstErr != nil {
		return nil, report, firstErr
	}

	hits, misses := cache.Stats()
	e.Logger.Debug("autotile finished",
		zap.Int("cells", report.Cells),
		zap.Int("uninformed", len(report.Uninformed)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return out, report, nil
}
