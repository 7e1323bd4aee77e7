package terrain_grid

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// mapFile is the on-disk layout of a painted map.
//
//	{ "name": "coast_01", "terrain": [[1,1,2], ...], "tiles": [[5,5,-1], ...] }
type mapFile struct {
	Name    string  `json:"name"`
	Terrain [][]int `json:"terrain"`
	Tiles   [][]int `json:"tiles"`
}

// DefaultLoadConcurrency bounds parallel file parsing in LoadMapFiles.
const DefaultLoadConcurrency = 4

// ParseMap decodes a map document. fallbackName is used when the document has no name.
func ParseMap(data []byte, fallbackName string) (MapSample, error) {
	var f mapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return MapSample{}, fmt.Errorf("decode map %q: %w", fallbackName, err)
	}
	if f.Name == "" {
		f.Name = fallbackName
	}

	terrain, err := GridFromRows(f.Terrain)
	if err != nil {
		return MapSample{}, fmt.Errorf("map %q terrain: %w", f.Name, err)
	}
	tiles, err := GridFromRows(f.Tiles)
	if err != nil {
		return MapSample{}, fmt.Errorf("map %q tiles: %w", f.Name, err)
	}
	if !terrain.SameShape(tiles) {
		return MapSample{}, fmt.Errorf("map %q: %w: terrain %dx%d, tiles %dx%d",
			f.Name, ErrShapeMismatch, terrain.Width, terrain.Height, tiles.Width, tiles.Height)
	}
	return MapSample{Name: f.Name, Terrain: terrain, Tiles: tiles}, nil
}

// LoadMapFile reads one map; the file name without extension is the fallback source name.
func LoadMapFile(path string) (MapSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MapSample{}, err
	}
	base := filepath.Base(path)
	return ParseMap(data, strings.TrimSuffix(base, filepath.Ext(base)))
}

// LoadTerrainFile reads only the terrain layer of a map document, for maps that
// still need tiles. Any tile layer in the file is ignored.
func LoadTerrainFile(path string) (string, *Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	var f mapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", nil, fmt.Errorf("decode map %q: %w", path, err)
	}
	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	terrain, err := GridFromRows(f.Terrain)
	if err != nil {
		return "", nil, fmt.Errorf("map %q terrain: %w", f.Name, err)
	}
	return f.Name, terrain, nil
}

// LoadMapFiles parses files concurrently and returns them in argument order,
// so learning from the result stays deterministic. The first error cancels the rest.
func LoadMapFiles(ctx context.Context, paths []string) ([]MapSample, error) {
	out := make([]MapSample, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultLoadConcurrency)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sample, err := LoadMapFile(path)
			if err != nil {
				return err
			}
			out[i] = sample
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteTileLayer stores a tile layer as a map document next to its terrain.
func WriteTileLayer(path, name string, terrain, tiles *Grid) error {
	data, err := json.MarshalIndent(mapFile{Name: name, Terrain: terrain.Cells, Tiles: tiles.Cells}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
