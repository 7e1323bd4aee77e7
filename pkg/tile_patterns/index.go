package tile_patterns

import "go.uber.org/zap"

//
// ============================================
// 3) Derived indices (rebuildable, not authoritative)
// ============================================
//
// The indices are intentionally NOT kept consistent with the store while
// learning. The lifecycle has two states:
//   - IndexStale: at least one observation was accepted after the last rebuild.
//   - IndexFresh: the published index was built at the current store revision.
//
// Readers that look at TerrainTiles between bulk learning and Rebuild see
// the previous snapshot. That window is part of the contract.

type IndexState int

const (
	IndexFresh IndexState = iota
	IndexStale
)

func (s IndexState) String() string {
	switch s {
	case IndexFresh:
		return "fresh"
	case IndexStale:
		return "stale"
	}
	return "unknown"
}

// IndexSnapshot is an immutable, published view of the derived indices.
// Rebuild never mutates a published snapshot; it swaps in a new one.
type IndexSnapshot struct {
	// Terrains lists bucket keys in the order they were first met.
	Terrains []TerrainID

	// TerrainTiles is the ordered set of tiles seen per center terrain.
	TerrainTiles map[TerrainID][]TileIndex

	// TileRelationships links every tile to the other tiles sharing a terrain bucket.
	TileRelationships map[TileIndex][]TileIndex

	// Revision is the store revision this snapshot was built from.
	Revision uint64
}

func emptyIndex() *IndexSnapshot {
	return &IndexSnapshot{
		TerrainTiles:      make(map[TerrainID][]TileIndex),
		TileRelationships: make(map[TileIndex][]TileIndex),
	}
}

// TilesForTerrain returns the bucket of terrain (nil when unknown).
func (ix *IndexSnapshot) TilesForTerrain(terrain TerrainID) []TileIndex {
	return append([]TileIndex(nil), ix.TerrainTiles[terrain]...)
}

// RelatedTiles returns the tiles that co-occur with tile under some terrain.
func (ix *IndexSnapshot) RelatedTiles(tile TileIndex) []TileIndex {
	return append([]TileIndex(nil), ix.TileRelationships[tile]...)
}

// TerrainDefault is the first tile met while building the terrain bucket.
//
// NOTE: this may differ from the primary tile of every single pattern of that
// terrain. That divergence is kept as-is; do not "fix" it by picking a primary.
func (ix *IndexSnapshot) TerrainDefault(terrain TerrainID) (TileIndex, bool) {
	tiles := ix.TerrainTiles[terrain]
	if len(tiles) == 0 {
		return NoTile, false
	}
	return tiles[0], true
}

// Index returns the currently published snapshot.
func (s *PatternStore) Index() *IndexSnapshot {
	return s.index.Load()
}

func (s *PatternStore) IndexState() IndexState {
	if s.index.Load().Revision == s.rev {
		return IndexFresh
	}
	return IndexStale
}

// Rebuild recomputes both derived indices from the store in one pass and
// publishes them atomically. It is never called implicitly.
func (s *PatternStore) Rebuild() *IndexSnapshot {
	var terrains []TerrainID
	buckets := make(map[TerrainID][]TileIndex)
	seen := make(map[TerrainID]map[TileIndex]struct{})

	s.each(func(_ Signature, p *Pattern) {
		set, ok := seen[p.CenterTerrain]
		if !ok {
			set = make(map[TileIndex]struct{})
			seen[p.CenterTerrain] = set
			terrains = append(terrains, p.CenterTerrain)
			buckets[p.CenterTerrain] = []TileIndex{}
		}
		for _, t := range p.ValidTiles {
			if _, dup := set[t]; dup {
				continue
			}
			set[t] = struct{}{}
			buckets[p.CenterTerrain] = append(buckets[p.CenterTerrain], t)
		}
	})

	ix := buildIndex(terrains, buckets, s.rev)
	s.index.Store(ix)

	s.logger.Debug("derived index rebuilt",
		zap.String("tileset", s.tilesetID),
		zap.Int("terrains", len(ix.Terrains)),
		zap.Int("related_tiles", len(ix.TileRelationships)),
		zap.Uint64("revision", ix.Revision),
	)
	return ix
}

// buildIndex derives tile relationships from terrain buckets.
func buildIndex(terrains []TerrainID, buckets map[TerrainID][]TileIndex, rev uint64) *IndexSnapshot {
	ix := &IndexSnapshot{
		Terrains:          terrains,
		TerrainTiles:      buckets,
		TileRelationships: make(map[TileIndex][]TileIndex),
		Revision:          rev,
	}

	related := make(map[TileIndex]map[TileIndex]struct{})
	for _, terrain := range terrains {
		tiles := buckets[terrain]
		for _, a := range tiles {
			set, ok := related[a]
			if !ok {
				set = make(map[TileIndex]struct{})
				related[a] = set
				ix.TileRelationships[a] = []TileIndex{}
			}
			for _, b := range tiles {
				if a == b {
					continue
				}
				if _, dup := set[b]; dup {
					continue
				}
				set[b] = struct{}{}
				ix.TileRelationships[a] = append(ix.TileRelationships[a], b)
			}
		}
	}
	return ix
}
