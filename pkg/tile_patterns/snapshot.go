package tile_patterns

import (
	"encoding/json"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Snapshot is the persisted layout of a store:
//
//	{ tileset_id, extraction_stats, index_state, patterns: { signature -> body }, terrain_tiles }
//
// Both objects are ordered maps, written and read in document order. Pattern
// order decides similarity ties, so a plain Go map is not enough.
type Snapshot struct {
	TilesetID       string          `json:"tileset_id"`
	ExtractionStats ExtractionStats `json:"extraction_stats"`

	// IndexState records whether terrain_tiles was fresh at export ("fresh", "stale").
	// Documents without it are treated as fresh.
	IndexState string `json:"index_state,omitempty"`

	Patterns     *orderedmap.OrderedMap[Signature, PatternBody] `json:"patterns"`
	TerrainTiles *orderedmap.OrderedMap[TerrainID, []TileIndex] `json:"terrain_tiles"`
}

// PatternBody is one exported pattern. Quality, SourceCount and TileVariety are
// derived values kept for readers of the file; import recomputes them.
type PatternBody struct {
	CenterTerrain   TerrainID       `json:"center_terrain"`
	NeighborContext NeighborContext `json:"neighbor_context"`
	ValidTiles      []TileIndex     `json:"valid_tiles"`
	Frequency       int             `json:"frequency"`
	Quality         float64         `json:"quality"`
	SourceCount     int             `json:"source_count"`
	TileVariety     int             `json:"tile_variety"`
	Sources         []string        `json:"sources,omitempty"`
}

//
// --------------------
// Export / import
// --------------------

// ExportSnapshot captures the store and its currently published index.
// A stale index is exported as-is and marked stale; call Rebuild first for fresh terrain_tiles.
func (s *PatternStore) ExportSnapshot() Snapshot {
	snap := Snapshot{
		TilesetID:       s.tilesetID,
		ExtractionStats: s.extraction,
		IndexState:      s.IndexState().String(),
		Patterns:        orderedmap.New[Signature, PatternBody](s.Len()),
		TerrainTiles:    orderedmap.New[TerrainID, []TileIndex](),
	}

	s.each(func(sig Signature, p *Pattern) {
		snap.Patterns.Set(sig, PatternBody{
			CenterTerrain:   p.CenterTerrain,
			NeighborContext: p.NeighborContext.clone(),
			ValidTiles:      append([]TileIndex{}, p.ValidTiles...),
			Frequency:       p.Frequency,
			Quality:         p.Quality(),
			SourceCount:     len(p.Sources),
			TileVariety:     len(p.ValidTiles),
			Sources:         append([]string(nil), p.Sources...),
		})
	})

	ix := s.Index()
	for _, terrain := range ix.Terrains {
		snap.TerrainTiles.Set(terrain, append([]TileIndex{}, ix.TerrainTiles[terrain]...))
	}
	return snap
}

func (s *PatternStore) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.ExportSnapshot(), "", "  ")
}

// ImportSnapshot reconstructs a store from a snapshot.
//
// Pattern order follows the snapshot. Malformed contexts are kept so Validate
// can report them. For well-formed bodies the key is parsed back and must be
// the canonical signature of the body, otherwise ErrSignatureMismatch.
//
// terrain_tiles becomes the published index (tile relationships are derived
// from it) and keeps the exported freshness: a stale export imports as
// IndexStale. A fresh export without buckets is rebuilt from the patterns.
func ImportSnapshot(snap Snapshot, opts ...Option) (*PatternStore, error) {
	s := NewPatternStore(snap.TilesetID, opts...)

	if snap.Patterns != nil {
		for pair := snap.Patterns.Oldest(); pair != nil; pair = pair.Next() {
			body := pair.Value
			if err := checkSignatureKey(pair.Key, body); err != nil {
				return nil, err
			}
			s.insertImported(pair.Key, &Pattern{
				CenterTerrain:   body.CenterTerrain,
				NeighborContext: body.NeighborContext.clone(),
				ValidTiles:      append([]TileIndex(nil), body.ValidTiles...),
				Frequency:       body.Frequency,
				Sources:         append([]string(nil), body.Sources...),
			})
		}
	}
	s.extraction = snap.ExtractionStats

	var terrains []TerrainID
	buckets := make(map[TerrainID][]TileIndex)
	if snap.TerrainTiles != nil {
		for pair := snap.TerrainTiles.Oldest(); pair != nil; pair = pair.Next() {
			terrains = append(terrains, pair.Key)
			buckets[pair.Key] = append([]TileIndex{}, pair.Value...)
		}
	}

	switch snap.IndexState {
	case "", IndexFresh.String():
		if len(terrains) == 0 {
			s.Rebuild()
			return s, nil
		}
		s.index.Store(buildIndex(terrains, buckets, s.rev))
	case IndexStale.String():
		// nothing to be stale against
		if s.rev == 0 {
			s.Rebuild()
			return s, nil
		}
		s.index.Store(buildIndex(terrains, buckets, s.rev-1))
	default:
		return nil, fmt.Errorf("unknown index_state %q", snap.IndexState)
	}
	return s, nil
}

// checkSignatureKey parses a pattern key back and compares it with its body.
// Bodies with a malformed context have no canonical key and are not checked.
func checkSignatureKey(key Signature, body PatternBody) error {
	if len(body.NeighborContext) != ContextSize {
		return nil
	}
	center, context, err := ParseSignature(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}
	canonical, err := BuildSignature(center, context)
	if err != nil {
		return err
	}
	if canonical != key || center != body.CenterTerrain || !slices.Equal(context, body.NeighborContext) {
		return fmt.Errorf("%w: key %q, body %d %v", ErrSignatureMismatch, key, body.CenterTerrain, []TerrainID(body.NeighborContext))
	}
	return nil
}

func ImportJSON(data []byte, opts ...Option) (*PatternStore, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return ImportSnapshot(snap, opts...)
}
