package tile_patterns

// MatchTier tells which resolution step produced a tile.
type MatchTier int

const (
	// TierNone: nothing known about the terrain, Tile is NoTile.
	TierNone MatchTier = iota
	// TierExact: a pattern with the same signature exists.
	TierExact
	// TierSimilar: best Hamming similarity among patterns with the same center.
	TierSimilar
	// TierTerrainDefault: first tile of the terrain bucket in the published index.
	TierTerrainDefault
)

func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSimilar:
		return "similar"
	case TierTerrainDefault:
		return "terrain_default"
	case TierNone:
		return "none"
	}
	return "unknown"
}

type MatchResult struct {
	Tile TileIndex
	Tier MatchTier

	// Signature of the pattern that answered (exact and similar tiers only).
	Signature Signature

	// Similarity is the number of agreeing neighbors (8 for exact, 0 when no pattern answered).
	Similarity int
}

// Informed reports whether the result carries a learned tile rather than the sentinel.
func (r MatchResult) Informed() bool {
	return r.Tier != TierNone
}

// GetBestTile resolves the tile for center surrounded by context.
// It never fails; NoTile means "no informed choice".
func (s *PatternStore) GetBestTile(center TerrainID, context NeighborContext) TileIndex {
	return s.Match(center, context).Tile
}

// Match runs the three-tier resolution:
//  1. exact signature match -> primary tile
//  2. strictly highest similarity > 0 among same-center patterns, ties go to the
//     pattern inserted first -> its primary tile
//  3. first tile of the terrain bucket in the published index, or NoTile
//
// A malformed context cannot produce a signature or a meaningful similarity,
// so it goes straight to tier 3.
func (s *PatternStore) Match(center TerrainID, context NeighborContext) MatchResult {
	if len(context) == ContextSize {
		if r, ok := s.matchExact(center, context); ok {
			return r
		}
		if r, ok := s.matchSimilar(center, context); ok {
			return r
		}
	}
	return s.matchTerrainDefault(center)
}

func (s *PatternStore) matchExact(center TerrainID, context NeighborContext) (MatchResult, bool) {
	sig, err := BuildSignature(center, context)
	if err != nil {
		return MatchResult{}, false
	}
	p, ok := s.patterns.Get(sig)
	if !ok {
		return MatchResult{}, false
	}
	tile, ok := p.PrimaryTile()
	if !ok {
		return MatchResult{}, false
	}
	return MatchResult{Tile: tile, Tier: TierExact, Signature: sig, Similarity: ContextSize}, true
}

func (s *PatternStore) matchSimilar(center TerrainID, context NeighborContext) (MatchResult, bool) {
	var (
		best      *Pattern
		bestSig   Signature
		bestScore int
	)
	s.each(func(sig Signature, p *Pattern) {
		if p.CenterTerrain != center || len(p.ValidTiles) == 0 {
			return
		}
		// strict ">" keeps the earliest inserted pattern on ties
		if score := p.similarity(context); score > bestScore {
			best, bestSig, bestScore = p, sig, score
		}
	})
	if best == nil {
		return MatchResult{}, false
	}
	tile, _ := best.PrimaryTile()
	return MatchResult{Tile: tile, Tier: TierSimilar, Signature: bestSig, Similarity: bestScore}, true
}

func (s *PatternStore) matchTerrainDefault(center TerrainID) MatchResult {
	if tile, ok := s.Index().TerrainDefault(center); ok {
		return MatchResult{Tile: tile, Tier: TierTerrainDefault}
	}
	return MatchResult{Tile: NoTile, Tier: TierNone}
}
