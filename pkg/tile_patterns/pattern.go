package tile_patterns

type TerrainID = int
type TileIndex = int

// NoTile is returned by the match engine when it has no informed choice.
// Callers must special-case it: 0 can also be a real tile index.
const NoTile TileIndex = 0

// DefaultTileBound is the conventional tile index space of one tileset.
const DefaultTileBound = 1024

// ContextSize is the number of neighbors around a center cell.
const ContextSize = 8

// Neighbor positions inside a NeighborContext. Order is semantic and never changes.
const (
	PosNW = iota
	PosN
	PosNE
	PosW
	PosE
	PosSW
	PosS
	PosSE
)

// NeighborContext is the ordered terrain ring around a center cell: NW, N, NE, W, E, SW, S, SE.
//
// It is a slice (not an array) because imported snapshots may carry malformed contexts
// and Validate has to be able to report them.
type NeighborContext []TerrainID

// UniformContext returns a context where all 8 neighbors share the same terrain.
func UniformContext(terrain TerrainID) NeighborContext {
	ctx := make(NeighborContext, ContextSize)
	for i := range ctx {
		ctx[i] = terrain
	}
	return ctx
}

func (c NeighborContext) clone() NeighborContext {
	return append(NeighborContext(nil), c...)
}

// Pattern is one learned (center terrain, neighbor context) shape and the tiles
// that were observed for it.
//
// CenterTerrain and NeighborContext never change once the pattern exists.
// ValidTiles keeps insertion order; ValidTiles[0] is the primary tile forever.
type Pattern struct {
	CenterTerrain   TerrainID
	NeighborContext NeighborContext
	ValidTiles      []TileIndex
	Frequency       int
	Sources         []string
}

// PrimaryTile returns the first tile ever learned for this pattern.
func (p *Pattern) PrimaryTile() (TileIndex, bool) {
	if len(p.ValidTiles) == 0 {
		return NoTile, false
	}
	return p.ValidTiles[0], true
}

func (p *Pattern) HasTile(tile TileIndex) bool {
	for _, t := range p.ValidTiles {
		if t == tile {
			return true
		}
	}
	return false
}

func (p *Pattern) HasSource(source string) bool {
	for _, s := range p.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// WellFormed reports whether the pattern can take part in matching.
func (p *Pattern) WellFormed() bool {
	return len(p.NeighborContext) == ContextSize && len(p.ValidTiles) > 0
}

// Quality is the reliability score of this pattern, see QualityScore.
func (p *Pattern) Quality() float64 {
	return QualityScore(p.Frequency, len(p.ValidTiles), len(p.Sources))
}

func (p *Pattern) QualityBucket() QualityBucket {
	return BucketFor(p.Quality())
}

// similarity is the number of positions where both contexts agree (0..8).
// Only overlapping positions are compared, so a malformed stored context
// can still score but never above its own length.
func (p *Pattern) similarity(query NeighborContext) int {
	n := len(p.NeighborContext)
	if len(query) < n {
		n = len(query)
	}
	score := 0
	for i := 0; i < n; i++ {
		if p.NeighborContext[i] == query[i] {
			score++
		}
	}
	return score
}

func (p *Pattern) clone() Pattern {
	return Pattern{
		CenterTerrain:   p.CenterTerrain,
		NeighborContext: p.NeighborContext.clone(),
		ValidTiles:      append([]TileIndex(nil), p.ValidTiles...),
		Frequency:       p.Frequency,
		Sources:         append([]string(nil), p.Sources...),
	}
}
