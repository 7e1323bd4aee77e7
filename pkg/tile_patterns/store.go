package tile_patterns

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

//
// ==============================
// 1) Pattern store primitives
// ==============================
//

// PatternStore maps signatures to learned patterns for one tileset.
//
// It is an ORDER-PRESERVING map: Patterns() and the similarity fallback
// walk patterns in the order their signature was first seen. Tie-breaking
// in Match depends on that, so results are reproducible across runs.
//
// Revisions drive index freshness and cache invalidation:
//   - Revision(): bumped on every accepted observation.
//   - Index().Revision: the store revision the published index was built from.
//
// The store holds no locks. Mutation (AddPattern, Rebuild) must be
// serialized by the caller; the only concurrency guarantee is that the
// derived index is published with an atomic swap.
type PatternStore struct {
	tilesetID string
	tileBound int

	patterns *orderedmap.OrderedMap[Signature, *Pattern]

	rev   uint64
	index atomic.Pointer[IndexSnapshot]

	extraction ExtractionStats
	observers  []LearnObserver
	logger     *zap.Logger
}

// ExtractionStats summarizes how a store was populated.
// CellsObserved counts painted cells offered for learning, rejected ones included.
type ExtractionStats struct {
	MapsProcessed int `json:"maps_processed"`
	CellsObserved int `json:"cells_observed"`
	Observations  int `json:"observations"`
	Rejected      int `json:"rejected"`
}

type Option func(*PatternStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *PatternStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTileBound sets the exclusive upper bound of tile indices, usually DefaultTileBound.
// Zero or less disables the check, which is the default.
func WithTileBound(bound int) Option {
	return func(s *PatternStore) {
		s.tileBound = bound
	}
}

func WithObservers(observers ...LearnObserver) Option {
	return func(s *PatternStore) {
		s.observers = append(s.observers, observers...)
	}
}

// NewPatternStore creates an empty store owned by tilesetID.
// An empty tilesetID is replaced by a generated one.
func NewPatternStore(tilesetID string, opts ...Option) *PatternStore {
	if tilesetID == "" {
		tilesetID = uuid.NewString()
	}
	s := &PatternStore{
		tilesetID: tilesetID,
		patterns:  orderedmap.New[Signature, *Pattern](),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.index.Store(emptyIndex())
	return s
}

func (s *PatternStore) TilesetID() string {
	return s.tilesetID
}

func (s *PatternStore) Len() int {
	return s.patterns.Len()
}

// Revision is the store mutation counter.
func (s *PatternStore) Revision() uint64 {
	return s.rev
}

func (s *PatternStore) ExtractionStats() ExtractionStats {
	return s.extraction
}

// RecordExtraction adds map/cell counters reported by an extraction collaborator.
func (s *PatternStore) RecordExtraction(maps, cells int) {
	s.extraction.MapsProcessed += maps
	s.extraction.CellsObserved += cells
}

func (s *PatternStore) AddObserver(o LearnObserver) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Get returns a copy of the pattern stored under sig.
func (s *PatternStore) Get(sig Signature) (Pattern, bool) {
	p, ok := s.patterns.Get(sig)
	if !ok {
		return Pattern{}, false
	}
	return p.clone(), true
}

// Lookup finds the pattern of an exact (center, context) pair.
func (s *PatternStore) Lookup(center TerrainID, context NeighborContext) (Pattern, bool) {
	sig, err := BuildSignature(center, context)
	if err != nil {
		return Pattern{}, false
	}
	return s.Get(sig)
}

// Signatures returns all keys in insertion order.
func (s *PatternStore) Signatures() []Signature {
	out := make([]Signature, 0, s.patterns.Len())
	s.each(func(sig Signature, _ *Pattern) {
		out = append(out, sig)
	})
	return out
}

// Patterns returns copies of all patterns in insertion order.
func (s *PatternStore) Patterns() []Pattern {
	out := make([]Pattern, 0, s.patterns.Len())
	s.each(func(_ Signature, p *Pattern) {
		out = append(out, p.clone())
	})
	return out
}

// PatternsForTerrain returns copies of the patterns centered on terrain, in insertion order.
func (s *PatternStore) PatternsForTerrain(center TerrainID) []Pattern {
	var out []Pattern
	s.each(func(_ Signature, p *Pattern) {
		if p.CenterTerrain == center {
			out = append(out, p.clone())
		}
	})
	return out
}

func (s *PatternStore) each(fn func(sig Signature, p *Pattern)) {
	for pair := s.patterns.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

//
// ==============================
// 2) Learning
// ==============================
//

// AddPattern records one observation: tile was used for center surrounded by context, in source.
//
// IMPORTANT SEMANTICS:
//   - The tile list and source list are sets with list ordering; the first tile
//     learned for a signature stays its primary tile permanently.
//   - Frequency counts observations, so it grows on every accepted call,
//     even when tile and source were already known.
//   - Derived indices are NOT touched. Call Rebuild to refresh them.
//
// Malformed input is rejected before anything is applied.
func (s *PatternStore) AddPattern(center TerrainID, context NeighborContext, tile TileIndex, source string) error {
	sig, err := BuildSignature(center, context)
	if err != nil {
		s.reject(center, len(context), tile, source, err)
		return err
	}
	if s.tileBound > 0 && (tile < 0 || tile >= s.tileBound) {
		err = fmt.Errorf("%w: tile %d, bound %d", ErrTileOutOfRange, tile, s.tileBound)
		s.reject(center, len(context), tile, source, err)
		return err
	}

	p, ok := s.patterns.Get(sig)
	created := !ok
	if created {
		p = &Pattern{
			CenterTerrain:   center,
			NeighborContext: context.clone(),
		}
		s.patterns.Set(sig, p)
	}

	newTile := !p.HasTile(tile)
	if newTile {
		p.ValidTiles = append(p.ValidTiles, tile)
	}
	if !p.HasSource(source) {
		p.Sources = append(p.Sources, source)
	}
	p.Frequency++

	s.rev++
	s.extraction.Observations++

	s.notify(LearnEvent{
		Signature: sig,
		Tile:      tile,
		Source:    source,
		Created:   created,
		NewTile:   newTile,
		Frequency: p.Frequency,
		Revision:  s.rev,
	})
	return nil
}

func (s *PatternStore) reject(center TerrainID, contextLen int, tile TileIndex, source string, err error) {
	s.extraction.Rejected++
	s.logger.Debug("observation rejected",
		zap.String("tileset", s.tilesetID),
		zap.Int("center", center),
		zap.Int("context_len", contextLen),
		zap.Int("tile", tile),
		zap.String("source", source),
		zap.Error(err),
	)
}

func (s *PatternStore) notify(ev LearnEvent) {
	for _, o := range s.observers {
		if o != nil {
			o.OnPatternLearned(s, ev)
		}
	}
}

// insertImported places a fully built pattern, used when restoring snapshots.
// A signature seen again keeps its first position.
func (s *PatternStore) insertImported(sig Signature, p *Pattern) {
	s.patterns.Set(sig, p)
	s.rev++
}
