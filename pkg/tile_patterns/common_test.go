package tile_patterns

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	Grass TerrainID = 1
	Water TerrainID = 2
	Sand  TerrainID = 3
	Rock  TerrainID = 4
)

func allGrass() NeighborContext {
	return UniformContext(Grass)
}

// withNeighbor returns a copy of ctx with one position replaced.
func withNeighbor(ctx NeighborContext, pos int, terrain TerrainID) NeighborContext {
	out := append(NeighborContext(nil), ctx...)
	out[pos] = terrain
	return out
}

func newTestStore(t *testing.T, opts ...Option) *PatternStore {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewPatternStore("test-tileset", opts...)
}

func mustLearn(t *testing.T, s *PatternStore, center TerrainID, ctx NeighborContext, tile TileIndex, source string) {
	t.Helper()
	require.NoError(t, s.AddPattern(center, ctx, tile, source))
}

// testRepeatListener captures repeat callbacks so we can assert on them.
type testRepeatListener struct {
	mu      sync.Mutex
	repeats []PatternRepeat
}

func (l *testRepeatListener) OnPatternRepeated(r PatternRepeat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.repeats = append(l.repeats, r)
}

func (l *testRepeatListener) All() []PatternRepeat {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PatternRepeat, len(l.repeats))
	copy(out, l.repeats)
	return out
}

// countingObserver counts learn events by kind.
type countingObserver struct {
	events  int
	created int
	newTile int
}

func (o *countingObserver) OnPatternLearned(_ *PatternStore, ev LearnEvent) {
	o.events++
	if ev.Created {
		o.created++
	}
	if ev.NewTile {
		o.newTile++
	}
}
