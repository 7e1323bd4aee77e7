package terrain_grid

import (
	"testing"

	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	grass = 1
	water = 2
	sand  = 3
)

func mustGrid(t *testing.T, rows [][]int) *Grid {
	t.Helper()
	g, err := GridFromRows(rows)
	require.NoError(t, err)
	return g
}

func TestPoint_NeighborsOrder(t *testing.T) {
	n := Point{5, 5}.Neighbors()
	require.Equal(t, [tp.ContextSize]Point{
		{4, 4}, {5, 4}, {6, 4},
		{4, 5}, {6, 5},
		{4, 6}, {5, 6}, {6, 6},
	}, n)
	require.Equal(t, Point{5, 4}, n[tp.PosN])
	require.Equal(t, Point{6, 6}, n[tp.PosSE])
}

func TestGridFromRows_Ragged(t *testing.T) {
	_, err := GridFromRows([][]int{{1, 2}, {1}})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestGrid_GetSet(t *testing.T) {
	g := NewGrid(3, 2, 7)
	require.Equal(t, 3, g.Width)
	require.Equal(t, 2, g.Height)

	v, ok := g.Get(Point{2, 1})
	require.True(t, ok)
	require.Equal(t, 7, v)

	g.Set(Point{2, 1}, 9)
	g.Set(Point{3, 0}, 9) // ignored
	v, _ = g.Get(Point{2, 1})
	require.Equal(t, 9, v)

	_, ok = g.Get(Point{-1, 0})
	require.False(t, ok)
}

func TestContextAt_Interior(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	center, ctx, err := ContextAt(g, Point{1, 1}, DefaultEdgePolicy())
	require.NoError(t, err)
	require.Equal(t, 5, center)
	require.Equal(t, tp.NeighborContext{1, 2, 3, 4, 6, 7, 8, 9}, ctx)
}

func TestContextAt_EdgePolicies(t *testing.T) {
	g := mustGrid(t, [][]int{
		{grass, water},
		{sand, grass},
	})

	center, ctx, err := ContextAt(g, Point{0, 0}, DefaultEdgePolicy())
	require.NoError(t, err)
	require.Equal(t, grass, center)
	require.Equal(t, tp.NeighborContext{grass, grass, grass, grass, water, grass, sand, grass}, ctx)

	_, ctx, err = ContextAt(g, Point{0, 0}, FixedEdgePolicy(0))
	require.NoError(t, err)
	require.Equal(t, tp.NeighborContext{0, 0, 0, 0, water, 0, sand, grass}, ctx)
}

func TestContextAt_OutsideGrid(t *testing.T) {
	g := NewGrid(2, 2, grass)
	_, _, err := ContextAt(g, Point{2, 0}, DefaultEdgePolicy())
	require.Error(t, err)
}
