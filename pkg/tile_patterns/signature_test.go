package tile_patterns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSignature_Deterministic(t *testing.T) {
	ctx := NeighborContext{1, 2, 3, 4, 5, 6, 7, 8}

	a, err := BuildSignature(Grass, ctx)
	require.NoError(t, err)
	b, err := BuildSignature(Grass, NeighborContext{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Equal(t, "1:1,2,3,4,5,6,7,8", a)
}

func TestBuildSignature_DiffersOnCenterAndEveryPosition(t *testing.T) {
	base := allGrass()
	baseSig, err := BuildSignature(Grass, base)
	require.NoError(t, err)

	otherCenter, err := BuildSignature(Water, base)
	require.NoError(t, err)
	require.NotEqual(t, baseSig, otherCenter)

	seen := map[Signature]int{baseSig: -1}
	for pos := 0; pos < ContextSize; pos++ {
		sig, err := BuildSignature(Grass, withNeighbor(base, pos, Water))
		require.NoError(t, err)
		prev, dup := seen[sig]
		require.False(t, dup, "position %d collides with %d", pos, prev)
		seen[sig] = pos
	}
}

func TestBuildSignature_MultiDigitIdsDoNotCollide(t *testing.T) {
	a, err := BuildSignature(1, NeighborContext{12, 3, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	b, err := BuildSignature(11, NeighborContext{2, 3, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	c, err := BuildSignature(1, NeighborContext{1, 23, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)
}

func TestBuildSignature_InvalidContext(t *testing.T) {
	for _, ctx := range []NeighborContext{nil, {}, {1, 1, 1, 1, 1, 1, 1}, {1, 1, 1, 1, 1, 1, 1, 1, 1}} {
		sig, err := BuildSignature(Grass, ctx)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidContext))
		require.Empty(t, sig)
	}
}

func TestParseSignature_RoundTrip(t *testing.T) {
	ctx := NeighborContext{0, 1, 2, 3, 40, 5, 6, 700}
	sig, err := BuildSignature(Sand, ctx)
	require.NoError(t, err)

	center, parsed, err := ParseSignature(sig)
	require.NoError(t, err)
	require.Equal(t, Sand, center)
	require.Equal(t, ctx, parsed)
}

func TestParseSignature_Malformed(t *testing.T) {
	for _, sig := range []Signature{"", "1", "x:1,1,1,1,1,1,1,1", "1:1,1,1", "1:1,1,1,1,1,1,1,y"} {
		_, _, err := ParseSignature(sig)
		require.ErrorIs(t, err, ErrInvalidSignature, sig)
	}
}
