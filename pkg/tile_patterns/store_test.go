package tile_patterns

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewPatternStore_GeneratesTilesetID(t *testing.T) {
	s := NewPatternStore("")
	_, err := uuid.Parse(s.TilesetID())
	require.NoError(t, err)

	named := NewPatternStore("overworld")
	require.Equal(t, "overworld", named.TilesetID())
}

func TestAddPattern_CreatesPattern(t *testing.T) {
	s := newTestStore(t)
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")

	require.Equal(t, 1, s.Len())
	p, ok := s.Lookup(Grass, allGrass())
	require.True(t, ok)
	require.Equal(t, Grass, p.CenterTerrain)
	require.Equal(t, allGrass(), p.NeighborContext)
	require.Equal(t, []TileIndex{5}, p.ValidTiles)
	require.Equal(t, []string{"map_a"}, p.Sources)
	require.Equal(t, 1, p.Frequency)
	require.True(t, p.WellFormed())
}

func TestAddPattern_IdempotentMembershipNonIdempotentFrequency(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 3; i++ {
		mustLearn(t, s, Grass, allGrass(), 5, "map_a")

		p, ok := s.Lookup(Grass, allGrass())
		require.True(t, ok)
		require.Equal(t, []TileIndex{5}, p.ValidTiles)
		require.Equal(t, []string{"map_a"}, p.Sources)
		require.Equal(t, i, p.Frequency)
	}
	require.Equal(t, 1, s.Len())
}

func TestAddPattern_PrimaryTileIsStable(t *testing.T) {
	s := newTestStore(t)
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")
	mustLearn(t, s, Grass, allGrass(), 7, "map_b")
	mustLearn(t, s, Grass, allGrass(), 5, "map_c")

	p, ok := s.Lookup(Grass, allGrass())
	require.True(t, ok)
	require.Equal(t, []TileIndex{5, 7}, p.ValidTiles)
	require.Equal(t, []string{"map_a", "map_b", "map_c"}, p.Sources)
	require.Equal(t, 3, p.Frequency)

	primary, ok := p.PrimaryTile()
	require.True(t, ok)
	require.Equal(t, 5, primary)
}

func TestAddPattern_RejectsMalformedContextWithoutSideEffects(t *testing.T) {
	s := newTestStore(t)
	obs := &countingObserver{}
	s.AddObserver(obs)

	err := s.AddPattern(Grass, NeighborContext{1, 1, 1}, 5, "map_a")
	require.ErrorIs(t, err, ErrInvalidContext)

	require.Equal(t, 0, s.Len())
	require.Equal(t, uint64(0), s.Revision())
	require.Equal(t, 1, s.ExtractionStats().Rejected)
	require.Equal(t, 0, s.ExtractionStats().Observations)
	require.Equal(t, 0, obs.events)
}

func TestAddPattern_RejectsTileOutsideBound(t *testing.T) {
	s := newTestStore(t, WithTileBound(16))

	require.ErrorIs(t, s.AddPattern(Grass, allGrass(), 16, "map_a"), ErrTileOutOfRange)
	require.ErrorIs(t, s.AddPattern(Grass, allGrass(), -1, "map_a"), ErrTileOutOfRange)
	require.NoError(t, s.AddPattern(Grass, allGrass(), 15, "map_a"))
	require.Equal(t, 1, s.Len())

	unbounded := newTestStore(t, WithTileBound(0))
	require.NoError(t, unbounded.AddPattern(Grass, allGrass(), 5000, "map_a"))
}

func TestAddPattern_UnboundedByDefault(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddPattern(Grass, allGrass(), DefaultTileBound, "map_a"))
	require.NoError(t, s.AddPattern(Grass, allGrass(), 2000, "map_a"))

	p, ok := s.Lookup(Grass, allGrass())
	require.True(t, ok)
	require.Equal(t, []TileIndex{DefaultTileBound, 2000}, p.ValidTiles)
	require.Zero(t, s.ExtractionStats().Rejected)

	bounded := newTestStore(t, WithTileBound(DefaultTileBound))
	require.NoError(t, bounded.AddPattern(Grass, allGrass(), DefaultTileBound-1, "map_a"))
	require.ErrorIs(t, bounded.AddPattern(Grass, allGrass(), DefaultTileBound, "map_a"), ErrTileOutOfRange)
}

func TestAddPattern_StoreCopiesContext(t *testing.T) {
	s := newTestStore(t)
	ctx := allGrass()
	mustLearn(t, s, Grass, ctx, 5, "map_a")

	ctx[PosN] = Water

	p, ok := s.Lookup(Grass, allGrass())
	require.True(t, ok)
	require.Equal(t, allGrass(), p.NeighborContext)
}

func TestPatterns_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	mustLearn(t, s, Water, UniformContext(Water), 9, "map_a")
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")
	mustLearn(t, s, Grass, withNeighbor(allGrass(), PosE, Water), 6, "map_a")
	mustLearn(t, s, Water, UniformContext(Water), 9, "map_b")

	sigs := s.Signatures()
	require.Equal(t, []Signature{
		"2:2,2,2,2,2,2,2,2",
		"1:1,1,1,1,1,1,1,1",
		"1:1,1,1,1,2,1,1,1",
	}, sigs)

	grass := s.PatternsForTerrain(Grass)
	require.Len(t, grass, 2)
	require.Equal(t, 5, grass[0].ValidTiles[0])
	require.Equal(t, 6, grass[1].ValidTiles[0])

	all := s.Patterns()
	require.Len(t, all, 3)
	require.Equal(t, 2, all[0].Frequency)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")

	p, ok := s.Lookup(Grass, allGrass())
	require.True(t, ok)
	p.ValidTiles[0] = 99
	p.Frequency = 100

	again, _ := s.Lookup(Grass, allGrass())
	require.Equal(t, []TileIndex{5}, again.ValidTiles)
	require.Equal(t, 1, again.Frequency)
}

func TestAddPattern_DoesNotTouchIndex(t *testing.T) {
	s := newTestStore(t)
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")

	require.Empty(t, s.Index().TerrainTiles)
	require.Equal(t, IndexStale, s.IndexState())
}

func TestObservers_ReceiveLearnEvents(t *testing.T) {
	obs := &countingObserver{}
	s := newTestStore(t, WithObservers(MultiObserver{Observers: []LearnObserver{obs, nil}}))

	mustLearn(t, s, Grass, allGrass(), 5, "map_a")
	mustLearn(t, s, Grass, allGrass(), 5, "map_b")
	mustLearn(t, s, Grass, allGrass(), 7, "map_b")

	require.Equal(t, 3, obs.events)
	require.Equal(t, 1, obs.created)
	require.Equal(t, 2, obs.newTile)
}

func TestRecordExtraction(t *testing.T) {
	s := newTestStore(t)
	s.RecordExtraction(2, 50)
	s.RecordExtraction(1, 10)
	mustLearn(t, s, Grass, allGrass(), 5, "map_a")

	stats := s.ExtractionStats()
	require.Equal(t, 3, stats.MapsProcessed)
	require.Equal(t, 60, stats.CellsObserved)
	require.Equal(t, 1, stats.Observations)
}
