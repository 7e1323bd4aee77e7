package tile_patterns

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRepeatWatcher_FiresFromMinCountOnEveryOccurrence(t *testing.T) {
	listener := &testRepeatListener{}
	s := newTestStore(t, WithObservers(NewRepeatWatcher(2, listener)))

	mustLearn(t, s, Grass, allGrass(), 5, "map_a")
	require.Empty(t, listener.All())

	mustLearn(t, s, Grass, allGrass(), 7, "map_b")
	mustLearn(t, s, Grass, allGrass(), 5, "map_c")
	// a different shape seen once never fires
	mustLearn(t, s, Grass, withNeighbor(allGrass(), PosN, Water), 6, "map_a")

	repeats := listener.All()
	require.Len(t, repeats, 2)
	require.Equal(t, 2, repeats[0].Occurrence)
	require.Equal(t, 7, repeats[0].Tile)
	require.Equal(t, "map_b", repeats[0].Source)
	require.Equal(t, 3, repeats[1].Occurrence)
	require.Equal(t, []TileIndex{5, 7}, repeats[1].Pattern.ValidTiles)
	require.Equal(t, "1:1,1,1,1,1,1,1,1", repeats[1].Signature)
}

func TestRepeatWatcher_MinCountFloor(t *testing.T) {
	w := NewRepeatWatcher(0, &testRepeatListener{})
	require.Equal(t, 1, w.MinCount)
}

func TestRepeatWatcher_NilSafe(t *testing.T) {
	var w *RepeatWatcher
	require.NotPanics(t, func() {
		w.OnPatternLearned(nil, LearnEvent{Frequency: 5})
	})

	noListener := &RepeatWatcher{MinCount: 1}
	require.NotPanics(t, func() {
		noListener.OnPatternLearned(newTestStore(t), LearnEvent{Frequency: 5})
	})
}

func TestLogRepeatListener_WritesStructuredEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	listener := NewLogRepeatListener(zap.New(core))
	s := newTestStore(t, WithObservers(NewRepeatWatcher(2, listener)))

	mustLearn(t, s, Grass, allGrass(), 5, "map_a")
	mustLearn(t, s, Grass, allGrass(), 5, "map_b")

	entries := logs.FilterMessage("pattern repeated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "1:1,1,1,1,1,1,1,1", fields["signature"])
	require.EqualValues(t, 2, fields["occurrence"])
	require.EqualValues(t, 5, fields["primary_tile"])
	require.Equal(t, "map_b", fields["source"])
}

func TestAddPattern_LogsRejections(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewPatternStore("logged", WithLogger(zap.New(core)))

	require.Error(t, s.AddPattern(Grass, NeighborContext{1, 2}, 5, "map_a"))

	entries := logs.FilterMessage("observation rejected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.EqualValues(t, 2, fields["context_len"])
	require.Equal(t, "logged", fields["tileset"])
}
