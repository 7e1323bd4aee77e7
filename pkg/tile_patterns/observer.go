package tile_patterns

import (
	"time"

	"go.uber.org/zap"
)

// LearnEvent describes one accepted observation.
type LearnEvent struct {
	Signature Signature
	Tile      TileIndex
	Source    string

	// Created is true when this observation created the pattern.
	Created bool
	// NewTile is true when Tile was not yet in the pattern's tile list.
	NewTile bool

	// Frequency is the pattern frequency after this observation.
	Frequency int
	Revision  uint64
}

// LearnObserver is called after AddPattern has applied an observation.
// The store is passed so observers can inspect the updated pattern.
type LearnObserver interface {
	OnPatternLearned(store *PatternStore, ev LearnEvent)
}

type MultiObserver struct {
	Observers []LearnObserver
}

func (m MultiObserver) OnPatternLearned(store *PatternStore, ev LearnEvent) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnPatternLearned(store, ev)
		}
	}
}

// PatternRepeat is what we get when a learned pattern has been seen often enough.
type PatternRepeat struct {
	Signature Signature
	Pattern   Pattern

	// Occurrence is the pattern frequency at this observation (MinCount, MinCount+1, ...).
	Occurrence int
	At         time.Time

	// What caused it *this time*?
	Tile   TileIndex
	Source string
}

// RepeatListener is the "fire event or method call" sink of a RepeatWatcher.
type RepeatListener interface {
	OnPatternRepeated(repeat PatternRepeat)
}

// RepeatWatcher fires when a pattern frequency reaches MinCount, and on every
// occurrence after that (MinCount, MinCount+1, ...).
type RepeatWatcher struct {
	// Fire when Frequency >= MinCount. For "repeated", MinCount should be 2.
	MinCount int

	Listener RepeatListener
}

func NewRepeatWatcher(minCount int, listener RepeatListener) *RepeatWatcher {
	if minCount < 1 {
		minCount = 1
	}
	return &RepeatWatcher{
		MinCount: minCount,
		Listener: listener,
	}
}

func (w *RepeatWatcher) OnPatternLearned(store *PatternStore, ev LearnEvent) {
	if w == nil || w.Listener == nil || store == nil {
		return
	}
	if ev.Frequency < w.MinCount {
		return
	}
	p, ok := store.Get(ev.Signature)
	if !ok {
		return
	}
	w.Listener.OnPatternRepeated(PatternRepeat{
		Signature:  ev.Signature,
		Pattern:    p,
		Occurrence: ev.Frequency,
		At:         time.Now(),
		Tile:       ev.Tile,
		Source:     ev.Source,
	})
}

// LogRepeatListener writes every repeat to a zap logger.
type LogRepeatListener struct {
	Logger *zap.Logger
}

func NewLogRepeatListener(logger *zap.Logger) *LogRepeatListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRepeatListener{Logger: logger}
}

func (l *LogRepeatListener) OnPatternRepeated(repeat PatternRepeat) {
	primary, _ := repeat.Pattern.PrimaryTile()
	l.Logger.Info("pattern repeated",
		zap.String("signature", repeat.Signature),
		zap.Int("occurrence", repeat.Occurrence),
		zap.Int("primary_tile", primary),
		zap.Int("tile", repeat.Tile),
		zap.String("source", repeat.Source),
		zap.Float64("quality", repeat.Pattern.Quality()),
	)
}
