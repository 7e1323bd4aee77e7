package tile_patterns

//
// ============================================
// 4) Match caching for repeated grid queries
// ============================================
//
// Autotiling a map asks the same (center, context) question many times.
// MatchCache memoises Match results. The cache key includes revision
// snapshots, so any accepted observation or rebuild makes old entries
// unreachable without explicit invalidation.
//
// Not safe for concurrent use, same as the store it wraps.

type matchCacheKey struct {
	Signature Signature
	Center    TerrainID

	StoreRev uint64
	IndexRev uint64
}

type MatchCache struct {
	store   *PatternStore
	entries map[matchCacheKey]MatchResult

	hits   int
	misses int
}

func NewMatchCache(store *PatternStore) *MatchCache {
	return &MatchCache{
		store:   store,
		entries: make(map[matchCacheKey]MatchResult),
	}
}

// Match answers like PatternStore.Match, serving repeated questions from memory.
func (c *MatchCache) Match(center TerrainID, context NeighborContext) MatchResult {
	sig, err := BuildSignature(center, context)
	if err != nil {
		// malformed contexts only reach tier 3, which is already cheap
		return c.store.Match(center, context)
	}

	key := matchCacheKey{
		Signature: sig,
		Center:    center,
		StoreRev:  c.store.Revision(),
		IndexRev:  c.store.Index().Revision,
	}
	if r, ok := c.entries[key]; ok {
		c.hits++
		return r
	}

	c.misses++
	r := c.store.Match(center, context)
	c.entries[key] = r
	return r
}

func (c *MatchCache) GetBestTile(center TerrainID, context NeighborContext) TileIndex {
	return c.Match(center, context).Tile
}

// Stats returns cache hits and misses since creation or the last Reset.
func (c *MatchCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Reset drops all entries, including ones for revisions that are no longer reachable.
func (c *MatchCache) Reset() {
	c.entries = make(map[matchCacheKey]MatchResult)
	c.hits, c.misses = 0, 0
}
