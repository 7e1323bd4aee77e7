package tile_patterns

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// This file implements the signature key of a (center, context) pair.
//
// Design goal:
//   - Deterministic: identical inputs always give identical keys
//   - Injective: a different center or any single different neighbor gives a different key
//   - Position-sensitive: the context is NOT sorted, NW..SE order is part of the identity
//   - Readable: keys end up as JSON object keys in exported snapshots
//
// Format: "<center>:<nw>,<n>,<ne>,<w>,<e>,<sw>,<s>,<se>"

type Signature = string

var (
	ErrInvalidContext    = errors.New("neighbor context must have exactly 8 entries")
	ErrInvalidSignature  = errors.New("malformed signature")
	ErrTileOutOfRange    = errors.New("tile index outside tileset bound")
	ErrSignatureMismatch = errors.New("signature does not match pattern body")
)

const (
	centerSep   = ":"
	neighborSep = ","
)

// BuildSignature returns the store key for (center, context).
// A context that is not exactly 8 long yields ErrInvalidContext and no usable key.
func BuildSignature(center TerrainID, context NeighborContext) (Signature, error) {
	if len(context) != ContextSize {
		return "", fmt.Errorf("%w: got %d", ErrInvalidContext, len(context))
	}

	var b strings.Builder
	b.Grow(3 * (ContextSize + 1))
	b.WriteString(strconv.Itoa(center))
	b.WriteString(centerSep)
	for i, t := range context {
		if i > 0 {
			b.WriteString(neighborSep)
		}
		b.WriteString(strconv.Itoa(t))
	}
	return b.String(), nil
}

// ParseSignature is the inverse of BuildSignature.
func ParseSignature(sig Signature) (TerrainID, NeighborContext, error) {
	head, tail, ok := strings.Cut(sig, centerSep)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q has no center separator", ErrInvalidSignature, sig)
	}
	center, err := strconv.Atoi(head)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: center %q: %v", ErrInvalidSignature, head, err)
	}

	parts := strings.Split(tail, neighborSep)
	if len(parts) != ContextSize {
		return 0, nil, fmt.Errorf("%w: %w: got %d", ErrInvalidSignature, ErrInvalidContext, len(parts))
	}
	context := make(NeighborContext, 0, ContextSize)
	for _, p := range parts {
		t, err := strconv.Atoi(p)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: neighbor %q: %v", ErrInvalidSignature, p, err)
		}
		context = append(context, t)
	}
	return center, context, nil
}
