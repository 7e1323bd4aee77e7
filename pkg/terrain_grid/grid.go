package terrain_grid

import (
	"errors"
	"fmt"

	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
)

var ErrShapeMismatch = errors.New("grid shape mismatch")

// Point represents a cell coordinate. Y grows downwards (row index).
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// neighborOffsets lists the 8 neighbors in context order: NW, N, NE, W, E, SW, S, SE.
var neighborOffsets = [tp.ContextSize][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the 8 surrounding points in context order.
func (p Point) Neighbors() [tp.ContextSize]Point {
	var out [tp.ContextSize]Point
	for i, d := range neighborOffsets {
		out[i] = p.Add(d[0], d[1])
	}
	return out
}

// Grid is a rectangular layer of integer cells, stored row-major as Cells[y][x].
type Grid struct {
	Width, Height int
	Cells         [][]int
}

// NewGrid creates a grid filled with fill.
func NewGrid(width, height, fill int) *Grid {
	cells := make([][]int, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]int, width)
		for x := 0; x < width; x++ {
			cells[y][x] = fill
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// GridFromRows wraps rows as a grid. All rows must have the same length.
func GridFromRows(rows [][]int) (*Grid, error) {
	g := &Grid{Height: len(rows), Cells: rows}
	if len(rows) > 0 {
		g.Width = len(rows[0])
	}
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrShapeMismatch, y, len(row), g.Width)
		}
	}
	return g, nil
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Get returns the cell at p, and false when p is outside the grid.
func (g *Grid) Get(p Point) (int, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.Cells[p.Y][p.X], true
}

// Set writes a cell; points outside the grid are ignored.
func (g *Grid) Set(p Point, v int) {
	if g.InBounds(p) {
		g.Cells[p.Y][p.X] = v
	}
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Width == other.Width && g.Height == other.Height
}

// Each visits all cells row by row.
func (g *Grid) Each(fn func(p Point, v int)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(Point{x, y}, g.Cells[y][x])
		}
	}
}

// EdgePolicy decides what terrain a neighbor outside the map has.
type EdgePolicy struct {
	// MirrorCenter uses the center cell's terrain for missing neighbors.
	MirrorCenter bool
	// Terrain is used for missing neighbors when MirrorCenter is false.
	Terrain tp.TerrainID
}

// DefaultEdgePolicy treats the map border as a continuation of the center terrain.
func DefaultEdgePolicy() EdgePolicy {
	return EdgePolicy{MirrorCenter: true}
}

func FixedEdgePolicy(terrain tp.TerrainID) EdgePolicy {
	return EdgePolicy{Terrain: terrain}
}

// ContextAt builds the neighbor context of p on a terrain grid.
// p itself must be inside the grid.
func ContextAt(terrain *Grid, p Point, edge EdgePolicy) (tp.TerrainID, tp.NeighborContext, error) {
	center, ok := terrain.Get(p)
	if !ok {
		return 0, nil, fmt.Errorf("point %v outside %dx%d grid", p, terrain.Width, terrain.Height)
	}

	ctx := make(tp.NeighborContext, tp.ContextSize)
	for i, n := range p.Neighbors() {
		v, ok := terrain.Get(n)
		switch {
		case ok:
			ctx[i] = v
		case edge.MirrorCenter:
			ctx[i] = center
		default:
			ctx[i] = edge.Terrain
		}
	}
	return center, ctx, nil
}
