package sand

import "sandstorm/internal/core"

// Cell is the per-position simulation record.
type Cell struct {
	Element Element
	// Processed marks a cell that moved or was created during the current
	// sweep; the next visit clears it instead of updating the cell.
	Processed bool
	Age       int
	Lifespan  int
}

// Grid stores cells in row-major order. Its dimensions never change.
type Grid struct {
	size  core.Size
	cells []Cell
}

// NewGrid allocates an all-empty grid. Non-positive dimensions become 1.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{size: core.Size{W: w, H: h}, cells: make([]Cell, w*h)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool { return g.size.Contains(x, y) }

// At returns a copy of the cell at (x, y); out-of-bounds reads are empty.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[g.size.Index(x, y)]
}

// ElementAt is At(x, y).Element.
func (g *Grid) ElementAt(x, y int) Element { return g.At(x, y).Element }

// Set overwrites the cell at (x, y). It reports false for out-of-bounds
// coordinates and leaves the grid untouched.
func (g *Grid) Set(x, y int, c Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[g.size.Index(x, y)] = c
	return true
}

// Reset empties every cell and zeroes all counters.
func (g *Grid) Reset() {
	clear(g.cells)
}

// cell returns a pointer for in-package mutation. Callers bounds-check.
func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[g.size.Index(x, y)]
}

// Census counts cells per element.
type Census [NumElements]int

// Census tallies the grid contents.
func (g *Grid) Census() Census {
	var c Census
	for i := range g.cells {
		if e := g.cells[i].Element; e.Valid() {
			c[e]++
		}
	}
	return c
}

// Occupied returns the number of non-empty cells.
func (c Census) Occupied() int {
	n := 0
	for e := Sand; e < NumElements; e++ {
		n += c[e]
	}
	return n
}
