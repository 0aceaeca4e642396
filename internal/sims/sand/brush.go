package sand

// Emitter is a persistent brush re-applied at the start of every tick.
type Emitter struct {
	X, Y    int
	Radius  int
	Element Element
	// Place selects placing (true) or erasing (false).
	Place bool
}

// Brush places or erases a disk of cells centred on (cx, cy) and returns how
// many cells changed. Placing only fills empty cells: walls and wood always
// land, other elements land with the configured fill probability. Erasing
// clears any occupied cell along with its counters. Nothing is simulated
// until the next Step.
func (w *World) Brush(place bool, cx, cy int, e Element, radius int) int {
	if radius < 0 {
		radius = 0
	}
	if place && (e == Empty || !e.Valid()) {
		return 0
	}
	r2 := radius * radius
	changed := 0
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !w.grid.InBounds(x, y) {
				continue
			}
			c := w.grid.cell(x, y)
			if place {
				if c.Element != Empty {
					continue
				}
				if !e.Solid() && !w.rng.Chance(w.cfg.Params.FillProbability) {
					continue
				}
				*c = w.spawn(e, false)
			} else {
				if c.Element == Empty {
					continue
				}
				*c = Cell{}
			}
			changed++
		}
	}
	return changed
}

// Fill deterministically overwrites the inclusive rectangle (x0,y0)-(x1,y1)
// with fresh cells of e, clipped to the grid. It returns the cells written.
func (w *World) Fill(x0, y0, x1, y1 int, e Element) int {
	if !e.Valid() {
		return 0
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	size := w.grid.size
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, size.W-1), min(y1, size.H-1)
	n := 0
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			*w.grid.cell(x, y) = w.spawn(e, false)
			n++
		}
	}
	return n
}

// AddEmitter registers a persistent brush. The radius is clamped to
// [0, MaxBrushRadius]; emitters placing empty or unknown elements are ignored.
func (w *World) AddEmitter(e Emitter) bool {
	if e.Place && (e.Element == Empty || !e.Element.Valid()) {
		return false
	}
	e.Radius = min(max(e.Radius, 0), MaxBrushRadius)
	w.emitters = append(w.emitters, e)
	return true
}

// RemoveEmittersAt drops every emitter whose disk covers (x, y) and returns
// how many were removed.
func (w *World) RemoveEmittersAt(x, y int) int {
	kept := w.emitters[:0]
	removed := 0
	for _, e := range w.emitters {
		dx, dy := x-e.X, y-e.Y
		if dx*dx+dy*dy <= e.Radius*e.Radius {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	w.emitters = kept
	return removed
}

// Emitters returns a copy of the active emitters.
func (w *World) Emitters() []Emitter {
	out := make([]Emitter, len(w.emitters))
	copy(out, w.emitters)
	return out
}

// ClearEmitters removes all emitters.
func (w *World) ClearEmitters() { w.emitters = nil }
