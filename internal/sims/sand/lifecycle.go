package sand

// orthogonal lists the four von Neumann neighbour offsets.
var orthogonal = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// spawn builds a fresh cell of element e with its lifespan drawn from the
// configured range. Elements without a timer get zero counters.
func (w *World) spawn(e Element, processed bool) Cell {
	c := Cell{Element: e, Processed: processed && e != Empty}
	p := w.cfg.Params
	switch e {
	case Fire:
		c.Lifespan = w.rng.IntRange(p.FireLifeMin, p.FireLifeMax)
	case StationaryFire:
		c.Lifespan = w.rng.IntRange(p.StationaryFireLifeMin, p.StationaryFireLifeMax)
	case Wood:
		c.Lifespan = w.rng.IntRange(p.WoodLifeMin, p.WoodLifeMax)
	}
	return c
}

// burnOut resolves a spent fire cell to empty or smoke with zeroed counters.
// Smoke stays marked so it is not revisited this sweep.
func (w *World) burnOut(c *Cell) {
	if w.rng.Chance(w.cfg.Params.FireDecayEmptyChance) {
		*c = Cell{}
		return
	}
	*c = Cell{Element: Smoke, Processed: true}
}

// ageFire advances a fire cell's timer and decays it when the timer expires.
func (w *World) ageFire(c *Cell) {
	c.Age++
	if c.Age >= c.Lifespan {
		w.burnOut(c)
	}
}

// touches reports whether any orthogonal neighbour of (x, y) holds e.
func (w *World) touches(x, y int, e Element) bool {
	for _, o := range orthogonal {
		nx, ny := x+o[0], y+o[1]
		if w.grid.InBounds(nx, ny) && w.grid.cell(nx, ny).Element == e {
			return true
		}
	}
	return false
}

// smolder runs the wood timer: while a stationary fire touches the wood its
// age climbs, and at the end of its lifespan the wood catches.
func (w *World) smolder(x, y int) {
	c := w.grid.cell(x, y)
	if !w.touches(x, y, StationaryFire) {
		return
	}
	c.Age++
	if c.Age >= c.Lifespan {
		*c = w.spawn(StationaryFire, true)
	}
}

// burn runs the stationary fire state machine. A burn source with no fuel
// left goes out; otherwise neighbouring active fire feeds its timer until it
// flares into active fire itself.
func (w *World) burn(x, y int) {
	c := w.grid.cell(x, y)
	if c.Lifespan <= 0 {
		w.burnOut(c)
		return
	}
	if !w.touches(x, y, Fire) {
		return
	}
	c.Age++
	if c.Age >= c.Lifespan {
		*c = w.spawn(Fire, true)
	}
}
