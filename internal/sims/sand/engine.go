package sand

// sweep visits every column left to right and, within a column, rows top to
// bottom. The last row never moves anything: there is nothing below it.
func (w *World) sweep() {
	size := w.grid.size
	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H-1; y++ {
			w.update(x, y)
		}
	}
}

// update evaluates a single source cell. At most one move or reaction is
// applied per visit.
func (w *World) update(x, y int) {
	c := w.grid.cell(x, y)
	e := c.Element
	if e == Empty || e.Category() == CategoryStaticSolid {
		return
	}
	if c.Processed {
		c.Processed = false
		return
	}

	switch e {
	case Wood:
		w.smolder(x, y)
		return
	case StationaryFire:
		w.burn(x, y)
		return
	}

	for _, d := range RulesFor(e) {
		dx, dy := Displacement(d, w.rng)
		if dx == 0 && dy == 0 {
			continue
		}
		tx, ty := x+dx, y+dy
		if !w.grid.InBounds(tx, ty) {
			continue
		}
		dst := w.grid.cell(tx, ty)
		if dst.Element == Empty {
			w.move(c, dst)
			return
		}
		if w.react(x, y, dx, dy) {
			return
		}
	}

	// Boxed-in fire keeps burning down its timer.
	if e == Fire {
		w.ageFire(c)
	}
}

// move relocates src into the empty dst, carrying its counters along.
func (w *World) move(src, dst *Cell) {
	*dst = *src
	dst.Processed = true
	*src = Cell{}
	if dst.Element == Fire {
		w.ageFire(dst)
	}
}
