package sand

import "image/color"

var (
	// EmptyColor is drawn for unoccupied cells.
	EmptyColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	// ObsidianColor is the fixed colour of obsidian.
	ObsidianColor = color.NRGBA{R: 34, G: 22, B: 48, A: 255}
)

var baseColors = [NumElements]color.NRGBA{
	Sand:  {R: 255, G: 255, B: 0, A: 255},
	Water: {R: 0, G: 0, B: 255, A: 255},
	Wall:  {R: 255, G: 255, B: 255, A: 255},
	Smoke: {R: 150, G: 150, B: 150, A: 255},
	Lava:  {R: 255, G: 77, B: 28, A: 255},
	Wood:  {R: 130, G: 65, B: 0, A: 255},
}

var fireTones = [...]color.NRGBA{
	{R: 156, G: 43, B: 17, A: 255},
	{R: 255, G: 106, B: 0, A: 255},
	{R: 127, G: 0, B: 0, A: 255},
	{R: 255, G: 151, B: 0, A: 255},
	{R: 127, G: 51, B: 0, A: 255},
}

// FireTones returns the palette fire-family cells are drawn from.
func FireTones() []color.NRGBA {
	out := make([]color.NRGBA, len(fireTones))
	copy(out, fireTones[:])
	return out
}

// BaseColor returns the opaque table colour of e.
func BaseColor(e Element) color.NRGBA {
	switch {
	case !e.Valid() || e == Empty:
		return EmptyColor
	case e == Obsidian:
		return ObsidianColor
	case e.Fiery():
		return fireTones[1]
	}
	return baseColors[e]
}

// Palette turns elements into display colours. Every read re-rolls the
// alpha channel, so repeated frames flicker.
type Palette struct {
	rng      Rand
	alphaMin int
}

// NewPalette builds a palette drawing alpha values in [alphaMin, 255].
func NewPalette(r Rand, alphaMin int) *Palette {
	return &Palette{rng: r, alphaMin: min(max(alphaMin, 0), 255)}
}

func (p *Palette) reseed(seed int64) {
	if s, ok := p.rng.(seeder); ok {
		s.Seed(seed ^ 0x5eed)
	}
}

// Color returns the display colour for one read of e.
func (p *Palette) Color(e Element) color.NRGBA {
	switch {
	case !e.Valid() || e == Empty:
		return EmptyColor
	case e == Obsidian:
		return ObsidianColor
	case e.Fiery():
		return fireTones[p.rng.IntRange(0, len(fireTones)-1)]
	}
	c := baseColors[e]
	c.A = uint8(p.rng.IntRange(p.alphaMin, 255))
	return c
}

// Colors fills dst with one colour per cell in row-major order, growing it
// when too short, and returns it.
func (w *World) Colors(dst []color.NRGBA) []color.NRGBA {
	n := len(w.grid.cells)
	if cap(dst) < n {
		dst = make([]color.NRGBA, n)
	}
	dst = dst[:n]
	for i := range w.grid.cells {
		dst[i] = w.palette.Color(w.grid.cells[i].Element)
	}
	return dst
}

// CellColor returns the display colour of the cell at (x, y).
func (w *World) CellColor(x, y int) color.NRGBA {
	return w.palette.Color(w.grid.ElementAt(x, y))
}
