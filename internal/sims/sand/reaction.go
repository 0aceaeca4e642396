package sand

// Keep marks a reaction side that is left untouched.
const Keep = Element(0xFF)

// Reaction describes what happens when a moving source element is blocked by
// a target element.
type Reaction struct {
	Source Element
	Target Element
	// AboveOnly restricts the reaction to a target directly above the source.
	AboveOnly bool
	// Swap exchanges the two cells, timers included. When set the result
	// fields are ignored.
	Swap bool
	// SourceTo and TargetTo replace the respective cell, or Keep.
	SourceTo Element
	TargetTo Element
}

// reactions is evaluated top to bottom; the first matching row wins.
var reactions = []Reaction{
	{Source: Sand, Target: Water, Swap: true},
	{Source: Sand, Target: Smoke, Swap: true},
	{Source: Sand, Target: Fire, Swap: true},
	{Source: Sand, Target: Lava, SourceTo: Smoke, TargetTo: Obsidian},
	{Source: Water, Target: Lava, SourceTo: Smoke, TargetTo: Obsidian},
	{Source: Lava, Target: Sand, SourceTo: Keep, TargetTo: Obsidian},
	{Source: Lava, Target: Wood, SourceTo: Keep, TargetTo: StationaryFire},
	{Source: Fire, Target: Wood, AboveOnly: true, SourceTo: Empty, TargetTo: StationaryFire},
}

// Reactions returns a copy of the ordered reaction table.
func Reactions() []Reaction {
	out := make([]Reaction, len(reactions))
	copy(out, reactions)
	return out
}

// matches reports whether the row applies to a source acting on a target
// displaced by (dx, dy).
func (r Reaction) matches(src, dst Element, dx, dy int) bool {
	if r.Source != src || r.Target != dst {
		return false
	}
	return !r.AboveOnly || (dx == 0 && dy == -1)
}

// findReaction returns the first row matching the pair, or nil.
func findReaction(src, dst Element, dx, dy int) *Reaction {
	for i := range reactions {
		if reactions[i].matches(src, dst, dx, dy) {
			return &reactions[i]
		}
	}
	return nil
}

// react applies the first matching reaction between the cell at (x, y) and
// the one at (x+dx, y+dy). Changed cells are marked processed.
func (w *World) react(x, y, dx, dy int) bool {
	src := w.grid.cell(x, y)
	dst := w.grid.cell(x+dx, y+dy)
	r := findReaction(src.Element, dst.Element, dx, dy)
	if r == nil {
		return false
	}
	if r.Swap {
		*src, *dst = *dst, *src
		src.Processed = true
		dst.Processed = true
		return true
	}
	if r.SourceTo != Keep {
		*src = w.spawn(r.SourceTo, true)
	}
	if r.TargetTo != Keep {
		*dst = w.spawn(r.TargetTo, true)
	}
	return true
}
