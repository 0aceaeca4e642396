package app

import (
	"time"

	"sandstorm/internal/core"
	"sandstorm/internal/sims/sand"
)

// Hotkeys maps the number row to brush elements.
var Hotkeys = map[string]sand.Element{
	"1": sand.Sand,
	"2": sand.Water,
	"3": sand.Wall,
	"4": sand.Smoke,
	"5": sand.Lava,
	"6": sand.Wood,
	"7": sand.Fire,
}

// Controller holds the interactive session state shared by the GUI and the
// terminal front ends: brush selection, pause/step handling and the tick clock.
type Controller struct {
	world    *sand.World
	clock    *core.FixedStep
	lockstep bool
	scene    string

	selected sand.Element
	radius   int

	paused        bool
	stepOnce      bool
	advanceLeft   int
	advanceFrames int
}

// NewController wraps world using the session settings in cfg. The world is
// expected to be freshly reset; call Reset to paint the configured scene.
func NewController(world *sand.World, cfg Config) *Controller {
	cfg.Normalize()
	return &Controller{
		world:         world,
		clock:         core.NewFixedStep(cfg.TPS),
		lockstep:      cfg.TPS == cfg.FPS,
		scene:         cfg.Scene,
		selected:      sand.Sand,
		radius:        world.Config().Params.BrushRadius,
		advanceFrames: cfg.AdvanceFrames,
	}
}

// World returns the controlled world.
func (c *Controller) World() *sand.World { return c.world }

// Selected returns the brush element.
func (c *Controller) Selected() sand.Element { return c.selected }

// Select changes the brush element. Only selectable elements are accepted.
func (c *Controller) Select(e sand.Element) bool {
	if !sand.IsSelectable(e) {
		return false
	}
	c.selected = e
	return true
}

// SelectKey selects the element bound to a hotkey.
func (c *Controller) SelectKey(key string) bool {
	e, ok := Hotkeys[key]
	if !ok {
		return false
	}
	return c.Select(e)
}

// Radius returns the brush radius.
func (c *Controller) Radius() int { return c.radius }

// SetRadius clamps r to [0, sand.MaxBrushRadius].
func (c *Controller) SetRadius(r int) {
	c.radius = min(max(r, 0), sand.MaxBrushRadius)
}

// GrowBrush adjusts the radius by delta.
func (c *Controller) GrowBrush(delta int) { c.SetRadius(c.radius + delta) }

// Paused reports whether the simulation is halted.
func (c *Controller) Paused() bool { return c.paused }

// TogglePause flips between running and paused. Any pending advance is
// cancelled.
func (c *Controller) TogglePause() {
	c.paused = !c.paused
	c.advanceLeft = 0
}

// Resume unpauses the simulation.
func (c *Controller) Resume() {
	c.paused = false
	c.advanceLeft = 0
}

// StepOnce queues a single tick while paused.
func (c *Controller) StepOnce() { c.stepOnce = true }

// Advance runs n ticks and pauses again. A non-positive n uses the configured
// advance length.
func (c *Controller) Advance(n int) {
	if n <= 0 {
		n = c.advanceFrames
	}
	c.paused = false
	c.advanceLeft = n
}

// Paint places the selected element around (x, y).
func (c *Controller) Paint(x, y int) int {
	return c.world.Brush(true, x, y, c.selected, c.radius)
}

// Erase clears cells around (x, y).
func (c *Controller) Erase(x, y int) int {
	return c.world.Brush(false, x, y, c.selected, c.radius)
}

// ToggleEmitter removes any emitter covering (x, y), or installs one with the
// current brush when none does.
func (c *Controller) ToggleEmitter(x, y int, place bool) bool {
	if c.world.RemoveEmittersAt(x, y) > 0 {
		return false
	}
	return c.world.AddEmitter(sand.Emitter{X: x, Y: y, Radius: c.radius, Element: c.selected, Place: place})
}

// Frame runs at most one tick according to the pause state and reports
// whether the world advanced.
func (c *Controller) Frame() bool {
	switch {
	case c.advanceLeft > 0:
		c.world.Step()
		c.advanceLeft--
		if c.advanceLeft == 0 {
			c.paused = true
		}
		return true
	case c.paused && !c.stepOnce:
		return false
	}
	c.stepOnce = false
	c.world.Step()
	return true
}

// Update advances the world for one presentation frame and returns how many
// ticks were applied. When TPS equals FPS every frame is exactly one tick
// pass; otherwise the tick clock decides, running up to core.MaxCatchUp
// ticks per frame.
func (c *Controller) Update(now time.Time) int {
	if c.lockstep {
		if c.Frame() {
			return 1
		}
		return 0
	}
	due := c.clock.DueAt(now, core.MaxCatchUp)
	n := 0
	for i := 0; i < due; i++ {
		if c.Frame() {
			n++
		}
	}
	return n
}

// Reset clears the world with seed and repaints the configured scene.
func (c *Controller) Reset(seed int64) error {
	c.world.Reset(seed)
	c.stepOnce = false
	c.advanceLeft = 0
	return sand.ApplyScene(c.world, c.scene)
}

// State returns "Active" or "Paused".
func (c *Controller) State() string {
	if c.paused {
		return "Paused"
	}
	return "Active"
}
