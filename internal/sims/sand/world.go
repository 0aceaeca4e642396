package sand

import (
	"fmt"
	"strconv"

	"sandstorm/internal/core"
	pcore "sandstorm/pkg/core"
)

type seeder interface {
	Seed(seed int64)
}

// World owns the grid, the simulation RNG and the active emitters.
type World struct {
	cfg Config

	grid     *Grid
	rng      Rand
	palette  *Palette
	emitters []Emitter
	ticks    uint64
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world seeded from cfg.Seed.
func NewWithConfig(cfg Config) *World {
	return NewWithRand(cfg, pcore.NewRNG(cfg.Seed))
}

// NewWithRand returns a world drawing all simulation randomness from r.
// Rendering uses a separate stream so drawing never perturbs the simulation.
func NewWithRand(cfg Config, r Rand) *World {
	cfg.Normalize()
	return &World{
		cfg:     cfg,
		grid:    NewGrid(cfg.Width, cfg.Height),
		rng:     r,
		palette: NewPalette(pcore.NewRNG(cfg.Seed^0x5eed), cfg.Params.AlphaMin),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Ticks returns the number of ticks advanced since the last reset.
func (w *World) Ticks() uint64 { return w.ticks }

// At returns a copy of the cell at (x, y).
func (w *World) At(x, y int) Cell { return w.grid.At(x, y) }

// ElementAt returns the element at (x, y), Empty when out of bounds.
func (w *World) ElementAt(x, y int) Element { return w.grid.ElementAt(x, y) }

// Census counts cells per element.
func (w *World) Census() Census { return w.grid.Census() }

// Reset empties the grid, drops emitters and reseeds the RNG. A zero seed
// falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	if s, ok := w.rng.(seeder); ok {
		s.Seed(effective)
	}
	w.palette.reseed(effective)
	w.grid.Reset()
	w.emitters = nil
	w.ticks = 0
}

// Step applies emitters and advances the grid by one tick.
func (w *World) Step() {
	for _, e := range w.emitters {
		w.Brush(e.Place, e.X, e.Y, e.Element, e.Radius)
	}
	w.sweep()
	w.ticks++
}

// SetFillProbability changes the brush fill probability for non-solids.
func (w *World) SetFillProbability(p float64) {
	w.cfg.Params.FillProbability = clamp01(p)
}

// Parameters describes the live tunables for HUDs.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	c := w.Census()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Brush",
			Params: []core.Parameter{
				floatParam("fill_probability", "Fill", p.FillProbability),
				intParam("emitters", "Emitters", len(w.emitters)),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam("fire_decay_empty_chance", "Burn out", p.FireDecayEmptyChance),
				rangeParam("fire_life", "Fire life", p.FireLifeMin, p.FireLifeMax),
				rangeParam("stationary_fire_life", "Ember life", p.StationaryFireLifeMin, p.StationaryFireLifeMax),
				rangeParam("wood_life", "Wood life", p.WoodLifeMin, p.WoodLifeMax),
			},
		},
		{
			Name:    "World",
			Summary: fmt.Sprintf("%dx%d", w.grid.size.W, w.grid.size.H),
			Params: []core.Parameter{
				intParam("ticks", "Tick", int(w.ticks)),
				intParam("occupied", "Cells", c.Occupied()),
			},
		},
	}}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'f', 2, 64)}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func rangeParam(key, label string, lo, hi int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: fmt.Sprintf("%d-%d", lo, hi)}
}
