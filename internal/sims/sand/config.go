package sand

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// MaxBrushRadius bounds interactive brush sizes.
const MaxBrushRadius = 64

// ErrUnknownParam is returned by Config.Apply for keys it does not recognise.
var ErrUnknownParam = errors.New("sand: unknown parameter")

// Params holds tunable probabilities and lifecycle ranges.
type Params struct {
	FillProbability      float64 `yaml:"fill_probability"`
	FireDecayEmptyChance float64 `yaml:"fire_decay_empty_chance"`

	FireLifeMin           int `yaml:"fire_life_min"`
	FireLifeMax           int `yaml:"fire_life_max"`
	StationaryFireLifeMin int `yaml:"stationary_fire_life_min"`
	StationaryFireLifeMax int `yaml:"stationary_fire_life_max"`
	WoodLifeMin           int `yaml:"wood_life_min"`
	WoodLifeMax           int `yaml:"wood_life_max"`

	AlphaMin    int `yaml:"alpha_min"`
	BrushRadius int `yaml:"brush_radius"`
}

// Config controls the sand world dimensions and tunables.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  320,
		Height: 240,
		Seed:   1337,
		Params: Params{
			FillProbability:       0.15,
			FireDecayEmptyChance:  0.8,
			FireLifeMin:           25,
			FireLifeMax:           100,
			StationaryFireLifeMin: 75,
			StationaryFireLifeMax: 275,
			WoodLifeMin:           10,
			WoodLifeMax:           25,
			AlphaMin:              200,
			BrushRadius:           5,
		},
	}
}

// Normalize repairs out-of-range values in place.
func (c *Config) Normalize() {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	p := &c.Params
	p.FillProbability = clamp01(p.FillProbability)
	p.FireDecayEmptyChance = clamp01(p.FireDecayEmptyChance)
	p.FireLifeMin, p.FireLifeMax = orderedRange(p.FireLifeMin, p.FireLifeMax)
	p.StationaryFireLifeMin, p.StationaryFireLifeMax = orderedRange(p.StationaryFireLifeMin, p.StationaryFireLifeMax)
	p.WoodLifeMin, p.WoodLifeMax = orderedRange(p.WoodLifeMin, p.WoodLifeMax)
	p.AlphaMin = min(max(p.AlphaMin, 0), 255)
	p.BrushRadius = min(max(p.BrushRadius, 0), MaxBrushRadius)
}

type paramField struct {
	intp   *int
	floatp *float64
	int64p *int64
}

func (c *Config) fields() map[string]paramField {
	p := &c.Params
	return map[string]paramField{
		"w":                        {intp: &c.Width},
		"h":                        {intp: &c.Height},
		"seed":                     {int64p: &c.Seed},
		"fill_probability":         {floatp: &p.FillProbability},
		"fire_decay_empty_chance":  {floatp: &p.FireDecayEmptyChance},
		"fire_life_min":            {intp: &p.FireLifeMin},
		"fire_life_max":            {intp: &p.FireLifeMax},
		"stationary_fire_life_min": {intp: &p.StationaryFireLifeMin},
		"stationary_fire_life_max": {intp: &p.StationaryFireLifeMax},
		"wood_life_min":            {intp: &p.WoodLifeMin},
		"wood_life_max":            {intp: &p.WoodLifeMax},
		"alpha_min":                {intp: &p.AlphaMin},
		"brush_radius":             {intp: &p.BrushRadius},
	}
}

// ParamKeys lists the keys accepted by Apply in sorted order.
func ParamKeys() []string {
	c := DefaultConfig()
	fields := c.fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply overrides fields from flag-style key/value pairs and normalizes the
// result. Unknown keys or unparsable values abort without partial writes.
func (c *Config) Apply(values map[string]string) error {
	next := *c
	fields := next.fields()
	for key, raw := range values {
		f, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, key)
		}
		switch {
		case f.intp != nil:
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("sand: parameter %s: %w", key, err)
			}
			*f.intp = v
		case f.floatp != nil:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("sand: parameter %s: %w", key, err)
			}
			*f.floatp = v
		case f.int64p != nil:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("sand: parameter %s: %w", key, err)
			}
			*f.int64p = v
		}
	}
	next.Normalize()
	*c = next
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func orderedRange(lo, hi int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
