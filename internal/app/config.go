package app

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"sandstorm/internal/sims/sand"
)

// Config represents the session settings shared by every front end.
type Config struct {
	Scene         string      `yaml:"scene"`
	Scale         int         `yaml:"scale"`
	TPS           int         `yaml:"tps"`
	FPS           int         `yaml:"fps"`
	AdvanceFrames int         `yaml:"advance_frames"`
	Sim           sand.Config `yaml:"sim"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scene:         "empty",
		Scale:         3,
		TPS:           60,
		FPS:           60,
		AdvanceFrames: 30,
		Sim:           sand.DefaultConfig(),
	}
}

// Normalize repairs out-of-range values in place.
func (c *Config) Normalize() {
	if c.Scene == "" {
		c.Scene = "empty"
	}
	c.Scale = max(c.Scale, 1)
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	c.AdvanceFrames = max(c.AdvanceFrames, 1)
	c.Sim.Normalize()
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "starting scene")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.IntVar(&c.AdvanceFrames, "advance", c.AdvanceFrames, "ticks run by the advance key before pausing")
	fs.Int64Var(&c.Sim.Seed, "seed", c.Sim.Seed, "seed for simulation reset")
	fs.IntVar(&c.Sim.Width, "width", c.Sim.Width, "grid width in cells")
	fs.IntVar(&c.Sim.Height, "height", c.Sim.Height, "grid height in cells")
}

// Load reads a YAML config. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read config: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("app: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyFile loads path and copies its values into c, except for settings
// whose flag was set explicitly on fs.
func (c *Config) ApplyFile(path string, fs *pflag.FlagSet) error {
	file, err := Load(path)
	if err != nil {
		return err
	}
	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}
	if !changed("scene") {
		c.Scene = file.Scene
	}
	if !changed("scale") {
		c.Scale = file.Scale
	}
	if !changed("tps") {
		c.TPS = file.TPS
	}
	if !changed("fps") {
		c.FPS = file.FPS
	}
	if !changed("advance") {
		c.AdvanceFrames = file.AdvanceFrames
	}
	if !changed("seed") {
		c.Sim.Seed = file.Sim.Seed
	}
	if !changed("width") {
		c.Sim.Width = file.Sim.Width
	}
	if !changed("height") {
		c.Sim.Height = file.Sim.Height
	}
	c.Sim.Params = file.Sim.Params
	c.Normalize()
	return nil
}

// NewWorld builds a world from the config and paints the configured scene.
func (c *Config) NewWorld() (*sand.World, error) {
	w := sand.NewWithConfig(c.Sim)
	if err := sand.ApplyScene(w, c.Scene); err != nil {
		return nil, err
	}
	return w, nil
}
