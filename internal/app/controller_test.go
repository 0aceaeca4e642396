package app

import (
	"testing"
	"time"

	"sandstorm/internal/sims/sand"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	cfg := NewConfig()
	cfg.Sim.Width = 32
	cfg.Sim.Height = 24
	cfg.AdvanceFrames = 3
	w, err := cfg.NewWorld()
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return NewController(w, *cfg)
}

func TestSelectionIsRestricted(t *testing.T) {
	c := newTestController(t)
	if c.Selected() != sand.Sand {
		t.Fatalf("default selection %v, want sand", c.Selected())
	}
	if c.Select(sand.Obsidian) || c.Select(sand.Empty) {
		t.Fatal("obsidian and empty are not brush elements")
	}
	for key, want := range Hotkeys {
		if !c.SelectKey(key) || c.Selected() != want {
			t.Fatalf("hotkey %s selected %v, want %v", key, c.Selected(), want)
		}
	}
	if c.SelectKey("9") {
		t.Fatal("unbound hotkey accepted")
	}
	if len(Hotkeys) != len(sand.Selectable()) {
		t.Fatal("every selectable element needs a hotkey")
	}
}

func TestBrushRadiusClamp(t *testing.T) {
	c := newTestController(t)
	if c.Radius() != 5 {
		t.Fatalf("radius %d, want config default 5", c.Radius())
	}
	c.GrowBrush(-20)
	if c.Radius() != 0 {
		t.Fatalf("radius %d, want 0", c.Radius())
	}
	c.SetRadius(1000)
	if c.Radius() != sand.MaxBrushRadius {
		t.Fatalf("radius %d, want %d", c.Radius(), sand.MaxBrushRadius)
	}
}

func TestPauseAndStepOnce(t *testing.T) {
	c := newTestController(t)
	if !c.Frame() || c.World().Ticks() != 1 {
		t.Fatal("a running controller steps every frame")
	}
	c.TogglePause()
	if c.Frame() || c.State() != "Paused" {
		t.Fatal("a paused controller must not step")
	}
	c.StepOnce()
	if !c.Frame() || c.Frame() {
		t.Fatal("step once advances exactly one tick")
	}
	if c.World().Ticks() != 2 {
		t.Fatalf("ticks=%d, want 2", c.World().Ticks())
	}
}

func TestAdvanceRepauses(t *testing.T) {
	c := newTestController(t)
	c.TogglePause()
	c.Advance(0)
	for i := 0; i < 3; i++ {
		if !c.Frame() {
			t.Fatalf("advance frame %d did not step", i)
		}
	}
	if !c.Paused() || c.Frame() {
		t.Fatal("advance should pause after the configured frames")
	}
	if c.World().Ticks() != 3 {
		t.Fatalf("ticks=%d, want 3", c.World().Ticks())
	}
}

func TestPaintEraseAndEmitters(t *testing.T) {
	c := newTestController(t)
	c.Select(sand.Wall)
	c.SetRadius(1)
	if n := c.Paint(10, 10); n != 5 {
		t.Fatalf("painted %d cells, want 5", n)
	}
	if n := c.Erase(10, 10); n != 5 {
		t.Fatalf("erased %d cells, want 5", n)
	}
	if !c.ToggleEmitter(4, 4, true) || len(c.World().Emitters()) != 1 {
		t.Fatal("toggle should add an emitter")
	}
	if c.ToggleEmitter(4, 5, true) || len(c.World().Emitters()) != 0 {
		t.Fatal("toggle over an emitter should remove it")
	}
}

func TestUpdateIsOneTickPerFrameInLockstep(t *testing.T) {
	c := newTestController(t)
	start := time.Unix(100, 0)
	for i, at := range []time.Duration{0, time.Millisecond, time.Second} {
		if n := c.Update(start.Add(at)); n != 1 {
			t.Fatalf("frame %d ran %d ticks, want 1", i, n)
		}
	}
	if got := c.World().Ticks(); got != 3 {
		t.Fatalf("world at tick %d, want 3", got)
	}
	c.TogglePause()
	if n := c.Update(start.Add(2 * time.Second)); n != 0 {
		t.Fatalf("paused frame ran %d ticks", n)
	}
}

func TestUpdateFollowsClockWhenDecoupled(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim.Width, cfg.Sim.Height = 16, 16
	cfg.TPS, cfg.FPS = 60, 30
	w, err := cfg.NewWorld()
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(w, *cfg)
	start := time.Unix(100, 0)
	if n := c.Update(start); n != 1 {
		t.Fatalf("first update ran %d ticks, want 1", n)
	}
	if n := c.Update(start.Add(50 * time.Millisecond)); n != 3 {
		t.Fatalf("50ms at 60 TPS ran %d ticks, want 3", n)
	}
	if n := c.Update(start.Add(time.Second)); n != 8 {
		t.Fatalf("a long stall ran %d ticks, want the catch-up limit 8", n)
	}
	c.TogglePause()
	if n := c.Update(start.Add(2 * time.Second)); n != 0 {
		t.Fatalf("paused update ran %d ticks", n)
	}
}

func TestResetRepaintsScene(t *testing.T) {
	cfg := NewConfig()
	cfg.Scene = "volcano"
	cfg.Sim.Width, cfg.Sim.Height = 60, 40
	w, err := cfg.NewWorld()
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(w, *cfg)
	for i := 0; i < 20; i++ {
		c.Frame()
	}
	if err := c.Reset(0); err != nil {
		t.Fatal(err)
	}
	if w.Ticks() != 0 || len(w.Emitters()) != 1 {
		t.Fatalf("reset left ticks=%d emitters=%d", w.Ticks(), len(w.Emitters()))
	}
}
