//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandstorm/internal/render"
	"sandstorm/internal/ui"
)

const hudWidth = 220

var digitKeys = map[ebiten.Key]string{
	ebiten.KeyDigit1: "1",
	ebiten.KeyDigit2: "2",
	ebiten.KeyDigit3: "3",
	ebiten.KeyDigit4: "4",
	ebiten.KeyDigit5: "5",
	ebiten.KeyDigit6: "6",
	ebiten.KeyDigit7: "7",
}

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	colors  []color.NRGBA

	scale int
	seed  int64
}

// New constructs a Game for the provided controller.
func New(ctrl *Controller, scale int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := ctrl.World().Size()
	return &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(ctrl, hudWidth),
		overlay: ui.NewOverlay(ctrl, scale),
		scale:   scale,
		seed:    seed,
	}
}

// Update handles per-frame input and advances the simulation clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.ctrl.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.ctrl.Advance(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.ctrl.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		if err := g.ctrl.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.overlay.ToggleEmitters()
	}
	for key, name := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.SelectKey(name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.ctrl.GrowBrush(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.ctrl.GrowBrush(-1)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			g.ctrl.GrowBrush(1)
		} else {
			g.ctrl.GrowBrush(-1)
		}
	}

	cx, cy, onGrid := g.cursorCell()
	g.overlay.Update(cx, cy, onGrid)
	if onGrid {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyE):
			place := !ebiten.IsKeyPressed(ebiten.KeyShift)
			g.ctrl.ToggleEmitter(cx, cy, place)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.ctrl.Paint(cx, cy)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			g.ctrl.Erase(cx, cy)
		}
	}

	g.ctrl.Update(time.Now())
	g.hud.Update()
	return nil
}

func (g *Game) cursorCell() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	return x, y, g.ctrl.World().Size().Contains(x, y)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.colors = g.ctrl.World().Colors(g.colors)
	g.painter.Blit(screen, g.colors, g.scale)
	g.overlay.Draw(screen)
	size := g.ctrl.World().Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.World().Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// Run opens a window and blocks until it is closed.
func Run(cfg *Config) error {
	world, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	ctrl := NewController(world, *cfg)
	game := New(ctrl, cfg.Scale, cfg.Sim.Seed)
	size := world.Size()

	ebiten.SetWindowTitle("sandstorm - " + cfg.Scene)
	ebiten.SetTPS(cfg.FPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+hudWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
