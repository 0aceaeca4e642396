//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sandstorm/internal/sims/sand"
)

// Overlay outlines the brush under the cursor and every active emitter.
type Overlay struct {
	session     Session
	scale       int
	cx, cy      int
	hasCursor   bool
	showEmitter bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(s Session, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{session: s, scale: scale, showEmitter: true}
}

// Update records the cursor cell; ok is false when the cursor is off-grid.
func (o *Overlay) Update(cx, cy int, ok bool) {
	o.cx, o.cy, o.hasCursor = cx, cy, ok
}

// ToggleEmitters shows or hides emitter outlines.
func (o *Overlay) ToggleEmitters() { o.showEmitter = !o.showEmitter }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	s := float32(o.scale)
	if o.showEmitter {
		for _, e := range o.session.World().Emitters() {
			clr := color.RGBA{R: 80, G: 200, B: 255, A: 200}
			if !e.Place {
				clr = color.RGBA{R: 255, G: 80, B: 80, A: 200}
			}
			side := float32(2*e.Radius+1) * s
			vector.StrokeRect(screen, float32(e.X-e.Radius)*s, float32(e.Y-e.Radius)*s, side, side, 1, clr, false)
		}
	}
	if !o.hasCursor {
		return
	}
	r := float32(o.session.Radius())*s + s/2
	clr := brushColor(o.session.Selected())
	vector.StrokeCircle(screen, (float32(o.cx)+0.5)*s, (float32(o.cy)+0.5)*s, r, 1, clr, true)
}

func brushColor(e sand.Element) color.Color {
	c := sand.BaseColor(e)
	c.A = 180
	return c
}
