package sand

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered.
var ErrUnknownScene = errors.New("sand: unknown scene")

// Scene paints a starting layout into a freshly reset world.
type Scene struct {
	Name        string
	Description string
	Paint       func(w *World)
}

var scenes = map[string]Scene{}

// RegisterScene adds a scene under its name.
func RegisterScene(s Scene) {
	if s.Name == "" || s.Paint == nil {
		return
	}
	scenes[s.Name] = s
}

// Scenes returns the registered scenes sorted by name.
func Scenes() []Scene {
	out := make([]Scene, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SceneNames returns the registered scene names in sorted order.
func SceneNames() []string {
	all := Scenes()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// ApplyScene paints the named scene into w. The world is not reset first.
func ApplyScene(w *World, name string) error {
	s, ok := scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s.Paint(w)
	return nil
}

func paintHourglass(w *World) {
	size := w.Size()
	cx, mid := size.W/2, size.H/2
	half := min(size.W, size.H) / 3
	for i := 0; i <= half; i++ {
		w.Fill(cx-half+i-1, mid-half+i, cx-half+i, mid-half+i, Wall)
		w.Fill(cx+half-i, mid-half+i, cx+half-i+1, mid-half+i, Wall)
		w.Fill(cx-half+i-1, mid+half-i, cx-half+i, mid+half-i, Wall)
		w.Fill(cx+half-i, mid+half-i, cx+half-i+1, mid+half-i, Wall)
	}
	// Keep a two-cell neck open.
	w.Fill(cx-1, mid, cx+1, mid, Empty)
	for y := mid - half + 2; y < mid-2; y++ {
		inset := y - (mid - half) + 1
		w.Fill(cx-half+inset, y, cx+half-inset, y, Sand)
	}
}

func paintVolcano(w *World) {
	size := w.Size()
	floor := size.H - 1
	w.Fill(0, floor, size.W-1, floor, Wall)
	peak := size.H / 2
	base := size.W / 3
	cx := size.W / 2
	for y := peak; y < floor; y++ {
		spread := (y - peak) * base / max(floor-peak, 1)
		w.Fill(cx-spread, y, cx+spread, y, Sand)
	}
	w.Fill(cx-1, peak, cx+1, floor-3, Empty)
	pool := size.W / 8
	w.Fill(size.W-pool-2, floor-pool/2, size.W-1, floor-1, Water)
	w.AddEmitter(Emitter{X: cx, Y: floor - 2, Radius: 1, Element: Lava, Place: true})
}

func paintForest(w *World) {
	size := w.Size()
	floor := size.H - 1
	w.Fill(0, floor-2, size.W-1, floor, Sand)
	gap := max(size.W/8, 4)
	height := size.H / 3
	for x := gap / 2; x < size.W-1; x += gap {
		w.Fill(x, floor-2-height, x+1, floor-3, Wood)
		w.Fill(x-2, floor-2-height-3, x+3, floor-2-height, Wood)
	}
	w.AddEmitter(Emitter{X: gap / 2, Y: size.H / 8, Radius: 1, Element: Lava, Place: true})
}

func paintLab(w *World) {
	size := w.Size()
	third := size.W / 3
	shelf := size.H / 3
	w.Fill(0, size.H-1, size.W-1, size.H-1, Wall)
	for i := 0; i < 3; i++ {
		x0 := i*third + third/6
		w.Fill(x0, shelf, x0+third*2/3, shelf, Wall)
	}
	top := max(size.H/10, 1)
	w.AddEmitter(Emitter{X: third / 2, Y: top, Radius: 2, Element: Sand, Place: true})
	w.AddEmitter(Emitter{X: third + third/2, Y: top, Radius: 2, Element: Water, Place: true})
	w.AddEmitter(Emitter{X: 2*third + third/2, Y: top, Radius: 2, Element: Lava, Place: true})
	w.AddEmitter(Emitter{X: size.W / 2, Y: size.H - 2, Radius: 1, Element: Smoke, Place: true})
}

func init() {
	RegisterScene(Scene{Name: "empty", Description: "blank canvas", Paint: func(*World) {}})
	RegisterScene(Scene{Name: "hourglass", Description: "sand draining through a wall funnel", Paint: paintHourglass})
	RegisterScene(Scene{Name: "volcano", Description: "lava vent under a sand cone next to a lake", Paint: paintVolcano})
	RegisterScene(Scene{Name: "forest", Description: "wooden trees with a lava drip", Paint: paintForest})
	RegisterScene(Scene{Name: "lab", Description: "sand, water and lava emitters over shelves", Paint: paintLab})
}
