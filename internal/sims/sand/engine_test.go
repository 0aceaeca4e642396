package sand

import (
	"testing"

	pcore "sandstorm/pkg/core"
)

// stubRand scripts every random decision the engine makes.
type stubRand struct {
	right  bool
	chance func(p float64) bool
	pick   func(lo, hi int) int
	bools  int
}

func (s *stubRand) Bool() bool {
	s.bools++
	return s.right
}

func (s *stubRand) IntRange(lo, hi int) int {
	if s.pick != nil {
		return s.pick(lo, hi)
	}
	return lo
}

func (s *stubRand) Chance(p float64) bool {
	if s.chance != nil {
		return s.chance(p)
	}
	return p >= 1
}

func newTestWorld(w, h int, r Rand) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithRand(cfg, r)
}

func put(w *World, x, y int, e Element) {
	w.grid.Set(x, y, Cell{Element: e})
}

func putTimed(w *World, x, y int, e Element, age, lifespan int) {
	w.grid.Set(x, y, Cell{Element: e, Age: age, Lifespan: lifespan})
}

func expectElement(t *testing.T, w *World, x, y int, want Element) {
	t.Helper()
	if got := w.ElementAt(x, y); got != want {
		t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestSandSwapsWithWaterBelow(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	put(w, 5, 5, Sand)
	put(w, 5, 6, Water)

	w.Step()

	expectElement(t, w, 5, 5, Water)
	expectElement(t, w, 5, 6, Sand)
	if got := w.Census().Occupied(); got != 2 {
		t.Fatalf("occupied=%d, want 2", got)
	}
}

func TestSandSinksThroughSmoke(t *testing.T) {
	w := newTestWorld(6, 6, &stubRand{})
	put(w, 2, 2, Sand)
	put(w, 2, 3, Smoke)

	w.Step()

	expectElement(t, w, 2, 2, Smoke)
	expectElement(t, w, 2, 3, Sand)
	if c := w.Census(); c[Sand] != 1 || c[Smoke] != 1 || c.Occupied() != 2 {
		t.Fatalf("census %v after swap", c)
	}
}

func TestSandSwapsDiagonallyIntoWater(t *testing.T) {
	cases := []struct {
		name   string
		right  bool
		waterX int
	}{
		{name: "right", right: true, waterX: 4},
		{name: "left", right: false, waterX: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &stubRand{right: tc.right}
			// Water sits on the last row so it cannot move before the sand
			// reaches it.
			w := newTestWorld(8, 4, r)
			put(w, 3, 2, Sand)
			put(w, 3, 3, Wall)
			put(w, tc.waterX, 3, Water)

			w.Step()

			expectElement(t, w, tc.waterX, 3, Sand)
			expectElement(t, w, 3, 2, Water)
			expectElement(t, w, 3, 3, Wall)
			if r.bools == 0 {
				t.Fatal("the diagonal side should be drawn from the rng")
			}
		})
	}
}

func TestSandFallsOneCellPerTick(t *testing.T) {
	w := newTestWorld(5, 6, &stubRand{})
	put(w, 2, 0, Sand)

	for want := 1; want <= 5; want++ {
		w.Step()
		expectElement(t, w, 2, want, Sand)
		if got := w.Census()[Sand]; got != 1 {
			t.Fatalf("tick %d: %d sand cells, want 1", want, got)
		}
	}
	w.Step()
	expectElement(t, w, 2, 5, Sand)
}

func TestLastRowIsNeverASource(t *testing.T) {
	w := newTestWorld(4, 4, &stubRand{})
	put(w, 1, 3, Smoke)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	expectElement(t, w, 1, 3, Smoke)
}

func TestSidewaysMoveHappensOnce(t *testing.T) {
	w := newTestWorld(8, 6, &stubRand{right: true})
	put(w, 2, 3, Water)
	put(w, 2, 4, Wall)
	put(w, 1, 4, Wall)
	put(w, 3, 4, Wall)

	w.Step()

	expectElement(t, w, 3, 3, Water)
	if w.Census()[Water] != 1 {
		t.Fatal("water must not be duplicated")
	}
	if w.At(3, 3).Processed {
		t.Fatal("flag should be cleared when the sweep reaches the moved cell")
	}
}

func TestLeftwardMoverSkipsNextTick(t *testing.T) {
	w := newTestWorld(8, 6, &stubRand{right: false})
	put(w, 4, 3, Water)
	put(w, 4, 4, Wall)
	put(w, 3, 4, Wall)
	put(w, 5, 4, Wall)
	put(w, 2, 4, Wall)

	w.Step()
	expectElement(t, w, 3, 3, Water)
	if !w.At(3, 3).Processed {
		t.Fatal("cell moved into an already swept column keeps its flag")
	}

	w.Step()
	expectElement(t, w, 3, 3, Water)
	if w.At(3, 3).Processed {
		t.Fatal("flag must be cleared on the next visit")
	}
}

func TestWallsNeverMove(t *testing.T) {
	w := newTestWorld(24, 24, pcore.NewRNG(11))
	w.SetFillProbability(1)
	walls := map[[2]int]bool{}
	for x := 0; x < 24; x += 3 {
		for y := 4; y < 24; y += 5 {
			put(w, x, y, Wall)
			walls[[2]int{x, y}] = true
		}
	}
	w.Brush(true, 6, 2, Sand, 3)
	w.Brush(true, 12, 2, Lava, 3)
	w.Brush(true, 18, 2, Water, 3)
	w.Brush(true, 12, 20, Fire, 2)
	w.Brush(true, 4, 20, Wood, 2)

	for tick := 0; tick < 200; tick++ {
		w.Step()
		for pos := range walls {
			if w.ElementAt(pos[0], pos[1]) != Wall {
				t.Fatalf("tick %d: wall at %v became %v", tick, pos, w.ElementAt(pos[0], pos[1]))
			}
		}
	}
	if got := w.Census()[Wall]; got != len(walls) {
		t.Fatalf("wall count %d, want %d", got, len(walls))
	}
}

func randomInertGrid(w *World, r *pcore.RNG) {
	inert := []Element{Empty, Empty, Empty, Sand, Water, Smoke, Wall}
	size := w.Size()
	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H; y++ {
			put(w, x, y, inert[r.IntRange(0, len(inert)-1)])
		}
	}
}

func TestConservationWithoutReactions(t *testing.T) {
	w := newTestWorld(30, 20, pcore.NewRNG(5))
	randomInertGrid(w, pcore.NewRNG(6))
	want := w.Census()

	for tick := 0; tick < 150; tick++ {
		w.Step()
		if got := w.Census(); got != want {
			t.Fatalf("tick %d: census %v, want %v", tick, got, want)
		}
	}
}

func TestCellsMoveAtMostOneStepPerTick(t *testing.T) {
	w := newTestWorld(25, 25, pcore.NewRNG(9))
	randomInertGrid(w, pcore.NewRNG(10))
	size := w.Size()

	for tick := 0; tick < 60; tick++ {
		before := make([]Element, 0, size.Area())
		for y := 0; y < size.H; y++ {
			for x := 0; x < size.W; x++ {
				before = append(before, w.ElementAt(x, y))
			}
		}
		w.Step()
		for y := 0; y < size.H; y++ {
			for x := 0; x < size.W; x++ {
				e := w.ElementAt(x, y)
				if e == Empty {
					continue
				}
				found := false
				for dy := -1; dy <= 1 && !found; dy++ {
					for dx := -1; dx <= 1 && !found; dx++ {
						nx, ny := x+dx, y+dy
						if size.Contains(nx, ny) && before[size.Index(nx, ny)] == e {
							found = true
						}
					}
				}
				if !found {
					t.Fatalf("tick %d: %v at (%d,%d) has no source within one cell", tick, e, x, y)
				}
			}
		}
	}
}

func TestBoundsSafetyOnTinyGrids(t *testing.T) {
	all := []Element{Empty, Sand, Water, Wall, Smoke, Lava, Obsidian, Wood, StationaryFire, Fire}
	for wd := 1; wd <= 5; wd++ {
		for ht := 1; ht <= 5; ht++ {
			r := pcore.NewRNG(int64(wd*10 + ht))
			w := newTestWorld(wd, ht, r)
			for x := 0; x < wd; x++ {
				for y := 0; y < ht; y++ {
					e := all[r.IntRange(0, len(all)-1)]
					w.grid.Set(x, y, w.spawn(e, false))
				}
			}
			for tick := 0; tick < 40; tick++ {
				w.Step()
			}
			if got := len(w.grid.cells); got != wd*ht {
				t.Fatalf("%dx%d grid resized to %d cells", wd, ht, got)
			}
		}
	}
}

func TestFireWithSpentLifespanDecays(t *testing.T) {
	for _, empty := range []bool{true, false} {
		r := &stubRand{chance: func(float64) bool { return empty }}
		w := newTestWorld(10, 10, r)
		putTimed(w, 5, 5, Fire, 0, 0)

		w.Step()

		c := w.Census()
		if c[Fire] != 0 {
			t.Fatalf("empty=%v: fire survived its lifespan", empty)
		}
		if empty && c.Occupied() != 0 {
			t.Fatalf("expected fire to vanish, census %v", c)
		}
		if !empty {
			if c[Smoke] != 1 || c.Occupied() != 1 {
				t.Fatalf("expected a single smoke cell, census %v", c)
			}
			got := w.At(5, 4)
			if got.Element != Smoke || got.Age != 0 || got.Lifespan != 0 {
				t.Fatalf("decayed cell = %+v, want smoke with zero counters", got)
			}
		}
	}
}

func TestSpentStationaryFireDecaysOnce(t *testing.T) {
	for _, empty := range []bool{true, false} {
		r := &stubRand{chance: func(float64) bool { return empty }}
		w := newTestWorld(10, 10, r)
		putTimed(w, 5, 5, StationaryFire, 0, 0)

		w.Step()

		got := w.At(5, 5)
		want := Smoke
		if empty {
			want = Empty
		}
		if got.Element != want || got.Age != 0 || got.Lifespan != 0 {
			t.Fatalf("empty=%v: cell = %+v, want %v with zero counters", empty, got, want)
		}
		if w.Census().Occupied() > 1 {
			t.Fatal("decay must produce a single outcome")
		}
	}
}

func TestFireAgesAsItRises(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, Fire, 0, 10)

	w.Step()

	got := w.At(5, 4)
	if got.Element != Fire || got.Age != 1 || got.Lifespan != 10 {
		t.Fatalf("risen fire = %+v, want age 1 lifespan 10", got)
	}
	expectElement(t, w, 5, 5, Empty)
}

func TestBoxedFireBurnsInPlace(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, Fire, 0, 3)
	for _, p := range [][2]int{{4, 4}, {5, 4}, {6, 4}, {4, 5}, {6, 5}} {
		put(w, p[0], p[1], Wall)
	}

	w.Step()
	w.Step()
	if got := w.At(5, 5); got.Element != Fire || got.Age != 2 {
		t.Fatalf("boxed fire = %+v, want age 2", got)
	}
	w.Step()
	if w.ElementAt(5, 5) == Fire {
		t.Fatal("boxed fire should burn out when its timer expires")
	}
}

func TestSandSinksThroughFireKeepingTimers(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	put(w, 5, 5, Sand)
	putTimed(w, 5, 6, Fire, 3, 50)

	w.Step()

	expectElement(t, w, 5, 6, Sand)
	got := w.At(5, 5)
	if got.Element != Fire || got.Age != 3 || got.Lifespan != 50 {
		t.Fatalf("swapped fire = %+v, want age 3 lifespan 50", got)
	}
}

func TestLavaReactions(t *testing.T) {
	tests := []struct {
		name           string
		top, bottom    Element
		wantTop, wantB Element
	}{
		{"sand on lava", Sand, Lava, Smoke, Obsidian},
		{"water on lava", Water, Lava, Smoke, Obsidian},
		{"lava on sand", Lava, Sand, Lava, Obsidian},
		{"lava on wood", Lava, Wood, Lava, StationaryFire},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(10, 10, &stubRand{})
			put(w, 5, 5, tt.top)
			put(w, 5, 6, tt.bottom)

			w.Step()

			expectElement(t, w, 5, 5, tt.wantTop)
			expectElement(t, w, 5, 6, tt.wantB)
		})
	}
}

func TestReactionProductsAreMarked(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	put(w, 5, 5, Lava)
	put(w, 5, 6, Wood)

	w.Step()

	fire := w.At(5, 6)
	if fire.Element != StationaryFire || fire.Lifespan != 75 {
		t.Fatalf("ignited wood = %+v, want stationary fire with lifespan 75", fire)
	}
	if w.At(5, 5).Processed {
		t.Fatal("lava is unaffected by the reaction and must stay unmarked")
	}
}

func TestRisingFireIgnitesWoodAbove(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, Fire, 0, 40)
	putTimed(w, 5, 4, Wood, 0, 12)

	w.Step()

	expectElement(t, w, 5, 5, Empty)
	expectElement(t, w, 5, 4, StationaryFire)
}

func TestFireBesideWoodDoesNotIgnite(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{right: true})
	putTimed(w, 5, 5, Fire, 0, 40)
	put(w, 5, 4, Wall)
	put(w, 6, 4, Wall)
	putTimed(w, 6, 5, Wood, 0, 12)

	w.Step()

	expectElement(t, w, 6, 5, Wood)
	if got := w.At(5, 5); got.Element != Fire || got.Age != 1 {
		t.Fatalf("blocked fire = %+v, want fire aged in place", got)
	}
}

func TestStationaryFireFlaresNextToFire(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, StationaryFire, 0, 2)
	putTimed(w, 5, 4, Fire, 0, 100)
	for _, p := range [][2]int{{4, 3}, {5, 3}, {6, 3}, {4, 4}, {6, 4}} {
		put(w, p[0], p[1], Wall)
	}

	w.Step()
	if got := w.At(5, 5); got.Element != StationaryFire || got.Age != 1 {
		t.Fatalf("after one tick = %+v, want stationary fire age 1", got)
	}

	w.Step()
	got := w.At(5, 5)
	if got.Element != Fire || got.Age != 0 || got.Lifespan != 25 {
		t.Fatalf("after two ticks = %+v, want fresh fire", got)
	}
}

func TestStationaryFireIsLongLivedWithoutFire(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, StationaryFire, 0, 75)
	for i := 0; i < 300; i++ {
		w.Step()
	}
	if got := w.At(5, 5); got.Element != StationaryFire || got.Age != 0 {
		t.Fatalf("isolated stationary fire = %+v, want untouched", got)
	}
}

func TestWoodCatchesFromStationaryFire(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	putTimed(w, 5, 5, StationaryFire, 0, 100)
	putTimed(w, 5, 6, Wood, 0, 2)
	putTimed(w, 8, 6, Wood, 0, 2)

	w.Step()
	if got := w.At(5, 6); got.Element != Wood || got.Age != 1 {
		t.Fatalf("smoldering wood = %+v, want age 1", got)
	}
	w.Step()
	expectElement(t, w, 5, 6, StationaryFire)
	if got := w.At(8, 6); got.Element != Wood || got.Age != 0 {
		t.Fatalf("distant wood = %+v, want untouched", got)
	}
}

func TestStepAppliesEmittersAndCounts(t *testing.T) {
	w := newTestWorld(10, 10, &stubRand{})
	w.AddEmitter(Emitter{X: 5, Y: 0, Radius: 0, Element: Wall, Place: true})
	w.Step()
	w.Step()
	expectElement(t, w, 5, 0, Wall)
	if w.Ticks() != 2 {
		t.Fatalf("ticks=%d, want 2", w.Ticks())
	}
}
