package sand

// Rand is the randomness the engine consumes. *core.RNG satisfies it; tests
// substitute scripted implementations.
type Rand interface {
	Bool() bool
	IntRange(lo, hi int) int
	Chance(p float64) bool
}

// Direction is a symbolic movement candidate evaluated for an element.
type Direction uint8

const (
	Down Direction = iota
	DownSide
	Up
	UpSide
	Side
	Stay

	numDirections
)

var directionNames = [numDirections]string{
	Down:     "down",
	DownSide: "down-side",
	Up:       "up",
	UpSide:   "up-side",
	Side:     "side",
	Stay:     "stay",
}

func (d Direction) String() string {
	if d >= numDirections {
		return "unknown"
	}
	return directionNames[d]
}

// displacement is the vector for a direction. When randomX is set the x
// component is drawn as -1 or +1 each time the direction is evaluated.
type displacement struct {
	dx, dy  int
	randomX bool
}

var directionVectors = [numDirections]displacement{
	Down:     {dx: 0, dy: 1},
	DownSide: {dy: 1, randomX: true},
	Up:       {dx: 0, dy: -1},
	UpSide:   {dy: -1, randomX: true},
	Side:     {randomX: true},
	Stay:     {},
}

var ruleTable = [NumElements][]Direction{
	Sand:           {Down, DownSide},
	Water:          {Down, Side, DownSide},
	Smoke:          {Up, UpSide, Side},
	Lava:           {Down, Side, DownSide},
	Wood:           {Stay},
	StationaryFire: {Stay},
	Fire:           {Up, UpSide, Side},
}

// RulesFor returns the ordered movement rules of e. The slice is shared and
// must not be modified. Unknown, empty and static elements have no rules.
func RulesFor(e Element) []Direction {
	if !e.Valid() {
		return nil
	}
	return ruleTable[e]
}

// Randomized reports whether the direction draws its x component per use.
func (d Direction) Randomized() bool {
	return d < numDirections && directionVectors[d].randomX
}

// Displacement resolves d into a vector, drawing a fresh side from r for
// randomized directions. Unknown directions resolve to (0, 0).
func Displacement(d Direction, r Rand) (dx, dy int) {
	if d >= numDirections {
		return 0, 0
	}
	v := directionVectors[d]
	if v.randomX {
		if r.Bool() {
			return 1, v.dy
		}
		return -1, v.dy
	}
	return v.dx, v.dy
}
