package sand

import (
	"errors"
	"fmt"
	"strings"
)

// Element enumerates the material a cell can hold. Ordinals are stable and
// index every per-element table in the package.
type Element uint8

const (
	Empty Element = iota
	Sand
	Water
	Wall
	Smoke
	Lava
	Obsidian
	Wood
	StationaryFire
	Fire

	// NumElements is the size of the closed enumeration.
	NumElements
)

// Category groups elements by how the engine treats them.
type Category uint8

const (
	CategoryEmpty Category = iota
	CategoryStaticSolid
	CategoryGranular
	CategoryFluid
	CategoryGas
	CategoryCombustible
	CategoryTransient
)

var categoryNames = [...]string{
	CategoryEmpty:       "empty",
	CategoryStaticSolid: "static-solid",
	CategoryGranular:    "granular",
	CategoryFluid:       "fluid",
	CategoryGas:         "gas",
	CategoryCombustible: "combustible",
	CategoryTransient:   "transient",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// ErrUnknownElement is returned when an element name cannot be resolved.
var ErrUnknownElement = errors.New("sand: unknown element")

var elementNames = [NumElements]string{
	Empty:          "empty",
	Sand:           "sand",
	Water:          "water",
	Wall:           "wall",
	Smoke:          "smoke",
	Lava:           "lava",
	Obsidian:       "obsidian",
	Wood:           "wood",
	StationaryFire: "stationary-fire",
	Fire:           "fire",
}

var elementCategories = [NumElements]Category{
	Empty:          CategoryEmpty,
	Sand:           CategoryGranular,
	Water:          CategoryFluid,
	Wall:           CategoryStaticSolid,
	Smoke:          CategoryGas,
	Lava:           CategoryGranular,
	Obsidian:       CategoryTransient,
	Wood:           CategoryCombustible,
	StationaryFire: CategoryTransient,
	Fire:           CategoryTransient,
}

// selectable lists the elements a brush may place, in hotkey order.
var selectable = []Element{Sand, Water, Wall, Smoke, Lava, Wood, Fire}

// Valid reports whether e belongs to the enumeration.
func (e Element) Valid() bool { return e < NumElements }

// String returns the lower-case element name.
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return elementNames[e]
}

// Label returns a capitalised name for HUDs.
func (e Element) Label() string {
	s := e.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Category returns the behavioural group of the element. Unknown values are
// reported as empty.
func (e Element) Category() Category {
	if !e.Valid() {
		return CategoryEmpty
	}
	return elementCategories[e]
}

// Solid reports whether brushes place the element deterministically.
func (e Element) Solid() bool { return e == Wall || e == Wood }

// Fiery reports whether the element belongs to the fire family.
func (e Element) Fiery() bool { return e == Fire || e == StationaryFire }

// Selectable returns the elements available to brushes, in hotkey order.
func Selectable() []Element {
	out := make([]Element, len(selectable))
	copy(out, selectable)
	return out
}

// IsSelectable reports whether e may be chosen for brush placement.
func IsSelectable(e Element) bool {
	for _, s := range selectable {
		if s == e {
			return true
		}
	}
	return false
}

// ParseElement resolves a name (case-insensitive, '_' and '-' interchangeable).
func ParseElement(name string) (Element, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range elementNames {
		if n == key {
			return Element(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownElement, name)
}

// MarshalText encodes the element by name.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes an element name.
func (e *Element) UnmarshalText(text []byte) error {
	v, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
