package ui

import (
	"fmt"

	"sandstorm/internal/core"
	"sandstorm/internal/sims/sand"
)

// Session is the interactive state a panel reports on.
type Session interface {
	Selected() sand.Element
	Radius() int
	State() string
	World() *sand.World
}

// PanelLines renders the status block shown beside the simulation: the brush,
// the run state, then every parameter group the world exposes.
func PanelLines(s Session) []string {
	if s == nil || s.World() == nil {
		return nil
	}
	w := s.World()
	lines := []string{
		fmt.Sprintf("%s (r=%d)", s.Selected().Label(), s.Radius()),
		s.State(),
		fmt.Sprintf("Tick %d", w.Ticks()),
	}
	return append(lines, ParameterLines(w)...)
}

// Title names a sim together with its grid size, e.g. "sand 96x48".
func Title(sim core.Sim) string {
	size := sim.Size()
	return fmt.Sprintf("%s %dx%d", sim.Name(), size.W, size.H)
}

// ParameterLines lists every parameter group of p, each preceded by a blank
// line and its header.
func ParameterLines(p core.ParameterProvider) []string {
	var lines []string
	for _, group := range p.Parameters().Groups {
		header := group.Name
		if group.Summary != "" {
			header += " " + group.Summary
		}
		lines = append(lines, "", header)
		for _, param := range group.Params {
			lines = append(lines, fmt.Sprintf("  %-10s %s", param.Label, param.Value))
		}
	}
	return lines
}

// HotkeyHelp lists the bindings shared by the front ends.
func HotkeyHelp() []string {
	help := make([]string, 0, len(sand.Selectable())+1)
	for i, e := range sand.Selectable() {
		help = append(help, fmt.Sprintf("%d %s", i+1, e.Label()))
	}
	return append(help, "space pause  n step  f advance  r reset  q quit")
}
