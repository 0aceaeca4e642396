package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sandstorm/internal/app"
	"sandstorm/internal/stats"
	"sandstorm/internal/ui"
)

const (
	frameInterval = 33 * time.Millisecond
	statusLines   = 3
	plotHeight    = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).PaddingLeft(1)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea front end over a Controller. Cells are drawn two per
// character with upper half blocks.
type Model struct {
	ctrl *app.Controller
	rec  *stats.Recorder

	cursorX, cursorY int
	width, height    int
	showPlot         bool
	showPanel        bool
	colors           []color.NRGBA
	err              error
}

// New builds a model for ctrl with the cursor centred.
func New(ctrl *app.Controller) *Model {
	size := ctrl.World().Size()
	return &Model{
		ctrl:      ctrl,
		rec:       stats.NewRecorder(stats.DefaultWindow),
		cursorX:   size.W / 2,
		cursorY:   size.H / 2,
		width:     80,
		height:    24,
		showPanel: true,
	}
}

// Run starts the terminal program and blocks until it exits.
func Run(ctrl *app.Controller) error {
	_, err := tea.NewProgram(New(ctrl), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.ctrl.Update(time.Time(msg)) > 0 {
			m.rec.Observe(m.ctrl.World())
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.ctrl.SelectKey(key) {
		return nil
	}
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case " ":
		m.ctrl.TogglePause()
	case "n":
		m.ctrl.StepOnce()
	case "f":
		m.ctrl.Advance(0)
	case "r":
		m.err = m.ctrl.Reset(0)
		m.rec = stats.NewRecorder(stats.DefaultWindow)
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "enter":
		m.ctrl.Paint(m.cursorX, m.cursorY)
	case "x", "backspace":
		m.ctrl.Erase(m.cursorX, m.cursorY)
	case "e":
		m.ctrl.ToggleEmitter(m.cursorX, m.cursorY, true)
	case "E":
		m.ctrl.ToggleEmitter(m.cursorX, m.cursorY, false)
	case "+", "=":
		m.ctrl.GrowBrush(1)
	case "-":
		m.ctrl.GrowBrush(-1)
	case "g":
		m.showPlot = !m.showPlot
	case "p":
		m.showPanel = !m.showPanel
	}
	return nil
}

func (m *Model) moveCursor(dx, dy int) {
	size := m.ctrl.World().Size()
	m.cursorX, m.cursorY = size.Clamp(m.cursorX+dx, m.cursorY+dy)
}

// Cursor returns the brush position in cells.
func (m *Model) Cursor() (int, int) { return m.cursorX, m.cursorY }

// viewport returns the cell rectangle that fits the terminal, scrolled so
// the cursor stays visible.
func (m *Model) viewport() (x0, y0, cols, rows int) {
	size := m.ctrl.World().Size()
	reserved := statusLines
	if m.showPlot {
		reserved += plotHeight + 2
	}
	cols = min(size.W, max(m.width, 1))
	rows = min(size.H, max(2*(m.height-reserved), 2))
	x0 = min(max(m.cursorX-cols/2, 0), size.W-cols)
	y0 = min(max(m.cursorY-rows/2, 0), size.H-rows)
	return x0, y0, cols, rows
}

func (m *Model) View() string {
	w := m.ctrl.World()
	size := w.Size()
	m.colors = w.Colors(m.colors)
	x0, y0, cols, rows := m.viewport()

	var b strings.Builder
	for y := y0; y < y0+rows; y += 2 {
		for x := x0; x < x0+cols; x++ {
			top := m.colors[size.Index(x, y)]
			bottom := color.NRGBA{A: 0xff}
			if y+1 < size.H {
				bottom = m.colors[size.Index(x, y+1)]
			}
			style := lipgloss.NewStyle().Foreground(shade(top)).Background(shade(bottom))
			glyph := "▀"
			if x == m.cursorX && (y == m.cursorY || y+1 == m.cursorY) {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph))
		}
		b.WriteByte('\n')
	}

	grid := b.String()
	if m.showPanel {
		panel := panelStyle.Render(strings.Join(ui.PanelLines(m.ctrl), "\n"))
		grid = lipgloss.JoinHorizontal(lipgloss.Top, grid, panel)
	}

	state := statusStyle.Render(m.ctrl.State())
	if m.ctrl.Paused() {
		state = pausedStyle.Render(m.ctrl.State())
	}
	out := []string{
		grid,
		titleStyle.Render("sandstorm") + " " + dimStyle.Render(ui.Title(w)) + "  " + statusStyle.Render(fmt.Sprintf("%s r=%d", m.ctrl.Selected().Label(), m.ctrl.Radius())) +
			"  " + state + "  " + dimStyle.Render(fmt.Sprintf("tick %d  cursor %d,%d", w.Ticks(), m.cursorX, m.cursorY)),
		dimStyle.Render("1-7 element  arrows move  enter paint  x erase  e emitter  space pause  n step  f advance  g plot  q quit"),
	}
	if m.err != nil {
		out = append(out, errStyle.Render(m.err.Error()))
	}
	if m.showPlot {
		if plot := m.rec.Plot(plotHeight, min(m.width-10, 120)); plot != "" {
			out = append(out, plot)
		}
	}
	return strings.Join(out, "\n")
}
