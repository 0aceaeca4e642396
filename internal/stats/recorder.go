package stats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"sandstorm/internal/sims/sand"
)

// DefaultWindow is the number of samples kept when none is configured.
const DefaultWindow = 240

// Sample is the census taken after one tick.
type Sample struct {
	Tick   uint64
	Census sand.Census
}

// Recorder keeps a sliding window of census samples.
type Recorder struct {
	window  int
	tracked []sand.Element
	samples []Sample
}

var defaultTracked = []sand.Element{
	sand.Sand, sand.Water, sand.Smoke, sand.Lava, sand.Obsidian, sand.Wood, sand.Fire,
}

var seriesColors = map[sand.Element]asciigraph.AnsiColor{
	sand.Sand:           asciigraph.Yellow,
	sand.Water:          asciigraph.Blue,
	sand.Wall:           asciigraph.White,
	sand.Smoke:          asciigraph.Gray,
	sand.Lava:           asciigraph.OrangeRed,
	sand.Obsidian:       asciigraph.Purple,
	sand.Wood:           asciigraph.SaddleBrown,
	sand.StationaryFire: asciigraph.DarkRed,
	sand.Fire:           asciigraph.Red,
}

// NewRecorder builds a recorder holding up to window samples of the tracked
// elements. No elements means a default selection of the moving ones.
func NewRecorder(window int, tracked ...sand.Element) *Recorder {
	if window <= 0 {
		window = DefaultWindow
	}
	if len(tracked) == 0 {
		tracked = defaultTracked
	}
	t := make([]sand.Element, 0, len(tracked))
	for _, e := range tracked {
		if e.Valid() {
			t = append(t, e)
		}
	}
	return &Recorder{window: window, tracked: t}
}

// Record appends a sample, dropping the oldest beyond the window.
func (r *Recorder) Record(tick uint64, c sand.Census) {
	r.samples = append(r.samples, Sample{Tick: tick, Census: c})
	if over := len(r.samples) - r.window; over > 0 {
		r.samples = append(r.samples[:0], r.samples[over:]...)
	}
}

// Observe records the current state of w.
func (r *Recorder) Observe(w *sand.World) {
	r.Record(w.Ticks(), w.Census())
}

// Len returns the number of samples held.
func (r *Recorder) Len() int { return len(r.samples) }

// Tracked returns the plotted elements.
func (r *Recorder) Tracked() []sand.Element {
	out := make([]sand.Element, len(r.tracked))
	copy(out, r.tracked)
	return out
}

// Latest returns the newest sample.
func (r *Recorder) Latest() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Series returns the per-sample counts of e, oldest first.
func (r *Recorder) Series(e sand.Element) []float64 {
	out := make([]float64, len(r.samples))
	if !e.Valid() {
		return out
	}
	for i, s := range r.samples {
		out[i] = float64(s.Census[e])
	}
	return out
}

// Peak returns the highest count of e in the window.
func (r *Recorder) Peak(e sand.Element) int {
	peak := 0
	if !e.Valid() {
		return 0
	}
	for _, s := range r.samples {
		peak = max(peak, s.Census[e])
	}
	return peak
}

// Plot draws the tracked series as one chart. It returns an empty string
// until a sample exists.
func (r *Recorder) Plot(height, width int) string {
	if len(r.samples) == 0 || len(r.tracked) == 0 {
		return ""
	}
	data := make([][]float64, 0, len(r.tracked))
	colors := make([]asciigraph.AnsiColor, 0, len(r.tracked))
	legends := make([]string, 0, len(r.tracked))
	for _, e := range r.tracked {
		data = append(data, r.Series(e))
		colors = append(colors, seriesColors[e])
		legends = append(legends, e.String())
	}
	first, last := r.samples[0].Tick, r.samples[len(r.samples)-1].Tick
	opts := []asciigraph.Option{
		asciigraph.Height(max(height, 1)),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("cells per element, ticks %d-%d", first, last)),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany(data, opts...)
}

// WriteTable prints a census as an aligned element/count table.
func WriteTable(w io.Writer, c sand.Census) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tCELLS")
	for e := sand.Sand; e < sand.NumElements; e++ {
		fmt.Fprintf(tw, "%s\t%d\n", e, c[e])
	}
	fmt.Fprintf(tw, "total\t%d\n", c.Occupied())
	return tw.Flush()
}
