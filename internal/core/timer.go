package core

import "time"

// MaxCatchUp bounds how many ticks a single frame may owe after a stall.
const MaxCatchUp = 8

// FixedStep helps run simulation updates at a steady ticks-per-second rate
// independently of how often frames are drawn.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// DueAt returns how many ticks have accumulated by now since the previous
// call. At most limit ticks are returned; any further backlog is dropped so a
// long stall cannot snowball.
func (f *FixedStep) DueAt(now time.Time, limit int) int {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta > 0 {
		f.accumulator += delta
	}
	n := 0
	for f.accumulator >= f.step && n < limit {
		f.accumulator -= f.step
		n++
	}
	if n == limit && f.accumulator >= f.step {
		f.accumulator = 0
	}
	return n
}
