package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sandstorm/internal/sims/sand"
)

// ErrNoSeeds is returned when a job lists no seeds to run.
var ErrNoSeeds = errors.New("sweep: no seeds")

// Job describes one scene run repeatedly across seeds.
type Job struct {
	Config  sand.Config
	Scene   string
	Seeds   []int64
	Ticks   int
	Workers int
	// Progress, when set, is called once per finished seed. Calls never
	// overlap.
	Progress func(Result)
}

// Result is the outcome of a single seed.
type Result struct {
	Seed    int64
	Ticks   uint64
	Final   sand.Census
	Peak    sand.Census
	Elapsed time.Duration
}

// Seeds returns n consecutive seeds starting at base.
func Seeds(base int64, n int) []int64 {
	out := make([]int64, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, base+int64(i))
	}
	return out
}

// Run simulates every seed of job on a bounded group of workers, each owning
// its own world. Results are sorted by seed. The first failing seed cancels
// the rest; cancelling ctx stops workers between ticks and returns the
// context error.
func Run(ctx context.Context, job Job) ([]Result, error) {
	if len(job.Seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if err := sand.ApplyScene(sand.New(1, 1), job.Scene); err != nil {
		return nil, err
	}
	workers := job.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(job.Seeds))
	var progress sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(job.Seeds)))
	for i, seed := range job.Seeds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := runSeed(gctx, job, seed)
			if err != nil {
				return err
			}
			results[i] = res
			if job.Progress != nil {
				progress.Lock()
				job.Progress(res)
				progress.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Seed < results[j].Seed })
	return results, nil
}

func runSeed(ctx context.Context, job Job, seed int64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	cfg := job.Config
	cfg.Seed = seed
	w := sand.NewWithConfig(cfg)
	w.Reset(seed)
	if err := sand.ApplyScene(w, job.Scene); err != nil {
		return Result{}, err
	}
	peak := w.Census()
	for i := 0; i < job.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		w.Step()
		c := w.Census()
		for e := range c {
			peak[e] = max(peak[e], c[e])
		}
	}
	return Result{
		Seed:    seed,
		Ticks:   w.Ticks(),
		Final:   w.Census(),
		Peak:    peak,
		Elapsed: time.Since(start),
	}, nil
}

// Mean averages the final census of results per element.
func Mean(results []Result) [sand.NumElements]float64 {
	var mean [sand.NumElements]float64
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for e, n := range r.Final {
			mean[e] += float64(n)
		}
	}
	for e := range mean {
		mean[e] /= float64(len(results))
	}
	return mean
}
