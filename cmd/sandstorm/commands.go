package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"sandstorm/internal/app"
	"sandstorm/internal/sims/sand"
	"sandstorm/internal/stats"
	"sandstorm/internal/sweep"
	"sandstorm/internal/tui"
	"sandstorm/internal/ui"
)

func newGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "open the simulation in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Run(opts.cfg)
			if errors.Is(err, app.ErrNoGUI) {
				fmt.Fprintln(os.Stderr, "The GUI build of sandstorm requires the ebiten build tag.")
				fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/sandstorm gui` or use `sandstorm tui`.")
				os.Exit(2)
			}
			return err
		},
	}
}

const (
	terminalWidth  = 96
	terminalHeight = 48
)

// terminalConfig shrinks the grid to fit a terminal unless its size was
// chosen by a flag, a --param override or a config file.
func (o *options) terminalConfig(changed func(name string) bool) app.Config {
	cfg := *o.cfg
	if o.configPath != "" {
		return cfg
	}
	if _, ok := o.params["w"]; !ok && !changed("width") {
		cfg.Sim.Width = terminalWidth
	}
	if _, ok := o.params["h"]; !ok && !changed("height") {
		cfg.Sim.Height = terminalHeight
	}
	return cfg
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.terminalConfig(cmd.Flags().Changed)
			world, err := cfg.NewWorld()
			if err != nil {
				return err
			}
			return tui.Run(app.NewController(world, cfg))
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var (
		ticks int
		plot  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "simulate headlessly and print a census",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			world, err := opts.cfg.NewWorld()
			if err != nil {
				return err
			}
			rec := stats.NewRecorder(ticks)
			start := time.Now()
			for i := 0; i < ticks; i++ {
				world.Step()
				rec.Observe(world)
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  scene %s  seed %d  %d ticks in %s\n\n",
				ui.Title(world), opts.cfg.Scene, opts.cfg.Sim.Seed, world.Ticks(), elapsed.Round(time.Millisecond))
			if err := stats.WriteTable(out, world.Census()); err != nil {
				return err
			}
			if plot {
				if graph := rec.Plot(12, 80); graph != "" {
					fmt.Fprintf(out, "\n%s\n", graph)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate")
	cmd.Flags().BoolVar(&plot, "plot", true, "plot population over time")
	return cmd
}

func newSweepCmd(opts *options) *cobra.Command {
	var (
		seeds   int
		ticks   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the scene across many seeds in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			job := sweep.Job{
				Config:  opts.cfg.Sim,
				Scene:   opts.cfg.Scene,
				Seeds:   sweep.Seeds(opts.cfg.Sim.Seed, seeds),
				Ticks:   ticks,
				Workers: workers,
				Progress: func(r sweep.Result) {
					log.Printf("seed %d: %d cells after %d ticks (%s)", r.Seed, r.Final.Occupied(), r.Ticks, r.Elapsed.Round(time.Millisecond))
				},
			}
			log.Printf("sweeping scene %s over %d seeds (%d ticks each)", job.Scene, seeds, ticks)
			results, err := sweep.Run(ctx, job)
			if err != nil {
				return err
			}
			return writeSweep(cmd, results)
		},
	}
	cmd.Flags().IntVar(&seeds, "seeds", 8, "number of consecutive seeds starting at --seed")
	cmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate per seed")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 uses every CPU)")
	return cmd
}

func writeSweep(cmd *cobra.Command, results []sweep.Result) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := []string{"SEED"}
	for e := sand.Sand; e < sand.NumElements; e++ {
		header = append(header, strings.ToUpper(e.String()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprint(r.Seed)}
		for e := sand.Sand; e < sand.NumElements; e++ {
			row = append(row, fmt.Sprint(r.Final[e]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	mean := sweep.Mean(results)
	row := []string{"mean"}
	for e := sand.Sand; e < sand.NumElements; e++ {
		row = append(row, fmt.Sprintf("%.1f", mean[e]))
	}
	fmt.Fprintln(w, strings.Join(row, "\t"))
	return w.Flush()
}

func newElementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "list elements, movement rules and reactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeys := map[sand.Element]string{}
			for k, e := range app.Hotkeys {
				hotkeys[e] = k
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ELEMENT\tCATEGORY\tRULES\tKEY")
			for e := sand.Empty; e < sand.NumElements; e++ {
				rules := make([]string, 0, 3)
				for _, d := range sand.RulesFor(e) {
					rules = append(rules, d.String())
				}
				key := hotkeys[e]
				if key == "" {
					key = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e, e.Category(), strings.Join(rules, ","), key)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "SOURCE\tTARGET\tRESULT\t")
			for _, r := range sand.Reactions() {
				fmt.Fprintf(w, "%s\t%s\t%s\t\n", r.Source, r.Target, describeReaction(r))
			}
			return w.Flush()
		},
	}
}

func describeReaction(r sand.Reaction) string {
	if r.Swap {
		return "swap"
	}
	side := func(e sand.Element) string {
		if e == sand.Keep {
			return "unchanged"
		}
		return e.String()
	}
	out := fmt.Sprintf("source->%s target->%s", side(r.SourceTo), side(r.TargetTo))
	if r.AboveOnly {
		out += " (target above only)"
	}
	return out
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "list starting scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range sand.Scenes() {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := app.Save(path, opts.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
