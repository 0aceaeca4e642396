package main

import (
	"github.com/spf13/cobra"

	"sandstorm/internal/app"
)

type options struct {
	cfg        *app.Config
	configPath string
	params     map[string]string
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: app.NewConfig()}

	root := &cobra.Command{
		Use:          "sandstorm",
		Short:        "falling-sand cellular automaton",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := root.PersistentFlags()
	opts.cfg.Bind(flags)
	flags.StringVar(&opts.configPath, "config", "", "config file path (yaml)")
	flags.StringToStringVar(&opts.params, "param", nil, "simulation parameter override key=value (repeatable)")

	root.AddCommand(
		newGUICmd(opts),
		newTUICmd(opts),
		newRunCmd(opts),
		newSweepCmd(opts),
		newElementsCmd(),
		newScenesCmd(),
		newConfigCmd(opts),
	)
	return root
}

// resolve layers the config file under explicit flags, then applies --param.
func (o *options) resolve(cmd *cobra.Command) error {
	if o.configPath != "" {
		if err := o.cfg.ApplyFile(o.configPath, cmd.Flags()); err != nil {
			return err
		}
	}
	if err := o.cfg.Sim.Apply(o.params); err != nil {
		return err
	}
	o.cfg.Normalize()
	return nil
}
