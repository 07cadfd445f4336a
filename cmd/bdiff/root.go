package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	flags      config // values bound to flags

	cfg config // effective settings, set before any subcommand runs
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "bdiff",
		Short: "Arbitrary-order automatic differentiation of scalar functions",
		Long: `bdiff records scalar computations on a tape and computes every mixed
partial derivative of the result up to a chosen order.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			cfg.override(cmd.Flags(), opts.flags)
			if err := cfg.validate(); err != nil {
				return err
			}

			log, err := cfg.logger()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			opts.cfg = cfg
			opts.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.log.Sync()
		},
	}

	defaults := defaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML file with default settings (order, workers, verbose)")
	pf.IntVarP(&opts.flags.Order, "order", "n", defaults.Order, "Differentiation order")
	pf.IntVar(&opts.flags.Workers, "workers", defaults.Workers, "Concurrent sweeps (0 = one per CPU)")
	pf.BoolVarP(&opts.flags.Verbose, "verbose", "v", defaults.Verbose, "Log sweep statistics")

	cmd.AddCommand(
		newVersionCommand(),
		newEvalCommand(opts),
		newCheckCommand(opts),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bdiff %s\n", version)
		},
	}
}
