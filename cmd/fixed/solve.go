package main

import (
	"fmt"
	"strings"

	"github.com/govalues/fixed/internal/config"
	"github.com/govalues/fixed/internal/problem"
	"github.com/govalues/fixed/internal/trace"
	"github.com/govalues/fixed/newton"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newSolveCmd() *cobra.Command {
	var flags config.Config
	cmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "Solve a built-in system of equations",
		Long: `Runs Newton-Raphson iteration on a built-in problem and prints one line
per unknown.

Problems:
  ` + strings.Join(problem.Names(), "\n  "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: problem.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.override(cmd, &flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			p, err := problem.Lookup(args[0])
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(problem.Names(), ", "))
			}
			x0, err := p.Start(cfg.Precision)
			if err != nil {
				return err
			}
			opts, err := cfg.SolverOptions()
			if err != nil {
				return err
			}
			log := a.logger.With(zap.String("problem", p.Name))
			opts = append(opts, newton.WithLogger(log))
			var rec trace.Recorder
			if cfg.Plot != "" {
				opts = append(opts, newton.WithObserver(rec.Observe))
			}

			x, err := newton.Solve(p.Funcs, x0, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			for i, v := range x {
				fmt.Fprintf(cmd.OutOrStdout(), "x%v = %v\n", i, v)
			}

			if cfg.Plot != "" {
				if err := rec.Save(cfg.Plot, p.Description); err != nil {
					return err
				}
				log.Info("plot saved", zap.String("path", cfg.Plot), zap.Int("steps", len(rec.Steps())))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&flags.Precision, "precision", "p", 0, "Fractional digits of the iterates")
	f.IntVar(&flags.MaxIterations, "max-iter", 0, "Iteration cap")
	f.StringVar(&flags.Policy, "policy", "", "Convergence policy: string or tolerance")
	f.StringVar(&flags.Tolerance, "tolerance", "", "Step size under which the tolerance policy stops")
	f.BoolVar(&flags.Parallel, "parallel", false, "Evaluate Jacobian columns concurrently")
	f.StringVar(&flags.Plot, "plot", "", "Write a plot of the iterates to this file (.png, .svg)")
	return cmd
}

// override returns a copy of the loaded config with the flags that were set
// on cmd applied.
func (a *app) override(cmd *cobra.Command, flags *config.Config) *config.Config {
	cfg := *a.cfg
	f := cmd.Flags()
	if f.Changed("precision") {
		cfg.Precision = flags.Precision
	}
	if f.Changed("max-iter") {
		cfg.MaxIterations = flags.MaxIterations
	}
	if f.Changed("policy") {
		cfg.Policy = flags.Policy
	}
	if f.Changed("tolerance") {
		cfg.Tolerance = flags.Tolerance
	}
	if f.Changed("parallel") {
		cfg.Parallel = flags.Parallel
	}
	if f.Changed("plot") {
		cfg.Plot = flags.Plot
	}
	return &cfg
}
