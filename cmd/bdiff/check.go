package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/born-ml/bdiff/autodiff"
)

const checkTolerance = 1e-9

// scenario builds one problem on a fresh tape and compares its derivatives with
// known values.
type scenario struct {
	name string
	run  func(cfg autodiff.Config) error
}

var scenarios = []scenario{
	{"square", checkSquare},
	{"product", checkProduct},
	{"quotient", checkQuotient},
	{"sin-of-sin", checkSinOfSin},
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the built-in reference scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg := autodiff.Config{Logger: root.log}

			var errs error
			failed := 0
			for _, sc := range scenarios {
				if err := sc.run(cfg); err != nil {
					failed++
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", sc.name, err))
					fmt.Fprintf(out, "FAIL  %s: %v\n", sc.name, err)
					continue
				}
				fmt.Fprintf(out, "PASS  %s\n", sc.name)
			}

			root.log.Info("checks finished", zap.Int("total", len(scenarios)), zap.Int("failed", failed))
			if errs != nil {
				return fmt.Errorf("%d of %d checks failed: %w", failed, len(scenarios), errs)
			}
			return nil
		},
	}
}

// expect compares the derivatives selected by each query with the wanted values.
func expect(d *autodiff.Derivatives, want []float64, queries ...[]autodiff.Partial) error {
	got := make([]float64, len(queries))
	for i, q := range queries {
		v, err := d.Der(q...)
		if err != nil {
			return err
		}
		got[i] = v
	}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(want[i], got[i], checkTolerance, checkTolerance) {
			return fmt.Errorf("got %v, want %v", got, want)
		}
	}
	return nil
}

func wrt(ps ...autodiff.Partial) []autodiff.Partial { return ps }

func checkSquare(cfg autodiff.Config) error {
	tape := autodiff.New(cfg)
	x := tape.Var(1.5)
	d, err := tape.Run(tape.Mul(x, x), 2)
	if err != nil {
		return err
	}
	return expect(d, []float64{3, 2},
		wrt(autodiff.Wrt(x, 1)),
		wrt(autodiff.Wrt(x, 2)),
	)
}

func checkProduct(cfg autodiff.Config) error {
	tape := autodiff.New(cfg)
	x1, x2 := tape.Var(1.5), tape.Var(1)
	d, err := tape.Run(tape.Mul(x1, x2), 2)
	if err != nil {
		return err
	}
	return expect(d, []float64{1, 1.5, 1, 0, 0},
		wrt(autodiff.Wrt(x1, 1)),
		wrt(autodiff.Wrt(x2, 1)),
		wrt(autodiff.Wrt(x1, 1), autodiff.Wrt(x2, 1)),
		wrt(autodiff.Wrt(x1, 2)),
		wrt(autodiff.Wrt(x2, 2)),
	)
}

func checkQuotient(cfg autodiff.Config) error {
	tape := autodiff.New(cfg)
	x1, x2 := tape.Var(1.5), tape.Var(0.5)
	d, err := tape.Run(tape.Div(x1, x2), 1)
	if err != nil {
		return err
	}
	return expect(d, []float64{2, -6},
		wrt(autodiff.Wrt(x1, 1)),
		wrt(autodiff.Wrt(x2, 1)),
	)
}

func checkSinOfSin(cfg autodiff.Config) error {
	const (
		x0    = 0.5
		order = 7
	)
	tape := autodiff.New(cfg)
	x := tape.Var(x0)
	d, err := tape.Run(tape.Sin(tape.Sin(x)), order)
	if err != nil {
		return err
	}

	want := composeSin(x0, order)
	queries := make([][]autodiff.Partial, order+1)
	for n := range queries {
		queries[n] = wrt(autodiff.Wrt(x, n))
	}
	return expect(d, want, queries...)
}

// composeSin returns the derivatives of sin(sin x) at x0 up to order n, computed by
// composing truncated Taylor series.
func composeSin(x0 float64, n int) []float64 {
	derivs := func(at float64) []float64 {
		d := make([]float64, n+1)
		for k := range d {
			d[k] = math.Sin(at + float64(k)*math.Pi/2)
		}
		return d
	}
	return autodiff.Compose(derivs(math.Sin(x0)), derivs(x0))
}
