package newton

import (
	"fmt"

	"github.com/govalues/fixed"
	"golang.org/x/sync/errgroup"
)

// Jacobian returns the matrix J[i][k] = ∂fs[i]/∂x[k] at point x.
// Column k is computed by one forward sweep with x[k] tracked.
// If parallel is true, the columns are computed concurrently.
func Jacobian(fs []fixed.Func, x []fixed.Decimal, parallel bool) ([][]fixed.Decimal, error) {
	jac := make([][]fixed.Decimal, len(fs))
	for i := range jac {
		jac[i] = make([]fixed.Decimal, len(x))
	}

	// Each column writes to its own entries only.
	column := func(k int) error {
		for i, f := range fs {
			d, err := fixed.Partial(f, x, k)
			if err != nil {
				return fmt.Errorf("∂f[%v]/∂x[%v]: %w", i, k, err)
			}
			jac[i][k] = d
		}
		return nil
	}

	if !parallel {
		for k := range x {
			if err := column(k); err != nil {
				return nil, err
			}
		}
		return jac, nil
	}

	var g errgroup.Group
	for k := range x {
		k := k
		g.Go(func() error {
			return column(k)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jac, nil
}

// Residuals returns the vector fs[i](x) evaluated with plain arguments.
func Residuals(fs []fixed.Func, x []fixed.Decimal) ([]fixed.Decimal, error) {
	res := make([]fixed.Decimal, len(fs))
	for i, f := range fs {
		v, err := fixed.Eval(f, x)
		if err != nil {
			return nil, fmt.Errorf("f[%v]: %w", i, err)
		}
		res[i] = v
	}
	return res, nil
}
