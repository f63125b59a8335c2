package newton

import (
	"errors"
	"fmt"

	"github.com/govalues/fixed"
	"go.uber.org/zap"
)

var ErrShapeMismatch = errors.New("number of functions and initial values differ")

// Func1 is a residual function of one unknown.
type Func1 func(x fixed.Dual) (fixed.Dual, error)

// Func2 is a residual function of two unknowns.
type Func2 func(x, y fixed.Dual) (fixed.Dual, error)

// Solve finds a root of the system fs[i](x) = 0 starting from x0.
// Every iteration builds the Jacobian by forward differentiation, evaluates
// the residuals, and computes for each unknown k
//
//	x[k] = x[k] - det(J with column k replaced by F) / det(J)
//
// The returned slice has the same length as x0.
//
// Solve returns an error:
//   - wrapping [ErrShapeMismatch] if len(fs) != len(x0) or both are empty.
//   - wrapping [fixed.ErrDivisionByZero] if the Jacobian is singular at
//     the precision of the iterate.
//   - if any residual function fails.
func Solve(fs []fixed.Func, x0 []fixed.Decimal, opts ...Option) ([]fixed.Decimal, error) {
	if len(fs) != len(x0) || len(fs) == 0 {
		return nil, fmt.Errorf("%v functions, %v initial values: %w", len(fs), len(x0), ErrShapeMismatch)
	}
	c := newConfig(opts)
	x := append([]fixed.Decimal(nil), x0...)
	for i := 1; i <= c.maxIter; i++ {
		next, err := step(fs, x, c.parallel)
		if err != nil {
			return nil, fmt.Errorf("iteration %v: %w", i, err)
		}
		c.observe(i, next)
		if c.policy.Converged(x, next) {
			c.logger.Info("newton converged", zap.Int("iterations", i), zap.Int("unknowns", len(x)))
			return next, nil
		}
		x = next
	}
	c.logger.Info("newton stopped at iteration cap", zap.Int("iterations", c.maxIter), zap.Int("unknowns", len(x)))
	return x, nil
}

func step(fs []fixed.Func, x []fixed.Decimal, parallel bool) ([]fixed.Decimal, error) {
	jac, err := Jacobian(fs, x, parallel)
	if err != nil {
		return nil, err
	}
	res, err := Residuals(fs, x)
	if err != nil {
		return nil, err
	}
	den, err := fixed.Det(jac)
	if err != nil {
		return nil, err
	}
	next := make([]fixed.Decimal, len(x))
	for k := range x {
		num, err := fixed.Det(fixed.ReplaceColumn(jac, k, res))
		if err != nil {
			return nil, err
		}
		delta, err := num.Quo(den)
		if err != nil {
			return nil, fmt.Errorf("x[%v]: %w", k, err)
		}
		next[k] = x[k].Sub(delta)
	}
	return next, nil
}

// Solve1D finds a root of f(x) = 0 starting from x0 using
//
//	x = x - f(x) / f'(x)
//
// Solve1D returns an error wrapping [fixed.ErrDivisionByZero] if the
// derivative vanishes, or if f fails.
func Solve1D(f Func1, x0 fixed.Decimal, opts ...Option) (fixed.Decimal, error) {
	c := newConfig(opts)
	x := x0
	for i := 1; i <= c.maxIter; i++ {
		r, err := f(fixed.Variable(x))
		if err != nil {
			return fixed.Decimal{}, fmt.Errorf("iteration %v: %w", i, err)
		}
		delta, err := r.Value().Quo(r.Deriv())
		if err != nil {
			return fixed.Decimal{}, fmt.Errorf("iteration %v: f'(%v): %w", i, x, err)
		}
		next := x.Sub(delta)
		c.observe(i, []fixed.Decimal{next})
		if c.policy.Converged([]fixed.Decimal{x}, []fixed.Decimal{next}) {
			c.logger.Info("newton converged", zap.Int("iterations", i), zap.Int("unknowns", 1))
			return next, nil
		}
		x = next
	}
	c.logger.Info("newton stopped at iteration cap", zap.Int("iterations", c.maxIter), zap.Int("unknowns", 1))
	return x, nil
}

// Solve2D finds a root of the system f(x, y) = 0, g(x, y) = 0 starting
// from (x0, y0), using the 2×2 cross-product formula:
//
//	den = fx * gy - gx * fy
//	x   = x - (f * gy - g * fy) / den
//	y   = y - (g * fx - f * gx) / den
//
// Solve2D returns an error wrapping [fixed.ErrDivisionByZero] if den
// vanishes, or if f or g fail.
func Solve2D(f, g Func2, x0, y0 fixed.Decimal, opts ...Option) (x, y fixed.Decimal, err error) {
	c := newConfig(opts)
	x, y = x0, y0
	for i := 1; i <= c.maxIter; i++ {
		nx, ny, err := step2D(f, g, x, y)
		if err != nil {
			return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("iteration %v: %w", i, err)
		}
		prev, next := []fixed.Decimal{x, y}, []fixed.Decimal{nx, ny}
		c.observe(i, next)
		if c.policy.Converged(prev, next) {
			c.logger.Info("newton converged", zap.Int("iterations", i), zap.Int("unknowns", 2))
			return nx, ny, nil
		}
		x, y = nx, ny
	}
	c.logger.Info("newton stopped at iteration cap", zap.Int("iterations", c.maxIter), zap.Int("unknowns", 2))
	return x, y, nil
}

func step2D(f, g Func2, x, y fixed.Decimal) (fixed.Decimal, fixed.Decimal, error) {
	// Sweep over x
	fdx, err := f(fixed.Variable(x), fixed.Plain(y))
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("f: %w", err)
	}
	gdx, err := g(fixed.Variable(x), fixed.Plain(y))
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("g: %w", err)
	}
	// Sweep over y
	fdy, err := f(fixed.Plain(x), fixed.Variable(y))
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("f: %w", err)
	}
	gdy, err := g(fixed.Plain(x), fixed.Variable(y))
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("g: %w", err)
	}

	fv, gv := fdx.Value(), gdx.Value()
	fx, fy := fdx.Deriv(), fdy.Deriv()
	gx, gy := gdx.Deriv(), gdy.Deriv()

	den := fx.Mul(gy).Sub(gx.Mul(fy))
	dx, err := fv.Mul(gy).Sub(gv.Mul(fy)).Quo(den)
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("x: %w", err)
	}
	dy, err := gv.Mul(fx).Sub(fv.Mul(gx)).Quo(den)
	if err != nil {
		return fixed.Decimal{}, fixed.Decimal{}, fmt.Errorf("y: %w", err)
	}
	return x.Sub(dx), y.Sub(dy), nil
}
