package fixed

import "strings"

// Dual is a decimal value bundled with its first derivative with respect to
// one designated independent variable.
//
// A dual is one of two variants:
//
//   - Plain: a constant, created by [Plain]. Its derivative is zero.
//   - Tracked: a value that depends on the independent variable, created by
//     [Variable] or [Tracked], or produced by an operation with at least one
//     tracked operand.
//
// Both variants expose the same accessors [Dual.Value] and [Dual.Deriv].
// Operations never modify their operands, so duals can be evaluated
// concurrently.
//
// Only one direction is carried at a time: a gradient over k variables
// takes k evaluations, each seeding a different variable.
type Dual struct {
	val     Decimal
	der     Decimal
	tracked bool
}

// Func is a residual function F(x_1, ..., x_n).
// It must be written with [Dual] operations only, so that the same function
// can be evaluated both with plain arguments and with tracked ones.
type Func func(x []Dual) (Dual, error)

// Plain returns an untracked dual with value d.
func Plain(d Decimal) Dual {
	return Dual{val: d}
}

// Variable returns the independent variable at d: a tracked dual with
// derivative 1 at the precision of d.
func Variable(d Decimal) Dual {
	return Dual{val: d, der: d.One(), tracked: true}
}

// Tracked returns a tracked dual with value v and derivative dv.
func Tracked(v, dv Decimal) Dual {
	return Dual{val: v, der: dv, tracked: true}
}

// Value returns the value of x.
func (x Dual) Value() Decimal {
	return x.val
}

// Deriv returns the derivative of x.
// For a plain dual it is zero at the precision of the value.
func (x Dual) Deriv() Decimal {
	if !x.tracked {
		return x.val.Zero()
	}
	return x.der
}

// IsTracked returns true if x depends on the independent variable.
func (x Dual) IsTracked() bool {
	return x.tracked
}

// Neg returns -x.
func (x Dual) Neg() Dual {
	if !x.tracked {
		return Plain(x.val.Neg())
	}
	return Tracked(x.val.Neg(), x.der.Neg())
}

// Add returns x + y, the derivative follows the sum rule.
func (x Dual) Add(y Dual) Dual {
	v := x.val.Add(y.val)
	if !x.tracked && !y.tracked {
		return Plain(v)
	}
	return Tracked(v, x.Deriv().Add(y.Deriv()))
}

// Sub returns x - y, the derivative follows the difference rule.
func (x Dual) Sub(y Dual) Dual {
	v := x.val.Sub(y.val)
	if !x.tracked && !y.tracked {
		return Plain(v)
	}
	return Tracked(v, x.Deriv().Sub(y.Deriv()))
}

// Mul returns x * y, the derivative follows the product rule:
//
//	(x * y)' = x' * y + x * y'
func (x Dual) Mul(y Dual) Dual {
	v := x.val.Mul(y.val)
	if !x.tracked && !y.tracked {
		return Plain(v)
	}
	dv := x.Deriv().Mul(y.val).Add(x.val.Mul(y.Deriv()))
	return Tracked(v, dv)
}

// Quo returns x / y, the derivative follows the quotient rule:
//
//	(x / y)' = (x' * y - x * y') / y^2
//
// The numerator is divided by y twice instead of once by y^2, so that
// squaring a small y does not truncate the denominator to zero.
//
// Quo returns an error if the value of y is zero.
func (x Dual) Quo(y Dual) (Dual, error) {
	v, err := x.val.Quo(y.val)
	if err != nil {
		return Dual{}, err
	}
	if !x.tracked && !y.tracked {
		return Plain(v), nil
	}
	num := x.Deriv().Mul(y.val).Sub(x.val.Mul(y.Deriv()))
	dv, err := num.Quo(y.val)
	if err != nil {
		return Dual{}, err
	}
	dv, err = dv.Quo(y.val)
	if err != nil {
		return Dual{}, err
	}
	return Tracked(v, dv), nil
}

// String returns the value of a plain dual, and "(v+dε)" for a tracked one.
func (x Dual) String() string {
	if !x.tracked {
		return x.val.String()
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(x.val.String())
	if x.der.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(x.der.String())
	b.WriteString("ε)")
	return b.String()
}

// Eval evaluates f at point x with plain arguments and returns its value.
func Eval(f Func, x []Decimal) (Decimal, error) {
	args := make([]Dual, len(x))
	for i := range x {
		args[i] = Plain(x[i])
	}
	r, err := f(args)
	if err != nil {
		return Decimal{}, err
	}
	return r.Value(), nil
}

// Partial returns the partial derivative of f with respect to x[k] at point x.
// Only x[k] is tracked, all other arguments are plain.
func Partial(f Func, x []Decimal, k int) (Decimal, error) {
	args := make([]Dual, len(x))
	for i := range x {
		if i == k {
			args[i] = Variable(x[i])
		} else {
			args[i] = Plain(x[i])
		}
	}
	r, err := f(args)
	if err != nil {
		return Decimal{}, err
	}
	return r.Deriv(), nil
}

// Derivative returns f'(x) for a function of one variable.
func Derivative(f func(x Dual) (Dual, error), x Decimal) (Decimal, error) {
	r, err := f(Variable(x))
	if err != nil {
		return Decimal{}, err
	}
	return r.Deriv(), nil
}
