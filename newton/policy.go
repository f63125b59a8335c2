package newton

import "github.com/govalues/fixed"

// Policy decides whether iteration has converged, given the previous
// and the next iterate. Both slices have the same length.
type Policy interface {
	Converged(prev, next []fixed.Decimal) bool
}

// PolicyFunc is an adapter to allow the use of ordinary functions as policies.
type PolicyFunc func(prev, next []fixed.Decimal) bool

// Converged calls f(prev, next).
func (f PolicyFunc) Converged(prev, next []fixed.Decimal) bool {
	return f(prev, next)
}

// StringPolicy reports convergence when every unknown renders to the same
// string in both iterates.
// Since rendering strips trailing zeros, this is a fixed point at the
// precision of the iterates. It also stops on a stall, and it never stops on
// an oscillation in the last digit.
type StringPolicy struct{}

// Converged implements [Policy].
func (StringPolicy) Converged(prev, next []fixed.Decimal) bool {
	for i := range next {
		if prev[i].String() != next[i].String() {
			return false
		}
	}
	return true
}

// TolerancePolicy reports convergence when |next - prev| <= Tol holds for
// every unknown.
type TolerancePolicy struct {
	Tol fixed.Decimal
}

// Converged implements [Policy].
func (p TolerancePolicy) Converged(prev, next []fixed.Decimal) bool {
	for i := range next {
		if next[i].Sub(prev[i]).CmpAbs(p.Tol) > 0 {
			return false
		}
	}
	return true
}
