// Package problem holds the named systems of equations the command-line tool
// can solve.
package problem

import (
	"errors"
	"fmt"
	"sort"

	"github.com/govalues/fixed"
)

var ErrUnknownProblem = errors.New("unknown problem")

// Problem is a system of residual functions with a starting point.
type Problem struct {
	Name        string
	Description string
	Funcs       []fixed.Func
	Initial     []string // one value per unknown
}

// Start parses the initial values with the given precision.
func (p Problem) Start(prec int) ([]fixed.Decimal, error) {
	x0 := make([]fixed.Decimal, len(p.Initial))
	for i, s := range p.Initial {
		d, err := fixed.ParseExact(s, prec)
		if err != nil {
			return nil, fmt.Errorf("%s: initial value %q: %w", p.Name, s, err)
		}
		x0[i] = d
	}
	return x0, nil
}

var registry = map[string]Problem{}

func register(p Problem) {
	if _, ok := registry[p.Name]; ok {
		panic(fmt.Sprintf("problem %q registered twice", p.Name))
	}
	registry[p.Name] = p
}

// Lookup returns the problem with the given name.
func Lookup(name string) (Problem, error) {
	p, ok := registry[name]
	if !ok {
		return Problem{}, fmt.Errorf("%q: %w", name, ErrUnknownProblem)
	}
	return p, nil
}

// Names returns the registered problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// constant returns s as a plain dual at the precision of like, so that
// constants do not widen the iterate.
func constant(s string, like fixed.Dual) fixed.Dual {
	return fixed.Plain(fixed.MustParseExact(s, like.Value().Prec()))
}

func init() {
	register(Problem{
		Name:        "sqrt2",
		Description: "x^2 - 2 = 0",
		Funcs: []fixed.Func{
			func(x []fixed.Dual) (fixed.Dual, error) {
				return x[0].Mul(x[0]).Sub(constant("2", x[0])), nil
			},
		},
		Initial: []string{"1"},
	})
	register(Problem{
		Name:        "linear",
		Description: "x + y - 3 = 0, x - y - 1 = 0",
		Funcs: []fixed.Func{
			func(x []fixed.Dual) (fixed.Dual, error) {
				return x[0].Add(x[1]).Sub(constant("3", x[0])), nil
			},
			func(x []fixed.Dual) (fixed.Dual, error) {
				return x[0].Sub(x[1]).Sub(constant("1", x[0])), nil
			},
		},
		Initial: []string{"0", "0"},
	})
	register(Problem{
		Name:        "circle-line",
		Description: "x^2 + y^2 - 4 = 0, x - y = 0",
		Funcs: []fixed.Func{
			func(x []fixed.Dual) (fixed.Dual, error) {
				return x[0].Mul(x[0]).Add(x[1].Mul(x[1])).Sub(constant("4", x[0])), nil
			},
			func(x []fixed.Dual) (fixed.Dual, error) {
				return x[0].Sub(x[1]), nil
			},
		},
		Initial: []string{"1", "2"},
	})
	// Equilibrium of a weak acid in a 0.1 molar solution. The root lies
	// several orders of magnitude away from the starting point.
	register(Problem{
		Name:        "weak-acid",
		Description: "x^2 - y^2 - 9e-9 + 9e-8 x = 0, xy + (0.1 - 1e-7) x + (0.1 + 1e-7) y + y^2 = 0",
		Funcs: []fixed.Func{
			func(v []fixed.Dual) (fixed.Dual, error) {
				x, y := v[0], v[1]
				return x.Mul(x).
					Sub(y.Mul(y)).
					Sub(constant("9e-9", x)).
					Add(constant("9e-8", x).Mul(x)), nil
			},
			func(v []fixed.Dual) (fixed.Dual, error) {
				x, y := v[0], v[1]
				a := constant("0.1", x).Sub(constant("1e-7", x))
				b := constant("0.1", x).Add(constant("1e-7", x))
				return x.Mul(y).
					Add(a.Mul(x)).
					Add(b.Mul(y)).
					Add(y.Mul(y)), nil
			},
		},
		Initial: []string{"9e-8", "1e-17"},
	})
}
