package fixed

import "fmt"

// MustQuo is like [Decimal.Quo] but panics if computing error.
func (d Decimal) MustQuo(e Decimal) Decimal {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("%v.MustQuo(%v) failed: %v", d, e, err))
	}
	return f
}

// MustQuo is like [Dual.Quo] but panics if computing error.
func (x Dual) MustQuo(y Dual) Dual {
	z, err := x.Quo(y)
	if err != nil {
		panic(fmt.Sprintf("%v.MustQuo(%v) failed: %v", x, y, err))
	}
	return z
}

// MustDet is like [Det] but panics if computing error.
func MustDet(m [][]Decimal) Decimal {
	d, err := Det(m)
	if err != nil {
		panic(fmt.Sprintf("MustDet(%v) failed: %v", m, err))
	}
	return d
}
