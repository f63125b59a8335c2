package fixed

import (
	"encoding"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd"
)

func TestDecimal_ZeroValue(t *testing.T) {
	got := Decimal{}
	if got.String() != "0" {
		t.Errorf("Decimal{}.String() = %q, want %q", got, "0")
	}
	if got.Prec() != 0 {
		t.Errorf("Decimal{}.Prec() = %v, want 0", got.Prec())
	}
	if !got.IsZero() {
		t.Errorf("Decimal{}.IsZero() = false, want true")
	}
}

func TestDecimal_Interfaces(t *testing.T) {
	var d any

	d = Decimal{}
	_, ok := d.(fmt.Stringer)
	if !ok {
		t.Errorf("%T does not implement fmt.Stringer", d)
	}
	_, ok = d.(fmt.Formatter)
	if !ok {
		t.Errorf("%T does not implement fmt.Formatter", d)
	}
	_, ok = d.(encoding.TextMarshaler)
	if !ok {
		t.Errorf("%T does not implement encoding.TextMarshaler", d)
	}

	d = &Decimal{}
	_, ok = d.(encoding.TextUnmarshaler)
	if !ok {
		t.Errorf("%T does not implement encoding.TextUnmarshaler", d)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		coef int64
		prec int
		want string
	}{
		{0, 0, "0"},
		{0, 5, "0"},
		{1, 0, "1"},
		{1, 1, "0.1"},
		{1, 2, "0.01"},
		{-123, 0, "-123"},
		{-123, 1, "-12.3"},
		{-123, 3, "-0.123"},
		{-123, 5, "-0.00123"},
		{1200, 2, "12"},
		{1250, 3, "1.25"},
	}
	for _, tt := range tests {
		got := New(tt.coef, tt.prec)
		if got.String() != tt.want {
			t.Errorf("New(%v, %v) = %q, want %q", tt.coef, tt.prec, got, tt.want)
		}
		if got.Prec() != tt.prec {
			t.Errorf("New(%v, %v).Prec() = %v, want %v", tt.coef, tt.prec, got.Prec(), tt.prec)
		}
	}

	t.Run("panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("New(0, -1) did not panic")
			}
		}()
		New(0, -1)
	})
}

func TestNewFromBigInt(t *testing.T) {
	mag := big.NewInt(-15)
	d := NewFromBigInt(mag, 1)
	mag.SetInt64(99)
	if got, want := d.String(), "-1.5"; got != want {
		t.Errorf("NewFromBigInt(-15, 1) = %q, want %q", got, want)
	}
	m := d.Mag()
	m.SetInt64(7)
	if got, want := d.String(), "-1.5"; got != want {
		t.Errorf("Mag() aliases the magnitude: %q, want %q", got, want)
	}
	if got := NewFromBigInt(nil, 3); !got.IsZero() {
		t.Errorf("NewFromBigInt(nil, 3) = %q, want 0", got)
	}
}

func TestParseExact(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s        string
			prec     int
			wantMag  string
			wantPrec int
		}{
			// Empty
			{"", 50, "0", 50},
			{"", 0, "0", 0},

			// Integers
			{"0", 2, "0", 2},
			{"1", 2, "100", 2},
			{"-1", 2, "-100", 2},
			{"+1", 2, "100", 2},
			{"007", 0, "7", 0},

			// Fractions
			{"1.5", 3, "1500", 3},
			{"-1.5", 3, "-1500", 3},
			{".5", 1, "5", 1},
			{"-.5", 1, "-5", 1},
			{"5.", 1, "50", 1},
			{"1.250", 3, "1250", 3},

			// Truncation, not rounding
			{"1.999", 2, "199", 2},
			{"-1.999", 2, "-199", 2},
			{"0.129", 2, "12", 2},
			{".5", 0, "0", 0},

			// Exponents
			{"1e3", 0, "1000", 0},
			{"1E3", 0, "1000", 0},
			{"1e+3", 0, "1000", 0},
			{"1.5e2", 1, "1500", 1},
			{"9e-8", 10, "900", 10},
			{"1e-17", 20, "1000", 20},
			{"15e-1", 0, "1", 0},
			{"-15e-1", 0, "-1", 0},
			{"1e-3", 2, "0", 2},
			{"1e-0", 2, "100", 2},
		}
		for _, tt := range tests {
			got, err := ParseExact(tt.s, tt.prec)
			if err != nil {
				t.Errorf("ParseExact(%q, %v) failed: %v", tt.s, tt.prec, err)
				continue
			}
			if got.Mag().String() != tt.wantMag || got.Prec() != tt.wantPrec {
				t.Errorf("ParseExact(%q, %v) = (%v, %v), want (%v, %v)",
					tt.s, tt.prec, got.Mag(), got.Prec(), tt.wantMag, tt.wantPrec)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			s    string
			prec int
		}{
			"two points":       {"1.2.3", 10},
			"two points 2":     {"..", 10},
			"two exponents":    {"1e2e3", 10},
			"two exponents 2":  {"1e2E3", 10},
			"no coefficient":   {"-", 10},
			"no coefficient 2": {".", 10},
			"no coefficient 3": {"e5", 10},
			"no exponent":      {"1e", 10},
			"no exponent 2":    {"1e-", 10},
			"invalid char":     {"1x", 10},
			"invalid char 2":   {" 1", 10},
			"invalid char 3":   {"1_000", 10},
			"double sign":      {"--1", 10},
			"exponent range":   {"1e10001", 10},
		}
		for name, tt := range tests {
			_, err := ParseExact(tt.s, tt.prec)
			if !errors.Is(err, ErrInvalidDecimal) {
				t.Errorf("%s: ParseExact(%q, %v) = %v, want %v", name, tt.s, tt.prec, err, ErrInvalidDecimal)
			}
		}
		_, err := ParseExact("1", -1)
		if !errors.Is(err, ErrPrecRange) {
			t.Errorf("ParseExact(\"1\", -1) = %v, want %v", err, ErrPrecRange)
		}
	})
}

func TestParse(t *testing.T) {
	d, err := Parse("1.250")
	if err != nil {
		t.Fatalf("Parse(\"1.250\") failed: %v", err)
	}
	if d.Prec() != DefaultPrec {
		t.Errorf("Parse(\"1.250\").Prec() = %v, want %v", d.Prec(), DefaultPrec)
	}
	if got, want := d.String(), "1.25"; got != want {
		t.Errorf("Parse(\"1.250\") = %q, want %q", got, want)
	}
}

func TestMustParse(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParse(\"1.2.3\") did not panic")
			}
		}()
		MustParse("1.2.3")
	})
}

func TestDecimal_String(t *testing.T) {
	tests := []struct {
		s    string
		prec int
		want string
	}{
		{"0", 0, "0"},
		{"0", 50, "0"},
		{"-0", 50, "0"},
		{"0.000", 3, "0"},
		{"1", 0, "1"},
		{"100", 0, "100"},
		{"100", 5, "100"},
		{"1.250", 50, "1.25"},
		{"0.5", 50, "0.5"},
		{"-0.5", 50, "-0.5"},
		{"0.00001", 5, "0.00001"},
		{"-0.00001", 5, "-0.00001"},
		{"123.456", 3, "123.456"},
		{"123.456", 2, "123.45"},
		{"10.10", 4, "10.1"},
		{"9e-8", 50, "0.00000009"},
		{"1e-17", 50, "0.00000000000000001"},
		{"1e20", 0, "100000000000000000000"},
	}
	for _, tt := range tests {
		d := MustParseExact(tt.s, tt.prec)
		got := d.String()
		if got != tt.want {
			t.Errorf("ParseExact(%q, %v).String() = %q, want %q", tt.s, tt.prec, got, tt.want)
		}
	}
}

func TestDecimal_Format(t *testing.T) {
	tests := []struct {
		d, format, want string
	}{
		{"-1.5", "%v", "-1.5"},
		{"-1.5", "%s", "-1.5"},
		{"-1.5", "%q", "\"-1.5\""},
		{"1.5", "%+v", "+1.5"},
		{"1.5", "%6v", "   1.5"},
		{"1.5", "%-6v|", "1.5   |"},
		{"1.5", "%d", "%!d(fixed.Decimal=1.5)"},
	}
	for _, tt := range tests {
		d := MustParse(tt.d)
		got := fmt.Sprintf(tt.format, d)
		if got != tt.want {
			t.Errorf("fmt.Sprintf(%q, %q) = %q, want %q", tt.format, d, got, tt.want)
		}
	}
}

func TestDecimal_Text(t *testing.T) {
	d := MustParse("-12.5")
	b, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() failed: %v", err)
	}
	var e Decimal
	if err := e.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText(%q) failed: %v", b, err)
	}
	if !e.Equal(d) || e.Prec() != DefaultPrec {
		t.Errorf("UnmarshalText(%q) = %v with precision %v, want %v", b, e, e.Prec(), d)
	}
	if err := e.UnmarshalText([]byte("1..2")); err == nil {
		t.Errorf("UnmarshalText(\"1..2\") did not fail")
	}
}

func TestDecimal_ZeroOne(t *testing.T) {
	d := MustParseExact("3.14", 7)
	if z := d.Zero(); !z.IsZero() || z.Prec() != 7 {
		t.Errorf("%v.Zero() = %v with precision %v", d, z, z.Prec())
	}
	if o := d.One(); o.String() != "1" || o.Prec() != 7 || o.Mag().String() != "10000000" {
		t.Errorf("%v.One() = %v with magnitude %v", d, o, o.Mag())
	}
	if u := d.ULP(); u.String() != "0.0000001" {
		t.Errorf("%v.ULP() = %v, want 0.0000001", d, u)
	}
}

func TestDecimal_Add(t *testing.T) {
	tests := []struct {
		d, e     string
		dp, ep   int
		want     string
		wantPrec int
	}{
		{"1", "2", 0, 0, "3", 0},
		{"1.5", "2.25", 1, 2, "3.75", 2},
		{"2.25", "1.5", 2, 1, "3.75", 2},
		{"-1.5", "1.5", 5, 5, "0", 5},
		{"0.1", "0.02", 1, 2, "0.12", 2},
		{"1", "0.001", 0, 3, "1.001", 3},
	}
	for _, tt := range tests {
		d, e := MustParseExact(tt.d, tt.dp), MustParseExact(tt.e, tt.ep)
		got := d.Add(e)
		if got.String() != tt.want || got.Prec() != tt.wantPrec {
			t.Errorf("%q.Add(%q) = %q (precision %v), want %q (precision %v)",
				d, e, got, got.Prec(), tt.want, tt.wantPrec)
		}
	}

	t.Run("identity", func(t *testing.T) {
		for _, s := range []string{"0", "1", "-1.25", "123456789.987654321", "1e-40"} {
			d := MustParse(s)
			if got := d.Add(d.Zero()); got.String() != d.String() {
				t.Errorf("%q.Add(0) = %q, want %q", d, got, d)
			}
			if got := d.Add(Decimal{}); got.String() != d.String() {
				t.Errorf("%q.Add(Decimal{}) = %q, want %q", d, got, d)
			}
		}
	})

	t.Run("chained mixed precision", func(t *testing.T) {
		a := MustParseExact("1.5", 1)
		b := MustParseExact("0.25", 2)
		c := MustParseExact("0.125", 3)
		got := a.Add(b).Add(c)
		if got.String() != "1.875" || got.Prec() != 3 {
			t.Errorf("1.5 + 0.25 + 0.125 = %q (precision %v), want 1.875 (precision 3)", got, got.Prec())
		}
		got = c.Add(a).Sub(b)
		if got.String() != "1.375" || got.Prec() != 3 {
			t.Errorf("0.125 + 1.5 - 0.25 = %q (precision %v), want 1.375 (precision 3)", got, got.Prec())
		}
	})
}

func TestDecimal_Sub(t *testing.T) {
	tests := []struct {
		d, e   string
		dp, ep int
		want   string
	}{
		{"3", "1", 0, 0, "2"},
		{"1", "3", 0, 0, "-2"},
		{"1.5", "2.25", 1, 2, "-0.75"},
		{"0", "0.001", 0, 3, "-0.001"},
	}
	for _, tt := range tests {
		d, e := MustParseExact(tt.d, tt.dp), MustParseExact(tt.e, tt.ep)
		got := d.Sub(e)
		if got.String() != tt.want {
			t.Errorf("%q.Sub(%q) = %q, want %q", d, e, got, tt.want)
		}
	}
}

func TestDecimal_Mul(t *testing.T) {
	tests := []struct {
		d, e     string
		dp, ep   int
		want     string
		wantPrec int
	}{
		{"2", "3", 0, 0, "6", 0},
		{"1.5", "1.5", 1, 1, "2.2", 1},   // 2.25 truncated
		{"0.1", "0.1", 1, 1, "0", 1},     // 0.01 truncated
		{"0.5", "0.5", 1, 1, "0.2", 1},   // 0.25 truncated, not rounded to 0.3
		{"-0.5", "0.5", 1, 1, "-0.2", 1}, // towards zero
		{"0.25", "0.5", 2, 1, "0.12", 2},
		{"0.19", "0.9", 2, 2, "0.17", 2}, // 0.171
		{"2", "0.001", 0, 3, "0.002", 3},
	}
	for _, tt := range tests {
		d, e := MustParseExact(tt.d, tt.dp), MustParseExact(tt.e, tt.ep)
		got := d.Mul(e)
		if got.String() != tt.want || got.Prec() != tt.wantPrec {
			t.Errorf("%q.Mul(%q) = %q (precision %v), want %q (precision %v)",
				d, e, got, got.Prec(), tt.want, tt.wantPrec)
		}
	}
}

func TestDecimal_Quo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e     string
			dp, ep   int
			want     string
			wantPrec int
		}{
			{"6", "3", 0, 0, "2", 0},
			{"1", "3", 5, 5, "0.33333", 5},
			{"2", "3", 5, 5, "0.66666", 5}, // not rounded to 0.66667
			{"-2", "3", 5, 5, "-0.66666", 5},
			{"1", "3", 2, 5, "0.33", 2},
			{"1", "0.5", 3, 1, "2", 3},
			{"7", "2", 0, 0, "3", 0},
		}
		for _, tt := range tests {
			d, e := MustParseExact(tt.d, tt.dp), MustParseExact(tt.e, tt.ep)
			got, err := d.Quo(e)
			if err != nil {
				t.Errorf("%q.Quo(%q) failed: %v", d, e, err)
				continue
			}
			if got.String() != tt.want || got.Prec() != tt.wantPrec {
				t.Errorf("%q.Quo(%q) = %q (precision %v), want %q (precision %v)",
					d, e, got, got.Prec(), tt.want, tt.wantPrec)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		d := MustParse("1")
		for _, e := range []Decimal{{}, MustParse("0"), MustParseExact("0.0001", 2)} {
			_, err := d.Quo(e)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Errorf("%q.Quo(%q) = %v, want %v", d, e, err, ErrDivisionByZero)
			}
		}
	})

	t.Run("compounding", func(t *testing.T) {
		// Every division truncates, so 1/3^5*3^5 drifts away from 1.
		d := MustParseExact("1", 10)
		three := MustParseExact("3", 10)
		for i := 0; i < 5; i++ {
			d = d.MustQuo(three)
		}
		d = d.Mul(New(243, 0))
		if got, want := d.String(), "0.9999999909"; got != want {
			t.Errorf("1/3^5*3^5 = %q, want %q", got, want)
		}
	})
}

func TestDecimal_MustQuo(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustQuo(0) did not panic")
		}
	}()
	MustParse("1").MustQuo(Decimal{})
}

func TestDecimal_Pow(t *testing.T) {
	tests := []struct {
		d    string
		prec int
		exp  int
		want string
	}{
		{"2", 0, 0, "1"},
		{"2", 0, 10, "1024"},
		{"1.5", 1, 2, "2.2"},
		{"0.5", 3, 3, "0.125"},
		{"-2", 0, 3, "-8"},
	}
	for _, tt := range tests {
		d := MustParseExact(tt.d, tt.prec)
		if got := d.Pow(tt.exp); got.String() != tt.want {
			t.Errorf("%q.Pow(%v) = %q, want %q", d, tt.exp, got, tt.want)
		}
	}
}

func TestDecimal_Trunc(t *testing.T) {
	tests := []struct {
		d     string
		prec  int
		trunc int
		want  string
	}{
		{"1.999", 3, 2, "1.99"},
		{"-1.999", 3, 0, "-1"},
		{"1.5", 1, 5, "1.5"},
	}
	for _, tt := range tests {
		d := MustParseExact(tt.d, tt.prec)
		got := d.Trunc(tt.trunc)
		if got.String() != tt.want || got.Prec() != tt.trunc {
			t.Errorf("%q.Trunc(%v) = %q (precision %v), want %q", d, tt.trunc, got, got.Prec(), tt.want)
		}
	}
}

func TestDecimal_Cmp(t *testing.T) {
	tests := []struct {
		d, e   string
		dp, ep int
		want   int
	}{
		{"1", "1", 0, 5, 0},
		{"1.5", "1.50", 1, 2, 0},
		{"1", "2", 0, 0, -1},
		{"-1", "-2", 3, 3, 1},
		{"0.001", "0", 3, 0, 1},
	}
	for _, tt := range tests {
		d, e := MustParseExact(tt.d, tt.dp), MustParseExact(tt.e, tt.ep)
		if got := d.Cmp(e); got != tt.want {
			t.Errorf("%q.Cmp(%q) = %v, want %v", d, e, got, tt.want)
		}
	}
	if got := MustParse("-3").CmpAbs(MustParse("2")); got != 1 {
		t.Errorf("-3.CmpAbs(2) = %v, want 1", got)
	}
}

func TestDecimal_Sign(t *testing.T) {
	tests := []struct {
		d                   string
		sign                int
		isPos, isNeg, isZer bool
	}{
		{"-1", -1, false, true, false},
		{"0", 0, false, false, true},
		{"1e-50", 1, true, false, false},
	}
	for _, tt := range tests {
		d := MustParse(tt.d)
		if d.Sign() != tt.sign || d.IsPos() != tt.isPos || d.IsNeg() != tt.isNeg || d.IsZero() != tt.isZer {
			t.Errorf("sign predicates of %q = (%v, %v, %v, %v)", d, d.Sign(), d.IsPos(), d.IsNeg(), d.IsZero())
		}
	}
	if got := MustParse("-1.5").Abs(); got.String() != "1.5" {
		t.Errorf("-1.5.Abs() = %q", got)
	}
	if got := MustParse("1.5").Neg(); got.String() != "-1.5" {
		t.Errorf("1.5.Neg() = %q", got)
	}
}

func TestDecimal_Float64(t *testing.T) {
	f, ok := MustParse("-1.25").Float64()
	if !ok || f != -1.25 {
		t.Errorf("-1.25.Float64() = (%v, %v), want (-1.25, true)", f, ok)
	}
}

func TestDecimal_Immutable(t *testing.T) {
	d := MustParse("2")
	e := MustParse("3")
	_ = d.Add(e)
	_ = d.Mul(e)
	_ = d.Sub(e)
	_, _ = d.Quo(e)
	_ = d.Neg()
	_ = d.Trunc(3)
	if d.String() != "2" || e.String() != "3" {
		t.Errorf("operands changed: %v, %v", d, e)
	}
}

// apdTrunc computes d op e with apd, truncating the result to prec digits
// after the decimal point.
func apdTrunc(t *testing.T, op string, d, e string, prec int) Decimal {
	t.Helper()
	ctx := apd.BaseContext.WithPrecision(200)
	ctx.Rounding = apd.RoundDown
	x, _, err := apd.NewFromString(d)
	if err != nil {
		t.Fatalf("apd.NewFromString(%q) failed: %v", d, err)
	}
	y, _, err := apd.NewFromString(e)
	if err != nil {
		t.Fatalf("apd.NewFromString(%q) failed: %v", e, err)
	}
	z := new(apd.Decimal)
	switch op {
	case "*":
		_, err = ctx.Mul(z, x, y)
	case "/":
		_, err = ctx.Quo(z, x, y)
	}
	if err != nil {
		t.Fatalf("apd %v %v %v failed: %v", d, op, e, err)
	}
	_, err = ctx.Quantize(z, z, -int32(prec))
	if err != nil {
		t.Fatalf("apd quantize %v failed: %v", z, err)
	}
	return MustParseExact(z.String(), prec)
}

func TestDecimal_TruncationOracle(t *testing.T) {
	tests := []struct {
		d, e string
		prec int
	}{
		{"0.1", "0.1", 1},
		{"1.23456789", "9.87654321", 8},
		{"-3.14159265358979", "2.71828182845904", 14},
		{"123456789.123456789", "0.000000001", 9},
		{"0.999999", "0.999999", 6},
		{"-7", "3", 12},
		{"22", "7", 20},
		{"1", "0.0003", 4},
	}
	for _, tt := range tests {
		d, e := MustParseExact(tt.d, tt.prec), MustParseExact(tt.e, tt.prec)

		got := d.Mul(e)
		want := apdTrunc(t, "*", tt.d, tt.e, tt.prec)
		if !got.Equal(want) {
			t.Errorf("%q.Mul(%q) = %q, want %q", d, e, got, want)
		}

		got, err := d.Quo(e)
		if err != nil {
			t.Errorf("%q.Quo(%q) failed: %v", d, e, err)
			continue
		}
		want = apdTrunc(t, "/", tt.d, tt.e, tt.prec)
		if !got.Equal(want) {
			t.Errorf("%q.Quo(%q) = %q, want %q", d, e, got, want)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"0", "-1.5", ".5", "1e3", "9e-8", "123.456e-2", "1.2.3", "1e2e3"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseExact(s, 20)
		if err != nil {
			t.Skip()
		}
		// Rendering is canonical and parses back to the same value.
		e, err := ParseExact(d.String(), 20)
		if err != nil {
			t.Errorf("ParseExact(%q) failed: %v", d, err)
			return
		}
		if !d.Equal(e) || d.String() != e.String() {
			t.Errorf("ParseExact(%q.String()) = %q, want %q", d, e, d)
		}
	})
}

func FuzzDecimal_AddSub(f *testing.F) {
	f.Add(int64(1), 0, int64(-15), 1)
	f.Add(int64(123456), 5, int64(7), 2)
	f.Fuzz(func(t *testing.T, c1 int64, p1 int, c2 int64, p2 int) {
		if p1 < 0 || p1 > 60 || p2 < 0 || p2 > 60 {
			t.Skip()
		}
		d, e := New(c1, p1), New(c2, p2)
		got := d.Add(e).Sub(e)
		if !got.Equal(d) {
			t.Errorf("%q + %q - %q = %q, want %q", d, e, e, got, d)
		}
	})
}
