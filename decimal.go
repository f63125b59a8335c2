package fixed

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Decimal type is a representation of a fixed-point decimal number.
// The zero value is the numeric value of 0 with no digits after the decimal point.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A decimal type is a struct with two parameters:
//
//   - Magnitude: an arbitrary-precision signed integer equal to the value
//     multiplied by 10^Precision.
//   - Precision: a non-negative integer indicating how many digits after
//     the decimal point are represented.
//
// For example, a decimal with a magnitude of 12345 and a precision of 2
// represents the value 123.45.
// The precision is fixed at construction, and the result of an arithmetic
// operation has a precision derived from the precisions of its operands.
// Digits that do not fit into that precision are truncated, never rounded.
type Decimal struct {
	mag  *bint // the value multiplied by 10^prec, nil means 0
	prec int   // number of digits after the decimal point
}

const (
	DefaultPrec = 50     // number of digits after the decimal point used by [Parse]
	maxExponent = 10_000 // maximum absolute value of the exponent accepted by [Parse]
)

var (
	ErrInvalidDecimal = errors.New("invalid decimal")
	ErrPrecRange      = errors.New("precision out of range")
	ErrDivisionByZero = errors.New("division by zero")
)

// newDecimal takes ownership of mag.
func newDecimal(mag *bint, prec int) Decimal {
	if mag.sign() == 0 {
		return Decimal{prec: prec}
	}
	return Decimal{mag: mag, prec: prec}
}

// magnitude returns the magnitude of d.
// The result must not be modified.
func (d Decimal) magnitude() *bint {
	if d.mag == nil {
		return bzero
	}
	return d.mag
}

// rescaled returns a new magnitude of d expressed with prec digits after
// the decimal point, truncating excess digits.
func (d Decimal) rescaled(prec int) *bint {
	z := new(bint)
	switch {
	case prec > d.prec:
		z.lsh(d.magnitude(), prec-d.prec)
	case prec < d.prec:
		z.rshDown(d.magnitude(), d.prec-prec)
	default:
		z.setBint(d.magnitude())
	}
	return z
}

// New returns a decimal equal to coef / 10^prec.
// New panics if prec is negative.
func New(coef int64, prec int) Decimal {
	if prec < 0 {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", coef, prec, ErrPrecRange))
	}
	z := new(bint)
	z.setInt64(coef)
	return newDecimal(z, prec)
}

// NewFromBigInt returns a decimal equal to mag / 10^prec.
// The magnitude is copied, later changes to mag do not affect the decimal.
// NewFromBigInt panics if prec is negative.
func NewFromBigInt(mag *big.Int, prec int) Decimal {
	if prec < 0 {
		panic(fmt.Sprintf("NewFromBigInt(%v, %v) failed: %v", mag, prec, ErrPrecRange))
	}
	z := new(bint)
	if mag != nil {
		z.setBint((*bint)(mag))
	}
	return newDecimal(z, prec)
}

// Zero returns decimal with a value 0 but the same precision as d.
func (d Decimal) Zero() Decimal {
	return Decimal{prec: d.prec}
}

// One returns decimal with a value 1 but the same precision as d.
func (d Decimal) One() Decimal {
	z := new(bint)
	z.pow10(d.prec)
	return newDecimal(z, d.prec)
}

// ULP (Unit in the Last Place) returns the smallest representable positive
// decimal with the same precision as d.
func (d Decimal) ULP() Decimal {
	return New(1, d.prec)
}

// Parse converts a string to a decimal with [DefaultPrec] digits after
// the decimal point.
// See [ParseExact] for the accepted format.
func Parse(s string) (Decimal, error) {
	return ParseExact(s, DefaultPrec)
}

// ParseExact converts a string to a decimal with prec digits after
// the decimal point.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1.83e5
//	0.22e-9
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	exponent       ::= ('e' | 'E') [sign] digits
//	numeric-string ::= [sign] significand [exponent]
//
// An empty string is parsed as 0.
// Fractional digits beyond prec are truncated, shorter fractions are padded
// with zeros.
// The exponent is applied afterwards by shifting the magnitude, so a negative
// exponent truncates digits a second time.
//
// ParseExact returns error:
//   - if prec is negative.
//   - if string does not represent a valid decimal number,
//     for example when it contains more than one decimal point or exponent.
//   - if the absolute value of the exponent is greater than 10000.
func ParseExact(s string, prec int) (Decimal, error) {
	if prec < 0 {
		return Decimal{}, ErrPrecRange
	}
	if s == "" {
		return Decimal{prec: prec}, nil
	}
	if strings.Count(s, ".") > 1 {
		return Decimal{}, fmt.Errorf("more than one decimal point: %w", ErrInvalidDecimal)
	}
	if strings.Count(s, "e")+strings.Count(s, "E") > 1 {
		return Decimal{}, fmt.Errorf("more than one exponent: %w", ErrInvalidDecimal)
	}

	var (
		pos     int
		width   int
		neg     bool
		whole   string
		frac    string
		hascoef bool
		eneg    bool
		exp     int
		hasexp  bool
		hasesym bool
	)

	width = len(s)

	// Sign
	switch {
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	start := pos
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		pos++
	}
	whole = s[start:pos]

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		start = pos
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			pos++
		}
		frac = s[start:pos]
	}

	// Exponential part
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hasesym = true
		pos++
		// Sign
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		// Integer
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			exp = exp*10 + int(s[pos]-'0')
			if exp > maxExponent {
				return Decimal{}, fmt.Errorf("exponent out of range: %w", ErrInvalidDecimal)
			}
			hasexp = true
			pos++
		}
	}

	if pos != width {
		return Decimal{}, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidDecimal)
	}
	if !hascoef {
		return Decimal{}, fmt.Errorf("no coefficient: %w", ErrInvalidDecimal)
	}
	if hasesym && !hasexp {
		return Decimal{}, fmt.Errorf("no exponent: %w", ErrInvalidDecimal)
	}

	// Truncation and padding of the fraction
	if len(frac) > prec {
		frac = frac[:prec]
	}
	digits := whole + frac + strings.Repeat("0", prec-len(frac))

	mag := new(bint)
	if digits != "" && !mag.setDigits(digits) {
		return Decimal{}, fmt.Errorf("invalid digits %q: %w", digits, ErrInvalidDecimal)
	}
	if neg {
		mag.neg(mag)
	}
	if eneg {
		mag.rshDown(mag, exp)
	} else {
		mag.lsh(mag, exp)
	}
	return newDecimal(mag, prec), nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// MustParseExact is like [ParseExact] but panics if the string cannot be parsed.
func MustParseExact(s string, prec int) Decimal {
	d, err := ParseExact(s, prec)
	if err != nil {
		panic(fmt.Sprintf("MustParseExact(%q, %v) failed: %v", s, prec, err))
	}
	return d
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of a decimal value.
// Trailing zeros of the fractional part are removed, as is the decimal point
// when nothing follows it, so the result does not reveal the precision:
// 1.250 with any precision is rendered as "1.25", and zero as "0".
// The returned string does not use scientific notation and is
// formatted according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	mag := d.magnitude()
	if mag.sign() == 0 {
		return "0"
	}

	abs := getBint()
	defer putBint(abs)
	abs.abs(mag)
	digits := abs.string()

	// Leading zeros of the fraction
	if len(digits) < d.prec {
		digits = strings.Repeat("0", d.prec-len(digits)) + digits
	}
	whole := digits[:len(digits)-d.prec]
	frac := strings.TrimRight(digits[len(digits)-d.prec:], "0")
	if whole == "" {
		whole = "0"
	}

	var b strings.Builder
	b.Grow(len(digits) + 3)
	if mag.sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(whole)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see method [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Decimal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: -123.456
//	%q:    "-123.456"
//
// The '+' flag forces a sign, the '-' flag pads with spaces on the right,
// the width is honored for all verbs.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d Decimal) Format(state fmt.State, verb rune) {
	s := d.String()
	if state.Flag('+') && d.Sign() >= 0 {
		s = "+" + s
	}
	switch verb {
	case 's', 'S', 'v', 'V':
		// as is
	case 'q', 'Q':
		s = strconv.Quote(s)
	default:
		s = "%!" + string(verb) + "(fixed.Decimal=" + s + ")"
	}
	if w, ok := state.Width(); ok && w > len(s) {
		pad := strings.Repeat(" ", w-len(s))
		if state.Flag('-') {
			s = s + pad
		} else {
			s = pad + s
		}
	}
	fmt.Fprint(state, s)
}

// Prec returns number of digits after the decimal point.
func (d Decimal) Prec() int {
	return d.prec
}

// Mag returns a copy of the magnitude of d, that is d * 10^Prec.
func (d Decimal) Mag() *big.Int {
	return new(big.Int).Set((*big.Int)(d.magnitude()))
}

// Float64 returns the nearest binary floating-point number rounded
// using [half to even] rule.
// ok is false if the value does not fit into float64.
//
// [half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (d Decimal) Float64() (f float64, ok bool) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Trunc returns d with the specified number of digits after the decimal point.
// Excess digits are discarded, missing digits are zero-padded on the right.
//
// Trunc panics if prec is negative.
func (d Decimal) Trunc(prec int) Decimal {
	if prec < 0 {
		panic(fmt.Sprintf("%q.Trunc(%v) failed: %v", d, prec, ErrPrecRange))
	}
	return newDecimal(d.rescaled(prec), prec)
}

// Neg returns d with opposite sign.
func (d Decimal) Neg() Decimal {
	z := new(bint)
	z.neg(d.magnitude())
	return newDecimal(z, d.prec)
}

// Abs returns absolute value of d.
func (d Decimal) Abs() Decimal {
	z := new(bint)
	z.abs(d.magnitude())
	return newDecimal(z, d.prec)
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Decimal) Sign() int {
	return d.magnitude().sign()
}

// IsPos returns true if d > 0.
func (d Decimal) IsPos() bool {
	return d.Sign() > 0
}

// IsNeg returns true if d < 0.
func (d Decimal) IsNeg() bool {
	return d.Sign() < 0
}

// IsZero returns true if d == 0.
func (d Decimal) IsZero() bool {
	return d.Sign() == 0
}

// Add returns the sum of d and e.
// The operand with fewer digits after the decimal point is rescaled to the
// precision of the other one, which is also the precision of the result.
func (d Decimal) Add(e Decimal) Decimal {
	prec := max(d.prec, e.prec)
	x, y := d.rescaled(prec), e.rescaled(prec)
	x.add(x, y)
	return newDecimal(x, prec)
}

// Sub returns the difference of d and e.
// The precision of the result is the same as in [Decimal.Add].
func (d Decimal) Sub(e Decimal) Decimal {
	prec := max(d.prec, e.prec)
	x, y := d.rescaled(prec), e.rescaled(prec)
	x.sub(x, y)
	return newDecimal(x, prec)
}

// Mul returns the (possibly truncated) product of d and e.
// The exact product is computed first and then truncated towards zero
// to the larger of the two precisions.
func (d Decimal) Mul(e Decimal) Decimal {
	prec := max(d.prec, e.prec)
	z := new(bint)
	z.mul(d.magnitude(), e.magnitude())
	z.rshDown(z, d.prec+e.prec-prec)
	return newDecimal(z, prec)
}

// Quo returns the (possibly truncated) quotient of d and e.
// The result has the same precision as d, excess digits are truncated
// towards zero.
//
// Quo returns an error if e is zero.
func (d Decimal) Quo(e Decimal) (Decimal, error) {
	if e.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	z := new(bint)
	z.lsh(d.magnitude(), e.prec)
	z.quo(z, e.magnitude())
	return newDecimal(z, d.prec), nil
}

// Pow returns d raised to a non-negative integer power, using repeated
// truncating multiplication.
// Pow panics if exp is negative.
func (d Decimal) Pow(exp int) Decimal {
	if exp < 0 {
		panic(fmt.Sprintf("%q.Pow(%v) failed: negative exponent", d, exp))
	}
	r := d.One()
	for i := 0; i < exp; i++ {
		r = r.Mul(d)
	}
	return r
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
func (d Decimal) Cmp(e Decimal) int {
	prec := max(d.prec, e.prec)
	return d.rescaled(prec).cmp(e.rescaled(prec))
}

// CmpAbs compares |d| and |e| numerically.
// The result is the same as in [Decimal.Cmp].
func (d Decimal) CmpAbs(e Decimal) int {
	prec := max(d.prec, e.prec)
	return d.rescaled(prec).cmpAbs(e.rescaled(prec))
}

// Equal returns true if d and e have the same value, regardless of
// their precisions.
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0
}
