/*
Package fixed implements immutable fixed-point decimal numbers of arbitrary
size, forward-mode automatic differentiation over them, and a determinant
routine used to solve small linear systems by Cramer's rule.
It is designed for iterative numeric methods, such as Newton-Raphson, where
binary floating-point rounding errors would accumulate.

# Representation

[Decimal] is a struct with two fields:

  - Magnitude: an arbitrary-precision signed integer representing the numeric
    value of the decimal without the decimal point.
  - Precision: a non-negative integer indicating how many digits after the
    decimal point are represented.
    For example, a decimal with a magnitude of 12345 and a precision of 2
    represents the value 123.45.

The numerical value of a decimal is calculated as:

  - Magnitude / 10^Precision.

Unlike floating-point decimals, the precision does not move: it is fixed when
a decimal is parsed or constructed, and results of arithmetic operations get a
precision derived from the precisions of their operands.
[Parse] uses [DefaultPrec] (50) digits after the decimal point.

# Operations

Before combining magnitudes, each arithmetic operation reconciles precisions:

  - [Decimal.Add], [Decimal.Sub]:
    the operand with fewer fractional digits is rescaled upwards,
    the result has the larger of the two precisions.
  - [Decimal.Mul]:
    the exact product is computed with the sum of the precisions and then
    truncated to the larger of the two precisions.
  - [Decimal.Quo]:
    the dividend is shifted left by the precision of the divisor and
    divided as an integer, the result has the precision of the dividend.

# Truncation

Digits that do not fit into the result precision are discarded, that is the
result is rounded towards zero.
There is no rounding to nearest anywhere in this package.
Since every [Decimal.Quo] truncates, loss of precision compounds over long
chains of divisions, so callers should parse inputs with a few guard digits
more than they need in the output.

# Differentiation

[Dual] carries a value together with its derivative with respect to one
variable.
Residual functions of type [Func] are written with [Dual] operations only,
and the same function yields either a plain value ([Eval]) or a partial
derivative ([Partial]) depending on which arguments are tracked.
There is no expression tree and no shared state.

# Errors

Errors are returned in the following cases:

  - Invalid Decimal.
    [Parse] and [ParseExact] return [ErrInvalidDecimal] for malformed input,
    including input with more than one decimal point or exponent.

  - Division by Zero.
    [Decimal.Quo] and [Dual.Quo] return [ErrDivisionByZero].

  - Not Square.
    [Det] returns [ErrNotSquare] for empty or non-square matrices.

Overflow cannot happen, as magnitudes grow as needed.
*/
package fixed
