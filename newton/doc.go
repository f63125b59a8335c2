/*
Package newton finds roots of systems of equations F(x) = 0 by Newton-Raphson
iteration over [fixed.Decimal] values.

Each iteration computes

	x_{k+1} = x_k - J(x_k)^-1 F(x_k)

where the Jacobian J is obtained by forward-mode differentiation of the
residual functions ([fixed.Partial]) and the linear step is solved by
Cramer's rule ([fixed.Det]) rather than by inverting J.
[Solve1D] and [Solve2D] are specializations of [Solve] that use f/f' and the
2×2 cross-product formula directly.

Iteration is local: there is no line search, no damping and no divergence
detection. It stops when the [Policy] reports two successive iterates equal,
or after the iteration cap (100 by default), in which case the last iterate
is returned without an error.
The default [StringPolicy] treats iterates as equal when their decimal
renderings are identical, so convergence is limited by the precision of the
initial values.
*/
package newton
