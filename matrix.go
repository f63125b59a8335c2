package fixed

import (
	"errors"
	"fmt"
)

var ErrNotSquare = errors.New("matrix is not square")

// Det returns the determinant of a square matrix computed by Laplace
// expansion along the first row:
//
//	det(M) = Σ (-1)^j * M[0][j] * det(minor(M, 0, j))
//
// All products are truncated as in [Decimal.Mul].
// The expansion takes O(n!) operations, which is acceptable for the small
// systems solved by Newton iteration but not for large matrices.
//
// Det returns [ErrNotSquare] if the matrix is empty or any row length
// differs from the number of rows.
func Det(m [][]Decimal) (Decimal, error) {
	n := len(m)
	if n == 0 {
		return Decimal{}, fmt.Errorf("empty matrix: %w", ErrNotSquare)
	}
	for i := range m {
		if len(m[i]) != n {
			return Decimal{}, fmt.Errorf("row %v has %v columns, want %v: %w", i, len(m[i]), n, ErrNotSquare)
		}
	}
	return det(m), nil
}

// det assumes that m is square and not empty.
func det(m [][]Decimal) Decimal {
	switch len(m) {
	case 1:
		return m[0][0]
	case 2:
		return m[0][0].Mul(m[1][1]).Sub(m[0][1].Mul(m[1][0]))
	}
	var sum Decimal
	for j := range m[0] {
		term := m[0][j].Mul(det(minor(m, 0, j)))
		if j%2 == 0 {
			sum = sum.Add(term)
		} else {
			sum = sum.Sub(term)
		}
	}
	return sum
}

// minor returns m without row r and column c.
// Entries are shared with m, which is safe since decimals are immutable.
func minor(m [][]Decimal, r, c int) [][]Decimal {
	res := make([][]Decimal, 0, len(m)-1)
	for i := range m {
		if i == r {
			continue
		}
		row := make([]Decimal, 0, len(m[i])-1)
		row = append(row, m[i][:c]...)
		row = append(row, m[i][c+1:]...)
		res = append(res, row)
	}
	return res
}

// ReplaceColumn returns a copy of m with column k replaced by v,
// as used by Cramer's rule.
//
// ReplaceColumn panics if len(v) != len(m) or k is out of range for any row.
func ReplaceColumn(m [][]Decimal, k int, v []Decimal) [][]Decimal {
	if len(v) != len(m) {
		panic(fmt.Sprintf("ReplaceColumn: column has %v entries, matrix has %v rows", len(v), len(m)))
	}
	res := make([][]Decimal, len(m))
	for i := range m {
		res[i] = append([]Decimal(nil), m[i]...)
		res[i][k] = v[i]
	}
	return res
}
