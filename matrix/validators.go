// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Canonical validation checks for hazard tables and other row-stochastic data.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    add their own context and still match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing beyond the error.

package matrix

import (
	"fmt"
	"math"
)

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateNonNegative reports the first negative entry in row-major order.
// Complexity: O(r*c).
func ValidateNonNegative(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if m.at(i, j) < 0 || math.IsNaN(m.at(i, j)) {
				return fmt.Errorf("ValidateNonNegative: (%d,%d)=%g: %w", i, j, m.at(i, j), ErrNegative)
			}
		}
	}

	return nil
}

// RowSum returns the sum of row i.
// Complexity: O(c).
func RowSum(m *Dense, i int) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	if i < 0 || i >= m.r {
		return 0, denseErrorf("RowSum", i, 0, ErrOutOfRange)
	}
	var (
		j   int
		sum float64
	)
	for j = 0; j < m.c; j++ {
		sum += m.at(i, j)
	}

	return sum, nil
}

// OffDiagonalRowSum returns Σ_{j≠i} m[i][j] for a square matrix.
// Complexity: O(c).
func OffDiagonalRowSum(m *Dense, i int) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, err
	}
	if i < 0 || i >= m.r {
		return 0, denseErrorf("OffDiagonalRowSum", i, i, ErrOutOfRange)
	}
	var (
		j   int
		sum float64
	)
	for j = 0; j < m.c; j++ {
		if j != i {
			sum += m.at(i, j)
		}
	}

	return sum, nil
}

// ValidateRowSums checks |Σ_j m[i][j] − want| <= tol for every row i.
// The first offending row is reported in the wrapped ErrRowSum.
// Complexity: O(r*c).
func ValidateRowSums(m *Dense, want, tol float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var (
		i   int
		sum float64
	)
	for i = 0; i < m.r; i++ {
		sum, _ = RowSum(m, i)
		if math.Abs(sum-want) > tol {
			return fmt.Errorf("ValidateRowSums: row %d sums to %.12g, want %g±%g: %w",
				i, sum, want, tol, ErrRowSum)
		}
	}

	return nil
}
