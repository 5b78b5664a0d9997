// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep solvers minimal by delegating nil/shape/finite checks here.
//  - Return sentinel errors wrapped with a validator tag so call sites can
//    still match them via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the reader reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Reader) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Reader) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBatch checks a batch before any solving starts: non-nil, a
// consistent buffer length, and no NaN under the batch's own policy.
// Batches built through the constructors always pass; the check guards
// zero-value or hand-assembled batches at the solver boundary.
//
// Complexity: O(B*R*C) when the NaN policy is on, O(1) otherwise.
func ValidateBatch(bt *Batch) error {
	if bt == nil {
		return validatorErrorf("ValidateBatch", ErrNilMatrix)
	}
	if bt.b < 0 || bt.r < 0 || bt.c < 0 {
		return validatorErrorf("ValidateBatch", ErrBadShape)
	}
	if len(bt.data) != bt.b*bt.r*bt.c {
		return validatorErrorf("ValidateBatch", ErrDimensionMismatch)
	}
	if bt.b > 0 && bt.opts.forbiddenThreshold <= 0 {
		return validatorErrorf("ValidateBatch", ErrBadShape)
	}
	if bt.opts.validateNaN {
		if err := scanNaN(bt.data, bt.r*bt.c); err != nil {
			return validatorErrorf("ValidateBatch", err)
		}
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []int, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// CountForbidden returns how many cells of v are forbidden.
// Complexity: O(R*C).
func CountForbidden(v CostView) int {
	var (
		n, i, j int
		rows    = v.Rows()
		cols    = v.Cols()
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v.Forbidden(i, j) {
				n++
			}
		}
	}

	return n
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
