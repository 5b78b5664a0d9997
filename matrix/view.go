// SPDX-License-Identifier: MIT

// Package matrix - CostView: read-only window onto one batch element.
//
// A CostView is a small value (slice header + dims) that can be copied freely
// between goroutines. It never mutates its backing storage. T() returns the
// transposed view without copying; solvers use it to always work with
// Rows() ≤ Cols().
package matrix

import "fmt"

// CostView is a read-only R×C view of one cost matrix.
type CostView struct {
	index      int       // batch element index (0 for standalone views)
	r, c       int       // stored (untransposed) dimensions
	data       []float64 // row-major r*c slice of the batch buffer
	transposed bool      // logical view is c×r when true
	threshold  float64   // forbidden-pair threshold (|v| ≥ threshold)
}

var _ Reader = CostView{}

// NewView materialises a standalone view from any Reader (copying its values).
// The view's Index() is 0.
func NewView(m Reader, opts ...Option) (CostView, error) {
	if m == nil {
		return CostView{}, ErrNilMatrix
	}
	bt, err := BatchFromMatrices([]Reader{m}, opts...)
	if err != nil {
		return CostView{}, err
	}

	return bt.Element(0)
}

// Index returns the batch element this view refers to.
func (v CostView) Index() int { return v.index }

// Rows returns the logical row count.
func (v CostView) Rows() int {
	if v.transposed {
		return v.c
	}

	return v.r
}

// Cols returns the logical column count.
func (v CostView) Cols() int {
	if v.transposed {
		return v.r
	}

	return v.c
}

// Transposed reports whether the view is the transpose of the stored element.
func (v CostView) Transposed() bool { return v.transposed }

// T returns the transposed view. O(1), no copy.
func (v CostView) T() CostView {
	v.transposed = !v.transposed

	return v
}

// Value returns the raw cost at logical (i, j) without bounds checks.
// Hot loops use it after validating dimensions once; out-of-range indices panic
// like any slice access.
func (v CostView) Value(i, j int) float64 {
	if v.transposed {
		return v.data[j*v.c+i]
	}

	return v.data[i*v.c+j]
}

// At returns the raw cost at logical (i, j) or ErrOutOfRange.
func (v CostView) At(i, j int) (float64, error) {
	if i < 0 || i >= v.Rows() || j < 0 || j >= v.Cols() {
		return 0, fmt.Errorf("CostView[%d].At(%d,%d): %w", v.index, i, j, ErrOutOfRange)
	}

	return v.Value(i, j), nil
}

// Forbidden reports whether pair (i, j) is forbidden (±Inf, NaN under the
// relaxed policy, or |v| ≥ the forbidden threshold). No bounds checks.
func (v CostView) Forbidden(i, j int) bool {
	return isForbidden(v.Value(i, j), v.threshold)
}

// IsForbiddenValue applies the view's forbidden rule to an arbitrary value.
func (v CostView) IsForbiddenValue(x float64) bool {
	return isForbidden(x, v.threshold)
}

// Threshold returns the forbidden-pair threshold in effect for this view.
func (v CostView) Threshold() float64 { return v.threshold }
