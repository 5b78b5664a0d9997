// SPDX-License-Identifier: MIT

// Package matrix - Batch: B stacked cost matrices sharing one (R, C) shape.
//
// Layout:
//   - One flat row-major buffer of length B*R*C; element k occupies
//     data[k*R*C : (k+1)*R*C] and cell (k,i,j) lives at k*R*C + i*C + j.
//   - This is the logical (B, R, C) layout of a contiguous host tensor, so
//     callers can hand over their buffer without reshaping.
//
// Ownership:
//   - NewBatch copies the caller's buffer; a Batch is immutable afterwards.
//     Element views alias the internal buffer and expose no mutators, which is
//     what makes concurrent read-only access from many solvers race-free.
package matrix

import (
	"fmt"
	"math"
)

// batchErrorf attaches an element index to a sentinel.
func batchErrorf(element int, err error) error {
	return fmt.Errorf("%s[%d]: %w", ctxBatch, element, err)
}

// Batch is an immutable stack of B dense R×C cost matrices.
type Batch struct {
	b, r, c int
	data    []float64
	opts    Options
}

// NewBatch builds a batch from a flat row-major buffer of length b*r*c.
// The buffer is copied.
//
// Implementation:
//   - Stage 1: validate b,r,c ≥ 0 (ErrBadShape) and len(data)==b*r*c (ErrDimensionMismatch).
//   - Stage 2: copy data, enforcing the NaN policy.
//
// Notes:
//   - b==0 is a legal empty batch; r==0 or c==0 yields elements with nothing
//     to match (every solve is trivially complete).
//
// Complexity:
//   - Time O(b*r*c), Space O(b*r*c).
func NewBatch(b, r, c int, data []float64, opts ...Option) (*Batch, error) {
	if b < 0 || r < 0 || c < 0 {
		return nil, ErrBadShape
	}
	if len(data) != b*r*c {
		return nil, fmt.Errorf("%s: len(data)=%d, want %d*%d*%d: %w", ctxBatch, len(data), b, r, c, ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	if o.validateNaN {
		if err := scanNaN(data, r*c); err != nil {
			return nil, err
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Batch{b: b, r: r, c: c, data: buf, opts: o}, nil
}

// NewBatchFromFloat32 widens a single-precision (B, R, C) buffer.
// Same contract as NewBatch; ±Inf survives the conversion unchanged.
func NewBatchFromFloat32(b, r, c int, data []float32, opts ...Option) (*Batch, error) {
	if b < 0 || r < 0 || c < 0 {
		return nil, ErrBadShape
	}
	if len(data) != b*r*c {
		return nil, fmt.Errorf("%s: len(data)=%d, want %d*%d*%d: %w", ctxBatch, len(data), b, r, c, ErrDimensionMismatch)
	}
	wide := make([]float64, len(data))
	for i, v := range data {
		wide[i] = float64(v)
	}
	o := gatherOptions(opts...)
	if o.validateNaN {
		if err := scanNaN(wide, r*c); err != nil {
			return nil, err
		}
	}

	return &Batch{b: b, r: r, c: c, data: wide, opts: o}, nil
}

// StackBatch stacks nested [][]float64 matrices into one batch.
// Every element must be rectangular and share the shape of the first one.
//
// Errors:
//   - ErrBadShape when ms is empty.
//   - ErrDimensionMismatch (wrapped with the element index) on ragged rows
//     or inconsistent shapes across elements.
func StackBatch(ms [][][]float64, opts ...Option) (*Batch, error) {
	if len(ms) == 0 {
		return nil, ErrBadShape
	}
	r := len(ms[0])
	c := 0
	if r > 0 {
		c = len(ms[0][0])
	}
	data := make([]float64, 0, len(ms)*r*c)
	var k, i int
	for k = 0; k < len(ms); k++ {
		if len(ms[k]) != r {
			return nil, batchErrorf(k, ErrDimensionMismatch)
		}
		for i = 0; i < r; i++ {
			if len(ms[k][i]) != c {
				return nil, batchErrorf(k, ErrDimensionMismatch)
			}
			data = append(data, ms[k][i]...)
		}
	}

	return NewBatch(len(ms), r, c, data, opts...)
}

// BatchFromMatrices stacks Reader values (Dense, CostView, ...) into a batch.
// All readers must share the same shape.
func BatchFromMatrices(ms []Reader, opts ...Option) (*Batch, error) {
	if len(ms) == 0 {
		return nil, ErrBadShape
	}
	if err := ValidateNotNil(ms[0]); err != nil {
		return nil, batchErrorf(0, err)
	}
	r, c := ms[0].Rows(), ms[0].Cols()
	data := make([]float64, len(ms)*r*c)
	var (
		k, i, j int
		v       float64
		err     error
	)
	for k = 0; k < len(ms); k++ {
		if err = ValidateNotNil(ms[k]); err != nil {
			return nil, batchErrorf(k, err)
		}
		if err = ValidateSameShape(ms[0], ms[k]); err != nil {
			return nil, batchErrorf(k, err)
		}
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = ms[k].At(i, j); err != nil {
					return nil, batchErrorf(k, err)
				}
				data[k*r*c+i*c+j] = v
			}
		}
	}

	return NewBatch(len(ms), r, c, data, opts...)
}

// Len returns the number of batch elements B.
func (bt *Batch) Len() int { return bt.b }

// Rows returns R, the row count shared by every element.
func (bt *Batch) Rows() int { return bt.r }

// Cols returns C, the column count shared by every element.
func (bt *Batch) Cols() int { return bt.c }

// Shape returns (B, R, C).
func (bt *Batch) Shape() (b, r, c int) { return bt.b, bt.r, bt.c }

// Options returns the numeric policy the batch was built with.
func (bt *Batch) Options() Options { return bt.opts }

// Element returns a read-only view of element k.
//
// Errors:
//   - ErrNilMatrix on a nil batch; ErrOutOfRange when k ∉ [0, B).
//
// Complexity: O(1), no copy.
func (bt *Batch) Element(k int) (CostView, error) {
	if bt == nil {
		return CostView{}, ErrNilMatrix
	}
	if k < 0 || k >= bt.b {
		return CostView{}, batchErrorf(k, ErrOutOfRange)
	}
	size := bt.r * bt.c

	return CostView{
		index:     k,
		r:         bt.r,
		c:         bt.c,
		data:      bt.data[k*size : (k+1)*size : (k+1)*size],
		threshold: bt.opts.forbiddenThreshold,
	}, nil
}

// scanNaN returns ErrNaN wrapped with the offending element index.
func scanNaN(data []float64, size int) error {
	for off, v := range data {
		if math.IsNaN(v) {
			return batchErrorf(off/max(size, 1), ErrNaN)
		}
	}

	return nil
}
