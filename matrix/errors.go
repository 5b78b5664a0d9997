// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." for consistency. Callers match
// with errors.Is; context is added with fmt.Errorf("ctx: %w", ErrX) at the
// boundary where coordinates or indices are known.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (negative
	// dimensions, or a zero-sized Dense).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row, column or batch element)
	// is outside valid bounds. Public indexers MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates inconsistent dimensions: ragged rows,
	// batch elements of different shape, or a flat buffer whose length is
	// not B*R*C.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaN signals a NaN cost while the NaN validation policy is enabled.
	ErrNaN = errors.New("matrix: NaN encountered")

	// ErrNilMatrix indicates that a nil matrix or batch was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
