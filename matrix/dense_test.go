// SPDX-License-Identifier: MIT
package matrix_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/batchlap/matrix"
)

// 1) TestNewDense_Shape rejects empty shapes and zero-fills valid ones.
func TestNewDense_Shape(t *testing.T) {
	if _, err := matrix.NewDense(0, 3); !errors.Is(err, matrix.ErrBadShape) {
		t.Fatalf("NewDense(0,3): got %v, want ErrBadShape", err)
	}
	m, err := matrix.NewDense(2, 3)
	if err != nil {
		t.Fatalf("NewDense(2,3): %v", err)
	}
	if r, c := m.Shape(); r != 2 || c != 3 {
		t.Fatalf("shape=(%d,%d), want (2,3)", r, c)
	}
	v, _ := m.At(1, 2)
	if v != 0 {
		t.Fatalf("At(1,2)=%v, want 0", v)
	}
}

// 2) TestDense_SetAt covers bounds, NaN policy and ±Inf acceptance.
func TestDense_SetAt(t *testing.T) {
	m, _ := matrix.NewDense(2, 2)
	if err := m.Set(0, 1, 7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := m.At(0, 1); v != 7 {
		t.Fatalf("At(0,1)=%v, want 7", v)
	}
	if _, err := m.At(2, 0); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("At(2,0): got %v, want ErrOutOfRange", err)
	}
	if err := m.Set(0, -1, 1); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("Set(0,-1): got %v, want ErrOutOfRange", err)
	}
	if err := m.Set(1, 1, math.NaN()); !errors.Is(err, matrix.ErrNaN) {
		t.Fatalf("Set NaN: got %v, want ErrNaN", err)
	}
	if err := m.Set(1, 1, math.Inf(1)); err != nil {
		t.Fatalf("Set +Inf must be accepted: %v", err)
	}

	relaxed, _ := matrix.NewDense(1, 1, matrix.WithNoValidateNaN())
	if err := relaxed.Set(0, 0, math.NaN()); err != nil {
		t.Fatalf("relaxed Set NaN: %v", err)
	}
}

// 3) TestNewDenseFrom_Ragged reports the ragged row.
func TestNewDenseFrom_Ragged(t *testing.T) {
	_, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	if !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
	if !strings.Contains(err.Error(), "NewDenseFrom(1,") {
		t.Fatalf("error %q lacks row context", err)
	}
	if _, err = matrix.NewDenseFrom(nil); !errors.Is(err, matrix.ErrBadShape) {
		t.Fatalf("nil input: got %v, want ErrBadShape", err)
	}
}

// 4) TestDense_CloneIndependent: mutating a clone leaves the source intact.
func TestDense_CloneIndependent(t *testing.T) {
	m, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	cp := m.Clone()
	_ = cp.Set(0, 0, 99)
	if v, _ := m.At(0, 0); v != 1 {
		t.Fatalf("source mutated through clone: %v", v)
	}
	if got := m.String(); got != "[1, 2]\n[3, 4]\n" {
		t.Fatalf("String()=%q", got)
	}
}
