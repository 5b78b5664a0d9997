// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/batchlap/matrix"
)

func TestRandomBatch_Deterministic(t *testing.T) {
	cfg := matrix.RandomConfig{Seed: 99, Low: -5, High: 5}
	a, err := matrix.RandomBatch(3, 4, 5, cfg)
	require.NoError(t, err)
	b, err := matrix.RandomBatch(3, 4, 5, cfg)
	require.NoError(t, err)

	for k := 0; k < 3; k++ {
		va, _ := a.Element(k)
		vb, _ := b.Element(k)
		for i := 0; i < 4; i++ {
			for j := 0; j < 5; j++ {
				require.Equal(t, va.Value(i, j), vb.Value(i, j))
				require.GreaterOrEqual(t, va.Value(i, j), -5.0)
				require.Less(t, va.Value(i, j), 5.0)
			}
		}
	}
}

// TestRandomBatch_PrefixStable: growing B keeps earlier elements unchanged.
func TestRandomBatch_PrefixStable(t *testing.T) {
	cfg := matrix.RandomConfig{Seed: 5, High: 100, Integer: true}
	small, _ := matrix.RandomBatch(2, 3, 3, cfg)
	large, _ := matrix.RandomBatch(6, 3, 3, cfg)
	for k := 0; k < 2; k++ {
		vs, _ := small.Element(k)
		vl, _ := large.Element(k)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, vs.Value(i, j), vl.Value(i, j))
				assert.Equal(t, math.Floor(vs.Value(i, j)), vs.Value(i, j))
			}
		}
	}
}

// TestRandomBatch_ForbiddenDensity keeps the finite values of a seed
// identical with and without forbidden cells.
func TestRandomBatch_ForbiddenDensity(t *testing.T) {
	plain, _ := matrix.RandomBatch(1, 10, 10, matrix.RandomConfig{Seed: 8})
	holes, _ := matrix.RandomBatch(1, 10, 10, matrix.RandomConfig{Seed: 8, ForbiddenDensity: 0.3})
	vp, _ := plain.Element(0)
	vh, _ := holes.Element(0)

	n := matrix.CountForbidden(vh)
	assert.Greater(t, n, 0)
	assert.Less(t, n, 100)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			if !vh.Forbidden(i, j) {
				assert.Equal(t, vp.Value(i, j), vh.Value(i, j))
			}
		}
	}

	all, _ := matrix.RandomBatch(1, 2, 2, matrix.RandomConfig{ForbiddenDensity: 1})
	va, _ := all.Element(0)
	assert.Equal(t, 4, matrix.CountForbidden(va))
}

func TestRandomBatch_BadConfig(t *testing.T) {
	for _, cfg := range []matrix.RandomConfig{
		{Low: 3, High: 1},
		{Low: math.Inf(-1), High: 1},
		{ForbiddenDensity: 1.5},
		{ForbiddenDensity: math.NaN()},
	} {
		_, err := matrix.RandomBatch(1, 2, 2, cfg)
		assert.ErrorIs(t, err, matrix.ErrBadShape, "%+v", cfg)
	}
	_, err := matrix.RandomBatch(-1, 2, 2, matrix.RandomConfig{})
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}
