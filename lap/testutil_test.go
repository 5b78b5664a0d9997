package lap_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/batchlap/matrix"
)

var inf = math.Inf(1)

// viewOf builds a standalone CostView from nested rows.
func viewOf(t testing.TB, rows [][]float64, opts ...matrix.Option) matrix.CostView {
	t.Helper()
	bt, err := matrix.StackBatch([][][]float64{rows}, opts...)
	require.NoError(t, err)
	v, err := bt.Element(0)
	require.NoError(t, err)

	return v
}

// flatView builds an r×c view from a row-major slice (r or c may be zero).
func flatView(t testing.TB, r, c int, data []float64, opts ...matrix.Option) matrix.CostView {
	t.Helper()
	bt, err := matrix.NewBatch(1, r, c, data, opts...)
	require.NoError(t, err)
	v, err := bt.Element(0)
	require.NoError(t, err)

	return v
}

// bruteForce enumerates every injection of the shorter side into the longer
// side and returns the optimal total (raw cost) and whether any complete
// injection avoids forbidden pairs.
func bruteForce(v matrix.CostView, maximize bool) (float64, bool) {
	if v.Rows() > v.Cols() {
		v = v.T()
	}
	var (
		r, c  = v.Rows(), v.Cols()
		used  = make([]bool, c)
		best  = math.Inf(1)
		found bool
		rec   func(i int, acc float64)
	)
	if maximize {
		best = math.Inf(-1)
	}
	rec = func(i int, acc float64) {
		if i == r {
			if !found || (maximize && acc > best) || (!maximize && acc < best) {
				best = acc
			}
			found = true

			return
		}
		for j := 0; j < c; j++ {
			if used[j] || v.Forbidden(i, j) {
				continue
			}
			used[j] = true
			rec(i+1, acc+v.Value(i, j))
			used[j] = false
		}
	}
	rec(0, 0)

	return best, found
}
