package lap_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/batchlap/lap"
	"github.com/katalvlaran/batchlap/matrix"
)

// TestSolve_Square2x2 checks both objectives on the smallest non-trivial case.
func TestSolve_Square2x2(t *testing.T) {
	v := viewOf(t, [][]float64{{1, 2}, {2, 1}})

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.RowToCol)
	assert.Equal(t, []int{0, 1}, a.ColToRow)
	assert.Equal(t, 2.0, a.Cost)

	a, err = lap.Solve(v, lap.WithObjective(lap.Maximize))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, a.RowToCol)
	assert.Equal(t, 4.0, a.Cost, "cost is reported in the caller's units")
}

// TestSolve_Wide leaves the surplus column unmatched.
func TestSolve_Wide(t *testing.T) {
	v := viewOf(t, [][]float64{{1, 2, 3}, {4, 1, 2}})

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.RowToCol)
	assert.Equal(t, []int{0, 1, lap.Unmatched}, a.ColToRow)
	assert.Equal(t, 2.0, a.Cost)
	require.NoError(t, lap.CheckAssignment(v, a))
}

// TestSolve_Tall transposes internally and maps the result back.
func TestSolve_Tall(t *testing.T) {
	v := viewOf(t, [][]float64{{1, 4}, {2, 1}, {3, 2}})

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, lap.Unmatched}, a.RowToCol)
	assert.Equal(t, []int{0, 1}, a.ColToRow)
	assert.Equal(t, 2.0, a.Cost)
	require.NoError(t, lap.CheckAssignment(v, a))
}

// TestSolve_NegativeCosts: negative costs need no shifting with zero
// initial potentials, in either orientation.
func TestSolve_NegativeCosts(t *testing.T) {
	v := viewOf(t, [][]float64{{-5, -1}, {-2, -7}})
	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.RowToCol)
	assert.Equal(t, -12.0, a.Cost)

	tall := viewOf(t, [][]float64{{-1, -9}, {-8, -2}, {-3, -3}})
	a, err = lap.Solve(tall)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, lap.Unmatched}, a.RowToCol)
	assert.Equal(t, -17.0, a.Cost)
}

// TestSolve_TiesPickLowestIndex: an all-zero matrix must give the identity.
func TestSolve_TiesPickLowestIndex(t *testing.T) {
	v := flatView(t, 4, 4, make([]float64, 16))

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, a.RowToCol)
	assert.Equal(t, 0.0, a.Cost)
}

// TestSolve_Forbidden never selects an infinite pair.
func TestSolve_Forbidden(t *testing.T) {
	v := viewOf(t, [][]float64{{inf, 1}, {1, inf}})

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, a.RowToCol)
	assert.Equal(t, 2.0, a.Cost)

	// -Inf is forbidden too, also under Maximize.
	v = viewOf(t, [][]float64{{math.Inf(-1), 1}, {1, 5}})
	a, err = lap.Solve(v, lap.WithObjective(lap.Maximize))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, a.RowToCol)
	assert.Equal(t, 2.0, a.Cost)
}

// TestSolve_ForbiddenThreshold treats large placeholders as forbidden.
func TestSolve_ForbiddenThreshold(t *testing.T) {
	rows := [][]float64{{1e12, 3}, {2, 1e12}}

	a, err := lap.Solve(viewOf(t, rows, matrix.WithForbiddenThreshold(1e9)))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, a.RowToCol)
	assert.Equal(t, 5.0, a.Cost)

	// Without the threshold the placeholder is an ordinary (huge) cost and
	// maximisation picks it.
	a, err = lap.Solve(viewOf(t, rows), lap.WithObjective(lap.Maximize))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, a.RowToCol)
}

// TestSolve_NaNUnderRelaxedPolicy treats NaN like a forbidden pair.
func TestSolve_NaNUnderRelaxedPolicy(t *testing.T) {
	v := flatView(t, 2, 2, []float64{math.NaN(), 4, 2, 1}, matrix.WithNoValidateNaN())

	a, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, a.RowToCol)
	assert.Equal(t, 6.0, a.Cost)
}

// TestSolve_Infeasible reports ErrInfeasible with an all-unmatched result.
func TestSolve_Infeasible(t *testing.T) {
	cases := map[string][][]float64{
		"forbidden row":    {{inf, inf}, {1, 2}},
		"forbidden column": {{1, inf}, {2, inf}},
		"tall":             {{inf}, {inf}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			v := viewOf(t, rows)
			a, err := lap.Solve(v)
			require.ErrorIs(t, err, lap.ErrInfeasible)
			assert.Len(t, a.RowToCol, v.Rows())
			assert.Len(t, a.ColToRow, v.Cols())
			for _, j := range a.RowToCol {
				assert.Equal(t, lap.Unmatched, j)
			}
			for _, i := range a.ColToRow {
				assert.Equal(t, lap.Unmatched, i)
			}
			assert.True(t, math.IsNaN(a.Cost))
		})
	}

	// A 4×1 problem needs a single match, so two forbidden rows are fine.
	a, err := lap.Solve(viewOf(t, [][]float64{{inf}, {3}, {inf}, {2}}))
	require.NoError(t, err)
	assert.Equal(t, []int{lap.Unmatched, lap.Unmatched, lap.Unmatched, 0}, a.RowToCol)
	assert.Equal(t, 2.0, a.Cost)
}

// TestSolve_Empty handles zero-sized dimensions.
func TestSolve_Empty(t *testing.T) {
	a, err := lap.Solve(flatView(t, 0, 3, nil))
	require.NoError(t, err)
	assert.Empty(t, a.RowToCol)
	assert.Equal(t, []int{lap.Unmatched, lap.Unmatched, lap.Unmatched}, a.ColToRow)
	assert.Equal(t, 0.0, a.Cost)

	a, err = lap.Solve(flatView(t, 2, 0, nil))
	require.NoError(t, err)
	assert.Equal(t, []int{lap.Unmatched, lap.Unmatched}, a.RowToCol)
	assert.Empty(t, a.ColToRow)
}

// TestSolve_Deterministic: two solves of the same input are identical.
func TestSolve_Deterministic(t *testing.T) {
	bt, err := matrix.RandomBatch(1, 12, 17, matrix.RandomConfig{Seed: 7, High: 5, Integer: true})
	require.NoError(t, err)
	v, err := bt.Element(0)
	require.NoError(t, err)

	a1, err := lap.Solve(v)
	require.NoError(t, err)
	a2, err := lap.Solve(v)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

// TestSolve_Trace records the state-machine transitions.
func TestSolve_Trace(t *testing.T) {
	type step struct {
		p   lap.Phase
		row int
	}
	var got []step
	trace := lap.WithTrace(func(p lap.Phase, row int) { got = append(got, step{p, row}) })

	_, err := lap.Solve(viewOf(t, [][]float64{{1, 2}, {2, 1}}), trace)
	require.NoError(t, err)
	assert.Equal(t, []step{
		{lap.PhaseInit, lap.Unmatched},
		{lap.PhaseSearch, 0}, {lap.PhaseFound, 0}, {lap.PhaseUpdate, 0},
		{lap.PhaseSearch, 1}, {lap.PhaseFound, 1}, {lap.PhaseUpdate, 1},
		{lap.PhaseAllMatched, lap.Unmatched},
	}, got)

	got = nil
	_, err = lap.Solve(viewOf(t, [][]float64{{1, inf}, {2, inf}}), trace)
	require.ErrorIs(t, err, lap.ErrInfeasible)
	last := got[len(got)-1]
	assert.Equal(t, lap.PhaseInfeasible, last.p)
	assert.True(t, last.p.Terminal())
}

// TestSolve_InitRowMin reaches the same optimum as zero initialisation.
func TestSolve_InitRowMin(t *testing.T) {
	bt, err := matrix.RandomBatch(8, 6, 9, matrix.RandomConfig{Seed: 3, High: 50, Integer: true, ForbiddenDensity: 0.1})
	require.NoError(t, err)
	for k := 0; k < bt.Len(); k++ {
		v, err := bt.Element(k)
		require.NoError(t, err)
		a0, err0 := lap.Solve(v)
		a1, err1 := lap.Solve(v, lap.WithInit(lap.InitRowMin))
		require.Equal(t, err0 == nil, err1 == nil, "element %d", k)
		if err0 != nil {
			continue
		}
		assert.Equal(t, a0.Cost, a1.Cost, "element %d", k)
		require.NoError(t, lap.CheckAssignment(v, a1))
	}
}

// TestSolve_StateReuse: a State reused across shapes gives the same result
// as a fresh one.
func TestSolve_StateReuse(t *testing.T) {
	st := lap.NewState(1, 1)
	o := lap.DefaultOptions()
	for _, dims := range [][2]int{{5, 5}, {2, 7}, {9, 3}, {1, 1}} {
		bt, err := matrix.RandomBatch(1, dims[0], dims[1], matrix.RandomConfig{Seed: int64(dims[0]*10 + dims[1]), High: 9, Integer: true})
		require.NoError(t, err)
		v, err := bt.Element(0)
		require.NoError(t, err)

		want, err := lap.Solve(v)
		require.NoError(t, err)
		got, err := lap.SolveWithState(v, st, o)
		require.NoError(t, err)
		assert.Equal(t, want, got, "dims %v", dims)
		assert.Equal(t, dims[0] > dims[1], st.Transposed)
		assert.Equal(t, min(dims[0], dims[1]), st.Augmentations)
	}
}

// TestSolve_BadOptions rejects invalid enums without panicking.
func TestSolve_BadOptions(t *testing.T) {
	v := viewOf(t, [][]float64{{1}})
	o := lap.DefaultOptions()
	o.Objective = lap.Objective(9)

	a, err := lap.SolveWithState(v, lap.NewState(1, 1), o)
	require.ErrorIs(t, err, lap.ErrBadOptions)
	assert.Equal(t, []int{lap.Unmatched}, a.RowToCol)

	assert.Panics(t, func() { lap.WithEpsilon(-1) })
	assert.Panics(t, func() { lap.WithEpsilon(math.NaN()) })
}

// TestSolve_MatchesBruteForce compares optimal totals against exhaustive
// enumeration on small random instances, both objectives, any shape.
func TestSolve_MatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.IntRange(1, 6).Draw(rt, "rows")
		c := rapid.IntRange(1, 6).Draw(rt, "cols")
		maximize := rapid.Bool().Draw(rt, "maximize")
		density := rapid.Float64Range(0, 0.4).Draw(rt, "density")
		seed := rapid.Int64().Draw(rt, "seed")

		bt, err := matrix.RandomBatch(1, r, c, matrix.RandomConfig{
			Seed: seed, Low: -20, High: 20, Integer: true, ForbiddenDensity: density,
		})
		if err != nil {
			rt.Fatalf("RandomBatch: %v", err)
		}
		v, _ := bt.Element(0)

		opts := []lap.Option{}
		if maximize {
			opts = append(opts, lap.WithObjective(lap.Maximize))
		}
		a, err := lap.Solve(v, opts...)
		want, feasible := bruteForce(v, maximize)
		if !feasible {
			if err == nil {
				rt.Fatalf("expected ErrInfeasible, got cost %v", a.Cost)
			}
			if !errors.Is(err, lap.ErrInfeasible) {
				rt.Fatalf("expected ErrInfeasible, got %v", err)
			}

			return
		}
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if a.Cost != want {
			rt.Fatalf("cost %v, brute force %v", a.Cost, want)
		}
		if err = lap.CheckAssignment(v, a); err != nil {
			rt.Fatalf("CheckAssignment: %v", err)
		}
	})
}

// TestSolve_FloatCostsCertify runs real-valued costs of mixed magnitude
// through the certificate.
func TestSolve_FloatCostsCertify(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 25).Draw(rt, "n")
		m := rapid.IntRange(1, 25).Draw(rt, "m")
		scale := rapid.Float64Range(1e-3, 1e6).Draw(rt, "scale")
		seed := rapid.Int64().Draw(rt, "seed")

		bt, err := matrix.RandomBatch(1, n, m, matrix.RandomConfig{Seed: seed, Low: -scale, High: scale})
		if err != nil {
			rt.Fatalf("RandomBatch: %v", err)
		}
		v, _ := bt.Element(0)
		st := lap.NewState(n, m)
		o := lap.DefaultOptions()
		a, err := lap.SolveWithState(v, st, o)
		if err != nil {
			rt.Fatalf("solve: %v", err)
		}
		if a.Matched() != min(n, m) {
			rt.Fatalf("matched %d, want %d", a.Matched(), min(n, m))
		}
		if err = lap.Certify(v, st, o); err != nil {
			rt.Fatalf("certify: %v", err)
		}
	})
}

func TestAssignment_Pairs(t *testing.T) {
	a := lap.Assignment{RowToCol: []int{2, lap.Unmatched, 0}, ColToRow: []int{2, lap.Unmatched, 0}}
	rows, cols := a.Pairs()
	assert.Equal(t, []int{0, 2}, rows)
	assert.Equal(t, []int{2, 0}, cols)
	assert.Equal(t, 2, a.Matched())
}

func TestParseEnums(t *testing.T) {
	obj, err := lap.ParseObjective("MAX")
	require.NoError(t, err)
	assert.Equal(t, lap.Maximize, obj)
	assert.Equal(t, "maximize", obj.String())

	_, err = lap.ParseObjective("sideways")
	assert.Error(t, err)

	mode, err := lap.ParseInitMode("row-min")
	require.NoError(t, err)
	assert.Equal(t, lap.InitRowMin, mode)
	assert.Equal(t, "row-min", mode.String())

	assert.Equal(t, "all-matched", lap.PhaseAllMatched.String())
	assert.Equal(t, "Phase(42)", lap.Phase(42).String())
}
