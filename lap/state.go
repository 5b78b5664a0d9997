package lap

import (
	"math"

	"github.com/katalvlaran/batchlap/matrix"
)

// State is the explicit per-solve state: dual potentials, the current
// matching and the augmenting-path scratch. One State is owned by exactly
// one solving unit at a time; it may be reused for the next batch element
// (Reset re-initialises everything) but is never shared between concurrent
// solves.
//
// All arrays are in solver orientation: the solver always works on a view
// with Rows() ≤ Cols(), transposing when the input is tall (Transposed).
type State struct {
	// U and V are the row and column potentials. After a successful solve
	// u[i]+v[j] ≤ cost[i][j] holds for every allowed pair (within tolerance)
	// with equality on matched pairs.
	U, V []float64

	// Transposed is true when the solve ran on the transposed input.
	Transposed bool

	// Augmentations counts completed augmentations of the last solve.
	Augmentations int

	// Steps counts Dijkstra steps (columns settled) of the last solve.
	Steps int

	rows, cols int
	rowToCol   []int
	colToRow   []int
	path       pathState
}

// pathState is the augmenting-path scratch. It is reset at the start of
// every augmentation and never carries information across augmentations.
type pathState struct {
	slack   []float64 // shortest reduced-path cost to each column
	pred    []int     // predecessor row of each column on the path tree
	colSeen []bool    // settled columns (the "SC" set)
	rowSeen []bool    // rows in the path tree (the "SR" set)
	rows    []int     // rows in visiting order, for the potential update
}

// NewState allocates a State able to solve an r×c (or c×r) matrix.
func NewState(r, c int) *State {
	s := &State{}
	s.Reset(min(r, c), max(r, c))

	return s
}

// Reset prepares the state for a rows×cols solve (rows ≤ cols), reusing
// backing arrays when they are large enough. Potentials are zeroed and the
// matching cleared.
func (s *State) Reset(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.U = resizeFloat(s.U, rows)
	s.V = resizeFloat(s.V, cols)
	s.rowToCol = resizeInt(s.rowToCol, rows)
	s.colToRow = resizeInt(s.colToRow, cols)
	for i := range s.U {
		s.U[i] = 0
	}
	for j := range s.V {
		s.V[j] = 0
	}
	fillUnmatched(s.rowToCol)
	fillUnmatched(s.colToRow)
	s.Transposed = false
	s.Augmentations = 0
	s.Steps = 0

	p := &s.path
	p.slack = resizeFloat(p.slack, cols)
	p.pred = resizeInt(p.pred, cols)
	p.colSeen = resizeBool(p.colSeen, cols)
	p.rowSeen = resizeBool(p.rowSeen, rows)
	if cap(p.rows) < rows {
		p.rows = make([]int, 0, rows)
	}
	p.rows = p.rows[:0]
}

// Dims returns the solver-orientation dimensions (rows ≤ cols).
func (s *State) Dims() (rows, cols int) { return s.rows, s.cols }

// resetPath clears the scratch for columns [lo, hi) and, when rowsToo, all
// rows. Sequential solves call it with the full range; cooperative lanes
// each clear their own stripe.
func (p *pathState) resetPath(lo, hi int, rowsToo bool) {
	inf := math.Inf(1)
	for j := lo; j < hi; j++ {
		p.slack[j] = inf
		p.pred[j] = Unmatched
		p.colSeen[j] = false
	}
	if rowsToo {
		for i := range p.rowSeen {
			p.rowSeen[i] = false
		}
		p.rows = p.rows[:0]
	}
}

// costs reads the working view in objective space: forbidden pairs become
// +Inf and Maximize negates every allowed value.
type costs struct {
	view matrix.CostView
	neg  bool
}

func newCosts(view matrix.CostView, obj Objective) costs {
	return costs{view: view, neg: obj == Maximize}
}

func (c costs) at(i, j int) float64 {
	x := c.view.Value(i, j)
	if c.view.IsForbiddenValue(x) {
		return math.Inf(1)
	}
	if c.neg {
		return -x
	}

	return x
}

// tolerance scales eps by the magnitudes involved in one reduced cost.
func tolerance(eps, c, u, v float64) float64 {
	return eps * max(1, math.Abs(c), math.Abs(u), math.Abs(v))
}

// initRowMin sets u[i] to the smallest allowed cost of row i (v stays 0).
// Rows without allowed pairs keep u[i]=0; their search will fail anyway.
func (s *State) initRowMin(cs costs) {
	var (
		i, j int
		m, x float64
	)
	for i = 0; i < s.rows; i++ {
		m = math.Inf(1)
		for j = 0; j < s.cols; j++ {
			if x = cs.at(i, j); x < m {
				m = x
			}
		}
		if !math.IsInf(m, 1) {
			s.U[i] = m
		}
	}
}

// assignment maps the solver-orientation matching back onto the caller's
// view and sums the original costs of matched pairs.
func (s *State) assignment(view matrix.CostView) Assignment {
	var a Assignment
	if s.Transposed {
		a.RowToCol = append([]int(nil), s.colToRow...)
		a.ColToRow = append([]int(nil), s.rowToCol...)
	} else {
		a.RowToCol = append([]int(nil), s.rowToCol...)
		a.ColToRow = append([]int(nil), s.colToRow...)
	}
	for i, j := range a.RowToCol {
		if j != Unmatched {
			a.Cost += view.Value(i, j)
		}
	}

	return a
}

func resizeFloat(xs []float64, n int) []float64 {
	if cap(xs) < n {
		return make([]float64, n)
	}

	return xs[:n]
}

func resizeInt(xs []int, n int) []int {
	if cap(xs) < n {
		return make([]int, n)
	}

	return xs[:n]
}

func resizeBool(xs []bool, n int) []bool {
	if cap(xs) < n {
		return make([]bool, n)
	}

	return xs[:n]
}
