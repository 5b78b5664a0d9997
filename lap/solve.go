package lap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/batchlap/matrix"
)

// Solve computes an optimal assignment for one cost view.
//
// Algorithm Outline (successive shortest augmenting paths):
//  1. Orient the problem so rows ≤ cols (transpose tall inputs).
//  2. Initialise potentials u, v (zero, or row minima with InitRowMin).
//  3. For every row cur in ascending order:
//     a. Dijkstra over reduced costs c[i][j]−u[i]−v[j], starting at cur, with
//     a dense slack array as the priority structure; settle the column of
//     smallest slack (lowest index on ties) until a free column is settled.
//     b. Update potentials by the path's slack so that dual feasibility
//     holds and every tree edge becomes tight.
//     c. Flip the alternating path (iterative walk over predecessor links).
//  4. Optionally verify the certificate: u[i]+v[j] ≤ c[i][j]+tol for all
//     allowed pairs, equality on matched pairs, v ≤ 0 and v = 0 on free
//     columns.
//
// Returns:
//   - Assignment with min(R,C) matched pairs and Unmatched elsewhere.
//
// Errors:
//   - ErrInfeasible          - some row has no augmenting path left (all its
//     remaining candidates are forbidden). The returned assignment is all
//     Unmatched.
//   - ErrNumericInstability  - the certificate was violated (internal fault).
//   - ErrBadOptions          - invalid options.
//
// Finite costs must stay well below math.MaxFloat64/max(R,C): path sums of
// larger placeholders overflow to +Inf and read as infeasible. Mark such
// placeholders forbidden with matrix.WithForbiddenThreshold instead.
//
// Complexity:
//
//	Time   = O(min(R,C)·R·C)
//	Memory = O(R+C)
func Solve(view matrix.CostView, opts ...Option) (Assignment, error) {
	st := NewState(view.Rows(), view.Cols())

	return SolveWithState(view, st, NewOptions(opts...))
}

// SolveWithState is Solve with a caller-owned State, so a worker can reuse
// scratch memory across batch elements. st is reset before use and holds
// the final potentials afterwards.
func SolveWithState(view matrix.CostView, st *State, o Options) (Assignment, error) {
	r, c := view.Rows(), view.Cols()
	if err := o.Validate(); err != nil {
		return NewUnmatched(r, c), err
	}

	work, transposed := orient(view)
	st.Reset(work.Rows(), work.Cols())
	st.Transposed = transposed
	cs := newCosts(work, o.Objective)

	o.trace(PhaseInit, Unmatched)
	if o.Init == InitRowMin {
		st.initRowMin(cs)
	}

	var (
		cur, sink int
		minVal    float64
		err       error
	)
	for cur = 0; cur < st.rows; cur++ {
		o.trace(PhaseSearch, cur)
		sink, minVal, err = st.search(cs, cur, o.Epsilon)
		if err != nil {
			return NewUnmatched(r, c), err
		}
		if sink == Unmatched {
			o.trace(PhaseInfeasible, cur)

			return NewUnmatched(r, c), infeasibleError(cur, transposed)
		}
		o.trace(PhaseFound, cur)
		st.updatePotentials(cur, minVal)
		o.trace(PhaseUpdate, cur)
		st.augment(cur, sink)
		st.Augmentations++
	}

	if o.Certify {
		if err = st.certify(cs, o.Epsilon); err != nil {
			return NewUnmatched(r, c), err
		}
	}
	o.trace(PhaseAllMatched, Unmatched)

	return st.assignment(view), nil
}

// orient returns a view with Rows() ≤ Cols().
func orient(view matrix.CostView) (matrix.CostView, bool) {
	if view.Rows() > view.Cols() {
		return view.T(), true
	}

	return view, false
}

func infeasibleError(row int, transposed bool) error {
	if transposed {
		return fmt.Errorf("%w: no augmenting path from column %d", ErrInfeasible, row)
	}

	return fmt.Errorf("%w: no augmenting path from row %d", ErrInfeasible, row)
}

// search runs one Dijkstra pass from row cur and returns the free column it
// reached (sink) and the path's total reduced cost (minVal). sink is
// Unmatched when every reachable column is exhausted.
//
// Per step it relaxes the newest tree row over all unsettled columns and
// then settles the unsettled column of smallest slack, scanning columns in
// ascending order with a strict '<' so the lowest index wins ties.
//
// Rows already in the matching must have non-negative reduced costs; only
// the root row cur may not (its potential is fixed by updatePotentials).
func (s *State) search(cs costs, cur int, eps float64) (sink int, minVal float64, err error) {
	p := &s.path
	p.resetPath(0, s.cols, true)

	var (
		i      = cur
		j, jm  int
		cij    float64
		red    float64
		lowest float64
	)
	sink = Unmatched
	for sink == Unmatched {
		p.rowSeen[i] = true
		p.rows = append(p.rows, i)

		lowest, jm = math.Inf(1), Unmatched
		for j = 0; j < s.cols; j++ {
			if p.colSeen[j] {
				continue
			}
			if cij = cs.at(i, j); !math.IsInf(cij, 1) {
				red = cij - s.U[i] - s.V[j]
				if i != cur && red < -tolerance(eps, cij, s.U[i], s.V[j]) {
					return Unmatched, 0, dualError(i, j, red, s.Transposed)
				}
				if minVal+red < p.slack[j] {
					p.slack[j] = minVal + red
					p.pred[j] = i
				}
			}
			if p.slack[j] < lowest {
				lowest, jm = p.slack[j], j
			}
		}
		if jm == Unmatched {
			return Unmatched, 0, nil
		}

		minVal = lowest
		p.colSeen[jm] = true
		s.Steps++
		if s.colToRow[jm] == Unmatched {
			sink = jm
		} else {
			i = s.colToRow[jm]
		}
	}

	return sink, minVal, nil
}

// updatePotentials restores dual feasibility after a search that reached
// its sink with path cost minVal.
func (s *State) updatePotentials(cur int, minVal float64) {
	p := &s.path
	s.U[cur] += minVal
	for _, i := range p.rows {
		if i != cur {
			s.U[i] += minVal - p.slack[s.rowToCol[i]]
		}
	}
	for j := 0; j < s.cols; j++ {
		if p.colSeen[j] {
			s.V[j] -= minVal - p.slack[j]
		}
	}
}

// augment flips the alternating path ending at sink back to row cur.
func (s *State) augment(cur, sink int) {
	p := &s.path
	j := sink
	for {
		i := p.pred[j]
		s.colToRow[j] = i
		s.rowToCol[i], j = j, s.rowToCol[i]
		if i == cur {
			return
		}
	}
}

func dualError(i, j int, red float64, transposed bool) error {
	if transposed {
		i, j = j, i
	}

	return fmt.Errorf("%w: reduced cost %g < 0 at (%d,%d)", ErrNumericInstability, red, i, j)
}
