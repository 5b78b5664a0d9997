package lap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/batchlap/matrix"
)

// Certify re-checks the optimality certificate held by st against view.
// st must come from a successful solve of the same view with the same
// objective. See certify for the exact conditions.
//
// Errors:
//   - ErrBadState when st does not match the view's dimensions.
//   - ErrNumericInstability (wrapped with coordinates) on any violation.
//
// Complexity: O(R·C).
func Certify(view matrix.CostView, st *State, o Options) error {
	work := view
	if st.Transposed {
		work = view.T()
	}
	if work.Rows() != st.rows || work.Cols() != st.cols {
		return ErrBadState
	}

	return st.certify(newCosts(work, o.Objective), o.Epsilon)
}

// certify verifies, in solver orientation:
//   - the matching is consistent and complete on the row side,
//   - dual feasibility: c[i][j] − u[i] − v[j] ≥ −tol on every allowed pair,
//   - complementary slackness: |c − u − v| ≤ tol on matched pairs,
//   - v[j] ≤ tol on every column and |v[j]| ≤ tol on free columns (the
//     rectangular dual requires v ≤ 0 with equality where unmatched).
func (s *State) certify(cs costs, eps float64) error {
	var (
		i, j     int
		cij, red float64
	)
	for i = 0; i < s.rows; i++ {
		j = s.rowToCol[i]
		if j == Unmatched || s.colToRow[j] != i {
			return fmt.Errorf("%w: row %d has an inconsistent match", ErrNumericInstability, i)
		}
		if cij = cs.at(i, j); math.IsInf(cij, 1) {
			return fmt.Errorf("%w: forbidden pair (%d,%d) selected", ErrNumericInstability, i, j)
		}
		red = cij - s.U[i] - s.V[j]
		if math.Abs(red) > tolerance(eps, cij, s.U[i], s.V[j]) {
			return fmt.Errorf("%w: matched pair (%d,%d) has slack %g", ErrNumericInstability, i, j, red)
		}
	}
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			if cij = cs.at(i, j); math.IsInf(cij, 1) {
				continue
			}
			red = cij - s.U[i] - s.V[j]
			if red < -tolerance(eps, cij, s.U[i], s.V[j]) {
				return dualError(i, j, red, s.Transposed)
			}
		}
	}
	for j = 0; j < s.cols; j++ {
		tol := eps * max(1, math.Abs(s.V[j]))
		if s.V[j] > tol || (s.colToRow[j] == Unmatched && math.Abs(s.V[j]) > tol) {
			return fmt.Errorf("%w: column %d potential %g", ErrNumericInstability, j, s.V[j])
		}
	}

	return nil
}

// CheckAssignment validates the structure of a for view: lengths, index
// ranges, injectivity in both directions, no forbidden pair selected, and
// exactly min(R,C) matched pairs. It does not check optimality.
//
// Complexity: O(R+C).
func CheckAssignment(view matrix.CostView, a Assignment) error {
	r, c := view.Rows(), view.Cols()
	if err := matrix.ValidateVecLen(a.RowToCol, r); err != nil {
		return fmt.Errorf("%w: RowToCol: %w", ErrBadState, err)
	}
	if err := matrix.ValidateVecLen(a.ColToRow, c); err != nil {
		return fmt.Errorf("%w: ColToRow: %w", ErrBadState, err)
	}
	matched := 0
	for i, j := range a.RowToCol {
		if j == Unmatched {
			continue
		}
		if j < 0 || j >= c || a.ColToRow[j] != i {
			return fmt.Errorf("%w: row %d → column %d is not mirrored", ErrBadState, i, j)
		}
		if view.Forbidden(i, j) {
			return fmt.Errorf("%w: forbidden pair (%d,%d) selected", ErrBadState, i, j)
		}
		matched++
	}
	for j, i := range a.ColToRow {
		if i == Unmatched {
			continue
		}
		if i < 0 || i >= r || a.RowToCol[i] != j {
			return fmt.Errorf("%w: column %d → row %d is not mirrored", ErrBadState, j, i)
		}
	}
	if matched != min(r, c) {
		return fmt.Errorf("%w: %d pairs matched, want %d", ErrBadState, matched, min(r, c))
	}

	return nil
}
