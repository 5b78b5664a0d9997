// Package lap defines the result type, objective and solver phases.
package lap

import (
	"fmt"
	"math"
	"strings"
)

// Unmatched marks a row or column without a partner.
const Unmatched = -1

// Objective selects the optimisation direction.
//
//   - Minimize - smallest total cost (default).
//   - Maximize - largest total cost; solved by negating every allowed cost.
type Objective int

const (
	// Minimize finds the minimum-cost assignment.
	Minimize Objective = iota

	// Maximize finds the maximum-cost assignment.
	Maximize
)

// String implements fmt.Stringer.
func (o Objective) String() string {
	switch o {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

// ParseObjective accepts "minimize"/"min" and "maximize"/"max" (any case).
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimize", "min", "":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("lap: unknown objective %q", s)
	}
}

// InitMode selects how the dual potentials start.
//
//   - InitZero   - u = v = 0.
//   - InitRowMin - u[i] = min_j cost[i][j] over allowed pairs, v = 0; every
//     first search then starts on a zero-slack column.
type InitMode int

const (
	// InitZero starts every potential at zero.
	InitZero InitMode = iota

	// InitRowMin starts row potentials at the row minima.
	InitRowMin
)

// String implements fmt.Stringer.
func (m InitMode) String() string {
	switch m {
	case InitZero:
		return "zero"
	case InitRowMin:
		return "row-min"
	default:
		return fmt.Sprintf("InitMode(%d)", int(m))
	}
}

// ParseInitMode accepts "zero" and "row-min"/"rowmin".
func ParseInitMode(s string) (InitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return InitZero, nil
	case "row-min", "rowmin", "row_min":
		return InitRowMin, nil
	default:
		return 0, fmt.Errorf("lap: unknown init mode %q", s)
	}
}

// Phase is one state of the per-solve state machine:
//
//	Init → Search → Found → Update → (Search …) → AllMatched
//	                  ↘ Infeasible (no augmenting path for some row)
type Phase int

const (
	PhaseInit Phase = iota
	PhaseSearch
	PhaseFound
	PhaseUpdate
	PhaseAllMatched
	PhaseInfeasible
)

var phaseNames = [...]string{"init", "search", "found", "update", "all-matched", "infeasible"}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}

	return phaseNames[p]
}

// Terminal reports whether no further transition can follow p.
func (p Phase) Terminal() bool { return p == PhaseAllMatched || p == PhaseInfeasible }

// Assignment is the outcome of one solve.
//
//   - RowToCol[i] ∈ [0, C) or Unmatched; ColToRow[j] ∈ [0, R) or Unmatched.
//   - ColToRow[RowToCol[i]] == i for every matched i.
//   - Cost is the sum of the original (not negated) costs of matched pairs;
//     NaN when the solve did not complete.
type Assignment struct {
	RowToCol []int
	ColToRow []int
	Cost     float64
}

// NewUnmatched returns an r×c assignment with every entry Unmatched and NaN cost.
func NewUnmatched(r, c int) Assignment {
	a := Assignment{RowToCol: make([]int, r), ColToRow: make([]int, c), Cost: math.NaN()}
	fillUnmatched(a.RowToCol)
	fillUnmatched(a.ColToRow)

	return a
}

// Matched returns the number of matched rows.
func (a Assignment) Matched() int {
	n := 0
	for _, j := range a.RowToCol {
		if j != Unmatched {
			n++
		}
	}

	return n
}

// Pairs returns matched (row, col) index pairs in ascending row order,
// the (row_ind, col_ind) form used by scipy-style callers.
func (a Assignment) Pairs() (rows, cols []int) {
	n := a.Matched()
	rows = make([]int, 0, n)
	cols = make([]int, 0, n)
	for i, j := range a.RowToCol {
		if j != Unmatched {
			rows = append(rows, i)
			cols = append(cols, j)
		}
	}

	return rows, cols
}

func fillUnmatched(xs []int) {
	for i := range xs {
		xs[i] = Unmatched
	}
}
