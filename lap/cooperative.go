package lap

import (
	"math"

	"github.com/katalvlaran/batchlap/device"
	"github.com/katalvlaran/batchlap/matrix"
)

// GroupState is the group-local memory of one cooperative solve: the
// sequential State plus per-lane reduction slots and the control words lane
// 0 publishes between barriers. Its size is O(R+C+L).
type GroupState struct {
	st State

	laneMin   []float64
	laneArg   []int
	laneFault []error

	// control words: written by lane 0 before a barrier, read by every lane
	// after it.
	row    int
	minVal float64
	sink   int
	stop   bool
	fault  error
	result Assignment
}

// NewGroupState allocates group-local memory for an r×c solve with lanes lanes.
func NewGroupState(r, c, lanes int) *GroupState {
	lanes = max(lanes, 1)
	gs := &GroupState{
		laneMin:   make([]float64, lanes),
		laneArg:   make([]int, lanes),
		laneFault: make([]error, lanes),
	}
	gs.st.Reset(min(r, c), max(r, c))

	return gs
}

// State exposes the solve's potentials and counters.
func (gs *GroupState) State() *State { return &gs.st }

// SolveGroup runs the Solve algorithm cooperatively on every lane of g.
// All lanes of the group must call it with the same view, gs and options.
//
// Each augmentation step has three phases separated by barriers:
//  1. slack relaxation: every lane relaxes its column stripe for the newest
//     tree row and reduces its stripe to (lowest slack, lowest index);
//  2. minimum reduction: lane 0 combines lane results in lane order (strict
//     '<', so the lowest column index wins ties) and settles that column;
//  3. potential update: lanes update v on their stripes, lane 0 updates u
//     and then flips the augmenting path.
//
// Stripes are contiguous and in lane order, so the settled column, every
// floating-point operation and hence the result are identical to Solve for
// any lane count.
//
// Every lane returns the same Assignment and error.
func SolveGroup(g device.Group, view matrix.CostView, gs *GroupState, o Options) (Assignment, error) {
	r, c := view.Rows(), view.Cols()
	if err := o.Validate(); err != nil {
		return NewUnmatched(r, c), err
	}

	var (
		lane         = g.Lane()
		lanes        = g.Lanes()
		lead         = lane == 0
		st           = &gs.st
		p            = &st.path
		work, tr     = orient(view)
		cs           = newCosts(work, o.Objective)
		cur, i, j    int
		colLo, colHi int
		x            float64
	)

	if lead {
		st.Reset(work.Rows(), work.Cols())
		st.Transposed = tr
		if len(gs.laneMin) < lanes {
			gs.laneMin = make([]float64, lanes)
			gs.laneArg = make([]int, lanes)
			gs.laneFault = make([]error, lanes)
		}
		gs.fault = nil
		gs.result = Assignment{}
		o.trace(PhaseInit, Unmatched)
	}
	g.Barrier()

	colLo, colHi = device.Stripe(st.cols, lane, lanes)
	if o.Init == InitRowMin {
		lo, hi := device.Stripe(st.rows, lane, lanes)
		for i = lo; i < hi; i++ {
			m := math.Inf(1)
			for j = 0; j < st.cols; j++ {
				if x = cs.at(i, j); x < m {
					m = x
				}
			}
			if !math.IsInf(m, 1) {
				st.U[i] = m
			}
		}
		g.Barrier()
	}

	for cur = 0; cur < st.rows; cur++ {
		p.resetPath(colLo, colHi, lead)
		if lead {
			gs.row, gs.minVal, gs.sink, gs.stop = cur, 0, Unmatched, false
			o.trace(PhaseSearch, cur)
		}
		g.Barrier()

		for {
			// phase 1: relax own stripe.
			gs.laneMin[lane], gs.laneArg[lane], gs.laneFault[lane] = st.relaxStripe(cs, gs.row, cur, gs.minVal, colLo, colHi, o.Epsilon)
			g.Barrier()

			// phase 2: lane-ordered reduction.
			if lead {
				gs.reduce(lanes)
			}
			g.Barrier()
			if gs.stop {
				break
			}
		}

		if gs.fault != nil {
			return NewUnmatched(r, c), gs.fault
		}
		if gs.sink == Unmatched {
			if lead {
				o.trace(PhaseInfeasible, cur)
			}

			return NewUnmatched(r, c), infeasibleError(cur, tr)
		}

		// phase 3: potential update.
		if lead {
			o.trace(PhaseFound, cur)
			st.U[cur] += gs.minVal
			for _, i = range p.rows {
				if i != cur {
					st.U[i] += gs.minVal - p.slack[st.rowToCol[i]]
				}
			}
		}
		for j = colLo; j < colHi; j++ {
			if p.colSeen[j] {
				st.V[j] -= gs.minVal - p.slack[j]
			}
		}
		g.Barrier()

		if lead {
			o.trace(PhaseUpdate, cur)
			st.augment(cur, gs.sink)
			st.Augmentations++
		}
		g.Barrier()
	}

	if lead {
		if o.Certify {
			gs.fault = st.certify(cs, o.Epsilon)
		}
		if gs.fault == nil {
			gs.result = st.assignment(view)
			o.trace(PhaseAllMatched, Unmatched)
		}
	}
	g.Barrier()
	if gs.fault != nil {
		return NewUnmatched(r, c), gs.fault
	}

	return gs.result, nil
}

// relaxStripe is phase 1 for columns [lo, hi): relax tree row i and return
// the stripe's (lowest slack, its lowest index, first dual violation).
// Row root is exempt from the dual check, as in search.
func (s *State) relaxStripe(cs costs, i, root int, minVal float64, lo, hi int, eps float64) (float64, int, error) {
	var (
		p      = &s.path
		lowest = math.Inf(1)
		jm     = Unmatched
		cij    float64
		red    float64
	)
	for j := lo; j < hi; j++ {
		if p.colSeen[j] {
			continue
		}
		if cij = cs.at(i, j); !math.IsInf(cij, 1) {
			red = cij - s.U[i] - s.V[j]
			if i != root && red < -tolerance(eps, cij, s.U[i], s.V[j]) {
				return lowest, jm, dualError(i, j, red, s.Transposed)
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

	return lowest, jm, nil
}

// reduce is phase 2, executed by lane 0 only.
func (gs *GroupState) reduce(lanes int) {
	st := &gs.st
	p := &st.path
	p.rowSeen[gs.row] = true
	p.rows = append(p.rows, gs.row)

	for l := 0; l < lanes; l++ {
		if gs.laneFault[l] != nil {
			gs.fault, gs.stop = gs.laneFault[l], true

			return
		}
	}

	best, arg := math.Inf(1), Unmatched
	for l := 0; l < lanes; l++ {
		if gs.laneArg[l] != Unmatched && gs.laneMin[l] < best {
			best, arg = gs.laneMin[l], gs.laneArg[l]
		}
	}
	if arg == Unmatched {
		gs.sink, gs.stop = Unmatched, true

		return
	}

	gs.minVal = best
	p.colSeen[arg] = true
	st.Steps++
	if st.colToRow[arg] == Unmatched {
		gs.sink, gs.stop = arg, true

		return
	}
	gs.row = st.colToRow[arg]
}
