package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/batchlap/internal/metrics"
	"github.com/katalvlaran/batchlap/lap"
)

// Result holds the per-element outcomes of one Solve call.
//
// Layout mirrors the input batch: element k owns
// RowToCol[k*R:(k+1)*R] and ColToRow[k*C:(k+1)*C]. Unmatched entries and
// every entry of an element that is not StatusOptimal are lap.Unmatched.
type Result struct {
	B, R, C  int
	RowToCol []int
	ColToRow []int

	// Cost[k] is the total original cost of element k; NaN when the element
	// is not optimal or Config.ComputeCost is false.
	Cost []float64

	Status []Status
}

func newResult(b, r, c int) *Result {
	res := &Result{
		B: b, R: r, C: c,
		RowToCol: make([]int, b*r),
		ColToRow: make([]int, b*c),
		Cost:     make([]float64, b),
		Status:   make([]Status, b),
	}
	for i := range res.RowToCol {
		res.RowToCol[i] = lap.Unmatched
	}
	for j := range res.ColToRow {
		res.ColToRow[j] = lap.Unmatched
	}
	for k := range res.Cost {
		res.Cost[k] = math.NaN()
	}

	return res
}

// RowToColAt returns element k's row→column slice (aliasing the Result).
func (r *Result) RowToColAt(k int) []int { return r.RowToCol[k*r.R : (k+1)*r.R : (k+1)*r.R] }

// ColToRowAt returns element k's column→row slice (aliasing the Result).
func (r *Result) ColToRowAt(k int) []int { return r.ColToRow[k*r.C : (k+1)*r.C : (k+1)*r.C] }

// Assignment returns a copy of element k as a lap.Assignment.
func (r *Result) Assignment(k int) lap.Assignment {
	return lap.Assignment{
		RowToCol: append([]int(nil), r.RowToColAt(k)...),
		ColToRow: append([]int(nil), r.ColToRowAt(k)...),
		Cost:     r.Cost[k],
	}
}

// Feasible reports whether element k was solved to optimality.
func (r *Result) Feasible(k int) bool { return r.Status[k] == StatusOptimal }

// AllFeasible reports whether every element was solved to optimality.
func (r *Result) AllFeasible() bool {
	for _, s := range r.Status {
		if s != StatusOptimal {
			return false
		}
	}

	return true
}

// Pairs returns element k's matched (row, col) pairs in ascending row order.
func (r *Result) Pairs(k int) (rows, cols []int) {
	return lap.Assignment{RowToCol: r.RowToColAt(k)}.Pairs()
}

// Count returns how many elements have status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, x := range r.Status {
		if x == s {
			n++
		}
	}

	return n
}

// assembler writes element outcomes into a Result. store may be called
// concurrently for distinct k.
type assembler struct {
	res         *Result
	computeCost bool
	strategy    string
	logger      *zap.Logger
	metrics     metrics.Recorder

	mu     sync.Mutex
	faults map[int]error
}

func newAssembler(res *Result, computeCost bool, strategy string, logger *zap.Logger, rec metrics.Recorder) *assembler {
	return &assembler{
		res:         res,
		computeCost: computeCost,
		strategy:    strategy,
		logger:      logger,
		metrics:     rec,
		faults:      make(map[int]error),
	}
}

// store records the outcome of element k. augmentations feeds the metrics.
func (a *assembler) store(k int, asg lap.Assignment, err error, augmentations int) {
	res := a.res
	status := statusOf(err)
	if status == StatusOptimal && (len(asg.RowToCol) != res.R || len(asg.ColToRow) != res.C) {
		status = StatusNumericFault
		err = fmt.Errorf("%w: element shape %d×%d, want %d×%d",
			lap.ErrNumericInstability, len(asg.RowToCol), len(asg.ColToRow), res.R, res.C)
	}
	res.Status[k] = status
	a.metrics.RecordElement(a.strategy, status.String(), augmentations)

	switch status {
	case StatusOptimal:
		copy(res.RowToColAt(k), asg.RowToCol)
		copy(res.ColToRowAt(k), asg.ColToRow)
		if a.computeCost {
			res.Cost[k] = asg.Cost
		}
	case StatusInfeasible:
		a.logger.Warn("element infeasible", zap.Int("element", k), zap.Error(err))
	default:
		a.logger.Error("element numeric fault", zap.Int("element", k), zap.Error(err))
		a.mu.Lock()
		a.faults[k] = err
		a.mu.Unlock()
	}
}

// finish marks unstarted elements canceled and builds the call-level error:
// ctx.Err() when elements were canceled, a *FaultError when any element
// faulted, and both joined when both happened.
func (a *assembler) finish(ctx context.Context) (*Result, error) {
	var fault error
	if len(a.faults) > 0 {
		fe := &FaultError{Elements: make([]int, 0, len(a.faults))}
		for k := range a.faults {
			fe.Elements = append(fe.Elements, k)
		}
		sort.Ints(fe.Elements)
		fe.Err = a.faults[fe.Elements[0]]
		fault = fe
	}

	canceled := 0
	for k, s := range a.res.Status {
		if s == StatusPending {
			a.res.Status[k] = StatusCanceled
			canceled++
		}
	}
	if canceled == 0 {
		return a.res, fault
	}

	err := ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	a.logger.Debug("batch canceled", zap.Int("canceled", canceled), zap.Error(err))
	if fault != nil {
		return a.res, errors.Join(err, fault)
	}

	return a.res, err
}

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOptimal
	case errors.Is(err, lap.ErrInfeasible):
		return StatusInfeasible
	default:
		return StatusNumericFault
	}
}
