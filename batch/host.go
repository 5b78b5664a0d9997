package batch

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/batchlap/lap"
	"github.com/katalvlaran/batchlap/matrix"
)

// hostSolver runs whole solves on a pool of goroutines.
type hostSolver struct {
	base
}

// Solve feeds element indices into a shared queue drained by
// min(Workers, B) goroutines, each owning one reusable lap.State.
// ctx is checked between elements only; elements never started when it
// ends are reported as StatusCanceled.
func (s *hostSolver) Solve(ctx context.Context, bt *matrix.Batch) (*Result, error) {
	start := time.Now()
	asm, err := s.begin(bt)
	if err != nil {
		return nil, err
	}
	n, r, c := bt.Shape()

	workers := s.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, n)

	var (
		eg   errgroup.Group
		jobs = make(chan int)
	)
	eg.Go(func() error {
		defer close(jobs)
		for k := 0; k < n; k++ {
			if ctx.Err() != nil {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case jobs <- k:
			}
		}

		return nil
	})
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			st := lap.NewState(r, c)
			for k := range jobs {
				if ctx.Err() != nil {
					continue
				}
				view, err := bt.Element(k)
				if err != nil {
					return err
				}
				a, err := lap.SolveWithState(view, st, s.opts)
				asm.store(k, a, err, st.Augmentations)
			}

			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return s.end(ctx, asm, start)
}
