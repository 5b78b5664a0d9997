package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/batchlap/device"
	"github.com/katalvlaran/batchlap/lap"
	"github.com/katalvlaran/batchlap/matrix"
)

// deviceSolver launches one execution group per batch element.
type deviceSolver struct {
	base
}

// Solve resolves the backend, opens a context with Config.Lanes lanes and
// launches B groups running lap.SolveGroup. Lane 0 of each group writes the
// element's slot of the Result.
func (s *deviceSolver) Solve(ctx context.Context, bt *matrix.Batch) (*Result, error) {
	start := time.Now()
	asm, err := s.begin(bt)
	if err != nil {
		return nil, err
	}
	n, r, c := bt.Shape()

	be, err := device.Resolve(s.backend)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	dc, err := be.NewContext(0, device.ContextOptions{Lanes: s.cfg.Lanes})
	if err != nil {
		return nil, fmt.Errorf("batch: %s context: %w", be.Info().Name, err)
	}
	defer dc.Close()

	lanes := dc.Lanes()
	s.logger.Debug("device launch",
		zap.String("backend", be.Info().Name),
		zap.String("device", dc.Device().Name),
		zap.Int("groups", n),
		zap.Int("lanes", lanes),
	)

	err = device.Launch(ctx, dc, n,
		func(int) *lap.GroupState { return lap.NewGroupState(r, c, lanes) },
		func(g device.Group, gs *lap.GroupState) {
			view, err := bt.Element(g.Index())
			if err != nil {
				panic(err)
			}
			a, err := lap.SolveGroup(g, view, gs, s.opts)
			if g.Lane() == 0 {
				asm.store(g.Index(), a, err, gs.State().Augmentations)
			}
		})
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// Nothing was dispatched; every element stays pending.
	default:
		return nil, fmt.Errorf("batch: launch: %w", err)
	}

	return s.end(ctx, asm, start)
}
