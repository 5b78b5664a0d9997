package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/batchlap/device"
	"github.com/katalvlaran/batchlap/internal/logging"
	"github.com/katalvlaran/batchlap/internal/metrics"
	"github.com/katalvlaran/batchlap/lap"
	"github.com/katalvlaran/batchlap/matrix"
)

// Solver is the single contract behind every execution strategy.
type Solver interface {
	// Solve processes every element of bt. Shape and config errors are
	// returned with a nil Result; cancellation and numeric faults are
	// returned together with the (partial) Result.
	Solve(ctx context.Context, bt *matrix.Batch) (*Result, error)

	// Strategy reports the concrete strategy (never Auto).
	Strategy() Execution
}

// Option configures the environment shared by the strategies.
type Option func(*env)

type env struct {
	logger  *zap.Logger
	metrics metrics.Recorder
	backend device.Backend
}

// WithLogger attaches a zap logger. nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(e *env) { e.logger = logging.OrNop(l) }
}

// WithPrometheus registers solver metrics on reg under namespace.
// Registering the same namespace twice on one registry panics.
func WithPrometheus(reg prometheus.Registerer, namespace string) Option {
	return func(e *env) { e.metrics = metrics.NewCollector(reg, namespace, e.logger) }
}

// WithBackend pins the device backend used by ParallelDevice (and
// considered by Auto) instead of the registered one.
func WithBackend(b device.Backend) Option {
	return func(e *env) { e.backend = b }
}

// withRecorder installs an arbitrary recorder.
func withRecorder(r metrics.Recorder) Option {
	return func(e *env) { e.metrics = r }
}

func newEnv(opts ...Option) *env {
	e := &env{logger: zap.NewNop(), metrics: metrics.Nop{}}
	for _, set := range opts {
		set(e)
	}

	return e
}

// New returns the Solver selected by cfg.Execution.
//
// Errors:
//   - ErrInvalidConfig when cfg does not validate.
func New(cfg Config, opts ...Option) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEnv(opts...)

	exec := cfg.Execution
	if exec == Auto {
		exec = resolveAuto(e.backend)
	}
	b := base{cfg: cfg, opts: cfg.lapOptions(), env: e, strategy: exec}
	b.logger = e.logger.With(zap.String("component", "batch"), zap.Stringer("strategy", exec))

	switch exec {
	case SequentialHost:
		return &hostSolver{base: b}, nil
	case ParallelDevice:
		return &deviceSolver{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: execution %v", ErrInvalidConfig, exec)
	}
}

// Solve is New followed by Solver.Solve.
func Solve(ctx context.Context, bt *matrix.Batch, cfg Config, opts ...Option) (*Result, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(ctx, bt)
}

// resolveAuto picks ParallelDevice when b (or the registered backend) is
// available.
func resolveAuto(b device.Backend) Execution {
	if b == nil {
		b = device.CurrentBackend()
	}
	if b != nil && b.Available() {
		return ParallelDevice
	}

	return SequentialHost
}

// base carries what every strategy shares.
type base struct {
	*env
	cfg      Config
	opts     lap.Options
	strategy Execution
}

func (b *base) Strategy() Execution { return b.strategy }

// begin validates bt and prepares the result and its assembler.
func (b *base) begin(bt *matrix.Batch) (*assembler, error) {
	if err := matrix.ValidateBatch(bt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	n, r, c := bt.Shape()
	b.logger.Debug("solve started", zap.Int("b", n), zap.Int("r", r), zap.Int("c", c))

	return newAssembler(newResult(n, r, c), b.cfg.ComputeCost, b.strategy.String(), b.logger, b.metrics), nil
}

// end finalises the result and records call-level metrics.
func (b *base) end(ctx context.Context, asm *assembler, start time.Time) (*Result, error) {
	res, err := asm.finish(ctx)
	elapsed := time.Since(start)
	b.metrics.RecordBatch(b.strategy.String(), res.B, elapsed)
	b.logger.Debug("solve finished",
		zap.Int("b", res.B),
		zap.Int("optimal", res.Count(StatusOptimal)),
		zap.Int("infeasible", res.Count(StatusInfeasible)),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)

	return res, err
}
