package batch

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/batchlap/lap"
)

// Execution selects the batch processing strategy.
type Execution int

const (
	// Auto picks ParallelDevice when a device backend is available.
	Auto Execution = iota

	// SequentialHost solves elements on a host worker pool.
	SequentialHost

	// ParallelDevice solves each element in its own execution group.
	ParallelDevice
)

// String implements fmt.Stringer.
func (e Execution) String() string {
	switch e {
	case Auto:
		return "auto"
	case SequentialHost:
		return "host"
	case ParallelDevice:
		return "device"
	default:
		return fmt.Sprintf("Execution(%d)", int(e))
	}
}

// ParseExecution accepts "auto", "host"/"sequential-host" and
// "device"/"parallel-device" (any case).
func ParseExecution(s string) (Execution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return Auto, nil
	case "host", "sequential-host", "sequential", "cpu":
		return SequentialHost, nil
	case "device", "parallel-device", "parallel", "gpu":
		return ParallelDevice, nil
	default:
		return 0, fmt.Errorf("%w: unknown execution %q", ErrInvalidConfig, s)
	}
}

// Status is the outcome of one batch element.
type Status int

const (
	// StatusPending marks an element not yet processed. A returned Result
	// never contains it.
	StatusPending Status = iota
	StatusOptimal
	StatusInfeasible
	StatusNumericFault
	StatusCanceled
)

var statusNames = [...]string{"pending", "optimal", "infeasible", "numeric-fault", "canceled"}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// Config is the per-call solver configuration.
//
//   - Objective   - lap.Minimize (default) or lap.Maximize.
//   - Execution   - strategy tag, Auto by default.
//   - Epsilon     - certificate tolerance; 0 selects lap.DefaultEpsilon.
//   - Init        - initial dual potentials (lap.InitZero default).
//   - Workers     - host goroutines; 0 selects runtime.NumCPU(). Capped at B.
//   - Lanes       - lanes per execution group; 0 selects the backend default.
//   - ComputeCost - fill Result.Cost; when false every Cost entry is NaN.
type Config struct {
	Objective   lap.Objective
	Execution   Execution
	Epsilon     float64
	Init        lap.InitMode
	Workers     int
	Lanes       int
	ComputeCost bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Objective:   lap.Minimize,
		Execution:   Auto,
		Epsilon:     lap.DefaultEpsilon,
		Init:        lap.InitZero,
		ComputeCost: true,
	}
}

// Validate reports the first invalid field as ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Objective != lap.Minimize && c.Objective != lap.Maximize:
		return fmt.Errorf("%w: objective %v", ErrInvalidConfig, c.Objective)
	case c.Execution < Auto || c.Execution > ParallelDevice:
		return fmt.Errorf("%w: execution %v", ErrInvalidConfig, c.Execution)
	case c.Init != lap.InitZero && c.Init != lap.InitRowMin:
		return fmt.Errorf("%w: init %v", ErrInvalidConfig, c.Init)
	case math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %g", ErrInvalidConfig, c.Epsilon)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.Lanes < 0:
		return fmt.Errorf("%w: lanes %d", ErrInvalidConfig, c.Lanes)
	}

	return nil
}

// lapOptions translates c into per-solve options.
func (c Config) lapOptions() lap.Options {
	o := lap.DefaultOptions()
	o.Objective = c.Objective
	o.Init = c.Init
	if c.Epsilon > 0 {
		o.Epsilon = c.Epsilon
	}

	return o
}
