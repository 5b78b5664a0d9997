package lap

import (
	"errors"
	"math"
)

// DefaultEpsilon is the relative tolerance of the optimality certificate.
// A reduced cost r = c − u − v counts as negative only when
// r < −eps·max(1, |c|, |u|, |v|).
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "lap: WithEpsilon: eps must be finite, non-negative"

// ErrBadOptions is returned by Options.Validate.
var ErrBadOptions = errors.New("lap: invalid options")

// Options configures a solve.
//
//   - Objective - Minimize (default) or Maximize.
//   - Epsilon   - certificate tolerance (DefaultEpsilon). Must be ≥ 0.
//   - Init      - initial potentials (InitZero default).
//   - Certify   - run the full O(R·C) certificate check after the last
//     augmentation (default true). Reduced costs are checked during the
//     search regardless.
//   - Trace     - optional hook observing state-machine transitions; row is
//     the row being augmented (−1 for Init/AllMatched).
type Options struct {
	Objective Objective
	Epsilon   float64
	Init      InitMode
	Certify   bool
	Trace     func(p Phase, row int)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Objective: Minimize,
		Epsilon:   DefaultEpsilon,
		Init:      InitZero,
		Certify:   true,
	}
}

// NewOptions applies opts on top of DefaultOptions (last-writer-wins).
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, set := range opts {
		set(&o)
	}

	return o
}

// WithObjective selects Minimize or Maximize.
func WithObjective(obj Objective) Option {
	return func(o *Options) { o.Objective = obj }
}

// WithEpsilon sets the certificate tolerance. Panics on negative or
// non-finite eps (programmer error).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithInit selects the initial potentials.
func WithInit(m InitMode) Option {
	return func(o *Options) { o.Init = m }
}

// WithoutCertificate skips the final O(R·C) certificate pass.
func WithoutCertificate() Option {
	return func(o *Options) { o.Certify = false }
}

// WithTrace installs a state-machine observer.
func WithTrace(fn func(p Phase, row int)) Option {
	return func(o *Options) { o.Trace = fn }
}

// Validate rejects unknown enums and a bad epsilon. Options built only
// through WithX setters always validate.
func (o Options) Validate() error {
	if o.Objective != Minimize && o.Objective != Maximize {
		return ErrBadOptions
	}
	if o.Init != InitZero && o.Init != InitRowMin {
		return ErrBadOptions
	}
	if math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) || o.Epsilon < 0 {
		return ErrBadOptions
	}

	return nil
}

func (o Options) trace(p Phase, row int) {
	if o.Trace != nil {
		o.Trace(p, row)
	}
}
