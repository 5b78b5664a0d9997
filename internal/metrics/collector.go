package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Recorder is the instrumentation surface the batch solvers call into.
type Recorder interface {
	// RecordBatch observes one Solve call over elements batch elements.
	RecordBatch(strategy string, elements int, duration time.Duration)

	// RecordElement observes the outcome of one batch element.
	RecordElement(strategy, status string, augmentations int)
}

// =============================================================================
// Collector
// =============================================================================

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	solvesTotal       *prometheus.CounterVec
	solveDuration     *prometheus.HistogramVec
	augmentations     *prometheus.CounterVec
	batchElements     *prometheus.HistogramVec
	elementsByOutcome *prometheus.CounterVec

	logger *zap.Logger
}

var _ Recorder = (*Collector)(nil)

// NewCollector registers the solver metrics on reg under namespace.
// A nil reg registers on prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.solvesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total number of batch Solve calls",
		},
		[]string{"strategy"},
	)

	c.solveDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Batch Solve duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"strategy"},
	)

	c.batchElements = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_elements",
			Help:      "Number of cost matrices per Solve call",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"strategy"},
	)

	c.elementsByOutcome = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_total",
			Help:      "Total number of solved batch elements by status",
		},
		[]string{"strategy", "status"},
	)

	c.augmentations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "augmentations_total",
			Help:      "Total number of augmenting paths applied",
		},
		[]string{"strategy"},
	)

	c.logger.Debug("solver metrics registered", zap.String("namespace", namespace))

	return c
}

// RecordBatch implements Recorder.
func (c *Collector) RecordBatch(strategy string, elements int, duration time.Duration) {
	c.solvesTotal.WithLabelValues(strategy).Inc()
	c.solveDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	c.batchElements.WithLabelValues(strategy).Observe(float64(elements))
}

// RecordElement implements Recorder.
func (c *Collector) RecordElement(strategy, status string, augmentations int) {
	c.elementsByOutcome.WithLabelValues(strategy, status).Inc()
	if augmentations > 0 {
		c.augmentations.WithLabelValues(strategy).Add(float64(augmentations))
	}
}

// =============================================================================
// Nop
// =============================================================================

// Nop discards every observation.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordBatch(string, int, time.Duration) {}
func (Nop) RecordElement(string, string, int) {}
