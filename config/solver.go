package config

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/batchlap/batch"
	"github.com/katalvlaran/batchlap/device"
	"github.com/katalvlaran/batchlap/internal/logging"
)

// NewLogger builds the logger described by c.Log.
func (c *Config) NewLogger() (*zap.Logger, error) {
	return logging.New(c.Log.Level, c.Log.Format)
}

// Options translates c into batch options: logger, metrics (registered on
// reg when enabled) and the device backend.
func (c *Config) Options(logger *zap.Logger, reg prometheus.Registerer) []batch.Option {
	opts := []batch.Option{batch.WithLogger(logger)}
	if c.Metrics.Enabled {
		opts = append(opts, batch.WithPrometheus(reg, c.Metrics.Namespace))
	}
	if strings.EqualFold(c.Device.Backend, "cpu") {
		opts = append(opts, batch.WithBackend(device.NewCPUBackend(device.CPUConfig{
			Lanes:        c.Device.Lanes,
			ComputeUnits: c.Device.ComputeUnits,
		})))
	}

	return opts
}

// NewSolver wires a batch.Solver from c. reg may be nil when metrics are
// disabled (prometheus.DefaultRegisterer is used otherwise). A device
// solver on the "registered" backend fails with device.ErrNoBackend when
// nothing is registered.
func NewSolver(c *Config, reg prometheus.Registerer) (batch.Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bc, err := c.Solver.BatchConfig()
	if err != nil {
		return nil, err
	}
	if bc.Execution == batch.ParallelDevice && strings.EqualFold(c.Device.Backend, "registered") {
		if _, err = device.Registered(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	logger, err := c.NewLogger()
	if err != nil {
		return nil, err
	}

	return batch.New(bc, c.Options(logger, reg)...)
}
