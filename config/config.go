package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/batchlap/batch"
	"github.com/katalvlaran/batchlap/device"
	"github.com/katalvlaran/batchlap/lap"
)

// ErrInvalid is returned by Validate and the conversions below.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete file/env configuration.
type Config struct {
	// Solver per-call settings.
	Solver SolverConfig `yaml:"solver" env:"SOLVER"`

	// Device backend used by the device strategy.
	Device DeviceConfig `yaml:"device" env:"DEVICE"`

	// Log logger settings.
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// SolverConfig mirrors batch.Config with textual enums.
type SolverConfig struct {
	// minimize | maximize
	Objective string `yaml:"objective" env:"OBJECTIVE"`
	// auto | host | device
	Execution string `yaml:"execution" env:"EXECUTION"`
	// zero | row-min
	Init        string  `yaml:"init" env:"INIT"`
	Epsilon     float64 `yaml:"epsilon" env:"EPSILON"`
	Workers     int     `yaml:"workers" env:"WORKERS"`
	Lanes       int     `yaml:"lanes" env:"LANES"`
	ComputeCost bool    `yaml:"compute_cost" env:"COMPUTE_COST"`
}

// DeviceConfig selects the device backend.
type DeviceConfig struct {
	// cpu | registered (use whatever device.RegisterBackend installed)
	Backend      string `yaml:"backend" env:"BACKEND"`
	Lanes        int    `yaml:"lanes" env:"LANES"`
	ComputeUnits int    `yaml:"compute_units" env:"COMPUTE_UNITS"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	// debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// json, console
	Format string `yaml:"format" env:"FORMAT"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// DefaultConfig returns the defaults every load starts from.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Objective:   lap.Minimize.String(),
			Execution:   batch.Auto.String(),
			Init:        lap.InitZero.String(),
			Epsilon:     lap.DefaultEpsilon,
			ComputeCost: true,
		},
		Device: DeviceConfig{
			Backend: "cpu",
			Lanes:   device.DefaultCPULanes,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "batchlap",
		},
	}
}

// BatchConfig parses the textual enums into a batch.Config.
func (s SolverConfig) BatchConfig() (batch.Config, error) {
	obj, err := lap.ParseObjective(s.Objective)
	if err != nil {
		return batch.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	exec, err := batch.ParseExecution(s.Execution)
	if err != nil {
		return batch.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	mode, err := lap.ParseInitMode(s.Init)
	if err != nil {
		return batch.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg := batch.Config{
		Objective:   obj,
		Execution:   exec,
		Epsilon:     s.Epsilon,
		Init:        mode,
		Workers:     s.Workers,
		Lanes:       s.Lanes,
		ComputeCost: s.ComputeCost,
	}
	if err = cfg.Validate(); err != nil {
		return batch.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := c.Solver.BatchConfig(); err != nil {
		errs = append(errs, err.Error())
	}
	switch strings.ToLower(c.Device.Backend) {
	case "cpu", "registered", "":
	default:
		errs = append(errs, fmt.Sprintf("unknown device backend %q", c.Device.Backend))
	}
	if c.Device.Lanes < 0 || c.Device.Lanes > device.MaxCPULanes {
		errs = append(errs, fmt.Sprintf("device lanes %d out of [0,%d]", c.Device.Lanes, device.MaxCPULanes))
	}
	if c.Device.ComputeUnits < 0 {
		errs = append(errs, "device compute_units must be non-negative")
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errs = append(errs, "metrics namespace is required when metrics are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}

	return nil
}
