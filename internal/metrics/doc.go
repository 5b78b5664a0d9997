// Package metrics provides Prometheus instrumentation for the batch solvers.
// This package is internal and should not be imported by external projects.
package metrics
