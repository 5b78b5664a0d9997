// Package matrix provides the dense cost-matrix layer used by the assignment
// solvers.
//
// The matrix package provides:
//
//   - Dense: a row-major, bounds-checked float64 matrix (Matrix interface).
//   - Batch: B stacked R×C cost matrices in one contiguous row-major buffer,
//     the logical (B, R, C) layout host tensor frameworks hand over.
//   - CostView: a read-only window onto one batch element, including the
//     forbidden-pair convention (±Inf, or |v| ≥ the forbidden threshold).
//   - RandomBatch: deterministic, seed-driven batch generators for tests and
//     benchmarks (one independent RNG stream per batch element).
//
// Numeric policy is explicit and lives in options.go: NaN is rejected on
// ingestion unless WithNoValidateNaN is set (NaN cells are then forbidden),
// and WithForbiddenThreshold lets callers mark large-magnitude placeholder
// values (e.g. 1e18) as forbidden instead of +Inf.
//
// All public accessors return sentinel errors from errors.go instead of
// panicking; views are values and never mutate the underlying batch.
package matrix
