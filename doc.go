// Package batchlap solves batches of rectangular linear assignment problems
// with exact, certified optimality, on a host worker pool or on a
// cooperative lane-per-group device model.
//
// 🚀 What is batchlap?
//
//	A compact, deterministic library that brings together:
//		• Cost batches: B stacked R×C matrices in one row-major buffer
//		• Exact LAP: shortest augmenting paths with dual potentials
//		• Certificates: dual feasibility and complementary slackness checks
//		• Device model: execution groups of cooperating lanes and barriers
//		• Batch API: one call, per-element status, no cross-element failure
//
// ✨ Why choose batchlap?
//
//   - Deterministic – lowest-index tie-breaking, identical results on every strategy
//   - Honest results – infeasible and numerically faulty elements are reported, never guessed
//   - Rectangular – R≠C handled by orientation, never by padding
//   - Observable – zap logging and Prometheus metrics behind functional options
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/ - Batch, CostView, forbidden-pair policy, seeded random batches
//	lap/    - single-problem solver, cooperative group kernel, certificates
//	device/ - backend registry, CPU-emulated groups × lanes, barrier
//	batch/  - batch solver strategies (host pool, device), Result
//	config/ - YAML + environment configuration wired into batch.New
//
// Quick example:
//
//	    ┌ 4 1 3 ┐
//	    │ 2 0 5 │   → rows [0 1 2] ↦ cols [1 0 2], cost 5
//	    └ 3 2 2 ┘
//
//	go get github.com/katalvlaran/batchlap
package batchlap
