// Package device provides the execution-group runtime used by the
// device-parallel batch solver.
//
// The model mirrors a throughput-oriented accelerator: a launch runs one
// kernel over G execution groups; every group has L lanes that execute the
// same kernel body, share group-local memory, and synchronise only through
// the group's Barrier. Groups never synchronise with each other.
//
// Backends are registered at runtime (RegisterBackend). The package ships a
// CPU backend that emulates groups and lanes with goroutines; it is what
// DefaultBackend returns and what tests use. Hardware backends plug in by
// implementing Backend and Context.
//
// A launch is atomic once dispatched: the context passed to Run is checked
// before any group starts and never mid-kernel.
package device
