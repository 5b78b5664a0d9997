// Package batch solves many independent linear assignment problems at once.
//
// 🚀 What & Why
//
//	A *matrix.Batch holds B cost matrices of one shape R×C. A Solver returns
//	a Result with one optimal assignment (or an error status) per element.
//	Elements never influence each other: an infeasible or faulty element is
//	reported in its own Status slot while its siblings complete normally.
//
// ⚙️ Execution strategies
//
//	Config.Execution selects how the batch is processed. Every strategy gives
//	the same assignments bit for bit:
//	  - SequentialHost  : a pool of Config.Workers goroutines pulls element
//	                      indices from a shared queue; each element is one
//	                      full lap.SolveWithState with a reused lap.State.
//	                      Cancellation is honoured between elements.
//	  - ParallelDevice  : one execution group per element on a device.Backend
//	                      (the goroutine-emulated CPU device by default); the
//	                      lanes of a group cooperate on a single solve via
//	                      lap.SolveGroup. A launch is atomic: the context is
//	                      only checked before dispatch.
//	  - Auto            : ParallelDevice when a backend is registered (or
//	                      passed with WithBackend) and available, otherwise
//	                      SequentialHost.
//
// ❗ Errors
//
//	Call-wide and before any solving:
//	  - ErrShapeMismatch (wrapping the matrix error) for malformed batches.
//	  - ErrInvalidConfig for unknown enums or negative counts.
//	Per element (Result.Status):
//	  - StatusInfeasible   : some row has only forbidden pairs left.
//	  - StatusNumericFault : the optimality certificate failed. Faults are
//	    additionally surfaced as a *FaultError from Solve, so they are never
//	    mistaken for infeasibility.
//	  - StatusCanceled     : the element was never started because ctx ended;
//	    Solve then also returns ctx.Err().
//
// 📈 Observability
//
//	WithLogger attaches a zap logger (debug per call, warn per infeasible
//	element, error per fault); WithPrometheus registers solver metrics.
package batch
