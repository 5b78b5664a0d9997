package lap

import "errors"

// Sentinel errors returned by the assignment solvers.
var (
	// ErrInfeasible indicates that min(R,C) matches cannot be reached because
	// every remaining candidate pair of some row is forbidden.
	ErrInfeasible = errors.New("lap: infeasible assignment")

	// ErrNumericInstability indicates that an internal invariant
	// (u[i]+v[j] ≤ cost[i][j]+eps, or equality on matched pairs) was violated.
	// This is a solver/numeric fault, not a property of the input.
	ErrNumericInstability = errors.New("lap: numeric instability")

	// ErrBadState indicates a State or Assignment whose dimensions do not
	// match the cost view it is used with.
	ErrBadState = errors.New("lap: state does not match cost view")
)
