package device

// DeviceInfo describes a compute device.
type DeviceInfo struct {
	Name         string
	Vendor       string
	Driver       string
	MemoryMB     int
	MaxLanes     int // upper bound for ContextOptions.Lanes
	ComputeUnits int // groups that can run concurrently
}

// BackendInfo describes a backend implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
}

// ContextOptions controls context creation.
type ContextOptions struct {
	// Lanes per execution group; 0 selects the backend default.
	Lanes int

	// MaxConcurrentGroups bounds how many groups run at once; 0 selects the
	// device's ComputeUnits.
	MaxConcurrentGroups int
}

// Group is the per-lane handle a kernel body receives.
//
// Lanes of one group share the value stored with SetLocal (group-local
// memory). Writes made before Barrier() are visible to every lane of the
// group after it returns.
type Group interface {
	// Index is the group index in [0, groups).
	Index() int

	// Lane is this lane's index in [0, Lanes()).
	Lane() int

	// Lanes is the number of lanes in the group.
	Lanes() int

	// Barrier blocks until every lane of the group has called it.
	Barrier()

	// Local returns the group-local value.
	Local() any

	// SetLocal stores the group-local value. Conventionally only lane 0
	// calls it, followed by a Barrier.
	SetLocal(v any)
}

// Stripe returns the half-open range [lo, hi) of n items owned by lane when
// n items are split into contiguous stripes across lanes. Stripes are in
// ascending lane order and differ in size by at most one.
func Stripe(n, lane, lanes int) (lo, hi int) {
	if lanes <= 0 {
		return 0, n
	}
	q, r := n/lanes, n%lanes
	lo = lane*q + min(lane, r)
	hi = lo + q
	if lane < r {
		hi++
	}

	return lo, hi
}
