package device

import (
	"context"
	"fmt"
	"sync"
)

// Backend is implemented by device backends (CPU emulation, CUDA, …).
// It is responsible for device discovery and context creation.
type Backend interface {
	Info() BackendInfo
	Available() bool
	Devices() ([]DeviceInfo, error)
	NewContext(deviceIndex int, opts ContextOptions) (Context, error)
}

// Context is a backend-specific execution context tied to one device.
type Context interface {
	Device() DeviceInfo

	// Lanes is the lane count every group of this context runs with.
	Lanes() int

	// Run executes body on every lane of every group in [0, groups).
	// ctx is checked once before dispatch; a dispatched launch runs to
	// completion.
	Run(ctx context.Context, groups int, body func(g Group)) error

	Close() error
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// RegisterBackend registers the active backend. Passing nil clears it.
func RegisterBackend(b Backend) {
	backendMu.Lock()
	backend = b
	backendMu.Unlock()
}

// CurrentBackend returns the registered backend, or nil.
func CurrentBackend() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()

	return b
}

// Registered returns the registered backend.
//
// Errors:
//   - ErrNoBackend when nothing is registered.
func Registered() (Backend, error) {
	if b := CurrentBackend(); b != nil {
		return b, nil
	}

	return nil, ErrNoBackend
}

// CurrentBackendInfo reports the currently registered backend, if any.
func CurrentBackendInfo() (BackendInfo, bool) {
	b := CurrentBackend()
	if b == nil {
		return BackendInfo{}, false
	}

	return b.Info(), true
}

// Resolve picks the backend to run on: b when non-nil, else the registered
// backend, else a CPU backend with default settings.
//
// Errors:
//   - ErrBackendUnavailable when the chosen backend is not available.
func Resolve(b Backend) (Backend, error) {
	if b == nil {
		b = CurrentBackend()
	}
	if b == nil {
		b = DefaultBackend()
	}
	if !b.Available() {
		return nil, fmt.Errorf("%s: %w", b.Info().Name, ErrBackendUnavailable)
	}

	return b, nil
}

// Launch runs kernel over groups execution groups on dc. alloc builds the
// group-local memory for group k; it is called once per group by lane 0
// and published to the other lanes through a barrier before kernel starts.
func Launch[L any](ctx context.Context, dc Context, groups int, alloc func(group int) L, kernel func(g Group, local L)) error {
	return dc.Run(ctx, groups, func(g Group) {
		if g.Lane() == 0 {
			g.SetLocal(alloc(g.Index()))
		}
		g.Barrier()
		kernel(g, g.Local().(L))
	})
}
