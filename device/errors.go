package device

import "errors"

// Sentinel errors returned by device backends.
var (
	// ErrNoBackend is returned when no backend is registered.
	ErrNoBackend = errors.New("device: no backend registered")

	// ErrBackendUnavailable is returned when the registered backend reports
	// Available()==false.
	ErrBackendUnavailable = errors.New("device: backend unavailable")

	// ErrBadLaunch is returned for invalid launch parameters (negative group
	// count, non-positive lane count, bad device index).
	ErrBadLaunch = errors.New("device: invalid launch configuration")

	// ErrKernelPanic is returned when a lane panicked; the other lanes of its
	// group are released from their barrier and the launch fails.
	ErrKernelPanic = errors.New("device: kernel panic")

	// ErrContextClosed is returned by Run on a closed Context.
	ErrContextClosed = errors.New("device: context closed")
)
