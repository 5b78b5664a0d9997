package device

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCPULanes is the lane count of CPU-emulated groups.
	DefaultCPULanes = 4

	// MaxCPULanes bounds ContextOptions.Lanes on the CPU backend.
	MaxCPULanes = 256
)

// CPUConfig configures the CPU backend. Zero values select defaults.
type CPUConfig struct {
	Lanes        int // lanes per group (DefaultCPULanes)
	ComputeUnits int // concurrently running groups (runtime.NumCPU())
}

// CPUBackend emulates a device with goroutines: each group runs on its own
// set of lane goroutines, at most ComputeUnits groups at a time.
type CPUBackend struct {
	cfg    CPUConfig
	device DeviceInfo
}

var _ Backend = (*CPUBackend)(nil)

// NewCPUBackend returns a CPU backend with a single emulated device.
func NewCPUBackend(cfg CPUConfig) *CPUBackend {
	if cfg.Lanes <= 0 {
		cfg.Lanes = DefaultCPULanes
	}
	if cfg.Lanes > MaxCPULanes {
		cfg.Lanes = MaxCPULanes
	}
	if cfg.ComputeUnits <= 0 {
		cfg.ComputeUnits = runtime.NumCPU()
	}

	return &CPUBackend{
		cfg: cfg,
		device: DeviceInfo{
			Name:         "cpu",
			Vendor:       "batchlap",
			Driver:       "goroutine",
			MaxLanes:     MaxCPULanes,
			ComputeUnits: cfg.ComputeUnits,
		},
	}
}

// DefaultBackend returns a CPU backend with default settings.
func DefaultBackend() *CPUBackend { return NewCPUBackend(CPUConfig{}) }

// RegisterCPUBackend registers a CPU backend as the active backend.
func RegisterCPUBackend(cfg CPUConfig) { RegisterBackend(NewCPUBackend(cfg)) }

func (b *CPUBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "cpu",
		Version:     "1",
		Description: "goroutine-emulated execution groups",
	}
}

func (b *CPUBackend) Available() bool { return true }

func (b *CPUBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{b.device}, nil
}

func (b *CPUBackend) NewContext(deviceIndex int, opts ContextOptions) (Context, error) {
	if deviceIndex != 0 {
		return nil, fmt.Errorf("cpu backend: device index %d: %w", deviceIndex, ErrBadLaunch)
	}
	lanes := opts.Lanes
	if lanes == 0 {
		lanes = b.cfg.Lanes
	}
	if lanes < 0 || lanes > MaxCPULanes {
		return nil, fmt.Errorf("cpu backend: lanes=%d: %w", lanes, ErrBadLaunch)
	}
	groups := opts.MaxConcurrentGroups
	if groups <= 0 {
		groups = b.cfg.ComputeUnits
	}

	return &cpuContext{device: b.device, lanes: lanes, maxGroups: groups}, nil
}

type cpuContext struct {
	device    DeviceInfo
	lanes     int
	maxGroups int
	closed    atomic.Bool
}

func (c *cpuContext) Device() DeviceInfo { return c.device }

func (c *cpuContext) Lanes() int { return c.lanes }

func (c *cpuContext) Close() error {
	c.closed.Store(true)

	return nil
}

// Run dispatches every group and waits for all of them. A failing group
// does not stop its siblings; the first group error is returned. ctx is only
// checked before dispatch: a launch is atomic once started.
func (c *cpuContext) Run(ctx context.Context, groups int, body func(g Group)) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	if groups < 0 {
		return fmt.Errorf("groups=%d: %w", groups, ErrBadLaunch)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var eg errgroup.Group
	eg.SetLimit(c.maxGroups)
	for k := 0; k < groups; k++ {
		k := k
		eg.Go(func() error { return c.runGroup(k, body) })
	}

	return eg.Wait()
}

func (c *cpuContext) runGroup(index int, body func(g Group)) error {
	grp := &cpuGroup{index: index, lanes: c.lanes, bar: newBarrier(c.lanes)}
	errs := make([]error, c.lanes)

	var wg sync.WaitGroup
	for l := 0; l < c.lanes; l++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					grp.bar.Break()
					if _, ok := r.(barrierBroken); !ok {
						errs[lane] = fmt.Errorf("%w: group %d lane %d: %v", ErrKernelPanic, index, lane, r)
					}
				}
			}()
			body(cpuLane{grp: grp, lane: lane})
		}(l)
	}
	wg.Wait()

	return errors.Join(errs...)
}

type cpuGroup struct {
	index int
	lanes int
	bar   *barrier
	local any // written by one lane before a barrier, read after it
}

type cpuLane struct {
	grp  *cpuGroup
	lane int
}

var _ Group = cpuLane{}

func (l cpuLane) Index() int     { return l.grp.index }
func (l cpuLane) Lane() int      { return l.lane }
func (l cpuLane) Lanes() int     { return l.grp.lanes }
func (l cpuLane) Barrier()       { l.grp.bar.Wait() }
func (l cpuLane) Local() any     { return l.grp.local }
func (l cpuLane) SetLocal(v any) { l.grp.local = v }
