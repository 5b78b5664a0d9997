package device

import "sync"

// barrierBroken is the panic value used to release lanes parked on a
// barrier whose group has failed. Lane wrappers recover it silently.
type barrierBroken struct{}

// barrier is a reusable (cyclic) barrier for the lanes of one group.
// Wait publishes every write made before it to all lanes returning from it
// (mutex-based happens-before).
type barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
	broken     bool
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Wait blocks until parties lanes have called Wait for the current
// generation. It panics with barrierBroken if the barrier is broken.
func (b *barrier) Wait() {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		panic(barrierBroken{})
	}
	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		b.mu.Unlock()

		return
	}
	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	broken := gen == b.generation // released by Break, not by the last lane
	b.mu.Unlock()
	if broken {
		panic(barrierBroken{})
	}
}

// Break releases every waiting lane and makes future Waits panic.
func (b *barrier) Break() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
