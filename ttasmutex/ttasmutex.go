// Package ttasmutex implements component E: TTASMutex, a pure user-space
// spin lock with a growing spin budget that never parks. Unlike the
// other spin variants it never makes a syscall even after exhausting its
// budget: it hands back the processor with runtime.Gosched (the Go
// analogue of the source's sched_yield) and keeps growing the budget by
// the original step, forever, matching the source's "loop forever"
// algorithm in spec.md §4.E.
package ttasmutex

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/moontrade/polymutex/config"
	"github.com/moontrade/polymutex/pkg/delay"
	"github.com/moontrade/polymutex/pkg/nocopy"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// Mutex is the lock word plus cache-line padding so neighboring mutexes
// in an array of latches don't false-share a cache line with this one's
// word, the same concern spec.md §3 raises for "naturally aligned"
// storage.
type Mutex struct {
	_    nocopy.NoCopy
	word uint32
	_    cpu.CacheLinePad

	// nSpins and nWaits record the bookkeeping each Enter call produces
	// for the last caller; PolicyMutex's CountingPolicy reads these via
	// LastStats after every enter.
	nSpins uint32
	nWaits uint32
}

// Init zero-initializes the lock word. Present for symmetry with the
// other components' lifecycle; the zero value is already unlocked.
func (m *Mutex) Init() {
	atomic.StoreUint32(&m.word, unlocked)
}

// TryLock is a CAS of the lock word from unlocked to locked: acquire
// ordering on success, relaxed on failure. Go's sync/atomic is always
// sequentially consistent, a documented over-approximation of the
// source's explicit acquire/relaxed distinction.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.word, unlocked, locked)
}

// Enter implements the spec's exact algorithm: step = maxSpins, n = 0;
// repeat trying the lock and delaying between attempts; every time n
// reaches the current spin budget, yield the scheduler and grow the
// budget by step.
func (m *Mutex) Enter(maxSpins, maxDelay uint32) {
	if maxSpins == 0 {
		maxSpins = config.DefaultMaxSpins
	}
	step := maxSpins
	var n uint32
	for {
		if m.TryLock() {
			atomic.StoreUint32(&m.nSpins, n)
			return
		}
		delay.Spin(maxDelay)
		n++
		if n >= maxSpins {
			runtime.Gosched()
			maxSpins += step
		}
	}
}

// Exit stores unlocked with release ordering.
func (m *Mutex) Exit() {
	atomic.StoreUint32(&m.word, unlocked)
}

// Destroy is a no-op; the lock word needs no external resource release.
func (m *Mutex) Destroy() {}

// LastStats returns the (n_spins, n_waits) pair recorded by the most
// recent Enter on this goroutine's behalf. TTASMutex never parks, so
// n_waits is always 0; it exists so TTASMutex satisfies the same stats
// surface F and G expose to CountingPolicy.
func (m *Mutex) LastStats() (nSpins, nWaits uint32) {
	return atomic.LoadUint32(&m.nSpins), atomic.LoadUint32(&m.nWaits)
}
