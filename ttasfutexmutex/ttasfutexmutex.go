// Package ttasfutexmutex implements component F: TTASFutexMutex, a
// three-state (UNLOCKED, LOCKED, WAITERS) lock word backed by Linux futex
// wait/wake. The platform-specific park/wake calls live in
// futex_linux.go and futex_other.go (build-tagged); this file holds the
// state machine and algorithm shared by both, following spec.md §4.F
// exactly, including the documented asymmetry that the spin budget is
// spent once and does not grow on failure (unlike E and G) — an
// explicit Open Question the spec says not to "fix" without
// measurement.
package ttasfutexmutex

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/moontrade/polymutex/config"
	"github.com/moontrade/polymutex/pkg/delay"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
	waiters  uint32 = 2
)

// Mutex is the futex word plus cache-line padding and per-call stats.
type Mutex struct {
	word uint32
	_    cpu.CacheLinePad

	nSpins uint32
	nWaits uint32
}

// Init zero-initializes the lock word.
func (m *Mutex) Init() {
	atomic.StoreUint32(&m.word, unlocked)
}

// TryLock is a CAS from unlocked to locked, acquire on success.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.word, unlocked, locked)
}

// Enter runs the spin phase followed by the park phase exactly as
// spec.md §4.F describes.
func (m *Mutex) Enter(maxSpins, maxDelay uint32) {
	if maxSpins == 0 {
		maxSpins = config.DefaultMaxSpins
	}

	for i := uint32(0); i < maxSpins; i++ {
		if m.TryLock() {
			atomic.StoreUint32(&m.nSpins, i)
			atomic.StoreUint32(&m.nWaits, 0)
			return
		}
		delay.Spin(maxDelay)
	}

	var nWaits uint32
	for {
		prev := atomic.SwapUint32(&m.word, waiters)
		if prev == unlocked {
			atomic.StoreUint32(&m.nSpins, maxSpins)
			atomic.StoreUint32(&m.nWaits, nWaits)
			return
		}
		nWaits++
		futexWait(&m.word, waiters)
	}
}

// Exit atomically swaps the word to unlocked with release ordering; if
// the previous value was waiters, it wakes one parked goroutine. The
// swap (rather than a plain store) is required so a concurrent parker
// cannot miss the unlocked transition between its load and its futex
// wait call.
func (m *Mutex) Exit() {
	prev := atomic.SwapUint32(&m.word, unlocked)
	if prev == waiters {
		futexWake(&m.word, 1)
	}
}

// Destroy is a no-op; the futex word needs no external resource release.
func (m *Mutex) Destroy() {}

// LastStats returns the (n_spins, n_waits) pair recorded by the most
// recent Enter.
func (m *Mutex) LastStats() (nSpins, nWaits uint32) {
	return atomic.LoadUint32(&m.nSpins), atomic.LoadUint32(&m.nWaits)
}
