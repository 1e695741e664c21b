// Package ostrackmutex implements component D: OSTrackMutex. It delegates
// every operation to component B (osmutex) and adds debug-only
// {freed, locked} bookkeeping with the assertion rules from spec.md
// §4.D, except that Init does not check freed (see Init). The checks
// are compiled out entirely in release builds
// via the polymutex.Debug constant, mirroring the source's ut_d/ut_ad
// pattern rather than branching on a runtime flag.
package ostrackmutex

import (
	"go.uber.org/zap"

	"github.com/moontrade/polymutex"
	"github.com/moontrade/polymutex/osmutex"
)

// Mutex is an OS mutex with debug-only ownership tracking layered on
// top. The zero value is usable without touching OS resources, matching
// the zero-initialized-global-instances requirement; Init must still be
// called before Enter/TryLock/Exit.
type Mutex struct {
	impl osmutex.Mutex

	// Logger receives, in debug builds, a DPanic record ahead of every
	// assertion panic. Defaults to
	// zap.NewProduction() on first use if left nil.
	Logger *zap.Logger

	freed  bool
	locked bool
}

func (m *Mutex) logger() *zap.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	m.Logger = l
	return l
}

// Init initializes the underlying OS mutex. require: !locked; after:
// !freed. A zero-value Mutex starts with freed == false, so Init does not
// check freed: a second Init, or Enter on a Mutex that was never
// initialized, is not detected.
func (m *Mutex) Init() {
	if polymutex.Debug {
		if m.locked {
			m.assert("OSTrackMutex.Init called while already locked")
		}
		m.freed = false
	}
	m.impl.Init()
}

// Enter blocks until the lock is acquired. require: !freed; once
// acquired: !locked; after: locked.
func (m *Mutex) Enter() {
	if polymutex.Debug && m.freed {
		m.assert("OSTrackMutex.Enter called on a destroyed mutex")
	}
	m.impl.Enter()
	if polymutex.Debug {
		if m.locked {
			m.assert("OSTrackMutex.Enter acquired a mutex already marked locked")
		}
		m.locked = true
	}
}

// TryLock attempts to acquire the lock without blocking. On success the
// same pre/post conditions as Enter apply.
func (m *Mutex) TryLock() bool {
	if polymutex.Debug && m.freed {
		m.assert("OSTrackMutex.TryLock called on a destroyed mutex")
	}
	ok := m.impl.TryLock()
	if ok && polymutex.Debug {
		if m.locked {
			m.assert("OSTrackMutex.TryLock acquired a mutex already marked locked")
		}
		m.locked = true
	}
	return ok
}

// Exit releases the lock. require: !freed && locked; after: !locked.
func (m *Mutex) Exit() {
	if polymutex.Debug {
		if m.freed {
			m.assert("OSTrackMutex.Exit called on a destroyed mutex")
		}
		if !m.locked {
			m.assert("OSTrackMutex.Exit called without holding the lock")
		}
	}
	m.impl.Exit()
	if polymutex.Debug {
		m.locked = false
	}
}

// Destroy releases the underlying OS mutex. require: !freed && !locked;
// after: freed.
func (m *Mutex) Destroy() {
	if polymutex.Debug {
		if m.freed {
			m.assert("OSTrackMutex.Destroy called twice")
		}
		if m.locked {
			m.assert("OSTrackMutex.Destroy called while still locked")
		}
	}
	m.impl.Destroy()
	if polymutex.Debug {
		m.freed = true
	}
}

// DestroyAtExit asserts !locked, matching the destructor rule: if
// destroy_at_exit is true, require !locked. Callers that intend to leak
// a process-lifetime mutex call this instead of Destroy at shutdown.
func (m *Mutex) DestroyAtExit() {
	if polymutex.Debug && m.locked {
		m.assert("OSTrackMutex destroyed at exit while still locked")
	}
}

func (m *Mutex) assert(msg string) {
	m.logger().DPanic(msg)
	panic(msg)
}

// SpinAdapter wraps a Mutex so it satisfies mutex.Impl, the uniform
// Enter(maxSpins, maxDelay uint32)/LastStats surface the generic
// PolicyMutex facade expects from D/E/F/G alike. OSTrackMutex never
// spins — it blocks on the underlying OS mutex — so the spin/delay
// parameters are accepted and ignored, and LastStats always reports
// zero, matching "acquire cannot fail" but contributing no contention
// bookkeeping of its own.
type SpinAdapter struct {
	Mutex
}

// Enter ignores maxSpins/maxDelay and blocks on the OS mutex.
func (a *SpinAdapter) Enter(maxSpins, maxDelay uint32) {
	a.Mutex.Enter()
}

// LastStats always reports (0, 0): OSTrackMutex never spins or parks on
// a countable wait-array slot.
func (a *SpinAdapter) LastStats() (nSpins, nWaits uint32) {
	return 0, 0
}
