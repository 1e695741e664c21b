// Package waitarray is the engine-wide table that TTASEventMutex (component
// G) uses to park and wake goroutines: a fixed slot table, one Event per
// slot, and a rescue sweep that re-checks every reserved slot's lock word
// so a wakeup lost to weak memory ordering is bounded by a sweep interval
// rather than lost forever. This is the "wait-array (consumed, G only)"
// collaborator described in SPEC_FULL.md §6; TTASFutexMutex (component F)
// parks on the futex word directly and never touches this package.
package waitarray

import (
	"sync"
	"time"

	"github.com/moontrade/polymutex/config"
	"github.com/moontrade/polymutex/pkg/spinlock"
)

// LockWord is the minimal view a slot needs of the mutex it is watching:
// a way to peek at the current word without taking the mutex's own lock.
// UNLOCKED must be the zero value.
type LockWord interface {
	// Peek returns the current raw lock word value.
	Peek() uint32
}

// Event is a one-shot wakeable object: goroutines call Wait to park until
// some other goroutine calls Set, then Reset rearms it. This mirrors
// component C's create/destroy/reset/wait/set contract; wake-all
// semantics satisfy the spec's "at-least-one wake is sufficient" note.
type Event struct {
	mu   sync.Mutex
	cond *sync.Cond
	set  bool
}

// NewEvent constructs an Event ready to wait on. There is no separate
// "create" step returning a handle — the handle is the *Event itself,
// which is the idiomatic Go equivalent of the C API's opaque handle.
func NewEvent() *Event {
	e := &Event{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Reset clears a previously-set Event so the next Wait call blocks again.
func (e *Event) Reset() {
	e.mu.Lock()
	e.set = false
	e.mu.Unlock()
}

// Set wakes every goroutine currently parked in Wait, and any goroutine
// that calls Wait before the next Reset returns immediately.
func (e *Event) Set() {
	e.mu.Lock()
	e.set = true
	e.mu.Unlock()
	e.cond.Broadcast()
}

// Wait blocks until Set is called (or has already been called since the
// last Reset).
func (e *Event) Wait() {
	e.mu.Lock()
	for !e.set {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

// Destroy releases resources held by the Event. Events built entirely on
// sync.Cond need no explicit teardown; the method exists to keep the
// create/destroy/reset/wait/set contract complete and symmetrical with
// the OS event handles a native port would hold.
func (e *Event) Destroy() {}

// Slot is a single reservation in the wait array: the mutex being waited
// on plus the Event used to park on it.
type Slot struct {
	event  *Event
	word   LockWord
	inUse  bool
}

// Array is the fixed-size table of slots. A slot is claimed by
// ReserveSlot for the duration of one park attempt and given back with
// ReleaseSlot; the rescue sweep walks every currently-reserved slot.
//
// The free-list critical section is a handful of slice operations, held
// for far less time than a goroutine park would cost to set up, so it is
// guarded by pkg/spinlock.Mutex rather than sync.Mutex — the same
// fast-critical-section trade the teacher built that type for.
type Array struct {
	mu    spinlock.Mutex
	slots []*Slot
	free  []int
}

// New builds an Array with room for size concurrent waiters. size should
// be comfortably above the expected number of simultaneously-parked
// goroutines; ReserveSlot falls back to an unpooled Event if the table is
// exhausted rather than block the caller.
func New(size int) *Array {
	a := &Array{slots: make([]*Slot, size), free: make([]int, size)}
	for i := range a.slots {
		a.slots[i] = &Slot{event: NewEvent()}
		a.free[i] = size - 1 - i
	}
	return a
}

// ReserveSlot claims a slot bound to word, resets its event, and returns
// it. Callers must call ReleaseSlot when done, whether or not Wait
// observed a wakeup.
func (a *Array) ReserveSlot(word LockWord) *Slot {
	a.mu.Lock()
	var s *Slot
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s = a.slots[idx]
	} else {
		s = &Slot{event: NewEvent()}
	}
	a.mu.Unlock()

	s.word = word
	s.inUse = true
	s.event.Reset()
	return s
}

// ReleaseSlot returns a pooled slot to the free list. Unpooled overflow
// slots (created when the table was exhausted) are simply dropped.
func (a *Array) ReleaseSlot(s *Slot) {
	s.inUse = false
	s.word = nil

	a.mu.Lock()
	for i, slot := range a.slots {
		if slot == s {
			a.free = append(a.free, i)
			break
		}
	}
	a.mu.Unlock()
}

// Event returns the slot's underlying wakeable object, for callers that
// need the raw handle (e.g. TTASEventMutex.Event's ported accessor).
func (s *Slot) Event() *Event {
	return s.event
}

// WaitOnSlot re-checks the lock word once more (the caller has already set
// the waiter flag by this point) and, if it is still held, parks on the
// slot's event. It returns true if the lock word became UNLOCKED either
// on the recheck or immediately after waking, false if the caller should
// re-enter its outer spin loop.
func (s *Slot) WaitOnSlot() bool {
	if s.word.Peek() == 0 {
		return true
	}
	s.event.Wait()
	return s.word.Peek() == 0
}

// WakeIfSemaFree is the rescue sweep: it walks every reserved slot and
// wakes its event if the slot's lock word currently reads UNLOCKED. It is
// meant to be invoked periodically (see RunRescueSweep) to bound the
// worst case where a release's store and a parker's waiter-flag write
// race past each other on weakly-ordered hardware.
func (a *Array) WakeIfSemaFree() {
	a.mu.Lock()
	slots := make([]*Slot, 0, len(a.slots))
	for _, s := range a.slots {
		if s.inUse {
			slots = append(slots, s)
		}
	}
	a.mu.Unlock()

	for _, s := range slots {
		if s.word != nil && s.word.Peek() == 0 {
			s.event.Set()
		}
	}
}

// RunRescueSweep runs WakeIfSemaFree on config.RescueSweepInterval until
// stop is closed. Callers own the goroutine's lifetime via stop; this
// stands in for the engine's master timer thread that the source
// describes invoking wake_if_sema_free.
func (a *Array) RunRescueSweep(stop <-chan struct{}) {
	t := time.NewTicker(config.RescueSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			a.WakeIfSemaFree()
		}
	}
}
