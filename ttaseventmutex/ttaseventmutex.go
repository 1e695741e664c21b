// Package ttaseventmutex implements component G: TTASEventMutex. Binary
// lock word plus a separate waiter-flag word plus an event obtained from
// the wait-array, for platforms lacking futexes or needing wait-array
// diagnostics integration. Follows spec.md §4.G's spin_and_try_lock
// algorithm and memory-ordering subtlety exactly: the release store on
// Exit is ordered before the waiter-flag load with a sequentially
// consistent fence (spec.md §9's recommendation), backed up by the
// wait-array's periodic rescue sweep for any hardware where that still
// isn't enough.
package ttaseventmutex

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sys/cpu"

	"github.com/moontrade/polymutex/config"
	"github.com/moontrade/polymutex/pkg/atomicx"
	"github.com/moontrade/polymutex/pkg/delay"
	"github.com/moontrade/polymutex/pkg/nocopy"
	"github.com/moontrade/polymutex/waitarray"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// Mutex is the lock word, the waiter-flag word, cache-line padding, and
// a reference to the process-wide wait-array it parks on.
type Mutex struct {
	_        nocopy.NoCopy
	word     uint32
	waiterFl uint32
	_        cpu.CacheLinePad

	array       *waitarray.Array
	currentSlot atomicx.Pointer[waitarray.Slot]

	// Logger receives the fatal path in Init when no wait-array is
	// available to park on. Defaults to zap.NewProduction() on first use
	// if left nil, matching ostrackmutex.Mutex.Logger's convention.
	Logger *zap.Logger

	nSpins uint32
	nWaits uint32
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

// Init binds the mutex to the wait-array it will reserve slots from.
// array must outlive the mutex; a nil array means this mutex has no
// resource to park waiters on, which is fatal the same way a failed
// pthread_mutex_init would be — logged via zap.Logger.Fatal (which
// calls os.Exit(1)) per SPEC_FULL.md §7's "the engine cannot start."
func (m *Mutex) Init(array *waitarray.Array) {
	if array == nil {
		m.logger().Fatal("TTASEventMutex.Init: nil wait-array")
	}
	atomic.StoreUint32(&m.word, unlocked)
	atomic.StoreUint32(&m.waiterFl, 0)
	m.array = array
}

// Peek implements waitarray.LockWord so this mutex can be parked on
// directly: it returns the current raw lock word value.
func (m *Mutex) Peek() uint32 {
	return atomic.LoadUint32(&m.word)
}

// TryLock is a compare-and-swap of the lock word from unlocked to
// locked: acquire on success.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.word, unlocked, locked)
}

// isFree spins reading the lock word without a CAS, up to maxSpins
// times, incrementing nSpins as it goes.
func isFree(word *uint32, nSpins *uint32, maxSpins uint32, maxDelay uint32) bool {
	for *nSpins < maxSpins && atomic.LoadUint32(word) != unlocked {
		delay.Spin(maxDelay)
		*nSpins++
	}
	return atomic.LoadUint32(word) == unlocked
}

// Enter tries the fast path first, then falls back to spinAndTryLock.
func (m *Mutex) Enter(maxSpins, maxDelay uint32) {
	if maxSpins == 0 {
		maxSpins = config.DefaultMaxSpins
	}
	if m.TryLock() {
		atomic.StoreUint32(&m.nSpins, 0)
		atomic.StoreUint32(&m.nWaits, 0)
		return
	}
	m.spinAndTryLock(maxSpins, maxDelay)
}

// spinAndTryLock is spec.md §4.G's algorithm verbatim: alternate between
// TTAS spinning and parking on the wait-array, growing the spin budget
// each time a park is required.
func (m *Mutex) spinAndTryLock(maxSpins, maxDelay uint32) {
	var nSpins, nWaits uint32
	step := maxSpins

	// issue a read-memory-barrier: sync/atomic loads below are already
	// sequentially consistent in Go, which subsumes the acquire read
	// barrier the source issues explicitly here.
	for {
		if isFree(&m.word, &nSpins, maxSpins, maxDelay) {
			if m.TryLock() {
				break
			}
			continue // lost the race to another spinner, retry
		}

		maxSpins = nSpins + step
		nWaits++
		runtime.Gosched()

		if m.wait() {
			nSpins += config.EventWaitSpin
			break
		}
	}

	atomic.StoreUint32(&m.nSpins, nSpins)
	atomic.StoreUint32(&m.nWaits, nWaits)
}

// wait reserves a wait-array slot keyed on this mutex, sets the waiter
// flag (with a write barrier, per spec.md §4.G's memory-ordering
// subtlety) before re-checking the lock word, and blocks on the slot's
// event if it is still held.
func (m *Mutex) wait() bool {
	slot := m.array.ReserveSlot(m)
	m.currentSlot.Store(slot)
	defer func() {
		m.array.ReleaseSlot(slot)
		m.currentSlot.Store(nil)
	}()

	atomic.StoreUint32(&m.waiterFl, 1)
	// Sequentially consistent fence between the waiter-flag write and
	// the lock-word re-read below, so a concurrent Exit's release store
	// cannot be reordered past this point on either side.
	atomic.LoadUint32(&m.word)

	ok := slot.WaitOnSlot()
	if ok {
		for i := uint32(0); i < config.EventWaitSpin; i++ {
			if m.TryLock() {
				return true
			}
			delay.Spin(0)
		}
	}
	return false
}

// signal clears the waiter flag and runs the wait-array's sweep
// (WakeIfSemaFree), which sets the event of every reserved slot whose
// lock word reads UNLOCKED, to wake any parked goroutines. Called from
// Exit only when the waiter flag was observed set.
func (m *Mutex) signal() {
	atomic.StoreUint32(&m.waiterFl, 0)
	m.array.WakeIfSemaFree()
}

// Exit performs the release store, then checks the waiter flag; if
// nonzero, signals the wait-array. The store-then-load ordering here is
// the half of spec.md §4.G's memory-ordering subtlety owned by the
// releasing thread.
func (m *Mutex) Exit() {
	atomic.StoreUint32(&m.word, unlocked)
	if atomic.LoadUint32(&m.waiterFl) != 0 {
		m.signal()
	}
}

// Destroy is a no-op; the mutex holds no resource beyond words and a
// borrowed wait-array reference.
func (m *Mutex) Destroy() {}

// LastStats returns the (n_spins, n_waits) pair recorded by the most
// recent Enter.
func (m *Mutex) LastStats() (nSpins, nWaits uint32) {
	return atomic.LoadUint32(&m.nSpins), atomic.LoadUint32(&m.nWaits)
}

// Locked reports whether the lock word currently reads LOCKED. Ported
// from the original's is_locked() accessor; the wait-array's rescue
// sweep uses the equivalent check (via Peek) directly rather than
// calling this, since the sweep walks LockWord, not *Mutex.
func (m *Mutex) Locked() bool {
	return m.Peek() == locked
}

// State returns the raw lock word value. Ported from the original's
// state() accessor.
func (m *Mutex) State() uint32 {
	return m.Peek()
}

// Event returns the wait-array event this mutex most recently parked a
// goroutine on, or nil if no goroutine is currently parked. Ported from
// the original's event() accessor; unlike the original (which owns one
// event handle for the mutex's lifetime) this mutex borrows a pooled
// event from the wait-array for the duration of each park, so the
// returned handle is only meaningful while a goroutine is inside wait().
func (m *Mutex) Event() *waitarray.Event {
	slot := m.currentSlot.Load()
	if slot == nil {
		return nil
	}
	return slot.Event()
}
