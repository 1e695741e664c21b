// Package pfs models the Performance-Schema-style instrumentation hook
// the mutex facade (package mutex) drives around every acquire/release.
// It is the Go analogue of InnoDB's PSI_mutex_service_t: a small set of
// callbacks the storage engine calls into, all of which must tolerate a
// nil/no-op Hook since instrumentation is normally disabled.
package pfs

// Op identifies which kind of acquire produced a wait-start event.
type Op uint8

const (
	// LockOp marks a blocking Enter.
	LockOp Op = iota
	// TryLockOp marks a non-blocking TryLock attempt.
	TryLockOp
)

// Locker is an opaque per-wait token returned by StartWait and threaded
// back through the matching EndWait. Hooks are free to define it as
// whatever they need; NopHook never allocates one.
type Locker any

// Handle is the opaque per-mutex registration token InitMutex returns.
// A nil Handle must be accepted everywhere a Handle is passed, and every
// Hook method must treat it as "instrumentation disabled for this mutex."
type Handle any

// Hook is the instrumentation hook the facade calls. Every method must
// tolerate a nil Handle or nil Locker; a Hook that panics on disabled
// instrumentation breaks every mutex that doesn't register one.
type Hook interface {
	// InitMutex registers a newly initialized mutex under pfsKey and
	// returns a handle used by the remaining calls. self is the mutex's
	// own address, passed through unchanged for hooks that key off it.
	InitMutex(pfsKey int32, self any) Handle

	// DestroyMutex deregisters a mutex.
	DestroyMutex(h Handle)

	// StartWait begins an instrumented wait span for the given op,
	// called from file/line, and returns a Locker to pass to EndWait.
	StartWait(h Handle, op Op, file string, line uint32) Locker

	// EndWait closes the span opened by StartWait. rc is 0 on success,
	// nonzero on failure (TryLock returning false).
	EndWait(l Locker, rc int)

	// Unlock records that the mutex was released.
	Unlock(h Handle)
}

// NopHook is the default, zero-cost Hook: every method is a no-op and
// every method tolerates (and returns) nil. Installing no Hook at all is
// equivalent to installing NopHook.
type NopHook struct{}

func (NopHook) InitMutex(int32, any) Handle            { return nil }
func (NopHook) DestroyMutex(Handle)                    {}
func (NopHook) StartWait(Handle, Op, string, uint32) Locker { return nil }
func (NopHook) EndWait(Locker, int)                    {}
func (NopHook) Unlock(Handle)                          {}

var _ Hook = NopHook{}
