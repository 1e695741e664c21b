// Package policy defines the per-mutex pluggable bookkeeping contract
// from spec.md §3's "Policy record": init/enter/locked/release/add/
// destroy, plus a debug-only IsOwned. The mutex core (mutex.PolicyMutex)
// never inspects a policy's contents; it only calls these hooks at the
// documented points.
package policy

// Policy is generic over Impl, the concrete mutex implementation type
// (ttasmutex.Mutex, ttasfutexmutex.Mutex, ttaseventmutex.Mutex, or
// ostrackmutex.SpinAdapter), matching spec.md §9's note that a policy is
// threaded through its mutex via a type parameter rather than a
// template-template parameter.
type Policy[Impl any] interface {
	// Init records the identifier triple this mutex was created with.
	Init(id uint32, file string, line uint32)

	// Enter is the pre-acquire hook, called before impl.Enter/TryLock is
	// attempted (except for a successful TryLock, see spec.md §4.H).
	Enter(impl *Impl, file string, line uint32)

	// Locked is the post-acquire hook, called once the lock is held.
	Locked(impl *Impl, file string, line uint32)

	// Release is called from PolicyMutex.Exit before impl.Exit runs.
	Release(impl *Impl)

	// Add folds in per-acquisition spin/wait counts. Called by the
	// acquiring goroutine only; policy.Add must be safe for the
	// counters it updates to be read concurrently from other
	// goroutines (e.g. via a diagnostic dump), per spec.md §5's shared-
	// resource policy.
	Add(nSpins, nWaits uint32)

	// Destroy releases any resources the policy itself owns.
	Destroy()

	// IsOwned reports whether the calling goroutine is the current
	// holder, for debug-only ownership assertions. A policy that does
	// not track ownership may always return true.
	IsOwned() bool
}

// NoPolicy is the zero-overhead policy: every hook is a no-op and
// IsOwned always reports true, matching the source's default
// template argument for callers that don't need bookkeeping.
type NoPolicy[Impl any] struct{}

func (NoPolicy[Impl]) Init(uint32, string, uint32) {}
func (NoPolicy[Impl]) Enter(*Impl, string, uint32)  {}
func (NoPolicy[Impl]) Locked(*Impl, string, uint32) {}
func (NoPolicy[Impl]) Release(*Impl)                {}
func (NoPolicy[Impl]) Add(uint32, uint32)           {}
func (NoPolicy[Impl]) Destroy()                     {}
func (NoPolicy[Impl]) IsOwned() bool                { return true }

var _ Policy[int] = NoPolicy[int]{}
