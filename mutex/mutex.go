// Package mutex implements component H: the PolicyMutex facade, generic
// over a choice of implementation (D ostrackmutex, E ttasmutex, F
// ttasfutexmutex, G ttaseventmutex) and a policy (package policy). It
// follows spec.md §4.H's operation ordering exactly and adds no
// synchronization of its own — every happens-before guarantee comes from
// the wrapped implementation.
//
// The implementation choice is fixed at compile time via two type
// parameters (T, the concrete struct, and PT, *T constrained to the
// method set every D–G type exposes), the "generic wrapper parameterized
// by the implementation type, NOT runtime-polymorphic dispatch" spec.md
// §9 calls for: the indirection a strategy interface would cost is
// exactly what a TTAS mutex exists to avoid.
package mutex

import (
	"github.com/moontrade/polymutex/latch"
	"github.com/moontrade/polymutex/pfs"
	"github.com/moontrade/polymutex/policy"
)

// Impl is the method set every D/E/F/G implementation type exposes
// through its pointer receiver. maxSpins/maxDelay are accepted (and
// ignored) by ostrackmutex.SpinAdapter, which never spins.
type Impl[T any] interface {
	*T
	TryLock() bool
	Enter(maxSpins, maxDelay uint32)
	Exit()
	Destroy()
	LastStats() (nSpins, nWaits uint32)
}

// PolicyMutex is the facade. T is the concrete implementation struct
// (e.g. ttasmutex.Mutex); PT names its pointer type via the Impl
// constraint; Pol is the policy type threaded through every hook call.
//
// Implementation-specific construction that needs more than a zero value
// — ttaseventmutex.Mutex binding to a *waitarray.Array, in particular —
// happens through Impl() before calling Init, since a single type
// parameter can't express a per-type Init signature; see DESIGN.md.
type PolicyMutex[T any, PT Impl[T], Pol policy.Policy[T]] struct {
	impl T
	pol  Pol

	hook   pfs.Hook
	handle pfs.Handle
}

// SetHook installs the instrumentation hook used by every subsequent
// operation. Must be called before Init; defaults to pfs.NopHook{} if
// never called.
func (m *PolicyMutex[T, PT, Pol]) SetHook(hook pfs.Hook) {
	m.hook = hook
}

// Impl returns a pointer to the wrapped implementation so callers can
// perform implementation-specific construction (e.g. G's wait-array
// binding) before Init registers it with instrumentation and the
// policy.
func (m *PolicyMutex[T, PT, Pol]) Impl() *T {
	return &m.impl
}

// Policy returns a pointer to the policy record, for callers that need
// to read accumulated statistics (e.g. policy.CountingPolicy.Stats).
func (m *PolicyMutex[T, PT, Pol]) Policy() *Pol {
	return &m.pol
}

// Init registers the mutex with instrumentation using the registry's PFS
// key for id, then initializes the policy. The implementation itself is
// expected to already be initialized (see Impl).
func (m *PolicyMutex[T, PT, Pol]) Init(id latch.ID, file string, line uint32) {
	if m.hook == nil {
		m.hook = pfs.NopHook{}
	}
	info, _ := latch.Lookup(id)
	m.handle = m.hook.InitMutex(info.PFSKey, PT(&m.impl))
	m.pol.Init(uint32(id), file, line)
}

// Enter begins an instrumentation span, runs the pre-acquire policy
// hook, blocks until the lock is held, runs the post-acquire policy
// hook, folds the implementation's spin/wait stats into the policy, then
// ends the span.
func (m *PolicyMutex[T, PT, Pol]) Enter(maxSpins, maxDelay uint32, file string, line uint32) {
	locker := m.hook.StartWait(m.handle, pfs.LockOp, file, line)

	impl := PT(&m.impl)
	m.pol.Enter(&m.impl, file, line)
	impl.Enter(maxSpins, maxDelay)
	m.pol.Locked(&m.impl, file, line)

	nSpins, nWaits := impl.LastStats()
	m.pol.Add(nSpins, nWaits)

	m.hook.EndWait(locker, 0)
}

// TryLock attempts to acquire without blocking. On success both policy
// hooks fire (in that order, after the lock is held — a failed trylock
// must not be recorded as an ordering event). Returns 0 on success, 1 on
// failure, matching spec.md §4.H's literal return convention.
func (m *PolicyMutex[T, PT, Pol]) TryLock(file string, line uint32) int {
	locker := m.hook.StartWait(m.handle, pfs.TryLockOp, file, line)

	impl := PT(&m.impl)
	rc := 1
	if impl.TryLock() {
		rc = 0
		m.pol.Enter(&m.impl, file, line)
		m.pol.Locked(&m.impl, file, line)
	}

	m.hook.EndWait(locker, rc)
	return rc
}

// Exit ends the instrumentation span first (while the lock is still
// logically held, so a Locked event racing in from the next acquirer
// can never precede this Unlock in a PFS-style trace), then runs the
// release policy hook, then releases the implementation.
func (m *PolicyMutex[T, PT, Pol]) Exit() {
	m.hook.Unlock(m.handle)
	m.pol.Release(&m.impl)
	PT(&m.impl).Exit()
}

// Destroy deregisters instrumentation, destroys the implementation, then
// destroys the policy.
func (m *PolicyMutex[T, PT, Pol]) Destroy() {
	m.hook.DestroyMutex(m.handle)
	PT(&m.impl).Destroy()
	m.pol.Destroy()
}

// IsOwned forwards to the policy. Debug-only by convention; callers
// should gate calls to it behind polymutex.Debug the way ownership
// assertions do elsewhere in this module.
func (m *PolicyMutex[T, PT, Pol]) IsOwned() bool {
	return m.pol.IsOwned()
}
