//go:build !linux

package ttasfutexmutex

import "runtime"

// futexWait on non-Linux platforms has no kernel primitive to fall back
// to, so it degrades to a scheduler yield: the caller's park-phase loop
// immediately re-attempts the swap. This preserves correctness (the swap
// loop in Enter is safe to spin), but a waiter busy-yields instead of
// sleeping in the kernel.
func futexWait(addr *uint32, expected uint32) {
	runtime.Gosched()
}

// futexWake is a no-op off Linux; there is nothing parked to wake.
func futexWake(addr *uint32, n int) {}
