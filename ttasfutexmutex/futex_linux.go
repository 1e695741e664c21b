//go:build linux

package ttasfutexmutex

import (
	"syscall"
	"unsafe"
)

// Linux futex operation numbers, from linux/futex.h. Not exposed by
// golang.org/x/sys/unix as a portable wrapper, so this drops to a raw
// syscall the same way the teacher's netpoll epoll code calls
// syscall.SYS_EVENTFD2 directly for a syscall the standard library
// doesn't wrap.
const (
	futexWaitOp = 0
	futexWakeOp = 1
)

// futexWait blocks the calling goroutine until woken, unless *addr no
// longer equals expected, in which case it returns immediately (the
// three-state swap loop in Enter retries either way).
func futexWait(addr *uint32, expected uint32) {
	// EAGAIN means the word already changed under us; EINTR means a
	// spurious wake. Both cases and a clean wake all fall through to the
	// same place: the caller's loop re-evaluates the word before waiting
	// again.
	syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitOp),
		uintptr(expected),
		0, 0, 0,
	)
}

// futexWake wakes up to n goroutines parked on addr.
func futexWake(addr *uint32, n int) {
	syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakeOp),
		uintptr(n),
		0, 0, 0,
	)
}
