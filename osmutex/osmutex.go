// Package osmutex implements component B: a thin adapter over the
// platform's native blocking mutex. In the source this wraps
// pthread_mutex_t / CRITICAL_SECTION; in Go the natural "native OS
// mutex" is sync.Mutex, which already delegates to the runtime's futex-
// based semaphore implementation on platforms that have one. The
// adapter exists so higher layers (OSTrackMutex) depend on a fixed
// init/destroy/enter/try_lock/exit shape rather than on sync.Mutex
// directly, mirroring the source's own OSMutex wrapper around the raw OS
// primitive.
package osmutex

import "sync"

// Mutex is the zero-initializable OS mutex adapter. The zero value is
// usable without a call to Init, matching the "zero-initialized global
// instances" requirement: construction must not touch OS resources.
type Mutex struct {
	mu sync.Mutex
}

// Init is a no-op for sync.Mutex-backed instances; it exists so callers
// that are generic over the mutex implementation have a uniform
// lifecycle entry point.
func (m *Mutex) Init() {}

// Enter blocks until the lock is acquired.
func (m *Mutex) Enter() { m.mu.Lock() }

// TryLock attempts to acquire the lock without blocking. Returns true on
// success.
func (m *Mutex) TryLock() bool { return m.mu.TryLock() }

// Exit releases the lock. The caller must hold it.
func (m *Mutex) Exit() { m.mu.Unlock() }

// Destroy is a no-op; sync.Mutex holds no OS resources to release.
func (m *Mutex) Destroy() {}
