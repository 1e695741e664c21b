package ttaseventmutex

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moontrade/polymutex/waitarray"
)

func newMutex(t *testing.T) *Mutex {
	t.Helper()
	var m Mutex
	m.Init(waitarray.New(8))
	return &m
}

func TestSingleThreadMillionIncrements(t *testing.T) {
	m := newMutex(t)
	x := 0
	for i := 0; i < 1_000_000; i++ {
		m.Enter(30, 4)
		x++
		m.Exit()
	}
	if x != 1_000_000 {
		t.Fatalf("x = %d, want 1000000", x)
	}
}

func TestEightThreadsMutualExclusion(t *testing.T) {
	m := newMutex(t)
	const goroutines = 8
	const perGoroutine = 100_000
	x := 0
	var inSection int32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				m.Enter(30, 4)
				if inSection != 0 {
					t.Error("critical section entered concurrently")
				}
				inSection = 1
				x++
				inSection = 0
				m.Exit()
			}
		}()
	}
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("did not complete within 10 seconds")
	}
	if x != goroutines*perGoroutine {
		t.Fatalf("x = %d, want %d", x, goroutines*perGoroutine)
	}
}

func TestTryLockNotReentrant(t *testing.T) {
	m := newMutex(t)
	m.Enter(30, 4)
	if m.TryLock() {
		t.Fatal("TryLock must fail while holder already owns the lock")
	}
	m.Exit()
}

func TestTryLockAfterExit(t *testing.T) {
	m := newMutex(t)
	m.Enter(30, 4)
	m.Exit()
	if !m.TryLock() {
		t.Fatal("TryLock should succeed after Exit")
	}
	m.Exit()
}

// TestParkedWaiterWakes exercises S5: a holder releases after 200ms and
// a waiter that entered with maxSpins 0 (which Enter replaces with
// config.DefaultMaxSpins before it parks) must observe the release
// within 250ms of the test's start.
func TestParkedWaiterWakes(t *testing.T) {
	m := newMutex(t)
	m.Enter(30, 4)

	start := time.Now()
	woke := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Enter(0, 4)
		close(woke)
		m.Exit()
	}()

	time.Sleep(200 * time.Millisecond)
	m.Exit()

	select {
	case <-woke:
		if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
			t.Fatalf("waiter woke after %v, want <= 250ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("parked waiter never woke")
	}
}

func TestLockedAndStateAccessors(t *testing.T) {
	m := newMutex(t)
	if m.Locked() {
		t.Fatal("Locked should be false before Enter")
	}
	if m.State() != unlocked {
		t.Fatalf("State() = %d, want unlocked", m.State())
	}
	m.Enter(30, 4)
	if !m.Locked() {
		t.Fatal("Locked should be true while held")
	}
	if m.State() != locked {
		t.Fatalf("State() = %d, want locked", m.State())
	}
	m.Exit()
	if m.Locked() {
		t.Fatal("Locked should be false after Exit")
	}
}

func TestEventAccessorDuringPark(t *testing.T) {
	m := newMutex(t)
	m.Enter(0, 0)

	seen := make(chan bool, 1)
	parked := make(chan struct{})
	go func() {
		m.Enter(0, 0)
		m.Exit()
	}()

	go func() {
		for i := 0; i < 200; i++ {
			if m.Event() != nil {
				seen <- true
				close(parked)
				return
			}
			time.Sleep(time.Millisecond)
		}
		seen <- false
		close(parked)
	}()

	<-parked
	if !<-seen {
		t.Fatal("Event() never observed a non-nil handle while a goroutine was parked")
	}
	m.Exit()
}

func TestRescueSweepWakesLostSignal(t *testing.T) {
	array := waitarray.New(4)
	var m Mutex
	m.Init(array)

	m.Enter(0, 0)

	done := make(chan struct{})
	go func() {
		m.Enter(0, 0)
		close(done)
		m.Exit()
	}()

	time.Sleep(20 * time.Millisecond)
	// Release directly through the lock word without going through
	// Exit's own signal path, simulating the lost-wakeup case the
	// rescue sweep exists to cover.
	atomic.StoreUint32(&m.word, unlocked)
	array.WakeIfSemaFree()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("rescue sweep never woke the parked waiter")
	}
}
