package ostrackmutex

import "testing"

func TestEnterExit(t *testing.T) {
	var m Mutex
	m.Init()
	m.Enter()
	m.Exit()
	m.Destroy()
}

func TestTryLockAfterExit(t *testing.T) {
	var m Mutex
	m.Init()
	m.Enter()
	m.Exit()
	if !m.TryLock() {
		t.Fatal("TryLock should succeed after Exit")
	}
	m.Exit()
	m.Destroy()
}

func TestTryLockWhileHeld(t *testing.T) {
	var m Mutex
	m.Init()
	m.Enter()
	if m.TryLock() {
		t.Fatal("TryLock must fail while already held (no reentrancy)")
	}
	m.Exit()
	m.Destroy()
}
