package osmutex

import "testing"

func TestEnterExit(t *testing.T) {
	var m Mutex
	m.Enter()
	m.Exit()
}

func TestTryLock(t *testing.T) {
	var m Mutex
	if !m.TryLock() {
		t.Fatal("TryLock should succeed on an unheld mutex")
	}
	if m.TryLock() {
		t.Fatal("TryLock should fail while already held")
	}
	m.Exit()
	if !m.TryLock() {
		t.Fatal("TryLock should succeed again after Exit")
	}
	m.Exit()
}

func TestZeroValueUsable(t *testing.T) {
	var m Mutex
	m.Destroy()
	m.Init()
	m.Enter()
	m.Exit()
}
