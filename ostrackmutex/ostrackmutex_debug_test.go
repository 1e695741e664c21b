//go:build debug

package ostrackmutex

import "testing"

// These exercise spec.md §8 property 7 ("debug assertions fire") and
// only run under `go test -tags debug ./...`; under the default build
// the checked paths compile away and these misuses would corrupt state
// silently instead of panicking.

func TestExitWithoutEnterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Exit without Enter should panic in a debug build")
		}
	}()
	var m Mutex
	m.Init()
	m.Exit()
}

func TestDestroyWhileLockedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Destroy while locked should panic in a debug build")
		}
	}()
	var m Mutex
	m.Init()
	m.Enter()
	m.Destroy()
}

func TestEnterOnFreedMutexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Enter on a freed mutex should panic in a debug build")
		}
	}()
	var m Mutex
	m.freed = true
	m.Enter()
}
