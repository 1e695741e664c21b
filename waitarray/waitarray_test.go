package waitarray

import (
	"sync/atomic"
	"testing"
	"time"
)

type testWord struct{ v uint32 }

func (w *testWord) Peek() uint32 { return atomic.LoadUint32(&w.v) }

func TestEventSetBeforeWait(t *testing.T) {
	e := NewEvent()
	e.Set()
	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Set was called first")
	}
}

func TestEventWaitThenSet(t *testing.T) {
	e := NewEvent()
	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	e.Set()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake after Set")
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	a := New(4)
	w := &testWord{v: 1}
	s := a.ReserveSlot(w)
	if s == nil {
		t.Fatal("ReserveSlot returned nil")
	}
	a.ReleaseSlot(s)
	if s.inUse {
		t.Fatal("slot still marked in use after release")
	}
}

func TestWaitOnSlotImmediateFree(t *testing.T) {
	a := New(4)
	w := &testWord{v: 0}
	s := a.ReserveSlot(w)
	defer a.ReleaseSlot(s)
	if !s.WaitOnSlot() {
		t.Fatal("WaitOnSlot should return true when lock word already free")
	}
}

func TestWakeIfSemaFree(t *testing.T) {
	a := New(4)
	w := &testWord{v: 1}
	s := a.ReserveSlot(w)
	defer a.ReleaseSlot(s)

	done := make(chan bool)
	go func() { done <- s.WaitOnSlot() }()

	time.Sleep(10 * time.Millisecond)
	atomic.StoreUint32(&w.v, 0)
	a.WakeIfSemaFree()

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("WaitOnSlot returned false after rescue sweep freed the word")
		}
	case <-time.After(time.Second):
		t.Fatal("rescue sweep did not wake parked waiter")
	}
}

func TestOverflowBeyondTableSize(t *testing.T) {
	a := New(1)
	w1, w2 := &testWord{}, &testWord{}
	s1 := a.ReserveSlot(w1)
	s2 := a.ReserveSlot(w2)
	if s1 == s2 {
		t.Fatal("overflow reservation must not alias the pooled slot")
	}
	a.ReleaseSlot(s1)
	a.ReleaseSlot(s2)
}
