package pfs

import "testing"

func TestNopHookTolerant(t *testing.T) {
	var h Hook = NopHook{}
	handle := h.InitMutex(7, nil)
	if handle != nil {
		t.Fatalf("NopHook.InitMutex should return nil handle")
	}
	locker := h.StartWait(handle, LockOp, "x.go", 1)
	h.EndWait(locker, 0)
	h.Unlock(handle)
	h.DestroyMutex(handle)
}
