// Package gid recovers the calling goroutine's runtime id for debug-only
// ownership checks (who holds this mutex). It deliberately avoids mirroring
// runtime.g/m/p layouts with unsafe.Pointer casts, the way the rest of the
// internal package family does for goroutine/processor ids: that approach
// breaks silently across Go point releases, and an ownership check that is
// only ever compiled into debug builds is not worth that fragility.
// Parsing the id out of runtime.Stack is slower but stable across versions.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the id of the calling goroutine. It is for debug-only
// lock-ownership bookkeeping and must never sit on a hot path.
func Current() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if i := bytes.Index(b, []byte(prefix)); i >= 0 {
		b = b[i+len(prefix):]
	}
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}
