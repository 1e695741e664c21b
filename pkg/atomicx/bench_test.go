// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package atomicx_test

import (
	"sync/atomic"
	"testing"

	"github.com/moontrade/polymutex/pkg/atomicx"
)

var sink any

func BenchmarkAtomicLoad64(b *testing.B) {
	b.Run("LoadAcq64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			_ = atomicx.LoadAcq64(&x)
		}
	})
	b.Run("atomicx.Load64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			_ = atomicx.Load64(&x)
		}
	})
	b.Run("atomic.LoadUint64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			_ = atomic.LoadUint64(&x)
		}
	})
	b.Run("atomicx.Store64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			atomicx.Store64(&x, 1)
		}
	})
	b.Run("atomicx.Xchg64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			_ = atomicx.Xchg64(&x, 1)
		}
	})
	b.Run("atomicx.Cas64", func(b *testing.B) {
		var x uint64
		for i := 0; i < b.N; i++ {
			_ = atomicx.Cas64(&x, 0, 1)
		}
	})
}

func BenchmarkAtomicAdd32(b *testing.B) {
	var x uint32
	sink = &x
	for i := 0; i < b.N; i++ {
		atomicx.Xadd(&x, 1)
	}
}

func BenchmarkXadd(b *testing.B) {
	var x uint32
	ptr := &x
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			atomicx.Xadd(ptr, 1)
		}
	})
}

func BenchmarkCas(b *testing.B) {
	var x uint32 = 1
	ptr := &x
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			atomicx.Cas(ptr, 1, 0)
			atomicx.Cas(ptr, 0, 1)
		}
	})
}

func BenchmarkXchg(b *testing.B) {
	var x uint32 = 1
	ptr := &x
	b.RunParallel(func(pb *testing.PB) {
		var y uint32 = 1
		for pb.Next() {
			y = atomicx.Xchg(ptr, y)
			y++
		}
	})
}
