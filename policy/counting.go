package policy

import (
	"sync/atomic"

	"github.com/moontrade/polymutex/pkg/counter"
	"github.com/moontrade/polymutex/pkg/gid"
)

// CountingPolicy tracks contention statistics (total spins, total waits,
// acquisition count) and the owning goroutine, the way the source's
// instrumented policy templates layer PFS counters and ordering checks
// on top of the bare mutex. Ownership is tracked with pkg/gid rather
// than a thread handle, since a goroutine has no stable OS thread
// identity to compare against.
type CountingPolicy[Impl any] struct {
	Name string

	spins   counter.Counter
	waits   counter.Counter
	acquire counter.Counter

	owner int64 // goroutine id of the current holder, 0 when unlocked
}

func (p *CountingPolicy[Impl]) Init(id uint32, file string, line uint32) {}

func (p *CountingPolicy[Impl]) Enter(impl *Impl, file string, line uint32) {
	p.acquire.Incr()
}

func (p *CountingPolicy[Impl]) Locked(impl *Impl, file string, line uint32) {
	atomic.StoreInt64(&p.owner, gid.Current())
}

func (p *CountingPolicy[Impl]) Release(impl *Impl) {
	atomic.StoreInt64(&p.owner, 0)
}

func (p *CountingPolicy[Impl]) Add(nSpins, nWaits uint32) {
	p.spins.Add(int64(nSpins))
	p.waits.Add(int64(nWaits))
}

func (p *CountingPolicy[Impl]) Destroy() {}

func (p *CountingPolicy[Impl]) IsOwned() bool {
	return atomic.LoadInt64(&p.owner) == gid.Current()
}

// Stats returns the running totals: (acquisitions, spins, waits).
func (p *CountingPolicy[Impl]) Stats() (acquisitions, spins, waits int64) {
	return p.acquire.Load(), p.spins.Load(), p.waits.Load()
}

var _ Policy[int] = (*CountingPolicy[int])(nil)
