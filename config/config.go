// Package config holds the process-wide tuning knobs for the mutex family:
// spin/delay budgets and the rescue-sweep cadence. These mirror the
// latch_id_t-keyed defaults InnoDB spreads across sync0policy.h and
// srv0srv.cc, collapsed into one place since this module has only one
// family of latches rather than a whole engine's worth.
package config

import "time"

var (
	// DefaultMaxSpins is the starting spin budget handed to Enter when the
	// caller does not override it. TTASMutex grows this budget by itself
	// on every scheduler yield; TTASFutexMutex spends it once.
	DefaultMaxSpins uint32 = 30

	// DefaultMaxDelay bounds the randomized pause-cycle count burned
	// between spin attempts. Each "cycle" here is a runtime.Gosched call
	// (see pkg/delay), so this is deliberately small relative to the
	// thousands of CPU-pause cycles the original C spin counts in —
	// Gosched is orders of magnitude more expensive per call.
	DefaultMaxDelay uint32 = 32

	// RescueSweepInterval is how often the wait-array's rescue sweep runs
	// to paper over a potentially lost wakeup on TTASEventMutex. The
	// InnoDB default is one second; see SPEC_FULL.md §7.
	RescueSweepInterval = time.Second

	// EventWaitSpin is the "spin=4" heuristic TTASEventMutex uses in its
	// wait step: after waking from a park it retries TryLock this many
	// times, and adds this many spins to its stats on success.
	// Historical constant, not meant to be re-tuned without benchmarking.
	EventWaitSpin uint32 = 4
)
