// Package latch is the engine-wide latch registry: it maps an opaque
// latch id to the display name and Performance-Schema key a mutex needs
// at Init time. The mutex core never interprets these values itself; it
// only looks them up and forwards them to the instrumentation hook (see
// package pfs).
package latch

import "github.com/moontrade/polymutex/pkg/spinlock"

// ID is an opaque enumerated tag identifying a latch's purpose (e.g. "the
// buffer pool chunk mutex", "the trx sys mutex"). Call sites obtain one
// from Register; the zero value ID is reserved and never describes a
// real latch.
type ID uint32

// Unknown is the reserved zero ID. Looking it up always fails.
const Unknown ID = 0

// Info is the per-latch metadata the registry hands back.
type Info struct {
	Name   string
	PFSKey int32
}

// Registry maps latch IDs to Info. The zero value is usable.
//
// Lookups vastly outnumber registrations (latches register once at
// process start and are looked up on every mutex Init), so the registry
// is backed by a reader/writer spinlock rather than a full mutex.
type Registry struct {
	mu   spinlock.RWMutex
	byID map[ID]Info
	next uint32
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]Info)}
}

// Register allocates a new ID for name/pfsKey and returns it. Intended to
// be called from package-level var initializers, one per latch kind, the
// way InnoDB's sync0types.h enumerates latch_id_t values.
func (r *Registry) Register(name string, pfsKey int32) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := ID(r.next)
	if r.byID == nil {
		r.byID = make(map[ID]Info)
	}
	r.byID[id] = Info{Name: name, PFSKey: pfsKey}
	return id
}

// Lookup returns the Info registered for id, or ok=false if id is unknown.
func (r *Registry) Lookup(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byID[id]
	return info, ok
}

// Default is the process-wide registry used by callers that don't need
// isolated registries of their own (tests that want a private latch
// namespace should construct their own Registry instead).
var Default = NewRegistry()

// Register allocates a latch ID in the Default registry.
func Register(name string, pfsKey int32) ID { return Default.Register(name, pfsKey) }

// Lookup resolves id against the Default registry.
func Lookup(id ID) (Info, bool) { return Default.Lookup(id) }
