// Package brng provides the polymorphic raw-generator abstraction
// ("basic random number generator") that every concrete algorithm in this
// module — mt19937, threefry, xoshiro — plugs into. A Handle is the
// uniform, vtable-style consumer surface: an opaque Engine plus four bound
// function slots plus a lock, exactly as described in spec §3/§4.1.
package brng

import "sync"

// Engine is the capability every concrete BRNG algorithm must supply. It
// is the "opaque state pointer" of spec §3: callers normally never see an
// Engine directly, only a Handle wrapping one.
type Engine interface {
	// Name identifies the algorithm for Snapshot tagging ("MT19937",
	// "ThreeFry32", "Xoshiro256StarStar").
	Name() string
	NextUint32() uint32
	NextUint64() uint64
	NextDouble() float64
	// NextRaw returns the native word, zero-extended to 64 bits.
	NextRaw() uint64
	State() Snapshot
	SetState(Snapshot) error
}

// Jumper is an optional Engine capability: advance by the algorithm's
// canonical large jump distance, repeated n times.
type Jumper interface {
	Jump(n uint64) error
}

// Advancer is an optional Engine capability (ThreeFry32 only): O(1)
// advance by an arbitrary little-endian 128-bit delta, given as two
// uint64 halves (lo, hi).
type Advancer interface {
	Advance(lo, hi uint64) error
}

// Handle is the consumer-facing vtable: one opaque Engine, four bound
// function slots, and a lock the caller must hold around any sequence of
// draws it wants treated atomically (spec §5). Handle owns its Engine;
// Engines are never shared across Handles.
type Handle struct {
	mu     sync.Mutex
	engine Engine

	nextUint32 func() uint32
	nextUint64 func() uint64
	nextDouble func() float64
	nextRaw    func() uint64
}

// NewHandle wraps engine in a Handle, binding the four function slots.
func NewHandle(engine Engine) *Handle {
	return &Handle{
		engine:     engine,
		nextUint32: engine.NextUint32,
		nextUint64: engine.NextUint64,
		nextDouble: engine.NextDouble,
		nextRaw:    engine.NextRaw,
	}
}

// Lock acquires the handle's lock. Consumers must hold it around any
// batch of draws they want treated as atomic; the primitive Next* methods
// below do not self-lock.
func (h *Handle) Lock() { h.mu.Lock() }

// Unlock releases the handle's lock.
func (h *Handle) Unlock() { h.mu.Unlock() }

// Name returns the wrapped algorithm's name.
func (h *Handle) Name() string { return h.engine.Name() }

// NextUint32 draws one 32-bit word. Not self-locking.
func (h *Handle) NextUint32() uint32 { return h.nextUint32() }

// NextUint64 draws one 64-bit word. Not self-locking.
func (h *Handle) NextUint64() uint64 { return h.nextUint64() }

// NextDouble draws one float64 in [0, 1). Not self-locking.
func (h *Handle) NextDouble() float64 { return h.nextDouble() }

// NextRaw draws one native word, zero-extended to 64 bits. Not self-locking.
func (h *Handle) NextRaw() uint64 { return h.nextRaw() }

// State snapshots the current engine state.
func (h *Handle) State() Snapshot { return h.engine.State() }

// SetState restores a snapshot, failing with ErrTagMismatch if it was
// taken from a different algorithm.
func (h *Handle) SetState(s Snapshot) error { return h.engine.SetState(s) }

// Jump advances the handle by n applications of the algorithm's canonical
// jump distance, if the wrapped Engine supports it.
func (h *Handle) Jump(n uint64) error {
	j, ok := h.engine.(Jumper)
	if !ok {
		return rangeErr("jump", "algorithm does not support jump")
	}
	return j.Jump(n)
}

// Advance moves the handle's counter forward by an arbitrary 128-bit
// delta, if the wrapped Engine supports it (ThreeFry32 only).
func (h *Handle) Advance(lo, hi uint64) error {
	a, ok := h.engine.(Advancer)
	if !ok {
		return rangeErr("advance", "algorithm does not support advance")
	}
	return a.Advance(lo, hi)
}

// Engine exposes the wrapped engine for algorithm-specific operations
// (e.g. type-asserting to *mt19937.MT19937 to call SeedArray).
func (h *Handle) Engine() Engine { return h.engine }
