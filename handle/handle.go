// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package handle implements the generational slab used to map opaque
// 64-bit handles onto internal records.
//
// A Handle is (generation, slot-index) packed into a uint64. It is valid
// only as long as the slot's current generation matches the generation it
// was issued with; once the slot is removed and possibly reused, stale
// handles are rejected. Slot 0 is reserved as the null handle and is never
// assigned to a real record.
package handle

import "fmt"

// Index identifies a slot within a single Pool.
type Index = uint32

// Generation is the per-slot counter that distinguishes successive
// occupants of the same slot.
type Generation = uint32

// Handle is an opaque, copyable reference into exactly one Pool[T].
// It carries no ownership: dropping a Handle does not remove the record.
type Handle uint64

// nullIndex is the slot that is never allocated to a real value; it backs
// the null handle and serves as the dummy head of the pool's flat array,
// the same convention used by the TLSF block vector.
const nullIndex Index = 0

// Pack builds a Handle from a slot index and its generation.
func Pack(index Index, generation Generation) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index encoded in h.
func (h Handle) Index() Index { return Index(h) }

// Generation returns the generation encoded in h.
func (h Handle) Generation() Generation { return Generation(h >> 32) }

// IsNull reports whether h is the null handle (generation 0, slot 0).
func (h Handle) IsNull() bool { return h.Index() == nullIndex && h.Generation() == 0 }

// String renders the handle as "idx#gen" for diagnostics.
func (h Handle) String() string {
	if h.IsNull() {
		return "handle(null)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.Index(), h.Generation())
}
