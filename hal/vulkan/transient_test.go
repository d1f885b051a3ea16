// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"
	"unsafe"
)

// primedAllocator returns a transientAllocator whose current buffer has
// room for every request the test makes, so no pool traffic happens.
func primedAllocator(backing []byte) transientAllocator {
	return transientAllocator{
		current: &transientBuffer{
			base: unsafe.Pointer(&backing[0]),
			size: uint32(len(backing)),
		},
		offset: uint32(len(backing)),
	}
}

func TestTransientRequestAlignsDownward(t *testing.T) {
	backing := make([]byte, 4096)
	a := primedAllocator(backing)

	r1, standalone, err := a.request(nil, 100, 256)
	if err != nil || standalone != nil {
		t.Fatalf("request: %v (standalone=%v)", err, standalone)
	}
	if r1.Offset&255 != 0 {
		t.Errorf("offset %d is not 256-aligned", r1.Offset)
	}
	if r1.Offset+r1.Len > 4096 {
		t.Errorf("region [%d, %d) escapes the buffer", r1.Offset, r1.Offset+r1.Len)
	}

	r2, _, err := a.request(nil, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if r2.Offset&63 != 0 {
		t.Errorf("offset %d is not 64-aligned", r2.Offset)
	}
	if r2.Offset+r2.Len > r1.Offset {
		t.Errorf("second region [%d, %d) overlaps the first at %d", r2.Offset, r2.Offset+r2.Len, r1.Offset)
	}
}

func TestTransientRequestsNeverOverlap(t *testing.T) {
	backing := make([]byte, 1<<16)
	a := primedAllocator(backing)

	type span struct{ lo, hi uint32 }
	var spans []span
	sizes := []uint32{1, 3, 17, 256, 1000, 64, 4096}
	aligns := []uint32{1, 4, 16, 256, 2, 64, 1024}
	for i := range sizes {
		r, _, err := a.request(nil, sizes[i], aligns[i])
		if err != nil {
			t.Fatal(err)
		}
		if r.Offset&(aligns[i]-1) != 0 {
			t.Errorf("request %d: offset %d not %d-aligned", i, r.Offset, aligns[i])
		}
		for _, s := range spans {
			if r.Offset < s.hi && s.lo < r.Offset+r.Len {
				t.Errorf("request %d overlaps [%d, %d)", i, s.lo, s.hi)
			}
		}
		spans = append(spans, span{r.Offset, r.Offset + r.Len})
	}
}

func TestTransientResetReturnsBuffers(t *testing.T) {
	backing := make([]byte, 256)
	a := primedAllocator(backing)
	current := a.current

	pool := &transientBufferPool{}
	a.reset(pool)

	if a.current != nil || a.offset != 0 {
		t.Error("reset should clear the current buffer and offset")
	}
	if len(pool.free) != 1 || pool.free[0] != current {
		t.Error("reset should return the current buffer to the pool free list")
	}
}
