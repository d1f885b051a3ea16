// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package tlsf

import (
	"math/bits"
	"math/rand"
	"testing"
)

func TestBinRoundTrip(t *testing.T) {
	sizes := []uint32{1, 15, 16, 17, 255, 256, 257, 511, 512, 513, 990, 1024, 1 << 20, 1 << 29}
	for _, size := range sizes {
		down, bd := binRoundDown(size)
		if down > size {
			t.Fatalf("binRoundDown(%d) = %d, want <= size", size, down)
		}
		up, bu, ok := func() (uint32, bin, bool) {
			u, b := binRoundUp(size)
			return u, b, validBin(b)
		}()
		if !ok {
			t.Fatalf("binRoundUp(%d) produced an invalid bin", size)
		}
		if up < size {
			t.Fatalf("binRoundUp(%d) = %d, want >= size", size, up)
		}
		if size == down && bd != bu {
			t.Fatalf("size %d is already aligned but round-up bin %+v != round-down bin %+v", size, bu, bd)
		}
	}
}

func TestBinLinearRegionIsExact(t *testing.T) {
	for size := uint32(0); size < linearRegionSize; size += 7 {
		_, b := binRoundDown(size)
		if b.index != 0 {
			t.Fatalf("size %d in linear region mapped to bin index %d, want 0", size, b.index)
		}
		if b.subIndex != size>>linearShift {
			t.Fatalf("size %d: subIndex = %d, want %d", size, b.subIndex, size>>linearShift)
		}
	}
}

func TestMinAlignmentMatchesReferenceParameters(t *testing.T) {
	if linearLog2 != 9 || subBinsLog2 != 5 {
		t.Fatalf("reference parameters changed; update this test")
	}
	if minAlignment != 16 {
		t.Fatalf("minAlignment = %d, want 16", minAlignment)
	}
	if subBinCount != 32 {
		t.Fatalf("subBinCount = %d, want 32", subBinCount)
	}
	if binCount != 23 {
		t.Fatalf("binCount = %d, want 23", binCount)
	}
}

// Scenario 1: split-and-merge.
func TestSplitAndMerge(t *testing.T) {
	a := New[int]()
	a.InsertSuperBlock(1024, 0)

	first, ok := a.Allocate(512, 1)
	if !ok {
		t.Fatalf("first 512-byte allocation failed")
	}
	second, ok := a.Allocate(512, 1)
	if !ok {
		t.Fatalf("second 512-byte allocation failed")
	}
	if _, ok := a.Allocate(512, 1); ok {
		t.Fatalf("third 512-byte allocation unexpectedly succeeded")
	}

	a.Free(first)
	a.Free(second)

	if _, ok := a.Allocate(1024, 1); !ok {
		t.Fatalf("re-allocating the full 1024 bytes after freeing both halves failed")
	}
}

// Scenario 2: split policy avoids memory waste.
func TestSplitPolicyAvoidsMemoryWaste(t *testing.T) {
	a := New[int]()
	a.InsertSuperBlock(1024, 0)

	allocA, ok := a.Allocate(990, 1)
	if !ok {
		t.Fatalf("allocate A=990 failed")
	}
	if _, ok := a.Allocate(30, 1); !ok {
		t.Fatalf("allocate B=30 failed")
	}

	a.Free(allocA)

	if _, ok := a.Allocate(990, 1); !ok {
		t.Fatalf("re-allocating 990 bytes failed: freed block was not placed in a big-enough bin")
	}
}

func TestDoubleFreePanics(t *testing.T) {
	a := New[int]()
	a.InsertSuperBlock(1024, 0)
	alloc, ok := a.Allocate(128, 1)
	if !ok {
		t.Fatalf("allocate failed")
	}
	a.Free(alloc)

	defer func() {
		v := recover()
		if v == nil {
			t.Fatalf("expected panic on double free")
		}
		if _, ok := v.(error); !ok {
			t.Fatalf("panic payload is %T, want an error value", v)
		}
	}()
	a.Free(alloc)
}

func TestAlignment(t *testing.T) {
	a := New[int]()
	a.InsertSuperBlock(1<<16, 0)

	for _, align := range []uint32{1, 2, 4, 16, 64, 256} {
		alloc, ok := a.Allocate(37, align)
		if !ok {
			t.Fatalf("allocate(37, align=%d) failed", align)
		}
		if alloc.Offset&(align-1) != 0 {
			t.Fatalf("allocate(37, align=%d): offset %d is not aligned", align, alloc.Offset)
		}
	}
}

func TestMultipleSuperBlocks(t *testing.T) {
	a := New[int]()
	sb0 := a.InsertSuperBlock(256, 100)
	sb1 := a.InsertSuperBlock(256, 200)
	_ = sb0
	_ = sb1

	var allocs []Allocation[int]
	for i := 0; i < 32; i++ {
		alloc, ok := a.Allocate(16, 1)
		if !ok {
			t.Fatalf("allocation %d failed", i)
		}
		allocs = append(allocs, alloc)
	}
	// The two 256-byte super-blocks together hold exactly 32 sixteen-byte blocks.
	if _, ok := a.Allocate(16, 1); ok {
		t.Fatalf("allocation beyond capacity unexpectedly succeeded")
	}
	for _, alloc := range allocs {
		a.Free(alloc)
	}

	seen := map[int]bool{}
	a.RemoveEmptySuperBlocks(func(userData int) { seen[userData] = true })
	if !seen[100] || !seen[200] {
		t.Fatalf("RemoveEmptySuperBlocks did not reclaim both super-blocks: %v", seen)
	}
}

func TestRemoveEmptySuperBlocksRequiresFullyFree(t *testing.T) {
	a := New[int]()
	a.InsertSuperBlock(64, 42)
	alloc, _ := a.Allocate(64, 1)

	reclaimed := false
	a.RemoveEmptySuperBlocks(func(int) { reclaimed = true })
	if reclaimed {
		t.Fatalf("super-block reclaimed while still allocated")
	}

	a.Free(alloc)
	a.RemoveEmptySuperBlocks(func(int) { reclaimed = true })
	if !reclaimed {
		t.Fatalf("super-block not reclaimed once fully free")
	}
}

// Scenario 3: randomised allocate/free with overlap checking via a bitset
// of allocated byte ranges, across multiple super-blocks.
func TestRandomizedAllocFree(t *testing.T) {
	const superBlockSize = 1 << 20 // keeps the randomized run fast
	const superBlockCount = 8
	const ops = 20000

	a := New[int]()
	allocated := make([][]bool, superBlockCount)
	for i := range allocated {
		a.InsertSuperBlock(superBlockSize, i)
		allocated[i] = make([]bool, superBlockSize)
	}

	type live struct {
		alloc Allocation[int]
		size  uint32
	}
	var liveAllocs []live

	rng := rand.New(rand.NewSource(1))

	markRange := func(sb int, offset, size uint32, want bool) {
		for i := offset; i < offset+size; i++ {
			if allocated[sb][i] != want {
				t.Fatalf("byte %d in super-block %d was %v, expected %v", i, sb, allocated[sb][i], want)
			}
			allocated[sb][i] = !want
		}
	}

	for op := 0; op < ops; op++ {
		doFree := len(liveAllocs) > 0 && (rng.Intn(2) == 0 || len(liveAllocs) > 4096)
		if doFree {
			i := rng.Intn(len(liveAllocs))
			l := liveAllocs[i]
			markRange(l.alloc.UserData, l.alloc.Offset, l.size, true)
			a.Free(l.alloc)
			liveAllocs[i] = liveAllocs[len(liveAllocs)-1]
			liveAllocs = liveAllocs[:len(liveAllocs)-1]
			continue
		}

		size := uint32(rng.Intn(65536) + 1)
		alloc, ok := a.Allocate(size, 1)
		if !ok {
			continue
		}
		markRange(alloc.UserData, alloc.Offset, size, false)
		liveAllocs = append(liveAllocs, live{alloc: alloc, size: size})
	}

	for _, l := range liveAllocs {
		markRange(l.alloc.UserData, l.alloc.Offset, l.size, true)
		a.Free(l.alloc)
	}
}

func TestTrailingZerosSanity(t *testing.T) {
	// Sanity-check the bitmap search primitive this package leans on.
	if bits.TrailingZeros32(0b1000) != 3 {
		t.Fatalf("bits.TrailingZeros32 behaves unexpectedly")
	}
}
