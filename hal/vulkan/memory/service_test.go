// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import "testing"

func TestSuperBlockSizeForDefault(t *testing.T) {
	got := superBlockSizeFor(8<<30, 4096)
	if got != defaultSuperBlockSize {
		t.Errorf("superBlockSizeFor = %d, want default %d", got, defaultSuperBlockSize)
	}
}

func TestSuperBlockSizeForSmallHeap(t *testing.T) {
	heap := uint64(256 << 20) // 256 MiB heap, smaller than the default super-block
	got := superBlockSizeFor(heap, 4096)
	want := heap / smallHeapDivisor
	if got != want {
		t.Errorf("superBlockSizeFor(small heap) = %d, want %d", got, want)
	}
}

func TestSuperBlockSizeForOversizedRequest(t *testing.T) {
	const want = defaultSuperBlockSize * 4
	got := superBlockSizeFor(0, want)
	if got != want {
		t.Errorf("superBlockSizeFor(oversized request) = %d, want %d", got, want)
	}
}

func TestSuperBlockSizeForTinyHeapFallsBackToWholeHeap(t *testing.T) {
	heap := uint64(smallHeapDivisor - 1)
	got := superBlockSizeFor(heap, 1)
	if got != heap {
		t.Errorf("superBlockSizeFor(tiny heap) = %d, want %d", got, heap)
	}
}
