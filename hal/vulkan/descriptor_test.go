// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// fakeDescriptorCalls implements descriptorCalls with bounded-capacity
// pools, standing in for the driver so exhaustion and recycling can run
// under the race detector without a GPU.
type fakeDescriptorCalls struct {
	capacity int

	nextPool  vk.DescriptorPool
	nextSet   vk.DescriptorSet
	remaining map[vk.DescriptorPool]int
	resets    []vk.DescriptorPool
	destroyed []vk.DescriptorPool
}

func newFakeDescriptorCalls(capacity int) *fakeDescriptorCalls {
	return &fakeDescriptorCalls{capacity: capacity, remaining: make(map[vk.DescriptorPool]int)}
}

func (f *fakeDescriptorCalls) createPool(*vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error) {
	f.nextPool++
	f.remaining[f.nextPool] = f.capacity
	return f.nextPool, nil
}

func (f *fakeDescriptorCalls) resetPool(p vk.DescriptorPool) error {
	f.remaining[p] = f.capacity
	f.resets = append(f.resets, p)
	return nil
}

func (f *fakeDescriptorCalls) allocateSet(pool vk.DescriptorPool, _ vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
	if f.remaining[pool] == 0 {
		return 0, vk.ErrorOutOfPoolMemory
	}
	f.remaining[pool]--
	f.nextSet++
	return f.nextSet, vk.Success
}

func (f *fakeDescriptorCalls) destroyPool(p vk.DescriptorPool) {
	f.destroyed = append(f.destroyed, p)
}

// TestDescriptorPoolExhaustionGrowsAndRecycles allocates sets in a tight
// loop within one frame until the per-thread pool is exhausted, twice
// over: each exhaustion must transparently park the spent pool and
// continue from a fresh one, and frame retirement must reset and recycle
// every pool the thread touched.
func TestDescriptorPoolExhaustionGrowsAndRecycles(t *testing.T) {
	const perPool = 64
	calls := newFakeDescriptorCalls(perPool)
	r := &descriptorPoolRecycler{calls: calls}
	ts := &threadState{}

	counts := descriptorCounts{UniformBuffers: 1}
	layout := vk.DescriptorSetLayout(7)

	seen := make(map[vk.DescriptorSet]bool)
	const total = perPool*2 + 20
	for i := 0; i < total; i++ {
		set, err := ts.allocateDescriptorSet(r, counts, layout)
		if err != nil {
			t.Fatalf("allocation %d: %v", i, err)
		}
		if seen[set] {
			t.Fatalf("allocation %d returned a duplicate set", i)
		}
		seen[set] = true
	}

	if calls.nextPool != 3 {
		t.Errorf("allocated %d pools for %d sets of capacity %d, want 3", calls.nextPool, total, perPool)
	}
	if len(ts.spentPools) != 2 {
		t.Errorf("parked %d spent pools, want 2", len(ts.spentPools))
	}
	if ts.descriptorPool == nil {
		t.Error("the thread should still hold a live pool cursor")
	}

	// Frame retirement: every pool the thread touched is reset and
	// returned to the device-wide recycler.
	if err := ts.reclaim(nil, 0, r, &transientBufferPool{}); err != nil {
		t.Fatalf("reclaim: %v", err)
	}
	if ts.descriptorPool != nil || len(ts.spentPools) != 0 {
		t.Error("reclaim should null the pool cursor and clear spent pools")
	}
	if len(r.free) != 3 {
		t.Errorf("recycler holds %d pools after retirement, want 3", len(r.free))
	}
	if len(calls.resets) != 3 {
		t.Errorf("%d pools were reset, want 3", len(calls.resets))
	}

	// The next frame draws recycled pools instead of creating new ones.
	if _, err := ts.allocateDescriptorSet(r, counts, layout); err != nil {
		t.Fatalf("allocation after retirement: %v", err)
	}
	if calls.nextPool != 3 {
		t.Errorf("a recycled pool should have been reused, but %d pools exist", calls.nextPool)
	}
}
