// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/forge-gpu/forge/arena"
	"github.com/forge-gpu/forge/frame"
	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// commandBufferBatchSize is how many command buffers request_cmd_encoder
// allocates at once when a thread's cursor runs out.
const commandBufferBatchSize = 4

// threadState is the per-thread recording state: command-pool cursor,
// current descriptor-pool handle (nil until fetched on demand),
// transient-buffer allocator, and a bump arena for encoder scratch.
type threadState struct {
	token frame.ThreadToken

	pool      vk.CommandPool
	buffers   []vk.CommandBuffer // batch allocated from pool
	cursor    int                // next unused index in buffers
	handedOut int                // buffers currently handed out this frame

	descriptorPool *descriptorPool   // nil until cmd_set_bind_group needs one
	spentPools     []*descriptorPool // filled mid-frame by cmd_set_bind_group, reclaimed alongside descriptorPool

	transient transientAllocator
	arena     arena.Arena
}

// newThreadState creates the command pool for token and reserves its
// scratch arena. Called the first time a thread token is seen by a given
// per-frame record.
func newThreadState(cmds *vk.Commands, device vk.Device, queueFamily uint32, token frame.ThreadToken, arenaReserve int) (*threadState, error) {
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateResetCommandBufferBit,
		QueueFamilyIndex: queueFamily,
	}
	var pool vk.CommandPool
	if result := cmds.CreateCommandPool(device, &info, nil, &pool); result != vk.Success {
		return nil, vkErr("vkCreateCommandPool", result)
	}

	a, err := arena.New(arenaReserve)
	if err != nil {
		cmds.DestroyCommandPool(device, pool, nil)
		return nil, err
	}

	return &threadState{token: token, pool: pool, arena: *a}, nil
}

// nextCommandBuffer returns the next command buffer from this thread's
// pool, allocating a fresh batch of commandBufferBatchSize when the
// cursor runs past the end.
func (t *threadState) nextCommandBuffer(cmds *vk.Commands, device vk.Device) (vk.CommandBuffer, error) {
	if t.cursor >= len(t.buffers) {
		info := vk.CommandBufferAllocateInfo{
			SType:              vk.StructureTypeCommandBufferAllocateInfo,
			CommandPool:        t.pool,
			Level:              vk.CommandBufferLevelPrimary,
			CommandBufferCount: commandBufferBatchSize,
		}
		batch := make([]vk.CommandBuffer, commandBufferBatchSize)
		if result := cmds.AllocateCommandBuffers(device, &info, &batch[0]); result != vk.Success {
			return 0, vkErr("vkAllocateCommandBuffers", result)
		}
		t.buffers = batch
		t.cursor = 0
	}
	cb := t.buffers[t.cursor]
	t.cursor++
	t.handedOut++
	return cb, nil
}

// allocateDescriptorSet serves one set for layout from this thread's
// current descriptor pool, fetching one lazily on first use. An
// exhausted pool is parked for reclaim at frame retirement and a fresh
// one drawn from the recycler, so recording continues transparently.
func (t *threadState) allocateDescriptorSet(r *descriptorPoolRecycler, counts descriptorCounts, layout vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	if t.descriptorPool == nil {
		pool, err := r.acquire(counts)
		if err != nil {
			return 0, err
		}
		t.descriptorPool = pool
	}
	set, result := r.allocateSet(t.descriptorPool, layout)
	if result == vk.Success {
		return set, nil
	}

	t.spentPools = append(t.spentPools, t.descriptorPool)
	pool, err := r.acquire(counts)
	if err != nil {
		return 0, err
	}
	t.descriptorPool = pool
	set, result = r.allocateSet(pool, layout)
	if result != vk.Success {
		return 0, vkErr("vkAllocateDescriptorSets", result)
	}
	return set, nil
}

// reclaim resets this thread's state at begin_frame: the command pool is
// reset only if buffers were handed out last round, the descriptor pool
// (if any) is released back to the device-wide recycler, the transient
// allocator returns its buffers, and the scratch arena is reset.
func (t *threadState) reclaim(cmds *vk.Commands, device vk.Device, descriptors *descriptorPoolRecycler, transients *transientBufferPool) error {
	if t.handedOut > 0 {
		if result := cmds.ResetCommandPool(device, t.pool, 0); result != vk.Success {
			return vkErr("vkResetCommandPool", result)
		}
		t.cursor = 0
		t.buffers = t.buffers[:0]
		t.handedOut = 0
	}

	t.transient.reset(transients)

	if t.descriptorPool != nil {
		if err := descriptors.release(t.descriptorPool); err != nil {
			return err
		}
		t.descriptorPool = nil
	}
	for _, p := range t.spentPools {
		if err := descriptors.release(p); err != nil {
			return err
		}
	}
	t.spentPools = t.spentPools[:0]

	t.arena.Reset()
	return nil
}

// destroy releases this thread's command pool and arena. The descriptor
// pool, if checked out, must already have been released via reclaim.
func (t *threadState) destroy(cmds *vk.Commands, device vk.Device) {
	cmds.DestroyCommandPool(device, t.pool, nil)
	if err := t.arena.Close(); err != nil {
		hal.Logger().Warn("vulkan: closing thread arena", "error", err)
	}
}
