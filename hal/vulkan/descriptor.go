// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// descriptorCounts tracks how many descriptors of each type a bind group
// layout needs, sizing the pool a set allocated against it is drawn from.
type descriptorCounts struct {
	Samplers       uint32
	SampledImages  uint32
	StorageImages  uint32
	UniformBuffers uint32
	StorageBuffers uint32
}

func (c descriptorCounts) total() uint32 {
	return c.Samplers + c.SampledImages + c.StorageImages + c.UniformBuffers + c.StorageBuffers
}

func (c descriptorCounts) isEmpty() bool { return c.total() == 0 }

const defaultDescriptorPoolSets = 64

// descriptorCalls is the slice of the native surface the descriptor
// recycler drives. Production code goes through vkDescriptorCalls; tests
// substitute a fake so pool exhaustion and recycling can be exercised
// without a driver.
type descriptorCalls interface {
	createPool(info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error)
	resetPool(p vk.DescriptorPool) error
	allocateSet(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result)
	destroyPool(p vk.DescriptorPool)
}

// descriptorPool wraps one VkDescriptorPool sized generously enough for
// whichever bind group layout first requested it; it is reset and
// recycled wholesale rather than having individual sets freed.
type descriptorPool struct {
	native  vk.DescriptorPool
	maxSets uint32
}

// descriptorPoolRecycler is the device-wide pool of recycled descriptor
// pools: per-thread state checks one out lazily, and begin-of-frame
// resets and returns every pool the retiring frame record held.
type descriptorPoolRecycler struct {
	calls descriptorCalls

	mu   sync.Mutex
	free []*descriptorPool
}

func newDescriptorPoolRecycler(cmds *vk.Commands, device vk.Device) *descriptorPoolRecycler {
	return &descriptorPoolRecycler{calls: &vkDescriptorCalls{cmds: cmds, device: device}}
}

// acquire returns a recycled pool if one is free, else creates a new one
// sized for counts.
func (r *descriptorPoolRecycler) acquire(counts descriptorCounts) (*descriptorPool, error) {
	r.mu.Lock()
	if n := len(r.free); n > 0 {
		p := r.free[n-1]
		r.free = r.free[:n-1]
		r.mu.Unlock()
		return p, nil
	}
	r.mu.Unlock()
	return r.create(counts)
}

// release resets p and returns it to the free list. Called when a
// per-thread record's descriptor pool cursor is reclaimed at begin-of-
// frame.
func (r *descriptorPoolRecycler) release(p *descriptorPool) error {
	if err := r.calls.resetPool(p.native); err != nil {
		return err
	}
	r.mu.Lock()
	r.free = append(r.free, p)
	r.mu.Unlock()
	return nil
}

func (r *descriptorPoolRecycler) create(counts descriptorCounts) (*descriptorPool, error) {
	const sets = defaultDescriptorPoolSets

	var poolSizes []vk.DescriptorPoolSize
	if counts.isEmpty() {
		poolSizes = []vk.DescriptorPoolSize{
			{Type: vk.DescriptorTypeSampler, DescriptorCount: sets},
			{Type: vk.DescriptorTypeSampledImage, DescriptorCount: sets},
			{Type: vk.DescriptorTypeStorageImage, DescriptorCount: sets / 4},
			{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: sets},
			{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: sets / 2},
			{Type: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: sets},
		}
	} else {
		add := func(t vk.DescriptorType, n uint32) {
			if n > 0 {
				poolSizes = append(poolSizes, vk.DescriptorPoolSize{Type: t, DescriptorCount: n * sets})
			}
		}
		add(vk.DescriptorTypeSampler, counts.Samplers)
		add(vk.DescriptorTypeSampledImage, counts.SampledImages)
		add(vk.DescriptorTypeStorageImage, counts.StorageImages)
		add(vk.DescriptorTypeUniformBuffer, counts.UniformBuffers)
		add(vk.DescriptorTypeStorageBuffer, counts.StorageBuffers)
	}

	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       sets,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    &poolSizes[0],
	}

	native, err := r.calls.createPool(&createInfo)
	if err != nil {
		return nil, err
	}
	return &descriptorPool{native: native, maxSets: sets}, nil
}

// allocateSet allocates one descriptor set against layout from p.
func (r *descriptorPoolRecycler) allocateSet(p *descriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
	return r.calls.allocateSet(p.native, layout)
}

// destroy releases every pool currently held in the free list. Pools
// checked out by live per-thread records are not tracked here and must
// be released back to the recycler before device teardown.
func (r *descriptorPoolRecycler) destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.free {
		r.calls.destroyPool(p.native)
	}
	r.free = nil
}

// vkDescriptorCalls is the production descriptorCalls implementation,
// routing every call through the loaded command table.
type vkDescriptorCalls struct {
	cmds   *vk.Commands
	device vk.Device
}

func (c *vkDescriptorCalls) createPool(info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, error) {
	var native vk.DescriptorPool
	if result := c.cmds.CreateDescriptorPool(c.device, info, nil, &native); result != vk.Success {
		return 0, vkErr("vkCreateDescriptorPool", result)
	}
	return native, nil
}

func (c *vkDescriptorCalls) resetPool(p vk.DescriptorPool) error {
	if result := c.cmds.ResetDescriptorPool(c.device, p, 0); result != vk.Success {
		return fmt.Errorf("vulkan: resetting descriptor pool: %w", vkErr("vkResetDescriptorPool", result))
	}
	return nil
}

func (c *vkDescriptorCalls) allocateSet(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        &layout,
	}
	var set vk.DescriptorSet
	result := c.cmds.AllocateDescriptorSets(c.device, &allocInfo, &set)
	return set, result
}

func (c *vkDescriptorCalls) destroyPool(p vk.DescriptorPool) {
	c.cmds.DestroyDescriptorPool(c.device, p, nil)
}
