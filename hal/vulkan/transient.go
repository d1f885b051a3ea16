// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/forge-gpu/forge/hal/vulkan/memory"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// transientBufferSize is the size of one pooled transient buffer.
// Requests larger than this fall through to a standalone, frame-scoped
// allocation instead of sub-allocating.
const transientBufferSize uint32 = 4 << 20

// transientBuffer is one host-visible, all-usages buffer backing the
// transient sub-allocator, mapped for its whole lifetime.
type transientBuffer struct {
	native vk.Buffer
	alloc  memory.Allocation
	base   unsafe.Pointer
	size   uint32
}

// TransientRegion is a thin (pointer, offset, length, buffer) value
// bounded by the owning frame's lifetime.
type TransientRegion struct {
	Ptr    unsafe.Pointer
	Offset uint32
	Len    uint32
	Buffer vk.Buffer
}

// transientBufferPool is the device-wide recycled pool of transient
// buffers; per-thread allocators return fully-used buffers here at
// begin_frame and draw fresh ones from here before falling back to a new
// native allocation.
type transientBufferPool struct {
	mem    *memory.Service
	cmds   *vk.Commands
	device vk.Device

	mu   sync.Mutex
	free []*transientBuffer
}

func newTransientBufferPool(mem *memory.Service, cmds *vk.Commands, device vk.Device) *transientBufferPool {
	return &transientBufferPool{mem: mem, cmds: cmds, device: device}
}

// acquire returns a recycled buffer or allocates a new host-visible,
// all-usages one of size transientBufferSize.
func (p *transientBufferPool) acquire() (*transientBuffer, error) {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return b, nil
	}
	p.mu.Unlock()
	return p.allocate(transientBufferSize)
}

// allocateStandalone creates a dedicated buffer sized exactly to size,
// for a request too large to sub-allocate. The caller queues it for
// destruction at frame completion rather than returning it here.
func (p *transientBufferPool) allocateStandalone(size uint32) (*transientBuffer, error) {
	return p.allocate(size)
}

func (p *transientBufferPool) allocate(size uint32) (*transientBuffer, error) {
	const transientUsage = vk.BufferUsageTransferSrcBit | vk.BufferUsageTransferDstBit |
		vk.BufferUsageUniformBufferBit | vk.BufferUsageStorageBufferBit |
		vk.BufferUsageVertexBufferBit | vk.BufferUsageIndexBufferBit

	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       transientUsage,
		SharingMode: vk.SharingModeExclusive,
	}
	var native vk.Buffer
	if result := p.cmds.CreateBuffer(p.device, &info, nil, &native); result != vk.Success {
		return nil, fmt.Errorf("vulkan: transient buffer: %w", vkErr("vkCreateBuffer", result))
	}

	var reqs vk.MemoryRequirements
	p.cmds.GetBufferMemoryRequirements(p.device, native, &reqs)

	alloc, err := p.mem.Allocate(reqs, memory.LocationHost, false, true)
	if err != nil {
		p.cmds.DestroyBuffer(p.device, native, nil)
		return nil, err
	}
	if result := p.cmds.BindBufferMemory(p.device, native, alloc.Memory, alloc.Offset); result != vk.Success {
		p.mem.Free(alloc)
		p.cmds.DestroyBuffer(p.device, native, nil)
		return nil, fmt.Errorf("vulkan: transient buffer: %w", vkErr("vkBindBufferMemory", result))
	}

	return &transientBuffer{native: native, alloc: alloc, base: alloc.MappedPtr, size: size}, nil
}

// release returns b to the free list for reuse by another thread's
// allocator next frame.
func (p *transientBufferPool) release(b *transientBuffer) {
	p.mu.Lock()
	p.free = append(p.free, b)
	p.mu.Unlock()
}

// destroyNative frees a standalone or recycled buffer's native resources.
func (p *transientBufferPool) destroyNative(b *transientBuffer) {
	p.mem.Free(b.alloc)
	p.cmds.DestroyBuffer(p.device, b.native, nil)
}

// destroy releases every buffer sitting in the free list; called only at
// device teardown, after all per-thread allocators have reset.
func (p *transientBufferPool) destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.free {
		p.destroyNative(b)
	}
	p.free = nil
}

// transientAllocator is the per-thread sub-allocator: a current buffer,
// an offset counting down from the buffer size to 0, and the list of
// buffers it has fully used this frame. Aligning after the subtraction
// always lands the region inside the reservation.
type transientAllocator struct {
	current     *transientBuffer
	offset      uint32
	usedBuffers []*transientBuffer
}

// request serves size bytes aligned to align from the current buffer,
// fetching a fresh one from pool when exhausted. A request exceeding
// transientBufferSize falls through to a standalone allocation, returned
// as the second value so the caller can queue it for destruction when
// the frame retires.
func (a *transientAllocator) request(pool *transientBufferPool, size, align uint32) (TransientRegion, *transientBuffer, error) {
	if align == 0 {
		align = 1
	}

	if size > transientBufferSize {
		b, err := pool.allocateStandalone(size)
		if err != nil {
			return TransientRegion{}, nil, err
		}
		return TransientRegion{Ptr: b.base, Offset: 0, Len: size, Buffer: b.native}, b, nil
	}

	if a.current == nil || a.offset < size {
		if a.current != nil {
			a.usedBuffers = append(a.usedBuffers, a.current)
		}
		b, err := pool.acquire()
		if err != nil {
			return TransientRegion{}, nil, err
		}
		a.current = b
		a.offset = b.size
	}

	a.offset = (a.offset - size) &^ (align - 1)

	return TransientRegion{
		Ptr:    unsafe.Add(a.current.base, a.offset),
		Offset: a.offset,
		Len:    size,
		Buffer: a.current.native,
	}, nil, nil
}

// reset moves the current buffer (if any) into usedBuffers, returns every
// used buffer to pool, and clears state for the next frame. Called at
// begin_frame once this thread's prior frame has retired.
func (a *transientAllocator) reset(pool *transientBufferPool) {
	if a.current != nil {
		a.usedBuffers = append(a.usedBuffers, a.current)
		a.current = nil
	}
	for _, b := range a.usedBuffers {
		pool.release(b)
	}
	a.usedBuffers = a.usedBuffers[:0]
	a.offset = 0
}
