// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"
	"sync/atomic"

	"github.com/forge-gpu/forge/frame"
	"github.com/forge-gpu/forge/hal/vulkan/memory"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// destructionQueue defers one kind of native object's teardown until the
// frame that requested it has fully retired: a destroy call removes the
// record from its pool immediately and pushes the native object here.
type destructionQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

func (q *destructionQueue[T]) push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// drain removes and returns every queued item, invoking destroy on each.
func (q *destructionQueue[T]) drain(destroy func(T)) {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	for _, v := range items {
		destroy(v)
	}
}

// destroyedBuffer/Image/etc. pair a native handle with the allocation it
// released back to the memory service, so draining can free both.
type destroyedBuffer struct {
	native vk.Buffer
	alloc  memory.Allocation
}

type destroyedImage struct {
	native vk.Image
	views  []vk.ImageView
	alloc  memory.Allocation
	hasMem bool // false for swapchain-owned images: no allocation to free
}

type destroyedSampler struct{ native vk.Sampler }
type destroyedBindGroupLayout struct{ native vk.DescriptorSetLayout }
type destroyedPipeline struct {
	native vk.Pipeline
	layout vk.PipelineLayout
}

// frameRecord is the state one in-flight frame slot owns: a timeline
// watermark, one destruction queue per object kind, recycled semaphores,
// recycled descriptor pools, and the concurrent per-thread-token map.
type frameRecord struct {
	// watermark is the universal timeline value the last submit against
	// this slot will signal; begin-of-frame waits for it before reclaiming
	// anything the slot deferred. Raised monotonically, never lowered, so
	// racing submits cannot shorten the wait.
	watermark atomic.Uint64

	buffers          destructionQueue[destroyedBuffer]
	images           destructionQueue[destroyedImage]
	samplers         destructionQueue[destroyedSampler]
	bindGroupLayouts destructionQueue[destroyedBindGroupLayout]
	pipelines        destructionQueue[destroyedPipeline]

	// transientBuffers holds oversized transient allocations that bypassed
	// the per-thread sub-allocator; they are destroyed outright rather than
	// recycled.
	transientBuffers destructionQueue[*transientBuffer]

	recycledSemaphores destructionQueue[vk.Semaphore] // returned, not destroyed

	threadsMu sync.Mutex
	threads   map[uint32]*threadState
}

func newFrameRecord() *frameRecord {
	return &frameRecord{threads: make(map[uint32]*threadState)}
}

// raiseWatermark lifts the slot's watermark to v unless a later submit
// already raised it past v.
func (f *frameRecord) raiseWatermark(v uint64) {
	for {
		cur := f.watermark.Load()
		if v <= cur || f.watermark.CompareAndSwap(cur, v) {
			return
		}
	}
}

// threadFor returns this frame's state for token, creating it (and its
// command pool) the first time token is seen by this frame slot.
func (f *frameRecord) threadFor(cmds *vk.Commands, device vk.Device, queueFamily uint32, token frame.ThreadToken, arenaReserve int) (*threadState, error) {
	f.threadsMu.Lock()
	defer f.threadsMu.Unlock()

	if ts, ok := f.threads[token.Index()]; ok {
		return ts, nil
	}
	ts, err := newThreadState(cmds, device, queueFamily, token, arenaReserve)
	if err != nil {
		return nil, err
	}
	f.threads[token.Index()] = ts
	return ts, nil
}

// beginFrame reclaims everything this frame record deferred, now that
// its previous use has retired on the GPU: every per-thread slot is
// reset, recycled semaphores and descriptor pools move back to the
// device-wide pools (semaphores here; descriptor pools inside
// threadState.reclaim), and the destruction queues drain.
func (f *frameRecord) beginFrame(cmds *vk.Commands, device vk.Device, mem *memory.Service, descriptors *descriptorPoolRecycler, transients *transientBufferPool, semaphores *semaphoreRecycler) error {
	f.threadsMu.Lock()
	for _, ts := range f.threads {
		if err := ts.reclaim(cmds, device, descriptors, transients); err != nil {
			f.threadsMu.Unlock()
			return err
		}
	}
	f.threadsMu.Unlock()

	f.recycledSemaphores.drain(func(s vk.Semaphore) { semaphores.release(s) })

	f.buffers.drain(func(b destroyedBuffer) {
		cmds.DestroyBuffer(device, b.native, nil)
		mem.Free(b.alloc)
	})
	f.images.drain(func(img destroyedImage) {
		for _, v := range img.views {
			cmds.DestroyImageView(device, v, nil)
		}
		if img.hasMem {
			cmds.DestroyImage(device, img.native, nil)
			mem.Free(img.alloc)
		}
	})
	f.transientBuffers.drain(func(b *transientBuffer) { transients.destroyNative(b) })
	f.samplers.drain(func(s destroyedSampler) { cmds.DestroySampler(device, s.native, nil) })
	f.bindGroupLayouts.drain(func(l destroyedBindGroupLayout) { cmds.DestroyDescriptorSetLayout(device, l.native, nil) })
	f.pipelines.drain(func(p destroyedPipeline) {
		cmds.DestroyPipeline(device, p.native, nil)
		cmds.DestroyPipelineLayout(device, p.layout, nil)
	})

	return nil
}

// destroy tears down every thread state this frame record still owns;
// used only at device destruction, after all in-flight work has
// completed.
func (f *frameRecord) destroy(cmds *vk.Commands, device vk.Device) {
	f.threadsMu.Lock()
	defer f.threadsMu.Unlock()
	for _, ts := range f.threads {
		ts.destroy(cmds, device)
	}
	f.threads = nil
}

// semaphoreRecycler is the device-wide pool of recycled transient
// semaphores (acquire/release semaphores, mainly); begin-of-frame moves
// a frame's recycledSemaphores queue into it.
type semaphoreRecycler struct {
	cmds   *vk.Commands
	device vk.Device

	mu   sync.Mutex
	free []vk.Semaphore
}

func newSemaphoreRecycler(cmds *vk.Commands, device vk.Device) *semaphoreRecycler {
	return &semaphoreRecycler{cmds: cmds, device: device}
}

func (r *semaphoreRecycler) acquire() (vk.Semaphore, error) {
	r.mu.Lock()
	if n := len(r.free); n > 0 {
		s := r.free[n-1]
		r.free = r.free[:n-1]
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var s vk.Semaphore
	if result := r.cmds.CreateSemaphore(r.device, &info, nil, &s); result != vk.Success {
		return 0, vkErr("vkCreateSemaphore", result)
	}
	return s, nil
}

func (r *semaphoreRecycler) release(s vk.Semaphore) {
	r.mu.Lock()
	r.free = append(r.free, s)
	r.mu.Unlock()
}

func (r *semaphoreRecycler) destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.free {
		r.cmds.DestroySemaphore(r.device, s, nil)
	}
	r.free = nil
}
