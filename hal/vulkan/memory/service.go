// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/tlsf"
)

// defaultSuperBlockSize is the native vkAllocateMemory chunk size a pool
// requests when it runs out of room, absent a heap small enough to force
// a smaller divisor.
const defaultSuperBlockSize vk.DeviceSize = 256 << 20 // 256 MiB

// smallHeapDivisor bounds a super-block to at most 1/8th of its backing
// heap, so a handful of allocations from a small heap (e.g. the 256 MiB
// BAR-mapped window many drivers expose) don't starve everything else.
const smallHeapDivisor = 8

// superBlockData is the TLSF user payload for one native memory
// allocation: the vk.DeviceMemory handle it sub-allocates, and its
// persistent host mapping if it was made from host-visible memory.
type superBlockData struct {
	memory vk.DeviceMemory
	mapped unsafe.Pointer
}

// poolKey selects one TLSF instance: a memory type together with the
// tiling class of what it backs. Vulkan's bufferImageGranularity forbids
// mixing linear resources (buffers, linear images) and optimal-tiled
// images in adjacent regions of the same allocation without extra
// padding, so each memory type gets two independent pools instead.
type poolKey struct {
	typeIndex uint32
	nonLinear bool
}

// Allocation is a live sub-allocation handed back to a resource creator.
// MappedPtr is non-nil only when the backing super-block is host-visible
// and was mapped at creation time.
type Allocation struct {
	Memory    vk.DeviceMemory
	Offset    vk.DeviceSize
	MappedPtr unsafe.Pointer

	key poolKey
	raw tlsf.Allocation[superBlockData]
}

// Service is the device memory service: it picks a memory
// type for each request, keeps one TLSF allocator per (memory-type,
// tiling-class) pair, and grows each pool with fresh vkAllocateMemory
// super-blocks on demand.
type Service struct {
	cmds     *vk.Commands
	device   vk.Device
	selector *MemoryTypeSelector

	deviceAddress bool

	mu    sync.Mutex
	pools map[poolKey]*tlsf.Tlsf[superBlockData]
}

// EnableDeviceAddress makes every future super-block allocation request
// the device-address capability, required before binding buffers created
// with the shader-device-address usage. Call once, before any Allocate.
func (s *Service) EnableDeviceAddress() { s.deviceAddress = true }

// NewService constructs the memory service from the physical device's
// queried memory properties.
func NewService(cmds *vk.Commands, device vk.Device, props DeviceMemoryProperties) *Service {
	return &Service{
		cmds:     cmds,
		device:   device,
		selector: NewMemoryTypeSelector(props),
		pools:    make(map[poolKey]*tlsf.Tlsf[superBlockData]),
	}
}

// Allocate reserves reqs.Size bytes aligned to reqs.Alignment for a
// resource that needs memory of the given location. nonLinear must be
// true for optimal-tiled images and false for buffers and linear images.
// hostMapped requests a persistent mapping on the backing super-block;
// it is only honored when the chosen memory type is host-visible.
func (s *Service) Allocate(reqs vk.MemoryRequirements, location Location, nonLinear, hostMapped bool) (Allocation, error) {
	typeIndex, ok := s.selector.Select(reqs.MemoryTypeBits, location)
	if !ok {
		return Allocation{}, fmt.Errorf("vulkan: no memory type satisfies requirements (bits=%#x, location=%d)", reqs.MemoryTypeBits, location)
	}
	key := poolKey{typeIndex: typeIndex, nonLinear: nonLinear}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.pools[key]
	if pool == nil {
		pool = tlsf.New[superBlockData]()
		s.pools[key] = pool
	}

	align := uint32(reqs.Alignment)
	if align == 0 {
		align = 1
	}
	size := uint32(reqs.Size)

	raw, ok := pool.Allocate(size, align)
	if !ok {
		if err := s.growPool(pool, typeIndex, reqs.Size, hostMapped && s.selector.IsHostVisible(typeIndex)); err != nil {
			return Allocation{}, err
		}
		raw, ok = pool.Allocate(size, align)
		if !ok {
			return Allocation{}, fmt.Errorf("vulkan: memory type %d exhausted immediately after growth", typeIndex)
		}
	}

	alloc := Allocation{
		Memory: raw.UserData.memory,
		Offset: vk.DeviceSize(raw.Offset),
		key:    key,
		raw:    raw,
	}
	if raw.UserData.mapped != nil {
		alloc.MappedPtr = unsafe.Add(raw.UserData.mapped, raw.Offset)
	}
	return alloc, nil
}

// superBlockSizeFor computes how large a new super-block should be: the
// default size, clamped to a fraction of a small heap, widened to a
// dedicated allocation if requestSize itself exceeds that.
func superBlockSizeFor(heapSize, requestSize vk.DeviceSize) vk.DeviceSize {
	size := defaultSuperBlockSize
	if heapSize > 0 && size > heapSize/smallHeapDivisor {
		size = heapSize / smallHeapDivisor
		if size == 0 {
			size = heapSize
		}
	}
	if requestSize > size {
		size = requestSize
	}
	return size
}

// driverErr wraps a failing native call as a hal.DriverError,
// classifying memory exhaustion and device loss so errors.Is works
// against the hal sentinels.
func driverErr(call string, result vk.Result) error {
	var sentinel error
	switch result {
	case vk.ErrorOutOfDeviceMemory, vk.ErrorOutOfHostMemory:
		sentinel = hal.ErrDeviceOutOfMemory
	case vk.ErrorDeviceLost:
		sentinel = hal.ErrDeviceLost
	}
	return &hal.DriverError{Call: call, Code: int32(result), Err: sentinel}
}

// growPool requests one new native allocation and registers it with pool
// as a fresh super-block, sized to cover at least requestSize.
func (s *Service) growPool(pool *tlsf.Tlsf[superBlockData], typeIndex uint32, requestSize vk.DeviceSize, mapRequested bool) error {
	size := superBlockSizeFor(s.selector.HeapSize(typeIndex), requestSize)
	if size > vk.DeviceSize(^uint32(0)) {
		return fmt.Errorf("vulkan: super-block size %d exceeds the sub-allocator's 32-bit addressing", size)
	}

	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: typeIndex,
	}
	flagsInfo := vk.MemoryAllocateFlagsInfo{
		SType: vk.StructureTypeMemoryAllocateFlagsInfo,
		Flags: vk.MemoryAllocateDeviceAddressBit,
	}
	if s.deviceAddress {
		info.PNext = uintptr(unsafe.Pointer(&flagsInfo))
	}
	var native vk.DeviceMemory
	result := s.cmds.AllocateMemory(s.device, &info, nil, &native)
	runtime.KeepAlive(&flagsInfo)
	if result != vk.Success {
		return fmt.Errorf("vulkan: allocating %d-byte super-block from memory type %d: %w",
			size, typeIndex, driverErr("vkAllocateMemory", result))
	}

	data := superBlockData{memory: native}
	if mapRequested {
		var ptr unsafe.Pointer
		if result := s.cmds.MapMemory(s.device, native, 0, size, 0, &ptr); result != vk.Success {
			s.cmds.FreeMemory(s.device, native, nil)
			return fmt.Errorf("vulkan: mapping new super-block: %w", driverErr("vkMapMemory", result))
		}
		data.mapped = ptr
	}

	pool.InsertSuperBlock(uint32(size), data)
	return nil
}

// Free releases a.
func (s *Service) Free(a Allocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pool := s.pools[a.key]; pool != nil {
		pool.Free(a.raw)
	}
}

// BeginFrame reclaims super-blocks that became entirely empty since the
// last call, unmapping and freeing their native memory.
func (s *Service) BeginFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pool := range s.pools {
		pool.RemoveEmptySuperBlocks(func(data superBlockData) {
			if data.mapped != nil {
				s.cmds.UnmapMemory(s.device, data.memory)
			}
			s.cmds.FreeMemory(s.device, data.memory, nil)
		})
	}
}

// Destroy frees every remaining native allocation across all pools. The
// caller must ensure no resource still references memory from this
// service before calling it.
func (s *Service) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, pool := range s.pools {
		pool.RemoveEmptySuperBlocks(func(data superBlockData) {
			if data.mapped != nil {
				s.cmds.UnmapMemory(s.device, data.memory)
			}
			s.cmds.FreeMemory(s.device, data.memory, nil)
		})
		delete(s.pools, key)
	}
}
