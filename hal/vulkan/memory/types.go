// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import "github.com/forge-gpu/forge/hal/vulkan/vk"

// Location names the two placements the device memory service knows how
// to satisfy. Device prefers DEVICE_LOCAL memory exclusively reachable
// by the GPU; Host requires HOST_VISIBLE memory the caller can map.
type Location uint8

const (
	// LocationDevice selects memory the GPU can access fastest; never
	// host-mappable unless the driver happens to expose a ReBAR heap.
	LocationDevice Location = iota
	// LocationHost selects host-visible memory the caller maps for upload
	// or readback.
	LocationHost
)

// knownMemoryFlags are memory property flags this module understands; a
// memory type carrying any bit outside this set is treated as exotic and
// excluded from selection.
const knownMemoryFlags = vk.MemoryPropertyDeviceLocalBit |
	vk.MemoryPropertyHostVisibleBit |
	vk.MemoryPropertyHostCoherentBit |
	vk.MemoryPropertyHostCachedBit |
	vk.MemoryPropertyLazilyAllocatedBit

// MemoryType mirrors one entry of VkPhysicalDeviceMemoryProperties.
type MemoryType struct {
	PropertyFlags vk.MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap mirrors one heap of VkPhysicalDeviceMemoryProperties.
type MemoryHeap struct {
	Size  vk.DeviceSize
	Flags vk.MemoryHeapFlags
}

// DeviceMemoryProperties holds the queried memory types/heaps for one
// physical device.
type DeviceMemoryProperties struct {
	MemoryTypes []MemoryType
	MemoryHeaps []MemoryHeap
}

// FromVk converts the native vkGetPhysicalDeviceMemoryProperties output
// (a fixed-size array with a live count) into the slice-based form this
// package works with.
func FromVk(p *vk.PhysicalDeviceMemoryProperties) DeviceMemoryProperties {
	props := DeviceMemoryProperties{
		MemoryTypes: make([]MemoryType, p.MemoryTypeCount),
		MemoryHeaps: make([]MemoryHeap, p.MemoryHeapCount),
	}
	for i := uint32(0); i < p.MemoryTypeCount; i++ {
		props.MemoryTypes[i] = MemoryType{
			PropertyFlags: p.MemoryTypes[i].PropertyFlags,
			HeapIndex:     p.MemoryTypes[i].HeapIndex,
		}
	}
	for i := uint32(0); i < p.MemoryHeapCount; i++ {
		props.MemoryHeaps[i] = MemoryHeap{
			Size:  p.MemoryHeaps[i].Size,
			Flags: p.MemoryHeaps[i].Flags,
		}
	}
	return props
}

// MemoryTypeSelector picks a memory type index for an allocation
// request: the requirement bits from the resource intersected with the
// property flags its Location demands.
type MemoryTypeSelector struct {
	properties DeviceMemoryProperties
	validTypes uint32
}

// NewMemoryTypeSelector builds a selector from queried device properties.
func NewMemoryTypeSelector(props DeviceMemoryProperties) *MemoryTypeSelector {
	var validTypes uint32
	for i, mt := range props.MemoryTypes {
		if mt.PropertyFlags&^knownMemoryFlags == 0 {
			validTypes |= 1 << uint(i)
		}
	}
	return &MemoryTypeSelector{properties: props, validTypes: validTypes}
}

// Select finds the best memory type index satisfying typeBits (from
// VkMemoryRequirements.memoryTypeBits) for the given location. It first
// tries required|preferred flags, then falls back to required alone.
func (s *MemoryTypeSelector) Select(typeBits uint32, location Location) (uint32, bool) {
	required, preferred := s.flagsFor(location)
	if idx, ok := s.find(typeBits, required|preferred); ok {
		return idx, true
	}
	return s.find(typeBits, required)
}

func (s *MemoryTypeSelector) find(typeBits uint32, flags vk.MemoryPropertyFlags) (uint32, bool) {
	for i, mt := range s.properties.MemoryTypes {
		mask := uint32(1) << uint(i)
		if typeBits&mask == 0 || s.validTypes&mask == 0 {
			continue
		}
		if mt.PropertyFlags&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}

func (s *MemoryTypeSelector) flagsFor(location Location) (required, preferred vk.MemoryPropertyFlags) {
	switch location {
	case LocationHost:
		required = vk.MemoryPropertyHostVisibleBit
		preferred = vk.MemoryPropertyHostCoherentBit
	default:
		preferred = vk.MemoryPropertyDeviceLocalBit
	}
	return required, preferred
}

// HeapSize returns the size of the heap backing typeIndex, used to derive
// the small-heap super-block divisor.
func (s *MemoryTypeSelector) HeapSize(typeIndex uint32) vk.DeviceSize {
	if int(typeIndex) >= len(s.properties.MemoryTypes) {
		return 0
	}
	heap := s.properties.MemoryTypes[typeIndex].HeapIndex
	if int(heap) >= len(s.properties.MemoryHeaps) {
		return 0
	}
	return s.properties.MemoryHeaps[heap].Size
}

// IsHostVisible reports whether typeIndex names host-visible memory.
func (s *MemoryTypeSelector) IsHostVisible(typeIndex uint32) bool {
	if int(typeIndex) >= len(s.properties.MemoryTypes) {
		return false
	}
	return s.properties.MemoryTypes[typeIndex].PropertyFlags&vk.MemoryPropertyHostVisibleBit != 0
}
