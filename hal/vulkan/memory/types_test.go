// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

func testProperties() DeviceMemoryProperties {
	return DeviceMemoryProperties{
		MemoryTypes: []MemoryType{
			{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 1},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit, HeapIndex: 1},
			{PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 0},
		},
		MemoryHeaps: []MemoryHeap{
			{Size: 4 << 30},
			{Size: 8 << 30},
		},
	}
}

func TestNewMemoryTypeSelectorValidTypes(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	if selector.validTypes != 0b1111 {
		t.Errorf("validTypes = %b, want %b", selector.validTypes, 0b1111)
	}
}

func TestNewMemoryTypeSelectorRejectsExoticFlags(t *testing.T) {
	props := testProperties()
	props.MemoryTypes = append(props.MemoryTypes, MemoryType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | 1<<30,
		HeapIndex:     0,
	})
	selector := NewMemoryTypeSelector(props)
	if selector.validTypes&(1<<4) != 0 {
		t.Error("type with an unrecognized property bit should not be marked valid")
	}
}

func TestSelectDevice(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	idx, ok := selector.Select(0b1111, LocationDevice)
	if !ok || idx != 0 {
		t.Errorf("Select(device) = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestSelectHostPrefersCoherent(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	idx, ok := selector.Select(0b1111, LocationHost)
	if !ok || idx != 1 {
		t.Errorf("Select(host) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestSelectHostFallsBackWithoutCoherent(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	// Exclude types 1 and 3 (the HOST_VISIBLE|HOST_COHERENT types); type 2 is
	// HOST_VISIBLE|HOST_CACHED and should still satisfy the required-only pass.
	idx, ok := selector.Select(0b0101, LocationHost)
	if !ok || idx != 2 {
		t.Errorf("Select(host, no coherent) = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestSelectNoMatch(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	if _, ok := selector.Select(0b0001, LocationHost); ok {
		t.Error("Select should fail when typeBits excludes every host-visible type")
	}
}

func TestHeapSizeAndHostVisible(t *testing.T) {
	selector := NewMemoryTypeSelector(testProperties())
	if got := selector.HeapSize(1); got != 8<<30 {
		t.Errorf("HeapSize(1) = %d, want %d", got, 8<<30)
	}
	if !selector.IsHostVisible(1) {
		t.Error("type 1 should be host visible")
	}
	if selector.IsHostVisible(0) {
		t.Error("type 0 should not be host visible")
	}
}

func TestFromVk(t *testing.T) {
	var raw vk.PhysicalDeviceMemoryProperties
	raw.MemoryTypeCount = 2
	raw.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit}
	raw.MemoryTypes[1] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit, HeapIndex: 1}
	raw.MemoryHeapCount = 2
	raw.MemoryHeaps[0] = vk.MemoryHeap{Size: 1 << 30}
	raw.MemoryHeaps[1] = vk.MemoryHeap{Size: 2 << 30}

	props := FromVk(&raw)
	if len(props.MemoryTypes) != 2 || len(props.MemoryHeaps) != 2 {
		t.Fatalf("FromVk produced wrong lengths: %d types, %d heaps", len(props.MemoryTypes), len(props.MemoryHeaps))
	}
	if props.MemoryTypes[1].HeapIndex != 1 {
		t.Errorf("MemoryTypes[1].HeapIndex = %d, want 1", props.MemoryTypes[1].HeapIndex)
	}
}
