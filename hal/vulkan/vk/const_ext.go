// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Additional constants not generated from vk.xml but needed for Vulkan 1.2/1.3 features.

const (
	// === Vulkan 1.1 Core (promoted from KHR extensions) ===

	// StructureTypePhysicalDeviceFeatures2 = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_FEATURES_2
	StructureTypePhysicalDeviceFeatures2 StructureType = 1000059000

	// StructureTypePhysicalDeviceProperties2 = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_PROPERTIES_2
	StructureTypePhysicalDeviceProperties2 StructureType = 1000059001

	// === Vulkan 1.2 Core (promoted from VK_KHR_timeline_semaphore) ===

	// StructureTypePhysicalDeviceTimelineSemaphoreFeatures = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_TIMELINE_SEMAPHORE_FEATURES
	StructureTypePhysicalDeviceTimelineSemaphoreFeatures StructureType = 1000207000

	// StructureTypeSemaphoreTypeCreateInfo = VK_STRUCTURE_TYPE_SEMAPHORE_TYPE_CREATE_INFO
	StructureTypeSemaphoreTypeCreateInfo StructureType = 1000207002

	// StructureTypeTimelineSemaphoreSubmitInfo = VK_STRUCTURE_TYPE_TIMELINE_SEMAPHORE_SUBMIT_INFO
	StructureTypeTimelineSemaphoreSubmitInfo StructureType = 1000207003

	// StructureTypeSemaphoreWaitInfo = VK_STRUCTURE_TYPE_SEMAPHORE_WAIT_INFO
	StructureTypeSemaphoreWaitInfo StructureType = 1000207004

	// StructureTypeSemaphoreSignalInfo = VK_STRUCTURE_TYPE_SEMAPHORE_SIGNAL_INFO
	StructureTypeSemaphoreSignalInfo StructureType = 1000207005

	// StructureTypePhysicalDeviceVulkan12Features = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_VULKAN_1_2_FEATURES
	StructureTypePhysicalDeviceVulkan12Features StructureType = 51

	// === Vulkan 1.3 Core (promoted from VK_KHR_dynamic_rendering) ===

	// StructureTypeRenderingInfo = VK_STRUCTURE_TYPE_RENDERING_INFO
	StructureTypeRenderingInfo StructureType = 1000044000

	// StructureTypeRenderingAttachmentInfo = VK_STRUCTURE_TYPE_RENDERING_ATTACHMENT_INFO
	StructureTypeRenderingAttachmentInfo StructureType = 1000044001

	// StructureTypePipelineRenderingCreateInfo = VK_STRUCTURE_TYPE_PIPELINE_RENDERING_CREATE_INFO
	StructureTypePipelineRenderingCreateInfo StructureType = 1000044002

	// StructureTypePhysicalDeviceDynamicRenderingFeatures = VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_DYNAMIC_RENDERING_FEATURES
	StructureTypePhysicalDeviceDynamicRenderingFeatures StructureType = 1000044003

	// StructureTypeCommandBufferInheritanceRenderingInfo = VK_STRUCTURE_TYPE_COMMAND_BUFFER_INHERITANCE_RENDERING_INFO
	StructureTypeCommandBufferInheritanceRenderingInfo StructureType = 1000044004
)

// ErrorOutOfPoolMemory is VK_ERROR_OUT_OF_POOL_MEMORY (core 1.1): a
// descriptor pool has no room left for the requested set.
const ErrorOutOfPoolMemory Result = -1000069000

const (
	FilterNearest Filter = 0

	SamplerMipmapModeNearest uint32 = 0
	SamplerMipmapModeLinear  uint32 = 1

	SamplerAddressModeRepeat         uint32 = 0
	SamplerAddressModeMirroredRepeat uint32 = 1
	SamplerAddressModeClampToEdge    uint32 = 2
	SamplerAddressModeClampToBorder  uint32 = 3
)

const (
	ImageViewType1D        ImageViewType = 0
	ImageViewType3D        ImageViewType = 2
	ImageViewTypeCube      ImageViewType = 3
	ImageViewType1DArray   ImageViewType = 4
	ImageViewType2DArray   ImageViewType = 5
	ImageViewTypeCubeArray ImageViewType = 6
)

// VkStencilOp values, written into StencilOpState's raw uint32 op fields.
const (
	StencilOpKeep              uint32 = 0
	StencilOpZero              uint32 = 1
	StencilOpReplace           uint32 = 2
	StencilOpIncrementAndClamp uint32 = 3
	StencilOpDecrementAndClamp uint32 = 4
	StencilOpInvert            uint32 = 5
	StencilOpIncrementAndWrap  uint32 = 6
	StencilOpDecrementAndWrap  uint32 = 7
)

const (
	BlendFactorSrcAlphaSaturate      BlendFactor = 10
	BlendFactorConstantColor         BlendFactor = 11
	BlendFactorOneMinusConstantColor BlendFactor = 12
)

// Core vk.Format values used only by vertex attribute conversion.
const (
	FormatR16g16Unorm       Format = 77
	FormatR16g16Snorm       Format = 78
	FormatR16g16b16a16Unorm Format = 91
	FormatR16g16b16a16Snorm Format = 92
	FormatR32g32b32Uint     Format = 104
	FormatR32g32b32Sint     Format = 105
	FormatR32g32b32Sfloat   Format = 106
)

const (
	ObjectTypePipelineLayout      ObjectType = 17
	ObjectTypeDescriptorSetLayout ObjectType = 20
)

// MemoryAllocateFlagsInfo chains onto MemoryAllocateInfo.PNext when an
// allocation must support vkGetBufferDeviceAddress on buffers bound to it.
const StructureTypeMemoryAllocateFlagsInfo StructureType = 1000060000

type MemoryAllocateFlags uint32

const MemoryAllocateDeviceAddressBit MemoryAllocateFlags = 1 << 1

type MemoryAllocateFlagsInfo struct {
	SType      StructureType
	PNext      uintptr
	Flags      MemoryAllocateFlags
	DeviceMask uint32
}

// ClearValueDepthStencil creates a ClearValue from depth and stencil values.
func ClearValueDepthStencil(depth float32, stencil uint32) ClearValue {
	var cv ClearValue
	*(*float32)(unsafe.Pointer(&cv)) = depth
	*(*uint32)(unsafe.Pointer(uintptr(unsafe.Pointer(&cv)) + 4)) = stencil
	return cv
}

// GetColorFloat32 extracts float32[4] color values from a ClearValue.
func (cv *ClearValue) GetColorFloat32() [4]float32 {
	return *(*[4]float32)(unsafe.Pointer(cv))
}

// GetDepthStencil extracts depth and stencil values from a ClearValue.
func (cv *ClearValue) GetDepthStencil() (depth float32, stencil uint32) {
	depth = *(*float32)(unsafe.Pointer(cv))
	stencil = *(*uint32)(unsafe.Pointer(uintptr(unsafe.Pointer(cv)) + 4))
	return
}
