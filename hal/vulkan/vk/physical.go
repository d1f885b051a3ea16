// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// API version packing, VK_MAKE_API_VERSION.

func MakeAPIVersion(variant, major, minor, patch uint32) uint32 {
	return variant<<29 | major<<22 | minor<<12 | patch
}

func APIVersionMajor(v uint32) uint32 { return (v >> 22) & 0x7F }
func APIVersionMinor(v uint32) uint32 { return (v >> 12) & 0x3FF }

var (
	APIVersion12 = MakeAPIVersion(0, 1, 2, 0)
	APIVersion13 = MakeAPIVersion(0, 1, 3, 0)
)

type PhysicalDeviceType uint32

const (
	PhysicalDeviceTypeOther         PhysicalDeviceType = 0
	PhysicalDeviceTypeIntegratedGpu PhysicalDeviceType = 1
	PhysicalDeviceTypeDiscreteGpu   PhysicalDeviceType = 2
	PhysicalDeviceTypeVirtualGpu    PhysicalDeviceType = 3
	PhysicalDeviceTypeCpu           PhysicalDeviceType = 4
)

// PhysicalDeviceLimits mirrors VkPhysicalDeviceLimits exactly; field order
// and widths must match the C layout since the driver writes into it.
type PhysicalDeviceLimits struct {
	MaxImageDimension1D       uint32
	MaxImageDimension2D       uint32
	MaxImageDimension3D       uint32
	MaxImageDimensionCube     uint32
	MaxImageArrayLayers       uint32
	MaxTexelBufferElements    uint32
	MaxUniformBufferRange     uint32
	MaxStorageBufferRange     uint32
	MaxPushConstantsSize      uint32
	MaxMemoryAllocationCount  uint32
	MaxSamplerAllocationCount uint32

	BufferImageGranularity DeviceSize
	SparseAddressSpaceSize DeviceSize

	MaxBoundDescriptorSets uint32

	MaxPerStageDescriptorSamplers         uint32
	MaxPerStageDescriptorUniformBuffers   uint32
	MaxPerStageDescriptorStorageBuffers   uint32
	MaxPerStageDescriptorSampledImages    uint32
	MaxPerStageDescriptorStorageImages    uint32
	MaxPerStageDescriptorInputAttachments uint32
	MaxPerStageResources                  uint32

	MaxDescriptorSetSamplers              uint32
	MaxDescriptorSetUniformBuffers        uint32
	MaxDescriptorSetUniformBuffersDynamic uint32
	MaxDescriptorSetStorageBuffers        uint32
	MaxDescriptorSetStorageBuffersDynamic uint32
	MaxDescriptorSetSampledImages         uint32
	MaxDescriptorSetStorageImages         uint32
	MaxDescriptorSetInputAttachments      uint32

	MaxVertexInputAttributes      uint32
	MaxVertexInputBindings        uint32
	MaxVertexInputAttributeOffset uint32
	MaxVertexInputBindingStride   uint32
	MaxVertexOutputComponents     uint32

	MaxTessellationGenerationLevel                  uint32
	MaxTessellationPatchSize                        uint32
	MaxTessellationControlPerVertexInputComponents  uint32
	MaxTessellationControlPerVertexOutputComponents uint32
	MaxTessellationControlPerPatchOutputComponents  uint32
	MaxTessellationControlTotalOutputComponents     uint32
	MaxTessellationEvaluationInputComponents        uint32
	MaxTessellationEvaluationOutputComponents       uint32

	MaxGeometryShaderInvocations     uint32
	MaxGeometryInputComponents       uint32
	MaxGeometryOutputComponents      uint32
	MaxGeometryOutputVertices        uint32
	MaxGeometryTotalOutputComponents uint32

	MaxFragmentInputComponents         uint32
	MaxFragmentOutputAttachments       uint32
	MaxFragmentDualSrcAttachments      uint32
	MaxFragmentCombinedOutputResources uint32

	MaxComputeSharedMemorySize     uint32
	MaxComputeWorkGroupCount       [3]uint32
	MaxComputeWorkGroupInvocations uint32
	MaxComputeWorkGroupSize        [3]uint32

	SubPixelPrecisionBits uint32
	SubTexelPrecisionBits uint32
	MipmapPrecisionBits   uint32

	MaxDrawIndexedIndexValue uint32
	MaxDrawIndirectCount     uint32

	MaxSamplerLodBias    float32
	MaxSamplerAnisotropy float32

	MaxViewports          uint32
	MaxViewportDimensions [2]uint32
	ViewportBoundsRange   [2]float32
	ViewportSubPixelBits  uint32

	MinMemoryMapAlignment uintptr // C size_t

	MinTexelBufferOffsetAlignment   DeviceSize
	MinUniformBufferOffsetAlignment DeviceSize
	MinStorageBufferOffsetAlignment DeviceSize

	MinTexelOffset       int32
	MaxTexelOffset       uint32
	MinTexelGatherOffset int32
	MaxTexelGatherOffset uint32

	MinInterpolationOffset          float32
	MaxInterpolationOffset          float32
	SubPixelInterpolationOffsetBits uint32

	MaxFramebufferWidth  uint32
	MaxFramebufferHeight uint32
	MaxFramebufferLayers uint32

	FramebufferColorSampleCounts         SampleCountFlags
	FramebufferDepthSampleCounts         SampleCountFlags
	FramebufferStencilSampleCounts       SampleCountFlags
	FramebufferNoAttachmentsSampleCounts SampleCountFlags

	MaxColorAttachments uint32

	SampledImageColorSampleCounts   SampleCountFlags
	SampledImageIntegerSampleCounts SampleCountFlags
	SampledImageDepthSampleCounts   SampleCountFlags
	SampledImageStencilSampleCounts SampleCountFlags
	StorageImageSampleCounts        SampleCountFlags

	MaxSampleMaskWords uint32

	TimestampComputeAndGraphics Bool32
	TimestampPeriod             float32

	MaxClipDistances                uint32
	MaxCullDistances                uint32
	MaxCombinedClipAndCullDistances uint32

	DiscreteQueuePriorities uint32

	PointSizeRange       [2]float32
	LineWidthRange       [2]float32
	PointSizeGranularity float32
	LineWidthGranularity float32

	StrictLines             Bool32
	StandardSampleLocations Bool32

	OptimalBufferCopyOffsetAlignment   DeviceSize
	OptimalBufferCopyRowPitchAlignment DeviceSize
	NonCoherentAtomSize                DeviceSize
}

type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            Bool32
	ResidencyStandard2DMultisampleBlockShape Bool32
	ResidencyStandard3DBlockShape            Bool32
	ResidencyAlignedMipSize                  Bool32
	ResidencyNonResidentStrict               Bool32
}

const MaxPhysicalDeviceNameSize = 256

type PhysicalDeviceProperties struct {
	ApiVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        PhysicalDeviceType
	DeviceName        [MaxPhysicalDeviceNameSize]byte
	PipelineCacheUUID [16]byte
	Limits            PhysicalDeviceLimits
	SparseProperties  PhysicalDeviceSparseProperties
}

// DeviceNameString returns DeviceName as a Go string, trimmed at the NUL.
func (p *PhysicalDeviceProperties) DeviceNameString() string {
	for i, b := range p.DeviceName {
		if b == 0 {
			return string(p.DeviceName[:i])
		}
	}
	return string(p.DeviceName[:])
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice, out *PhysicalDeviceProperties) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceProperties, nil, args)
}

// Feature-enable structs chained through DeviceCreateInfo.PNext. The core
// 1.2/1.3 promotions keep their original extension structure-type values.

const (
	StructureTypePhysicalDeviceBufferDeviceAddressFeatures StructureType = 1000257000
	StructureTypePhysicalDeviceSynchronization2Features    StructureType = 1000314007
)

type PhysicalDeviceTimelineSemaphoreFeatures struct {
	SType             StructureType
	PNext             uintptr
	TimelineSemaphore Bool32
}

type PhysicalDeviceBufferDeviceAddressFeatures struct {
	SType                            StructureType
	PNext                            uintptr
	BufferDeviceAddress              Bool32
	BufferDeviceAddressCaptureReplay Bool32
	BufferDeviceAddressMultiDevice   Bool32
}

type PhysicalDeviceDynamicRenderingFeatures struct {
	SType            StructureType
	PNext            uintptr
	DynamicRendering Bool32
}

type PhysicalDeviceSynchronization2Features struct {
	SType            StructureType
	PNext            uintptr
	Synchronization2 Bool32
}
