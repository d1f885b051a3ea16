// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/types"
)

func TestBufferUsageToVk(t *testing.T) {
	got := bufferUsageToVk(types.BufferUsageCopyDst|types.BufferUsageVertex|types.BufferUsageUniform, false)
	want := vk.BufferUsageTransferDstBit | vk.BufferUsageVertexBufferBit | vk.BufferUsageUniformBufferBit
	if got != want {
		t.Errorf("bufferUsageToVk = %#x, want %#x", got, want)
	}

	withAddress := bufferUsageToVk(types.BufferUsageStorage, true)
	if withAddress&vk.BufferUsageShaderDeviceAddressBit == 0 {
		t.Error("device-address capable buffers should carry the shader-device-address usage")
	}
}

func TestTextureUsageToVkRoutesAttachmentByFormat(t *testing.T) {
	color := textureUsageToVk(types.TextureUsageRenderAttachment, types.TextureFormatRGBA8Unorm)
	if color&vk.ImageUsageColorAttachmentBit == 0 || color&vk.ImageUsageDepthStencilAttachmentBit != 0 {
		t.Errorf("color attachment usage = %#x", color)
	}
	depth := textureUsageToVk(types.TextureUsageRenderAttachment, types.TextureFormatDepth32Float)
	if depth&vk.ImageUsageDepthStencilAttachmentBit == 0 || depth&vk.ImageUsageColorAttachmentBit != 0 {
		t.Errorf("depth attachment usage = %#x", depth)
	}
}

func TestCompareFunctionToVk(t *testing.T) {
	tests := []struct {
		in   types.CompareFunction
		want vk.CompareOp
	}{
		{types.CompareFunctionNever, vk.CompareOpNever},
		{types.CompareFunctionLess, vk.CompareOpLess},
		{types.CompareFunctionGreaterEqual, vk.CompareOpGreaterOrEqual},
		{types.CompareFunctionAlways, vk.CompareOpAlways},
		{types.CompareFunctionUndefined, vk.CompareOpAlways},
	}
	for _, tt := range tests {
		if got := compareFunctionToVk(tt.in); got != tt.want {
			t.Errorf("compareFunctionToVk(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDescriptorTypeForCounts(t *testing.T) {
	var counts descriptorCounts
	entries := []types.BindGroupLayoutEntry{
		{Binding: 0, Buffer: &types.BufferBindingLayout{Type: types.BufferBindingTypeUniform}},
		{Binding: 1, Buffer: &types.BufferBindingLayout{Type: types.BufferBindingTypeStorage}},
		{Binding: 2, Sampler: &types.SamplerBindingLayout{}},
		{Binding: 3, Texture: &types.TextureBindingLayout{}},
		{Binding: 4, Storage: &types.StorageTextureBindingLayout{}},
	}
	wantTypes := []vk.DescriptorType{
		vk.DescriptorTypeUniformBuffer,
		vk.DescriptorTypeStorageBuffer,
		vk.DescriptorTypeSampler,
		vk.DescriptorTypeSampledImage,
		vk.DescriptorTypeStorageImage,
	}
	for i, e := range entries {
		dt, err := descriptorTypeFor(e, &counts)
		if err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
		if dt != wantTypes[i] {
			t.Errorf("entry %d descriptor type = %d, want %d", i, dt, wantTypes[i])
		}
	}
	if counts.total() != 5 {
		t.Errorf("counts.total() = %d, want 5", counts.total())
	}
	if counts.isEmpty() {
		t.Error("counts should not be empty")
	}

	if _, err := descriptorTypeFor(types.BindGroupLayoutEntry{Binding: 9}, &counts); err == nil {
		t.Error("an entry with no binding type should be rejected")
	}
}

func TestStencilStateUsed(t *testing.T) {
	if stencilStateUsed(types.StencilFaceState{}) {
		t.Error("zero-value face state is pass-through")
	}
	if !stencilStateUsed(types.StencilFaceState{Compare: types.CompareFunctionLess}) {
		t.Error("a comparing face state is in use")
	}
	if !stencilStateUsed(types.StencilFaceState{PassOp: types.StencilOperationReplace}) {
		t.Error("a writing face state is in use")
	}
}

func TestBlendAttachmentDefaults(t *testing.T) {
	state := blendAttachmentToVk(types.ColorTargetState{})
	if state.BlendEnable != 0 {
		t.Error("blending should be disabled without a BlendState")
	}
	if state.ColorWriteMask != vk.ColorComponentAllBits {
		t.Errorf("zero write mask should default to all channels, got %#x", state.ColorWriteMask)
	}

	state = blendAttachmentToVk(types.ColorTargetState{Blend: &types.BlendState{
		Color: types.BlendComponent{SrcFactor: types.BlendFactorSrcAlpha, DstFactor: types.BlendFactorOneMinusSrcAlpha, Operation: types.BlendOperationAdd},
		Alpha: types.BlendComponent{SrcFactor: types.BlendFactorOne, DstFactor: types.BlendFactorZero, Operation: types.BlendOperationAdd},
	}})
	if state.BlendEnable != 1 || state.SrcColorBlendFactor != vk.BlendFactorSrcAlpha || state.DstColorBlendFactor != vk.BlendFactorOneMinusSrcAlpha {
		t.Errorf("alpha blending state = %+v", state)
	}
}

func TestVertexFormatToVkCoversEveryFormat(t *testing.T) {
	for f := types.VertexFormatUint8x2; f <= types.VertexFormatUnorm1010102; f++ {
		if _, err := vertexFormatToVk(f); err != nil {
			t.Errorf("vertexFormatToVk(%d): %v", f, err)
		}
	}
	if _, err := vertexFormatToVk(types.VertexFormat(200)); err == nil {
		t.Error("unknown vertex formats should be rejected")
	}
}

func TestTransientAlignment(t *testing.T) {
	d := &Device{}
	d.properties.Limits.MinUniformBufferOffsetAlignment = 256
	d.properties.Limits.MinStorageBufferOffsetAlignment = 64
	d.properties.Limits.OptimalBufferCopyOffsetAlignment = 16

	tests := []struct {
		usage types.BufferUsage
		want  uint32
	}{
		{types.BufferUsageVertex, 1},
		{types.BufferUsageUniform, 256},
		{types.BufferUsageStorage, 64},
		{types.BufferUsageCopySrc, 16},
		{types.BufferUsageUniform | types.BufferUsageCopyDst, 256},
	}
	for _, tt := range tests {
		if got := d.transientAlignment(tt.usage); got != tt.want {
			t.Errorf("transientAlignment(%#x) = %d, want %d", tt.usage, got, tt.want)
		}
	}
}

func TestAdapterInfoFrom(t *testing.T) {
	var props vk.PhysicalDeviceProperties
	props.DeviceType = vk.PhysicalDeviceTypeDiscreteGpu
	props.VendorID = 0x10DE
	copy(props.DeviceName[:], "Test GPU\x00")

	info := adapterInfoFrom(props)
	if info.DeviceType != types.DeviceTypeDiscreteGPU {
		t.Errorf("DeviceType = %v", info.DeviceType)
	}
	if info.Name != "Test GPU" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.VendorID != 0x10DE {
		t.Errorf("VendorID = %#x", info.VendorID)
	}
}
