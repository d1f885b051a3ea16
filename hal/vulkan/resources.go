// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/forge-gpu/forge/frame"
	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/memory"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

// CreateBuffer creates a buffer and binds device memory to it. Buffers
// declaring MapRead or MapWrite usage are placed in host-visible memory
// and can be mapped; everything else goes to device-local memory.
func (d *Device) CreateBuffer(desc types.BufferDescriptor) (types.BufferHandle, error) {
	location := memory.LocationDevice
	if desc.Usage&(types.BufferUsageMapRead|types.BufferUsageMapWrite) != 0 {
		location = memory.LocationHost
	}
	return d.createBuffer(desc, location)
}

// CreatePersistentBuffer creates a host-visible buffer mapped for its
// whole lifetime and returns the mapping alongside the handle. The
// pointer stays valid until DestroyBuffer.
func (d *Device) CreatePersistentBuffer(desc types.BufferDescriptor) (types.BufferHandle, unsafe.Pointer, error) {
	h, err := d.createBuffer(desc, memory.LocationHost)
	if err != nil {
		return 0, nil, err
	}
	rec, _ := d.records.buffers.Get(handle.Handle(h))
	return h, rec.alloc.MappedPtr, nil
}

func (d *Device) createBuffer(desc types.BufferDescriptor, location memory.Location) (types.BufferHandle, error) {
	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        desc.Size,
		Usage:       bufferUsageToVk(desc.Usage, d.hasDeviceAddress),
		SharingMode: vk.SharingModeExclusive,
	}
	var native vk.Buffer
	if result := d.cmds.CreateBuffer(d.native, &info, nil, &native); result != vk.Success {
		return 0, vkErr("vkCreateBuffer", result)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetBufferMemoryRequirements(d.native, native, &reqs)

	alloc, err := d.mem.Allocate(reqs, location, false, location == memory.LocationHost)
	if err != nil {
		d.cmds.DestroyBuffer(d.native, native, nil)
		return 0, err
	}
	if result := d.cmds.BindBufferMemory(d.native, native, alloc.Memory, alloc.Offset); result != vk.Success {
		d.mem.Free(alloc)
		d.cmds.DestroyBuffer(d.native, native, nil)
		return 0, vkErr("vkBindBufferMemory", result)
	}

	rec := bufferRecord{
		native: native,
		alloc:  alloc,
		size:   desc.Size,
		usage:  desc.Usage,
	}
	if desc.MappedAtCreation {
		if alloc.MappedPtr == nil {
			d.mem.Free(alloc)
			d.cmds.DestroyBuffer(d.native, native, nil)
			return 0, fmt.Errorf("vulkan: MappedAtCreation requires host-visible usage")
		}
		rec.mapped = alloc.MappedPtr
		rec.mapCount = 1
	}

	h := d.records.buffers.Insert(rec)
	d.nameObject(vk.ObjectTypeBuffer, uint64(native), desc.Label)
	return types.BufferHandle(h), nil
}

// DestroyBuffer removes the handle and queues the native buffer and its
// memory for destruction when the current frame retires. A stale handle
// is a no-op. Destroying a buffer that is still mapped is a programming
// error.
func (d *Device) DestroyBuffer(tok frame.Token, h types.BufferHandle) {
	rec, ok := d.records.buffers.Remove(handle.Handle(h))
	if !ok {
		return
	}
	if rec.mapCount != 0 {
		panicMisusef("destroy_buffer", "buffer still mapped (%d outstanding maps)", rec.mapCount)
	}
	d.frameRecords[tok.Index()].buffers.push(destroyedBuffer{native: rec.native, alloc: rec.alloc})
}

// GetBufferAddress returns the buffer's 64-bit device address. Requires a
// 1.2-class driver; earlier drivers return 0.
func (d *Device) GetBufferAddress(h types.BufferHandle) uint64 {
	rec, ok := d.records.buffers.Get(handle.Handle(h))
	if !ok {
		panicMisuse("get_buffer_address", "stale buffer handle")
	}
	if !d.hasDeviceAddress {
		return 0
	}
	info := vk.BufferDeviceAddressInfo{
		SType:  vk.StructureTypeBufferDeviceAddressInfo,
		Buffer: rec.native,
	}
	return d.cmds.GetBufferDeviceAddress(d.native, &info)
}

// MapBuffer returns the buffer's host mapping, incrementing its map
// count. Only host-visible buffers can be mapped.
func (d *Device) MapBuffer(h types.BufferHandle) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	var err error
	ok := d.records.buffers.Mutate(handle.Handle(h), func(rec *bufferRecord) {
		if rec.alloc.MappedPtr == nil {
			err = fmt.Errorf("vulkan: map_buffer: buffer is not host-visible")
			return
		}
		rec.mapCount++
		rec.mapped = rec.alloc.MappedPtr
		ptr = rec.mapped
	})
	if !ok {
		panicMisuse("map_buffer", "stale buffer handle")
	}
	return ptr, err
}

// UnmapBuffer decrements the buffer's map count. Unbalanced unmaps are a
// programming error.
func (d *Device) UnmapBuffer(h types.BufferHandle) {
	ok := d.records.buffers.Mutate(handle.Handle(h), func(rec *bufferRecord) {
		if rec.mapCount == 0 {
			panicMisuse("unmap_buffer", "buffer is not mapped")
		}
		rec.mapCount--
	})
	if !ok {
		panicMisuse("unmap_buffer", "stale buffer handle")
	}
}

// CreateTexture creates an image with bound device memory and a default
// view covering its full subresource range.
func (d *Device) CreateTexture(desc types.TextureDescriptor) (types.TextureHandle, error) {
	format, err := toVkFormat(desc.Format)
	if err != nil {
		return 0, err
	}
	mips := desc.MipLevelCount
	if mips == 0 {
		mips = 1
	}
	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}
	layers := uint32(1)
	depth := uint32(1)
	if desc.Dimension == types.TextureDimension3D {
		depth = desc.Size.DepthOrArrayLayers
	} else {
		layers = max(desc.Size.DepthOrArrayLayers, 1)
	}

	info := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     imageTypeFor(desc.Dimension),
		Format:        format,
		Extent:        vk.Extent3D{Width: desc.Size.Width, Height: max(desc.Size.Height, 1), Depth: max(depth, 1)},
		MipLevels:     mips,
		ArrayLayers:   layers,
		Samples:       vk.SampleCountFlags(samples),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         textureUsageToVk(desc.Usage, desc.Format),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var native vk.Image
	if result := d.cmds.CreateImage(d.native, &info, nil, &native); result != vk.Success {
		return 0, vkErr("vkCreateImage", result)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetImageMemoryRequirements(d.native, native, &reqs)
	alloc, err := d.mem.Allocate(reqs, memory.LocationDevice, true, false)
	if err != nil {
		d.cmds.DestroyImage(d.native, native, nil)
		return 0, err
	}
	if result := d.cmds.BindImageMemory(d.native, native, alloc.Memory, alloc.Offset); result != vk.Success {
		d.mem.Free(alloc)
		d.cmds.DestroyImage(d.native, native, nil)
		return 0, vkErr("vkBindImageMemory", result)
	}

	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    native,
		ViewType: defaultViewTypeFor(desc.Dimension, layers),
		Format:   format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspectFor(desc.Format),
			LevelCount: mips,
			LayerCount: layers,
		},
	}
	var view vk.ImageView
	if result := d.cmds.CreateImageView(d.native, &viewInfo, nil, &view); result != vk.Success {
		d.mem.Free(alloc)
		d.cmds.DestroyImage(d.native, native, nil)
		return 0, vkErr("vkCreateImageView", result)
	}

	h := d.records.images.Insert(imageRecord{
		kind:      imageUnique,
		native:    native,
		view:      view,
		alloc:     alloc,
		extent:    Extent3D{Width: desc.Size.Width, Height: desc.Size.Height, Depth: desc.Size.DepthOrArrayLayers},
		format:    desc.Format,
		usage:     desc.Usage,
		mipLevels: mips,
		samples:   samples,
	})
	d.nameObject(vk.ObjectTypeImage, uint64(native), desc.Label)
	return types.TextureHandle(h), nil
}

// CreateTextureView creates a secondary view of t. The first secondary
// view converts the texture's record to shared ownership: the native
// image and memory move behind a reference-counted node that every view
// entry (and the original handle) releases, and the last release destroys
// them.
func (d *Device) CreateTextureView(t types.TextureHandle, desc types.TextureViewDescriptor) (types.TextureViewHandle, error) {
	var state *sharedImageState
	var convErr error
	ok := d.records.images.Mutate(handle.Handle(t), func(rec *imageRecord) {
		switch rec.kind {
		case imageSwapchain:
			convErr = fmt.Errorf("vulkan: create_texture_view: swapchain images do not support secondary views")
		case imageUnique:
			rec.shared = &sharedImageState{
				native: rec.native,
				alloc:  rec.alloc,
				views:  map[viewKey]vk.ImageView{{}: rec.view},
			}
			rec.shared.refCount.Store(1)
			rec.kind = imageShared
			rec.native = 0
			state = rec.shared
			state.retain()
		case imageShared:
			state = rec.shared
			state.retain()
		}
	})
	if !ok {
		panicMisuse("create_texture_view", "stale texture handle")
	}
	if convErr != nil {
		return 0, convErr
	}

	base, _ := d.records.images.Get(handle.Handle(t))

	viewFormat := desc.Format
	if viewFormat == types.TextureFormatUndefined {
		viewFormat = base.format
	}
	format, err := toVkFormat(viewFormat)
	if err != nil {
		state.release()
		return 0, err
	}
	mipCount := desc.MipLevelCount
	if mipCount == 0 {
		mipCount = base.mipLevels - desc.BaseMipLevel
	}
	layerCount := desc.ArrayLayerCount
	if layerCount == 0 {
		layerCount = 1
	}
	key := viewKey{
		format:     uint32(format),
		viewType:   viewTypeFor(desc.Dimension),
		aspect:     aspectForView(desc.Aspect, viewFormat),
		baseMip:    desc.BaseMipLevel,
		mipCount:   mipCount,
		baseLayer:  desc.BaseArrayLayer,
		layerCount: layerCount,
	}

	view, err := state.viewFor(d.cmds, d.native, key, viewTypeFor(desc.Dimension), aspectForView(desc.Aspect, viewFormat))
	if err != nil {
		state.release()
		return 0, err
	}

	h := d.records.images.Insert(imageRecord{
		kind:      imageShared,
		view:      view,
		shared:    state,
		extent:    base.extent,
		format:    viewFormat,
		usage:     base.usage,
		mipLevels: mipCount,
		samples:   base.samples,
	})
	d.nameObject(vk.ObjectTypeImageView, uint64(view), desc.Label)
	return types.TextureViewHandle(h), nil
}

// DestroyTexture removes the handle and queues destruction of whatever
// the record owns: the image, view and memory for sole ownership, or one
// reference for shared ownership (the last reference queues everything).
// Swapchain image handles are owned by their swapchain and cannot be
// destroyed through this path.
func (d *Device) DestroyTexture(tok frame.Token, h types.TextureHandle) {
	rec, ok := d.records.images.Remove(handle.Handle(h))
	if !ok {
		return
	}
	fr := d.frameRecords[tok.Index()]
	switch rec.kind {
	case imageUnique:
		fr.images.push(destroyedImage{native: rec.native, views: []vk.ImageView{rec.view}, alloc: rec.alloc, hasMem: true})
	case imageShared:
		if rec.shared.release() {
			fr.images.push(destroyedImage{
				native: rec.shared.native,
				views:  rec.shared.takeViews(),
				alloc:  rec.shared.alloc,
				hasMem: true,
			})
		}
	case imageSwapchain:
		panicMisuse("destroy_texture", "swapchain images are destroyed with their swapchain")
	}
}

// DestroyTextureView releases one view entry of a shared image.
func (d *Device) DestroyTextureView(tok frame.Token, h types.TextureViewHandle) {
	d.DestroyTexture(tok, types.TextureHandle(h))
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(desc types.SamplerDescriptor) (types.SamplerHandle, error) {
	maxAnisotropy := desc.MaxAnisotropy
	if maxAnisotropy == 0 {
		maxAnisotropy = 1
	}
	info := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    filterToVk(desc.MagFilter),
		MinFilter:    filterToVk(desc.MinFilter),
		MipmapMode:   mipmapModeToVk(desc.MipmapFilter),
		AddressModeU: addressModeToVk(desc.AddressModeU),
		AddressModeV: addressModeToVk(desc.AddressModeV),
		AddressModeW: addressModeToVk(desc.AddressModeW),
		MinLod:       desc.LodMinClamp,
		MaxLod:       desc.LodMaxClamp,
	}
	if maxAnisotropy > 1 {
		info.AnisotropyEnable = 1
		info.MaxAnisotropy = float32(maxAnisotropy)
	}
	if desc.Compare != types.CompareFunctionUndefined {
		info.CompareEnable = 1
		info.CompareOp = uint32(compareFunctionToVk(desc.Compare))
	}

	var native vk.Sampler
	if result := d.cmds.CreateSampler(d.native, &info, nil, &native); result != vk.Success {
		return 0, vkErr("vkCreateSampler", result)
	}
	h := d.records.samplers.Insert(samplerRecord{native: native})
	d.nameObject(vk.ObjectTypeSampler, uint64(native), desc.Label)
	return types.SamplerHandle(h), nil
}

// DestroySampler removes the handle and queues the native sampler.
func (d *Device) DestroySampler(tok frame.Token, h types.SamplerHandle) {
	rec, ok := d.records.samplers.Remove(handle.Handle(h))
	if !ok {
		return
	}
	d.frameRecords[tok.Index()].samplers.push(destroyedSampler{native: rec.native})
}

// CreateBindGroupLayout creates a descriptor set layout and remembers
// each binding's descriptor type and the counts a descriptor pool serving
// it needs.
func (d *Device) CreateBindGroupLayout(desc types.BindGroupLayoutDescriptor) (types.BindGroupLayoutHandle, error) {
	bindings := make([]vk.DescriptorSetLayoutBinding, len(desc.Entries))
	entries := make([]bindGroupLayoutEntry, len(desc.Entries))
	var counts descriptorCounts
	for i, e := range desc.Entries {
		dt, err := descriptorTypeFor(e, &counts)
		if err != nil {
			return 0, err
		}
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         e.Binding,
			DescriptorType:  dt,
			DescriptorCount: 1,
			StageFlags:      shaderStagesToVk(e.Visibility),
		}
		entries[i] = bindGroupLayoutEntry{binding: e.Binding, descriptorType: dt}
	}

	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
	}
	if len(bindings) > 0 {
		info.PBindings = &bindings[0]
	}
	var native vk.DescriptorSetLayout
	if result := d.cmds.CreateDescriptorSetLayout(d.native, &info, nil, &native); result != vk.Success {
		return 0, vkErr("vkCreateDescriptorSetLayout", result)
	}
	h := d.records.bindGroupLayouts.Insert(bindGroupLayoutRecord{native: native, counts: counts, entries: entries})
	d.nameObject(vk.ObjectTypeDescriptorSetLayout, uint64(native), desc.Label)
	return types.BindGroupLayoutHandle(h), nil
}

// DestroyBindGroupLayout removes the handle and queues the native layout.
func (d *Device) DestroyBindGroupLayout(tok frame.Token, h types.BindGroupLayoutHandle) {
	rec, ok := d.records.bindGroupLayouts.Remove(handle.Handle(h))
	if !ok {
		return
	}
	d.frameRecords[tok.Index()].bindGroupLayouts.push(destroyedBindGroupLayout{native: rec.native})
}

// createPipelineLayout chains the referenced bind group layouts and push
// constant ranges into a native pipeline layout, owned by the pipeline
// record.
func (d *Device) createPipelineLayout(layouts []types.BindGroupLayoutHandle, ranges []types.PushConstantRange) (vk.PipelineLayout, error) {
	setLayouts := make([]vk.DescriptorSetLayout, len(layouts))
	for i, lh := range layouts {
		rec, ok := d.records.bindGroupLayouts.Get(handle.Handle(lh))
		if !ok {
			return 0, fmt.Errorf("vulkan: create_pipeline: stale bind group layout handle %v", lh)
		}
		setLayouts[i] = rec.native
	}
	pushRanges := make([]vk.PushConstantRange, len(ranges))
	for i, r := range ranges {
		pushRanges[i] = vk.PushConstantRange{
			StageFlags: shaderStagesToVk(r.Stages),
			Offset:     r.Start,
			Size:       r.End - r.Start,
		}
	}

	info := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(setLayouts)),
	}
	if len(setLayouts) > 0 {
		info.PSetLayouts = &setLayouts[0]
	}
	if len(pushRanges) > 0 {
		info.PushConstantRangeCount = uint32(len(pushRanges))
		info.PPushConstantRanges = &pushRanges[0]
	}
	var layout vk.PipelineLayout
	if result := d.cmds.CreatePipelineLayout(d.native, &info, nil, &layout); result != vk.Success {
		return 0, vkErr("vkCreatePipelineLayout", result)
	}
	return layout, nil
}

// shaderModuleFrom wraps pre-built SPIR-V into a shader module. The
// binary is copied into word storage so the driver sees 4-byte-aligned
// code regardless of the caller's slice alignment.
func (d *Device) shaderModuleFrom(src types.ShaderSource) (vk.ShaderModule, error) {
	spirv, ok := src.(types.ShaderSourceSPIRV)
	if !ok {
		return 0, fmt.Errorf("vulkan: only SPIR-V shader sources are supported, got %T", src)
	}
	n := len(spirv.Code)
	if n == 0 || n%4 != 0 {
		return 0, fmt.Errorf("vulkan: SPIR-V binary length %d is not a positive multiple of 4", n)
	}
	words := make([]uint32, n/4)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n), spirv.Code)

	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(n),
		PCode:    unsafe.Pointer(&words[0]),
	}
	var module vk.ShaderModule
	result := d.cmds.CreateShaderModule(d.native, &info, nil, &module)
	runtime.KeepAlive(words)
	if result != vk.Success {
		return 0, vkErr("vkCreateShaderModule", result)
	}
	return module, nil
}

// CreateRenderPipeline creates a graphics pipeline for dynamic rendering.
// The pipeline owns its layout; shader modules are transient and released
// once the pipeline exists.
func (d *Device) CreateRenderPipeline(desc types.RenderPipelineDescriptor) (types.PipelineHandle, error) {
	layout, err := d.createPipelineLayout(desc.BindGroupLayouts, desc.PushConstantRanges)
	if err != nil {
		return 0, err
	}
	fail := func(err error) (types.PipelineHandle, error) {
		d.cmds.DestroyPipelineLayout(d.native, layout, nil)
		return 0, err
	}

	vertModule, err := d.shaderModuleFrom(desc.Vertex.Source)
	if err != nil {
		return fail(err)
	}
	defer d.cmds.DestroyShaderModule(d.native, vertModule, nil)

	entryVert := append([]byte(entryPointOr(desc.Vertex.EntryPoint, "main")), 0)
	stages := []vk.PipelineShaderStageCreateInfo{{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageVertexBit,
		Module: vertModule,
		PName:  uintptr(unsafe.Pointer(&entryVert[0])),
	}}

	var entryFrag []byte
	if desc.Fragment != nil {
		fragModule, err := d.shaderModuleFrom(desc.Fragment.Source)
		if err != nil {
			return fail(err)
		}
		defer d.cmds.DestroyShaderModule(d.native, fragModule, nil)
		entryFrag = append([]byte(entryPointOr(desc.Fragment.EntryPoint, "main")), 0)
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: fragModule,
			PName:  uintptr(unsafe.Pointer(&entryFrag[0])),
		})
	}

	var vertexBindings []vk.VertexInputBindingDescription
	var vertexAttrs []vk.VertexInputAttributeDescription
	for bi, buf := range desc.Vertex.Buffers {
		rate := vk.VertexInputRateVertex
		if buf.StepMode == types.VertexStepModeInstance {
			rate = vk.VertexInputRateInstance
		}
		vertexBindings = append(vertexBindings, vk.VertexInputBindingDescription{
			Binding:   uint32(bi),
			Stride:    uint32(buf.ArrayStride),
			InputRate: rate,
		})
		for _, attr := range buf.Attributes {
			vf, err := vertexFormatToVk(attr.Format)
			if err != nil {
				return fail(err)
			}
			vertexAttrs = append(vertexAttrs, vk.VertexInputAttributeDescription{
				Location: attr.ShaderLocation,
				Binding:  uint32(bi),
				Format:   vf,
				Offset:   uint32(attr.Offset),
			})
		}
	}
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}
	if len(vertexBindings) > 0 {
		vertexInput.VertexBindingDescriptionCount = uint32(len(vertexBindings))
		vertexInput.PVertexBindingDescriptions = &vertexBindings[0]
	}
	if len(vertexAttrs) > 0 {
		vertexInput.VertexAttributeDescriptionCount = uint32(len(vertexAttrs))
		vertexInput.PVertexAttributeDescriptions = &vertexAttrs[0]
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: topologyToVk(desc.Primitive.Topology),
	}
	if desc.Primitive.StripIndexFormat != nil {
		inputAssembly.PrimitiveRestartEnable = 1
	}

	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    cullModeToVk(desc.Primitive.CullMode),
		FrontFace:   frontFaceToVk(desc.Primitive.FrontFace),
		LineWidth:   1,
	}
	if desc.Primitive.UnclippedDepth {
		rasterization.DepthClampEnable = 1
	}

	sampleCount := desc.Multisample.Count
	if sampleCount == 0 {
		sampleCount = 1
	}
	sampleMask := uint32(desc.Multisample.Mask)
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCountFlags(sampleCount),
		PSampleMask:          &sampleMask,
	}
	if desc.Multisample.AlphaToCoverageEnabled {
		multisample.AlphaToCoverageEnable = 1
	}

	var depthStencil *vk.PipelineDepthStencilStateCreateInfo
	depthFormat := vk.FormatUndefined
	stencilFormat := vk.FormatUndefined
	if ds := desc.DepthStencil; ds != nil {
		format, err := toVkFormat(ds.Format)
		if err != nil {
			return fail(err)
		}
		depthFormat = format
		if formatHasStencil(ds.Format) {
			stencilFormat = format
		}
		depthStencil = &vk.PipelineDepthStencilStateCreateInfo{
			SType:           vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable: 1,
			DepthCompareOp:  compareFunctionToVk(ds.DepthCompare),
			Front:           stencilFaceToVk(ds.StencilFront, ds.StencilReadMask, ds.StencilWriteMask),
			Back:            stencilFaceToVk(ds.StencilBack, ds.StencilReadMask, ds.StencilWriteMask),
			MaxDepthBounds:  1,
		}
		if ds.DepthWriteEnabled {
			depthStencil.DepthWriteEnable = 1
		}
		if stencilStateUsed(ds.StencilFront) || stencilStateUsed(ds.StencilBack) {
			depthStencil.StencilTestEnable = 1
		}
	}

	var blendAttachments []vk.PipelineColorBlendAttachmentState
	var colorFormats []vk.Format
	if desc.Fragment != nil {
		for _, target := range desc.Fragment.Targets {
			format, err := toVkFormat(target.Format)
			if err != nil {
				return fail(err)
			}
			colorFormats = append(colorFormats, format)
			blendAttachments = append(blendAttachments, blendAttachmentToVk(target))
		}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
	}
	if len(blendAttachments) > 0 {
		colorBlend.PAttachments = &blendAttachments[0]
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    &dynamicStates[0],
	}

	rendering := vk.PipelineRenderingCreateInfo{
		SType:                   vk.StructureTypePipelineRenderingCreateInfo,
		ColorAttachmentCount:    uint32(len(colorFormats)),
		DepthAttachmentFormat:   depthFormat,
		StencilAttachmentFormat: stencilFormat,
	}
	if len(colorFormats) > 0 {
		rendering.PColorAttachmentFormats = &colorFormats[0]
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		PNext:               uintptr(unsafe.Pointer(&rendering)),
		StageCount:          uint32(len(stages)),
		PStages:             &stages[0],
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewport,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PDepthStencilState:  depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamic,
		Layout:              layout,
		BasePipelineIndex:   -1,
	}

	var native vk.Pipeline
	result := d.cmds.CreateGraphicsPipelines(d.native, 0, 1, &info, nil, &native)
	runtime.KeepAlive(entryVert)
	runtime.KeepAlive(entryFrag)
	runtime.KeepAlive(&rendering)
	if result != vk.Success {
		return fail(vkErr("vkCreateGraphicsPipelines", result))
	}
	if native == 0 {
		// Some drivers report success yet write a null pipeline.
		return fail(fmt.Errorf("vulkan: create_render_pipeline: %w", hal.ErrDriverBug))
	}

	h := d.records.pipelines.Insert(pipelineRecord{native: native, layout: layout, bindPoint: bindPointGraphics})
	d.nameObject(vk.ObjectTypePipeline, uint64(native), desc.Label)
	return types.PipelineHandle(h), nil
}

// CreateComputePipeline creates a compute pipeline; the record carries the
// compute bind point used when descriptor sets are bound against it.
func (d *Device) CreateComputePipeline(desc types.ComputePipelineDescriptor) (types.PipelineHandle, error) {
	layout, err := d.createPipelineLayout(desc.BindGroupLayouts, desc.PushConstantRanges)
	if err != nil {
		return 0, err
	}
	module, err := d.shaderModuleFrom(desc.Compute.Source)
	if err != nil {
		d.cmds.DestroyPipelineLayout(d.native, layout, nil)
		return 0, err
	}
	defer d.cmds.DestroyShaderModule(d.native, module, nil)

	entry := append([]byte(entryPointOr(desc.Compute.EntryPoint, "main")), 0)
	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: module,
			PName:  uintptr(unsafe.Pointer(&entry[0])),
		},
		Layout: layout,
	}

	var native vk.Pipeline
	result := d.cmds.CreateComputePipelines(d.native, 0, 1, &info, nil, &native)
	runtime.KeepAlive(entry)
	if result != vk.Success {
		d.cmds.DestroyPipelineLayout(d.native, layout, nil)
		return 0, vkErr("vkCreateComputePipelines", result)
	}
	if native == 0 {
		d.cmds.DestroyPipelineLayout(d.native, layout, nil)
		return 0, fmt.Errorf("vulkan: create_compute_pipeline: %w", hal.ErrDriverBug)
	}

	h := d.records.pipelines.Insert(pipelineRecord{native: native, layout: layout, bindPoint: bindPointCompute})
	d.nameObject(vk.ObjectTypePipeline, uint64(native), desc.Label)
	return types.PipelineHandle(h), nil
}

// DestroyPipeline removes the handle and queues the pipeline and its
// layout.
func (d *Device) DestroyPipeline(tok frame.Token, h types.PipelineHandle) {
	rec, ok := d.records.pipelines.Remove(handle.Handle(h))
	if !ok {
		return
	}
	d.frameRecords[tok.Index()].pipelines.push(destroyedPipeline{native: rec.native, layout: rec.layout})
}

// nameObject attaches a debug-utils name when validation is active and
// the resource was created with a label.
func (d *Device) nameObject(objType vk.ObjectType, objHandle uint64, label string) {
	if !d.debugUtils || label == "" {
		return
	}
	setDebugObjectName(d.cmds, d.native, objType, objHandle, label)
}

func entryPointOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// --- descriptor conversions -------------------------------------------------

func bufferUsageToVk(u types.BufferUsage, deviceAddress bool) vk.BufferUsageFlags {
	var f vk.BufferUsageFlags
	if u&types.BufferUsageCopySrc != 0 {
		f |= vk.BufferUsageTransferSrcBit
	}
	if u&types.BufferUsageCopyDst != 0 {
		f |= vk.BufferUsageTransferDstBit
	}
	if u&types.BufferUsageIndex != 0 {
		f |= vk.BufferUsageIndexBufferBit
	}
	if u&types.BufferUsageVertex != 0 {
		f |= vk.BufferUsageVertexBufferBit
	}
	if u&types.BufferUsageUniform != 0 {
		f |= vk.BufferUsageUniformBufferBit
	}
	if u&types.BufferUsageStorage != 0 {
		f |= vk.BufferUsageStorageBufferBit
	}
	if u&types.BufferUsageIndirect != 0 {
		f |= vk.BufferUsageIndirectBufferBit
	}
	if deviceAddress {
		f |= vk.BufferUsageShaderDeviceAddressBit
	}
	return f
}

func textureUsageToVk(u types.TextureUsage, format types.TextureFormat) vk.ImageUsageFlags {
	var f vk.ImageUsageFlags
	if u&types.TextureUsageCopySrc != 0 {
		f |= vk.ImageUsageTransferSrcBit
	}
	if u&types.TextureUsageCopyDst != 0 {
		f |= vk.ImageUsageTransferDstBit
	}
	if u&types.TextureUsageTextureBinding != 0 {
		f |= vk.ImageUsageSampledBit
	}
	if u&types.TextureUsageStorageBinding != 0 {
		f |= vk.ImageUsageStorageBit
	}
	if u&types.TextureUsageRenderAttachment != 0 {
		if formatHasDepth(format) || formatHasStencil(format) {
			f |= vk.ImageUsageDepthStencilAttachmentBit
		} else {
			f |= vk.ImageUsageColorAttachmentBit
		}
	}
	return f
}

func formatHasDepth(f types.TextureFormat) bool {
	switch f {
	case types.TextureFormatDepth16Unorm, types.TextureFormatDepth24Plus,
		types.TextureFormatDepth24PlusStencil8, types.TextureFormatDepth32Float,
		types.TextureFormatDepth32FloatStencil8:
		return true
	}
	return false
}

func formatHasStencil(f types.TextureFormat) bool {
	switch f {
	case types.TextureFormatStencil8, types.TextureFormatDepth24PlusStencil8,
		types.TextureFormatDepth32FloatStencil8:
		return true
	}
	return false
}

func aspectFor(f types.TextureFormat) vk.ImageAspectFlags {
	var aspect vk.ImageAspectFlags
	if formatHasDepth(f) {
		aspect |= vk.ImageAspectDepthBit
	}
	if formatHasStencil(f) {
		aspect |= vk.ImageAspectStencilBit
	}
	if aspect == 0 {
		aspect = vk.ImageAspectColorBit
	}
	return aspect
}

func aspectForView(a types.TextureAspect, format types.TextureFormat) vk.ImageAspectFlags {
	switch a {
	case types.TextureAspectDepthOnly:
		return vk.ImageAspectDepthBit
	case types.TextureAspectStencilOnly:
		return vk.ImageAspectStencilBit
	default:
		return aspectFor(format)
	}
}

func imageTypeFor(dim types.TextureDimension) vk.ImageType {
	switch dim {
	case types.TextureDimension1D:
		return vk.ImageType1D
	case types.TextureDimension3D:
		return vk.ImageType3D
	default:
		return vk.ImageType2D
	}
}

func defaultViewTypeFor(dim types.TextureDimension, layers uint32) vk.ImageViewType {
	switch dim {
	case types.TextureDimension1D:
		return vk.ImageViewType1D
	case types.TextureDimension3D:
		return vk.ImageViewType3D
	default:
		if layers > 1 {
			return vk.ImageViewType2DArray
		}
		return vk.ImageViewType2D
	}
}

func viewTypeFor(dim types.TextureViewDimension) vk.ImageViewType {
	switch dim {
	case types.TextureViewDimension1D:
		return vk.ImageViewType1D
	case types.TextureViewDimension2DArray:
		return vk.ImageViewType2DArray
	case types.TextureViewDimensionCube:
		return vk.ImageViewTypeCube
	case types.TextureViewDimensionCubeArray:
		return vk.ImageViewTypeCubeArray
	case types.TextureViewDimension3D:
		return vk.ImageViewType3D
	default:
		return vk.ImageViewType2D
	}
}

func filterToVk(f types.FilterMode) vk.Filter {
	if f == types.FilterModeLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

func mipmapModeToVk(m types.MipmapFilterMode) uint32 {
	if m == types.MipmapFilterModeLinear {
		return vk.SamplerMipmapModeLinear
	}
	return vk.SamplerMipmapModeNearest
}

func addressModeToVk(m types.AddressMode) uint32 {
	switch m {
	case types.AddressModeRepeat:
		return vk.SamplerAddressModeRepeat
	case types.AddressModeMirrorRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	default:
		return vk.SamplerAddressModeClampToEdge
	}
}

// compareFunctionToVk relies on the two enums sharing order; the
// backend-agnostic enum is offset by one for its Undefined member.
func compareFunctionToVk(c types.CompareFunction) vk.CompareOp {
	if c == types.CompareFunctionUndefined {
		return vk.CompareOpAlways
	}
	return vk.CompareOp(c - 1)
}

func shaderStagesToVk(s types.ShaderStages) vk.ShaderStageFlags {
	var f vk.ShaderStageFlags
	if s&types.ShaderStageVertex != 0 {
		f |= vk.ShaderStageVertexBit
	}
	if s&types.ShaderStageFragment != 0 {
		f |= vk.ShaderStageFragmentBit
	}
	if s&types.ShaderStageCompute != 0 {
		f |= vk.ShaderStageComputeBit
	}
	return f
}

func descriptorTypeFor(e types.BindGroupLayoutEntry, counts *descriptorCounts) (vk.DescriptorType, error) {
	switch {
	case e.Buffer != nil:
		if e.Buffer.Type == types.BufferBindingTypeStorage || e.Buffer.Type == types.BufferBindingTypeReadOnlyStorage {
			counts.StorageBuffers++
			return vk.DescriptorTypeStorageBuffer, nil
		}
		counts.UniformBuffers++
		return vk.DescriptorTypeUniformBuffer, nil
	case e.Sampler != nil:
		counts.Samplers++
		return vk.DescriptorTypeSampler, nil
	case e.Texture != nil:
		counts.SampledImages++
		return vk.DescriptorTypeSampledImage, nil
	case e.Storage != nil:
		counts.StorageImages++
		return vk.DescriptorTypeStorageImage, nil
	default:
		return 0, fmt.Errorf("vulkan: bind group layout entry %d declares no binding type", e.Binding)
	}
}

func topologyToVk(t types.PrimitiveTopology) vk.PrimitiveTopology {
	switch t {
	case types.PrimitiveTopologyPointList:
		return vk.PrimitiveTopologyPointList
	case types.PrimitiveTopologyLineList:
		return vk.PrimitiveTopologyLineList
	case types.PrimitiveTopologyLineStrip:
		return vk.PrimitiveTopologyLineStrip
	case types.PrimitiveTopologyTriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip
	default:
		return vk.PrimitiveTopologyTriangleList
	}
}

func cullModeToVk(m types.CullMode) vk.CullModeFlags {
	switch m {
	case types.CullModeFront:
		return vk.CullModeFrontBit
	case types.CullModeBack:
		return vk.CullModeBackBit
	default:
		return vk.CullModeNone
	}
}

func frontFaceToVk(f types.FrontFace) vk.FrontFace {
	if f == types.FrontFaceCW {
		return vk.FrontFaceClockwise
	}
	return vk.FrontFaceCounterClockwise
}

func stencilOperationToVk(op types.StencilOperation) uint32 {
	switch op {
	case types.StencilOperationZero:
		return vk.StencilOpZero
	case types.StencilOperationReplace:
		return vk.StencilOpReplace
	case types.StencilOperationInvert:
		return vk.StencilOpInvert
	case types.StencilOperationIncrementClamp:
		return vk.StencilOpIncrementAndClamp
	case types.StencilOperationDecrementClamp:
		return vk.StencilOpDecrementAndClamp
	case types.StencilOperationIncrementWrap:
		return vk.StencilOpIncrementAndWrap
	case types.StencilOperationDecrementWrap:
		return vk.StencilOpDecrementAndWrap
	default:
		return vk.StencilOpKeep
	}
}

func stencilFaceToVk(s types.StencilFaceState, readMask, writeMask uint32) vk.StencilOpState {
	return vk.StencilOpState{
		FailOp:      stencilOperationToVk(s.FailOp),
		PassOp:      stencilOperationToVk(s.PassOp),
		DepthFailOp: stencilOperationToVk(s.DepthFailOp),
		CompareOp:   compareFunctionToVk(s.Compare),
		CompareMask: readMask,
		WriteMask:   writeMask,
	}
}

// stencilStateUsed reports whether a face's state differs from the
// pass-through default (always pass, keep everything).
func stencilStateUsed(s types.StencilFaceState) bool {
	passthrough := s.Compare == types.CompareFunctionUndefined || s.Compare == types.CompareFunctionAlways
	return !passthrough || s.FailOp != types.StencilOperationKeep ||
		s.DepthFailOp != types.StencilOperationKeep || s.PassOp != types.StencilOperationKeep
}

func blendFactorToVk(f types.BlendFactor) vk.BlendFactor {
	switch f {
	case types.BlendFactorZero:
		return vk.BlendFactorZero
	case types.BlendFactorOne:
		return vk.BlendFactorOne
	case types.BlendFactorSrc:
		return vk.BlendFactorSrcColor
	case types.BlendFactorOneMinusSrc:
		return vk.BlendFactorOneMinusSrcColor
	case types.BlendFactorSrcAlpha:
		return vk.BlendFactorSrcAlpha
	case types.BlendFactorOneMinusSrcAlpha:
		return vk.BlendFactorOneMinusSrcAlpha
	case types.BlendFactorDst:
		return vk.BlendFactorDstColor
	case types.BlendFactorOneMinusDst:
		return vk.BlendFactorOneMinusDstColor
	case types.BlendFactorDstAlpha:
		return vk.BlendFactorDstAlpha
	case types.BlendFactorOneMinusDstAlpha:
		return vk.BlendFactorOneMinusDstAlpha
	case types.BlendFactorSrcAlphaSaturated:
		return vk.BlendFactorSrcAlphaSaturate
	case types.BlendFactorConstant:
		return vk.BlendFactorConstantColor
	case types.BlendFactorOneMinusConstant:
		return vk.BlendFactorOneMinusConstantColor
	default:
		return vk.BlendFactorZero
	}
}

func blendOperationToVk(op types.BlendOperation) vk.BlendOp {
	switch op {
	case types.BlendOperationSubtract:
		return vk.BlendOpSubtract
	case types.BlendOperationReverseSubtract:
		return vk.BlendOpReverseSubtract
	case types.BlendOperationMin:
		return vk.BlendOpMin
	case types.BlendOperationMax:
		return vk.BlendOpMax
	default:
		return vk.BlendOpAdd
	}
}

func blendAttachmentToVk(target types.ColorTargetState) vk.PipelineColorBlendAttachmentState {
	state := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(target.WriteMask),
	}
	if target.WriteMask == 0 {
		state.ColorWriteMask = vk.ColorComponentAllBits
	}
	if b := target.Blend; b != nil {
		state.BlendEnable = 1
		state.SrcColorBlendFactor = blendFactorToVk(b.Color.SrcFactor)
		state.DstColorBlendFactor = blendFactorToVk(b.Color.DstFactor)
		state.ColorBlendOp = blendOperationToVk(b.Color.Operation)
		state.SrcAlphaBlendFactor = blendFactorToVk(b.Alpha.SrcFactor)
		state.DstAlphaBlendFactor = blendFactorToVk(b.Alpha.DstFactor)
		state.AlphaBlendOp = blendOperationToVk(b.Alpha.Operation)
	}
	return state
}

func vertexFormatToVk(f types.VertexFormat) (vk.Format, error) {
	switch f {
	case types.VertexFormatUint8x2:
		return vk.FormatR8g8Uint, nil
	case types.VertexFormatUint8x4:
		return vk.FormatR8g8b8a8Uint, nil
	case types.VertexFormatSint8x2:
		return vk.FormatR8g8Sint, nil
	case types.VertexFormatSint8x4:
		return vk.FormatR8g8b8a8Sint, nil
	case types.VertexFormatUnorm8x2:
		return vk.FormatR8g8Unorm, nil
	case types.VertexFormatUnorm8x4:
		return vk.FormatR8g8b8a8Unorm, nil
	case types.VertexFormatSnorm8x2:
		return vk.FormatR8g8Snorm, nil
	case types.VertexFormatSnorm8x4:
		return vk.FormatR8g8b8a8Snorm, nil
	case types.VertexFormatUint16x2:
		return vk.FormatR16g16Uint, nil
	case types.VertexFormatUint16x4:
		return vk.FormatR16g16b16a16Uint, nil
	case types.VertexFormatSint16x2:
		return vk.FormatR16g16Sint, nil
	case types.VertexFormatSint16x4:
		return vk.FormatR16g16b16a16Sint, nil
	case types.VertexFormatUnorm16x2:
		return vk.FormatR16g16Unorm, nil
	case types.VertexFormatUnorm16x4:
		return vk.FormatR16g16b16a16Unorm, nil
	case types.VertexFormatSnorm16x2:
		return vk.FormatR16g16Snorm, nil
	case types.VertexFormatSnorm16x4:
		return vk.FormatR16g16b16a16Snorm, nil
	case types.VertexFormatFloat16x2:
		return vk.FormatR16g16Sfloat, nil
	case types.VertexFormatFloat16x4:
		return vk.FormatR16g16b16a16Sfloat, nil
	case types.VertexFormatFloat32:
		return vk.FormatR32Sfloat, nil
	case types.VertexFormatFloat32x2:
		return vk.FormatR32g32Sfloat, nil
	case types.VertexFormatFloat32x3:
		return vk.FormatR32g32b32Sfloat, nil
	case types.VertexFormatFloat32x4:
		return vk.FormatR32g32b32a32Sfloat, nil
	case types.VertexFormatUint32:
		return vk.FormatR32Uint, nil
	case types.VertexFormatUint32x2:
		return vk.FormatR32g32Uint, nil
	case types.VertexFormatUint32x3:
		return vk.FormatR32g32b32Uint, nil
	case types.VertexFormatUint32x4:
		return vk.FormatR32g32b32a32Uint, nil
	case types.VertexFormatSint32:
		return vk.FormatR32Sint, nil
	case types.VertexFormatSint32x2:
		return vk.FormatR32g32Sint, nil
	case types.VertexFormatSint32x3:
		return vk.FormatR32g32b32Sint, nil
	case types.VertexFormatSint32x4:
		return vk.FormatR32g32b32a32Sint, nil
	case types.VertexFormatUnorm1010102:
		return vk.FormatA2b10g10r10UnormPack32, nil
	default:
		return 0, fmt.Errorf("vulkan: unsupported vertex format %d", f)
	}
}
