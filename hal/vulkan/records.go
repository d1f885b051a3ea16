// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/forge-gpu/forge/hal/vulkan/memory"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

// bufferRecord pairs the native buffer with its backing allocation and
// a live map-reference count gating MapBuffer/UnmapBuffer.
type bufferRecord struct {
	native   vk.Buffer
	alloc    memory.Allocation
	size     vk.DeviceSize
	usage    types.BufferUsage
	mapped   unsafe.Pointer
	mapCount int32
}

// imageKind distinguishes the three ownership variants an image record
// can have: a sole owner, a reference-counted shared owner, and a
// non-owning reference into a swapchain's own images.
type imageKind uint8

const (
	imageUnique imageKind = iota
	imageShared
	imageSwapchain
)

// sharedImageState is the inner, reference-counted node a Shared image
// record points to; the last releaser destroys the image and its memory.
type sharedImageState struct {
	native   vk.Image
	alloc    memory.Allocation
	refCount atomic.Int32

	mu    sync.Mutex
	views map[viewKey]vk.ImageView
}

func (s *sharedImageState) retain() { s.refCount.Add(1) }

// release drops one reference and reports whether the caller is the last
// holder and must destroy the image, its views and its memory.
func (s *sharedImageState) release() bool {
	n := s.refCount.Add(-1)
	if n < 0 {
		panicMisuse("destroy_texture", "shared image released more times than retained")
	}
	return n == 0
}

// viewFor returns the view registered under key, creating it on first
// request.
func (s *sharedImageState) viewFor(cmds *vk.Commands, device vk.Device, key viewKey, viewType vk.ImageViewType, aspect vk.ImageAspectFlags) (vk.ImageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[key]; ok {
		return v, nil
	}
	info := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    s.native,
		ViewType: viewType,
		Format:   vk.Format(key.format),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   key.baseMip,
			LevelCount:     key.mipCount,
			BaseArrayLayer: key.baseLayer,
			LayerCount:     key.layerCount,
		},
	}
	var view vk.ImageView
	if result := cmds.CreateImageView(device, &info, nil, &view); result != vk.Success {
		return 0, fmt.Errorf("vulkan: secondary view: %w", vkErr("vkCreateImageView", result))
	}
	s.views[key] = view
	return view, nil
}

// takeViews returns every registered view and clears the map; called only
// by the last releaser.
func (s *sharedImageState) takeViews() []vk.ImageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]vk.ImageView, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	s.views = nil
	return views
}

// viewKey identifies a lazily-created secondary view of a shared image by
// the parameters that make a view distinct: format, view type, aspect,
// mip range and layer range.
type viewKey struct {
	format     uint32
	viewType   vk.ImageViewType
	aspect     vk.ImageAspectFlags
	baseMip    uint32
	mipCount   uint32
	baseLayer  uint32
	layerCount uint32
}

// imageRecord is the handle-pool payload for every image handle,
// regardless of kind.
type imageRecord struct {
	kind imageKind

	// imageUnique
	native vk.Image
	view   vk.ImageView
	alloc  memory.Allocation

	// imageShared
	shared *sharedImageState

	// imageSwapchain
	swapchainView vk.ImageView

	extent    Extent3D
	format    types.TextureFormat
	usage     types.TextureUsage
	mipLevels uint32
	samples   uint32
}

// Extent3D is a width/height/depth triple in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}

type samplerRecord struct {
	native vk.Sampler
}

// bindGroupLayoutEntry remembers one binding's native descriptor type, so
// cmd_set_bind_group can fill in vk.WriteDescriptorSet.DescriptorType
// without re-deriving it from the original descriptor every call.
type bindGroupLayoutEntry struct {
	binding        uint32
	descriptorType vk.DescriptorType
}

type bindGroupLayoutRecord struct {
	native  vk.DescriptorSetLayout
	counts  descriptorCounts
	entries []bindGroupLayoutEntry
}

// pipelineBindPoint mirrors VkPipelineBindPoint for the two bind points
// this runtime supports.
type pipelineBindPoint uint8

const (
	bindPointGraphics pipelineBindPoint = iota
	bindPointCompute
)

type pipelineRecord struct {
	native    vk.Pipeline
	layout    vk.PipelineLayout
	bindPoint pipelineBindPoint
}

// records holds every handle pool the device facade routes resource
// creation and lookup through, one pool per object kind.
type records struct {
	buffers          *handle.Pool[bufferRecord]
	images           *handle.Pool[imageRecord]
	samplers         *handle.Pool[samplerRecord]
	bindGroupLayouts *handle.Pool[bindGroupLayoutRecord]
	pipelines        *handle.Pool[pipelineRecord]
}

func newRecords() *records {
	return &records{
		buffers:          handle.New[bufferRecord](256),
		images:           handle.New[imageRecord](256),
		samplers:         handle.New[samplerRecord](64),
		bindGroupLayouts: handle.New[bindGroupLayoutRecord](64),
		pipelines:        handle.New[pipelineRecord](64),
	}
}
