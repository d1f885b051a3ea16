// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/forge-gpu/forge/arena"
	"github.com/forge-gpu/forge/frame"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

// scratch carves a frame-lifetime slice out of the encoder's thread
// arena; native info structs recorded mid-frame live there instead of on
// the Go heap. Falls back to a heap slice if the reservation is spent.
func scratch[T any](e *Encoder, n int) []T {
	s, err := arena.AllocSlice[T](&e.thread.arena, n)
	if err != nil {
		return make([]T, n)
	}
	return s
}

// touchedSwapchain is one entry of the encoder's touched-swapchains set:
// the swapchain-owned image a color attachment wrote to, and the last
// pipeline stage it was used at, so submit's pre-submit pass knows what
// to wait on.
type touchedSwapchain struct {
	window Window
	image  vk.Image
	view   vk.ImageView
	stage  vk.PipelineStageFlags2
}

// Encoder is the per-recording scratch object: a native command buffer,
// the currently bound pipeline's layout and bind point, a debug flag
// tracking whether a render pass is open, and the touched-swapchains
// set submit consumes.
type Encoder struct {
	cb     vk.CommandBuffer
	frame  frame.Token
	thread *threadState

	boundLayout    vk.PipelineLayout
	boundBindPoint pipelineBindPoint
	hasPipeline    bool

	insideRenderPass bool

	// touched tracks which swapchain images this encoder rendered into;
	// touchOrder preserves first-touch order so presentation happens in
	// the order the swapchains were first drawn to.
	touched    map[Window]*touchedSwapchain
	touchOrder []Window
}

// RequestCmdEncoder hands out the next command buffer from token's
// thread-pool slot for the frame identified by tok, beginning it for a
// single, one-time-submit recording.
func (d *Device) RequestCmdEncoder(tok frame.Token, token frame.ThreadToken) (*Encoder, error) {
	fr := d.frameRecords[tok.Index()]
	ts, err := fr.threadFor(d.cmds, d.native, d.queueFamily, token, d.arenaReserve)
	if err != nil {
		return nil, err
	}

	cb, err := ts.nextCommandBuffer(d.cmds, d.native)
	if err != nil {
		return nil, err
	}

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageOneTimeSubmitBit,
	}
	if result := d.cmds.BeginCommandBuffer(cb, &beginInfo); result != vk.Success {
		return nil, vkErr("vkBeginCommandBuffer", result)
	}

	return &Encoder{
		cb:      cb,
		frame:   tok,
		thread:  ts,
		touched: make(map[Window]*touchedSwapchain),
	}, nil
}

// ImageBarrier describes one image transition for CmdBarrier.
type ImageBarrier struct {
	Image                types.TextureHandle
	SrcStage             vk.PipelineStageFlags2
	SrcAccess            vk.AccessFlags2
	DstStage             vk.PipelineStageFlags2
	DstAccess            vk.AccessFlags2
	OldLayout, NewLayout vk.ImageLayout
	Aspect               vk.ImageAspectFlags
}

// BufferBarrier describes one buffer range transition for CmdBarrier.
type BufferBarrier struct {
	Buffer    types.BufferHandle
	Offset    uint64
	Size      uint64 // 0 means "to the end of the buffer"
	SrcStage  vk.PipelineStageFlags2
	SrcAccess vk.AccessFlags2
	DstStage  vk.PipelineStageFlags2
	DstAccess vk.AccessFlags2
}

// CmdBarrier records a synchronization2 dependency covering image and
// buffer barriers. It is a programming error to call this while a render
// pass is open.
func (e *Encoder) CmdBarrier(d *Device, images []ImageBarrier, buffers []BufferBarrier) error {
	if e.insideRenderPass {
		panicMisuse("cmd_barrier", "called inside a render pass")
	}

	imgBarriers := scratch[vk.ImageMemoryBarrier2](e, len(images))
	for i, b := range images {
		rec, ok := d.records.images.Get(handle.Handle(b.Image))
		if !ok {
			return fmt.Errorf("vulkan: cmd_barrier: unknown image handle %v", b.Image)
		}
		imgBarriers[i] = vk.ImageMemoryBarrier2{
			SType:         vk.StructureTypeImageMemoryBarrier2,
			SrcStageMask:  b.SrcStage,
			SrcAccessMask: b.SrcAccess,
			DstStageMask:  b.DstStage,
			DstAccessMask: b.DstAccess,
			OldLayout:     b.OldLayout,
			NewLayout:     b.NewLayout,
			Image:         nativeImage(rec),
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: b.Aspect,
				LevelCount: rec.mipLevels,
				LayerCount: 1,
			},
		}
	}

	bufBarriers := scratch[vk.BufferMemoryBarrier2](e, len(buffers))
	for i, b := range buffers {
		rec, ok := d.records.buffers.Get(handle.Handle(b.Buffer))
		if !ok {
			return fmt.Errorf("vulkan: cmd_barrier: unknown buffer handle %v", b.Buffer)
		}
		size := b.Size
		if size == 0 {
			size = uint64(rec.size) - b.Offset
		}
		bufBarriers[i] = vk.BufferMemoryBarrier2{
			SType:         vk.StructureTypeBufferMemoryBarrier2,
			SrcStageMask:  b.SrcStage,
			SrcAccessMask: b.SrcAccess,
			DstStageMask:  b.DstStage,
			DstAccessMask: b.DstAccess,
			Buffer:        rec.native,
			Offset:        vk.DeviceSize(b.Offset),
			Size:          vk.DeviceSize(size),
		}
	}

	info := vk.DependencyInfo{SType: vk.StructureTypeDependencyInfo}
	if len(imgBarriers) > 0 {
		info.ImageMemoryBarrierCount = uint32(len(imgBarriers))
		info.PImageMemoryBarriers = &imgBarriers[0]
	}
	if len(bufBarriers) > 0 {
		info.BufferMemoryBarrierCount = uint32(len(bufBarriers))
		info.PBufferMemoryBarriers = &bufBarriers[0]
	}
	d.cmds.CmdPipelineBarrier2(e.cb, &info)
	return nil
}

// nativeImage returns the native vk.Image backing rec, regardless of its
// ownership kind.
func nativeImage(rec imageRecord) vk.Image {
	switch rec.kind {
	case imageShared:
		return rec.shared.native
	default:
		return rec.native
	}
}

// ColorAttachment is one color attachment for CmdBeginRendering.
type ColorAttachment struct {
	View          types.TextureViewHandle
	LoadOp        types.LoadOp
	StoreOp       types.StoreOp
	ClearColor    types.Color
	FromSwapchain Window // zero value if not swapchain-backed
	IsSwapchain   bool
}

// DepthAttachment is the optional depth attachment for CmdBeginRendering.
type DepthAttachment struct {
	View       types.TextureViewHandle
	LoadOp     types.LoadOp
	StoreOp    types.StoreOp
	ClearDepth float32
}

func loadOpToVk(op types.LoadOp) vk.AttachmentLoadOp {
	if op == types.LoadOpLoad {
		return vk.AttachmentLoadOpLoad
	}
	return vk.AttachmentLoadOpClear
}

func storeOpToVk(op types.StoreOp) vk.AttachmentStoreOp {
	if op == types.StoreOpStore {
		return vk.AttachmentStoreOpStore
	}
	return vk.AttachmentStoreOpDontCare
}

// CmdBeginRendering opens a dynamic-rendering pass. For every color
// attachment backed by a swapchain image, it records an
// Undefined→ColorAttachmentOptimal transition and registers the touch.
func (e *Encoder) CmdBeginRendering(d *Device, area vk.Rect2D, colors []ColorAttachment, depth *DepthAttachment) error {
	attachments := scratch[vk.RenderingAttachmentInfo](e, len(colors))

	var swapchainBarriers []vk.ImageMemoryBarrier2
	for i, c := range colors {
		rec, ok := d.records.images.Get(handle.Handle(c.View))
		if !ok {
			return fmt.Errorf("vulkan: cmd_begin_rendering: unknown view handle %v", c.View)
		}
		view := attachmentView(rec)

		attachments[i] = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   view,
			ImageLayout: vk.ImageLayoutColorAttachmentOptimal,
			LoadOp:      loadOpToVk(c.LoadOp),
			StoreOp:     storeOpToVk(c.StoreOp),
			ClearValue:  vk.ClearValueColor(float32(c.ClearColor.R), float32(c.ClearColor.G), float32(c.ClearColor.B), float32(c.ClearColor.A)),
		}

		if !c.IsSwapchain {
			continue
		}
		img := nativeImage(rec)
		swapchainBarriers = append(swapchainBarriers, vk.ImageMemoryBarrier2{
			SType:         vk.StructureTypeImageMemoryBarrier2,
			SrcStageMask:  vk.PipelineStage2TopOfPipeBit,
			SrcAccessMask: vk.Access2NoneBit,
			DstStageMask:  vk.PipelineStage2ColorAttachmentOutputBit,
			DstAccessMask: vk.Access2ColorAttachmentWriteBit,
			OldLayout:     vk.ImageLayoutUndefined,
			NewLayout:     vk.ImageLayoutColorAttachmentOptimal,
			Image:         img,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColorBit,
				LevelCount: 1,
				LayerCount: 1,
			},
		})
		if _, seen := e.touched[c.FromSwapchain]; !seen {
			e.touchOrder = append(e.touchOrder, c.FromSwapchain)
		}
		e.touched[c.FromSwapchain] = &touchedSwapchain{
			window: c.FromSwapchain,
			image:  img,
			view:   view,
			stage:  vk.PipelineStage2ColorAttachmentOutputBit,
		}
	}

	if len(swapchainBarriers) > 0 {
		dep := vk.DependencyInfo{
			SType:                   vk.StructureTypeDependencyInfo,
			ImageMemoryBarrierCount: uint32(len(swapchainBarriers)),
			PImageMemoryBarriers:    &swapchainBarriers[0],
		}
		d.cmds.CmdPipelineBarrier2(e.cb, &dep)
	}

	info := vk.RenderingInfo{
		SType:                vk.StructureTypeRenderingInfo,
		RenderArea:           area,
		LayerCount:           1,
		ColorAttachmentCount: uint32(len(attachments)),
	}
	if len(attachments) > 0 {
		info.PColorAttachments = &attachments[0]
	}
	if depth != nil {
		rec, ok := d.records.images.Get(handle.Handle(depth.View))
		if !ok {
			return fmt.Errorf("vulkan: cmd_begin_rendering: unknown depth view handle %v", depth.View)
		}
		depthInfo := scratch[vk.RenderingAttachmentInfo](e, 1)
		depthInfo[0] = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   attachmentView(rec),
			ImageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
			LoadOp:      loadOpToVk(depth.LoadOp),
			StoreOp:     storeOpToVk(depth.StoreOp),
			ClearValue:  vk.ClearValueDepthStencil(depth.ClearDepth, 0),
		}
		info.PDepthAttachment = &depthInfo[0]
	}
	d.cmds.CmdBeginRendering(e.cb, &info)
	e.insideRenderPass = true
	return nil
}

// attachmentView returns the view a rendering attachment should bind:
// the swapchain-provided view for a swapchain image, otherwise the view
// the record itself carries (shared entries each hold their own view).
func attachmentView(rec imageRecord) vk.ImageView {
	if rec.kind == imageSwapchain {
		return rec.swapchainView
	}
	return rec.view
}

// CmdEndRendering closes the render pass opened by CmdBeginRendering.
func (e *Encoder) CmdEndRendering(d *Device) {
	d.cmds.CmdEndRendering(e.cb)
	e.insideRenderPass = false
}

// CmdSetPipeline stores layout and bind point for subsequent bind-group
// binding and issues the native bind.
func (e *Encoder) CmdSetPipeline(d *Device, p types.PipelineHandle) error {
	rec, ok := d.records.pipelines.Get(handle.Handle(p))
	if !ok {
		return fmt.Errorf("vulkan: cmd_set_pipeline: unknown pipeline handle %v", p)
	}
	e.boundLayout = rec.layout
	e.boundBindPoint = rec.bindPoint
	e.hasPipeline = true
	d.cmds.CmdBindPipeline(e.cb, nativeBindPoint(rec.bindPoint), rec.native)
	return nil
}

func nativeBindPoint(p pipelineBindPoint) vk.PipelineBindPoint {
	if p == bindPointCompute {
		return vk.PipelineBindPointCompute
	}
	return vk.PipelineBindPointGraphics
}

// CmdSetBindGroup resolves entries against layout's native descriptor
// types, allocates a descriptor set from the thread's current descriptor
// pool (fetching or recycling one lazily), updates it, and binds it
// against the currently bound pipeline. Calling this with no pipeline
// bound is a programming error.
func (e *Encoder) CmdSetBindGroup(d *Device, index uint32, layout types.BindGroupLayoutHandle, entries []types.BindGroupEntry) error {
	if !e.hasPipeline {
		panicMisuse("cmd_set_bind_group", "no pipeline bound")
	}
	layoutRec, ok := d.records.bindGroupLayouts.Get(handle.Handle(layout))
	if !ok {
		return fmt.Errorf("vulkan: cmd_set_bind_group: unknown bind group layout handle %v", layout)
	}

	set, err := e.thread.allocateDescriptorSet(d.descriptors, layoutRec.counts, layoutRec.native)
	if err != nil {
		return err
	}

	descType := func(binding uint32) vk.DescriptorType {
		for _, b := range layoutRec.entries {
			if b.binding == binding {
				return b.descriptorType
			}
		}
		return vk.DescriptorTypeUniformBuffer
	}

	writes := scratch[vk.WriteDescriptorSet](e, len(entries))
	bufferInfos := scratch[vk.DescriptorBufferInfo](e, len(entries))
	imageInfos := scratch[vk.DescriptorImageInfo](e, len(entries))

	for i, entry := range entries {
		dt := descType(entry.Binding)
		w := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      entry.Binding,
			DescriptorCount: 1,
			DescriptorType:  dt,
		}
		switch res := entry.Resource.(type) {
		case types.BufferBinding:
			rec, ok := d.records.buffers.Get(handle.Handle(res.Buffer))
			if !ok {
				return fmt.Errorf("vulkan: cmd_set_bind_group: unknown buffer handle %v", res.Buffer)
			}
			rng := res.Size
			if rng == 0 {
				rng = uint64(rec.size) - res.Offset
			}
			bufferInfos[i] = vk.DescriptorBufferInfo{Buffer: rec.native, Offset: vk.DeviceSize(res.Offset), Range: vk.DeviceSize(rng)}
			w.PBufferInfo = &bufferInfos[i]
		case types.SamplerBinding:
			rec, ok := d.records.samplers.Get(handle.Handle(res.Sampler))
			if !ok {
				return fmt.Errorf("vulkan: cmd_set_bind_group: unknown sampler handle %v", res.Sampler)
			}
			imageInfos[i] = vk.DescriptorImageInfo{Sampler: rec.native}
			w.PImageInfo = &imageInfos[i]
		case types.TextureViewBinding:
			rec, ok := d.records.images.Get(handle.Handle(res.TextureView))
			if !ok {
				return fmt.Errorf("vulkan: cmd_set_bind_group: unknown texture view handle %v", res.TextureView)
			}
			layout := vk.ImageLayoutShaderReadOnlyOptimal
			if dt == vk.DescriptorTypeStorageImage {
				layout = vk.ImageLayoutGeneral
			}
			imageInfos[i] = vk.DescriptorImageInfo{ImageView: attachmentView(rec), ImageLayout: layout}
			w.PImageInfo = &imageInfos[i]
		default:
			return fmt.Errorf("vulkan: cmd_set_bind_group: unsupported binding resource %T", entry.Resource)
		}
		writes[i] = w
	}

	if len(writes) > 0 {
		d.cmds.UpdateDescriptorSets(d.native, uint32(len(writes)), &writes[0], 0, nil)
	}

	d.cmds.CmdBindDescriptorSets(e.cb, nativeBindPoint(e.boundBindPoint), e.boundLayout, index, 1, &set, 0, nil)
	return nil
}

// CmdPushConstants writes value's raw bytes as a push constant block at
// offset, for the given shader stages. It is the only typed wrapper
// taking an arbitrary value; implementations must reject sizes at or
// above 2^32-1.
func CmdPushConstants[T any](e *Encoder, d *Device, stages vk.ShaderStageFlags, offset uint32, value T) error {
	if rawSize := uint64(unsafe.Sizeof(value)); rawSize >= 1<<32-1 {
		return fmt.Errorf("vulkan: cmd_push_constants: size %d exceeds the 2^32-1 limit", rawSize)
	}
	size := uint32(unsafe.Sizeof(value))
	d.cmds.CmdPushConstants(e.cb, e.boundLayout, stages, offset, size, unsafe.Pointer(&value))
	return nil
}

// CmdSetViewports records the viewport state.
func (e *Encoder) CmdSetViewports(d *Device, viewports []vk.Viewport) {
	if len(viewports) == 0 {
		return
	}
	d.cmds.CmdSetViewport(e.cb, 0, uint32(len(viewports)), &viewports[0])
}

// CmdSetScissors records the scissor state.
func (e *Encoder) CmdSetScissors(d *Device, rects []vk.Rect2D) {
	if len(rects) == 0 {
		return
	}
	d.cmds.CmdSetScissor(e.cb, 0, uint32(len(rects)), &rects[0])
}

// CmdSetIndexBuffer binds the index buffer for subsequent indexed draws.
func (e *Encoder) CmdSetIndexBuffer(d *Device, buf types.BufferHandle, offset uint64, format types.IndexFormat) error {
	rec, ok := d.records.buffers.Get(handle.Handle(buf))
	if !ok {
		return fmt.Errorf("vulkan: cmd_set_index_buffer: unknown buffer handle %v", buf)
	}
	it := vk.IndexTypeUint16
	if format == types.IndexFormatUint32 {
		it = vk.IndexTypeUint32
	}
	d.cmds.CmdBindIndexBuffer(e.cb, rec.native, vk.DeviceSize(offset), it)
	return nil
}

// CmdDraw records a non-indexed draw.
func (e *Encoder) CmdDraw(d *Device, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	d.cmds.CmdDraw(e.cb, vertexCount, instanceCount, firstVertex, firstInstance)
}

// CmdDrawIndexed records an indexed draw.
func (e *Encoder) CmdDrawIndexed(d *Device, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	d.cmds.CmdDrawIndexed(e.cb, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// CmdDispatch records a compute dispatch.
func (e *Encoder) CmdDispatch(d *Device, x, y, z uint32) {
	d.cmds.CmdDispatch(e.cb, x, y, z)
}

// CmdDispatchIndirect records an indirect compute dispatch.
func (e *Encoder) CmdDispatchIndirect(d *Device, buf types.BufferHandle, offset uint64) error {
	rec, ok := d.records.buffers.Get(handle.Handle(buf))
	if !ok {
		return fmt.Errorf("vulkan: cmd_dispatch_indirect: unknown buffer handle %v", buf)
	}
	d.cmds.CmdDispatchIndirect(e.cb, rec.native, vk.DeviceSize(offset))
	return nil
}

// CmdCopyBufferToImage records a buffer-to-image copy.
func (e *Encoder) CmdCopyBufferToImage(d *Device, src types.BufferHandle, dst types.TextureHandle, layout vk.ImageLayout, regions []vk.BufferImageCopy) error {
	srcRec, ok := d.records.buffers.Get(handle.Handle(src))
	if !ok {
		return fmt.Errorf("vulkan: cmd_copy_buffer_to_image: unknown buffer handle %v", src)
	}
	dstRec, ok := d.records.images.Get(handle.Handle(dst))
	if !ok {
		return fmt.Errorf("vulkan: cmd_copy_buffer_to_image: unknown image handle %v", dst)
	}
	if len(regions) == 0 {
		return nil
	}
	d.cmds.CmdCopyBufferToImage(e.cb, srcRec.native, nativeImage(dstRec), layout, uint32(len(regions)), &regions[0])
	return nil
}

// CmdBlitImage records an image blit.
func (e *Encoder) CmdBlitImage(d *Device, src types.TextureHandle, srcLayout vk.ImageLayout, dst types.TextureHandle, dstLayout vk.ImageLayout, regions []vk.ImageBlit, filter vk.Filter) error {
	srcRec, ok := d.records.images.Get(handle.Handle(src))
	if !ok {
		return fmt.Errorf("vulkan: cmd_blit_image: unknown source image handle %v", src)
	}
	dstRec, ok := d.records.images.Get(handle.Handle(dst))
	if !ok {
		return fmt.Errorf("vulkan: cmd_blit_image: unknown destination image handle %v", dst)
	}
	if len(regions) == 0 {
		return nil
	}
	d.cmds.CmdBlitImage(e.cb, nativeImage(srcRec), srcLayout, nativeImage(dstRec), dstLayout, uint32(len(regions)), &regions[0], filter)
	return nil
}

// CmdDebugMarkerBegin opens a debug-utils label region around the
// commands that follow; CmdDebugMarkerEnd closes the most recently begun
// label. A no-op when the extension is unavailable.
func (e *Encoder) CmdDebugMarkerBegin(d *Device, label string) {
	cname := append([]byte(label), 0)
	info := vk.DebugUtilsLabelEXT{
		SType:      vk.StructureTypeDebugUtilsLabelExt,
		PLabelName: uintptr(unsafe.Pointer(&cname[0])),
	}
	d.cmds.CmdBeginDebugUtilsLabelEXT(e.cb, uintptr(unsafe.Pointer(&info)))
	runtime.KeepAlive(cname)
}

func (e *Encoder) CmdDebugMarkerEnd(d *Device) {
	d.cmds.CmdEndDebugUtilsLabelEXT(e.cb)
}

// Submit ends e's command buffer and hands it to the device queue,
// running the pre-submit pass: every touched
// swapchain image is transitioned Attachment-Optimal → Present-Src, its
// release semaphore is added to the signal list and its acquire
// semaphore to the wait list, and the universal timeline semaphore is
// signalled with the new watermark at Color-Attachment-Output.
func (d *Device) Submit(tok frame.Token, e *Encoder) error {
	var swapchainBarriers []vk.ImageMemoryBarrier2
	var waitInfos, signalInfos []vk.SemaphoreSubmitInfo

	for _, window := range e.touchOrder {
		t := e.touched[window]
		swapchainBarriers = append(swapchainBarriers, vk.ImageMemoryBarrier2{
			SType:         vk.StructureTypeImageMemoryBarrier2,
			SrcStageMask:  t.stage,
			SrcAccessMask: vk.Access2ColorAttachmentWriteBit,
			DstStageMask:  vk.PipelineStage2BottomOfPipeBit,
			DstAccessMask: vk.Access2NoneBit,
			OldLayout:     vk.ImageLayoutColorAttachmentOptimal,
			NewLayout:     vk.ImageLayoutPresentSrcKhr,
			Image:         t.image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColorBit,
				LevelCount: 1,
				LayerCount: 1,
			},
		})

		entry, ok := d.swapchains.presentEntry(window)
		if !ok {
			return fmt.Errorf("vulkan: submit: no acquire recorded for touched swapchain")
		}
		release, err := d.swapchains.newReleaseSemaphore()
		if err != nil {
			return err
		}
		d.swapchains.setReleaseSemaphore(window, release)

		signalInfos = append(signalInfos, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: release,
			StageMask: vk.PipelineStage2BottomOfPipeBit,
		})
		waitInfos = append(waitInfos, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: entry.acquireSemaphore,
			StageMask: entry.waitStage,
		})
	}

	if len(swapchainBarriers) > 0 {
		dep := vk.DependencyInfo{
			SType:                   vk.StructureTypeDependencyInfo,
			ImageMemoryBarrierCount: uint32(len(swapchainBarriers)),
			PImageMemoryBarriers:    &swapchainBarriers[0],
		}
		d.cmds.CmdPipelineBarrier2(e.cb, &dep)
	}

	if result := d.cmds.EndCommandBuffer(e.cb); result != vk.Success {
		return vkErr("vkEndCommandBuffer", result)
	}

	watermark := d.timeline.nextSignalValue()
	d.frameRecords[tok.Index()].raiseWatermark(watermark)
	var submitFence vk.Fence
	if d.timeline.isTimeline {
		signalInfos = append(signalInfos, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: d.timeline.timelineSemaphore,
			Value:     watermark,
			StageMask: vk.PipelineStage2ColorAttachmentOutputBit,
		})
	} else {
		// Pre-1.2 fallback: the watermark is tracked by a pooled binary
		// fence attached to this submission instead of a timeline signal.
		f, err := d.timeline.pool.signal(d.cmds, d.native, watermark)
		if err != nil {
			return err
		}
		submitFence = f
	}

	cbInfo := vk.CommandBufferSubmitInfo{SType: vk.StructureTypeCommandBufferSubmitInfo, CommandBuffer: e.cb}
	submit := vk.SubmitInfo2{
		SType:                    vk.StructureTypeSubmitInfo2,
		CommandBufferInfoCount:   1,
		PCommandBufferInfos:      &cbInfo,
		SignalSemaphoreInfoCount: uint32(len(signalInfos)),
	}
	if len(signalInfos) > 0 {
		submit.PSignalSemaphoreInfos = &signalInfos[0]
	}
	if len(waitInfos) > 0 {
		submit.WaitSemaphoreInfoCount = uint32(len(waitInfos))
		submit.PWaitSemaphoreInfos = &waitInfos[0]
	}

	if result := d.cmds.QueueSubmit2(d.queue, 1, &submit, submitFence); result != vk.Success {
		return vkErr("vkQueueSubmit2", result)
	}
	return nil
}
