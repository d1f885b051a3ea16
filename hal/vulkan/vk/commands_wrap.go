// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Typed wrappers over the function pointers loaded by Commands.Load*. Each
// one follows the calling convention documented at the top of loader.go:
// args[i] holds a pointer TO where the argument value is stored, even for
// arguments that are themselves pointers.

func result1(sig *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	var r int32
	if err := ffi.CallFunction(sig, fn, unsafe.Pointer(&r), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(r)
}

func (c *Commands) CreateInstance(info *InstanceCreateInfo, alloc unsafe.Pointer, out *Instance) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultPtrPtrPtr, c.createInstance, args)
}

func (c *Commands) DestroyInstance(instance Instance, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.destroyInstance, nil, args)
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), unsafe.Pointer(&devices)}
	return result1(&SigResultHandlePtrPtr, c.enumeratePhysicalDevices, args)
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, out *PhysicalDeviceMemoryProperties) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, nil, args)
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), unsafe.Pointer(&props)}
	_ = ffi.CallFunction(&SigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, nil, args)
}

func (c *Commands) GetPhysicalDeviceFeatures(pd PhysicalDevice, out *PhysicalDeviceFeatures) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.getPhysicalDeviceFeatures, nil, args)
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, alloc unsafe.Pointer, out *Device) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createDevice, args)
}

func (c *Commands) DestroyDevice(device Device, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.destroyDevice, nil, args)
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32, out *Queue) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidDeviceU32Ptr, c.getDeviceQueue, nil, args)
}

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, alloc unsafe.Pointer, out *DeviceMemory) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.allocateMemory, args)
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.freeMemory, nil, args)
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size DeviceSize, flags uint32, out *unsafe.Pointer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&flags), unsafe.Pointer(&out)}
	return result1(&SigResultMapMemory, c.mapMemory, args)
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)}
	_ = ffi.CallFunction(&SigVoidHandleHandle, c.unmapMemory, nil, args)
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buf Buffer, out *MemoryRequirements) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.getBufferMemoryRequirements, nil, args)
}

func (c *Commands) GetImageMemoryRequirements(device Device, img Image, out *MemoryRequirements) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&out)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.getImageMemoryRequirements, nil, args)
}

func (c *Commands) GetBufferDeviceAddress(device Device, info *BufferDeviceAddressInfo) uint64 {
	var addr uint64
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&SigU64HandlePtr, c.getBufferDeviceAddress, unsafe.Pointer(&addr), args)
	return addr
}

func (c *Commands) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset DeviceSize) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&mem), unsafe.Pointer(&offset)}
	return result1(&SigResultHandle4, c.bindBufferMemory, args)
}

func (c *Commands) BindImageMemory(device Device, img Image, mem DeviceMemory, offset DeviceSize) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&mem), unsafe.Pointer(&offset)}
	return result1(&SigResultHandle4, c.bindImageMemory, args)
}

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, alloc unsafe.Pointer, out *Buffer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createBuffer, args)
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyBuffer, nil, args)
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, alloc unsafe.Pointer, out *Image) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createImage, args)
}

func (c *Commands) DestroyImage(device Device, img Image, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyImage, nil, args)
}

func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, alloc unsafe.Pointer, out *ImageView) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createImageView, args)
}

func (c *Commands) DestroyImageView(device Device, v ImageView, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&v), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyImageView, nil, args)
}

func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, alloc unsafe.Pointer, out *Sampler) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createSampler, args)
}

func (c *Commands) DestroySampler(device Device, s Sampler, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroySampler, nil, args)
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, alloc unsafe.Pointer, out *ShaderModule) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createShaderModule, args)
}

func (c *Commands) DestroyShaderModule(device Device, m ShaderModule, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&m), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyShaderModule, nil, args)
}

func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, alloc unsafe.Pointer, out *DescriptorSetLayout) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createDescriptorSetLayout, args)
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, l DescriptorSetLayout, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&l), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyDescriptorSetLayout, nil, args)
}

func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, alloc unsafe.Pointer, out *DescriptorPool) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createDescriptorPool, args)
}

func (c *Commands) DestroyDescriptorPool(device Device, p DescriptorPool, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyDescriptorPool, nil, args)
}

func (c *Commands) ResetDescriptorPool(device Device, p DescriptorPool, flags uint32) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), unsafe.Pointer(&flags)}
	return result1(&SigResultHandleHandleU32, c.resetDescriptorPool, args)
}

func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, out *DescriptorSet) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtr, c.allocateDescriptorSets, args)
}

func (c *Commands) FreeDescriptorSets(device Device, pool DescriptorPool, count uint32, sets *DescriptorSet) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&sets)}
	return result1(&SigResultHandleHandleU32Ptr, c.freeDescriptorSets, args)
}

func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet, copyCount uint32, copies *CopyDescriptorSet) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&writeCount), unsafe.Pointer(&writes), unsafe.Pointer(&copyCount), unsafe.Pointer(&copies)}
	_ = ffi.CallFunction(&SigVoidDeviceUpdateDescriptorSets, c.updateDescriptorSets, nil, args)
}

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, alloc unsafe.Pointer, out *PipelineLayout) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createPipelineLayout, args)
}

func (c *Commands) DestroyPipelineLayout(device Device, l PipelineLayout, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&l), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyPipelineLayout, nil, args)
}

func (c *Commands) CreateComputePipelines(device Device, cache uint64, count uint32, infos *ComputePipelineCreateInfo, alloc unsafe.Pointer, out *Pipeline) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), unsafe.Pointer(&infos), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultCreatePipelines, c.createComputePipelines, args)
}

func (c *Commands) CreateGraphicsPipelines(device Device, cache uint64, count uint32, infos *GraphicsPipelineCreateInfo, alloc unsafe.Pointer, out *Pipeline) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), unsafe.Pointer(&infos), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultCreatePipelines, c.createGraphicsPipelines, args)
}

func (c *Commands) DestroyPipeline(device Device, p Pipeline, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyPipeline, nil, args)
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, alloc unsafe.Pointer, out *CommandPool) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createCommandPool, args)
}

func (c *Commands) DestroyCommandPool(device Device, p CommandPool, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyCommandPool, nil, args)
}

func (c *Commands) ResetCommandPool(device Device, p CommandPool, flags uint32) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), unsafe.Pointer(&flags)}
	return result1(&SigResultHandleHandleU32, c.resetCommandPool, args)
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, out *CommandBuffer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtr, c.allocateCommandBuffers, args)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, bufs *CommandBuffer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&bufs)}
	_ = ffi.CallFunction(&SigVoidHandleHandleU32Ptr, c.freeCommandBuffers, nil, args)
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info)}
	return result1(&SigResultHandlePtr, c.beginCommandBuffer, args)
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&cb)}
	return result1(&SigResultHandle, c.endCommandBuffer, args)
}

func (c *Commands) QueueSubmit2(queue Queue, count uint32, submits *SubmitInfo2, fence Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&count), unsafe.Pointer(&submits), unsafe.Pointer(&fence)}
	return result1(&SigResultHandleU32PtrHandle, c.queueSubmit2, args)
}

func (c *Commands) DeviceWaitIdle(device Device) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device)}
	return result1(&SigResultHandle, c.deviceWaitIdle, args)
}

func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, alloc unsafe.Pointer, out *Semaphore) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createSemaphore, args)
}

func (c *Commands) DestroySemaphore(device Device, s Semaphore, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroySemaphore, nil, args)
}

// WaitSemaphores wraps vkWaitSemaphores (VK_KHR_timeline_semaphore / core
// 1.2). Ground truth for this wrapper's shape is the retrieved pack's own
// commands_manual.go, whose generator could not emit a handle+ptr+u64
// signature; signatures_ext.go supplies the matching CallInterface.
func (c *Commands) WaitSemaphores(device Device, info *SemaphoreWaitInfo, timeoutNs uint64) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&timeoutNs)}
	return result1(&SigResultHandlePtrU64, c.waitSemaphores, args)
}

func (c *Commands) GetSemaphoreCounterValue(device Device, s Semaphore, out *uint64) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), unsafe.Pointer(&out)}
	return result1(&SigResultHandleHandlePtr, c.getSemaphoreCounterValue, args)
}

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, alloc unsafe.Pointer, out *Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createFence, args)
}

func (c *Commands) DestroyFence(device Device, f Fence, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&f), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyFence, nil, args)
}

func (c *Commands) GetFenceStatus(device Device, f Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&f)}
	return result1(&SigResultHandleHandle, c.getFenceStatus, args)
}

func (c *Commands) ResetFences(device Device, count uint32, fences *Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences)}
	return result1(&SigResultHandleU32Ptr, c.resetFences, args)
}

func (c *Commands) WaitForFences(device Device, count uint32, fences *Fence, waitAll Bool32, timeoutNs uint64) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences), unsafe.Pointer(&waitAll), unsafe.Pointer(&timeoutNs)}
	return result1(&SigResultWaitForFences, c.waitForFences, args)
}

func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, alloc unsafe.Pointer, out *SwapchainKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createSwapchainKHR, args)
}

func (c *Commands) DestroySwapchainKHR(device Device, sc SwapchainKHR, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sc), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroySwapchainKHR, nil, args)
}

func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR, count *uint32, images *Image) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sc), unsafe.Pointer(&count), unsafe.Pointer(&images)}
	return result1(&SigResultHandleHandlePtrPtr, c.getSwapchainImagesKHR, args)
}

func (c *Commands) AcquireNextImageKHR(device Device, sc SwapchainKHR, timeoutNs uint64, sem Semaphore, fence Fence, index *uint32) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sc), unsafe.Pointer(&timeoutNs), unsafe.Pointer(&sem), unsafe.Pointer(&fence), unsafe.Pointer(&index)}
	return result1(&SigResultAcquireNextImage, c.acquireNextImageKHR, args)
}

func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&info)}
	return result1(&SigResultHandlePtr, c.queuePresentKHR, args)
}

func (c *Commands) SetDebugUtilsObjectNameEXT(device Device, info *DebugUtilsObjectNameInfoEXT) Result {
	if c.setDebugUtilsObjectNameEXT == nil {
		return Success
	}
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info)}
	return result1(&SigResultHandlePtr, c.setDebugUtilsObjectNameEXT, args)
}

func (c *Commands) CreateDebugUtilsMessengerEXT(instance Instance, info *DebugUtilsMessengerCreateInfoEXT, alloc unsafe.Pointer, out *DebugUtilsMessengerEXT) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createDebugUtilsMessengerEXT, args)
}

func (c *Commands) DestroyDebugUtilsMessengerEXT(instance Instance, m DebugUtilsMessengerEXT, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&m), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroyDebugUtilsMessengerEXT, nil, args)
}

func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR, out *SurfaceCapabilitiesKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&out)}
	return result1(&SigResultHandleHandlePtr, c.getPhysicalDeviceSurfaceCapabilitiesKHR, args)
}

func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, formats *SurfaceFormatKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&count), unsafe.Pointer(&formats)}
	return result1(&SigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfaceFormatsKHR, args)
}

func (c *Commands) GetPhysicalDeviceSurfacePresentModesKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, modes *PresentModeKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&count), unsafe.Pointer(&modes)}
	return result1(&SigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfacePresentModesKHR, args)
}

func (c *Commands) DestroySurfaceKHR(instance Instance, surface SurfaceKHR, alloc unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&surface), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&SigVoidHandleHandlePtr, c.destroySurfaceKHR, nil, args)
}

func (c *Commands) CreateXlibSurfaceKHR(instance Instance, info *XlibSurfaceCreateInfoKHR, alloc unsafe.Pointer, out *SurfaceKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createXlibSurfaceKHR, args)
}

func (c *Commands) CreateXcbSurfaceKHR(instance Instance, info *XcbSurfaceCreateInfoKHR, alloc unsafe.Pointer, out *SurfaceKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createXcbSurfaceKHR, args)
}

func (c *Commands) CreateWaylandSurfaceKHR(instance Instance, info *WaylandSurfaceCreateInfoKHR, alloc unsafe.Pointer, out *SurfaceKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	return result1(&SigResultHandlePtrPtrPtr, c.createWaylandSurfaceKHR, args)
}

func (c *Commands) HasCreateXlibSurfaceKHR() bool    { return c.createXlibSurfaceKHR != nil }
func (c *Commands) HasCreateXcbSurfaceKHR() bool     { return c.createXcbSurfaceKHR != nil }
func (c *Commands) HasCreateWaylandSurfaceKHR() bool { return c.createWaylandSurfaceKHR != nil }

// --- Command buffer recording ------------------------------------------------

func (c *Commands) CmdPipelineBarrier2(cb CommandBuffer, info *DependencyInfo) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.cmdPipelineBarrier2, nil, args)
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint PipelineBindPoint, p Pipeline) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&p)}
	_ = ffi.CallFunction(&SigVoidHandleU32Handle, c.cmdBindPipeline, nil, args)
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, firstSet, setCount uint32, sets *DescriptorSet, dynCount uint32, dynOffsets *uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet), unsafe.Pointer(&setCount), unsafe.Pointer(&sets),
		unsafe.Pointer(&dynCount), unsafe.Pointer(&dynOffsets),
	}
	_ = ffi.CallFunction(&SigVoidCmdBindDescriptorSets, c.cmdBindDescriptorSets, nil, args)
}

func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stages ShaderStageFlags, offset, size uint32, values unsafe.Pointer) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stages), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&values)}
	_ = ffi.CallFunction(&SigVoidCmdPushConstants, c.cmdPushConstants, nil, args)
}

func (c *Commands) CmdSetViewport(cb CommandBuffer, first, count uint32, viewports *Viewport) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&viewports)}
	_ = ffi.CallFunction(&SigVoidHandleU32U32Ptr, c.cmdSetViewport, nil, args)
}

func (c *Commands) CmdSetScissor(cb CommandBuffer, first, count uint32, rects *Rect2D) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), unsafe.Pointer(&rects)}
	_ = ffi.CallFunction(&SigVoidHandleU32U32Ptr, c.cmdSetScissor, nil, args)
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buf Buffer, offset DeviceSize, indexType IndexType) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&indexType)}
	_ = ffi.CallFunction(&SigVoidHandleHandleU64U32, c.cmdBindIndexBuffer, nil, args)
}

func (c *Commands) CmdBeginRendering(cb CommandBuffer, info *RenderingInfo) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&SigVoidHandlePtrRendering, c.cmdBeginRendering, nil, args)
}

func (c *Commands) CmdEndRendering(cb CommandBuffer) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb)}
	_ = ffi.CallFunction(&SigVoidHandle, c.cmdEndRendering, nil, args)
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance)}
	_ = ffi.CallFunction(&SigVoidHandleU32x4, c.cmdDraw, nil, args)
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance)}
	_ = ffi.CallFunction(&SigVoidHandleU32x3I32U32, c.cmdDrawIndexed, nil, args)
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)}
	_ = ffi.CallFunction(&SigVoidHandleU32x3, c.cmdDispatch, nil, args)
}

func (c *Commands) CmdDispatchIndirect(cb CommandBuffer, buf Buffer, offset DeviceSize) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset)}
	_ = ffi.CallFunction(&SigVoidHandleHandleU64, c.cmdDispatchIndirect, nil, args)
}

func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, layout ImageLayout, regionCount uint32, regions *BufferImageCopy) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&layout), unsafe.Pointer(&regionCount), unsafe.Pointer(&regions)}
	_ = ffi.CallFunction(&SigVoidCmdCopyBufferToImage, c.cmdCopyBufferToImage, nil, args)
}

func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, regionCount uint32, regions *ImageBlit, filter Filter) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout),
		unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout), unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regions), unsafe.Pointer(&filter),
	}
	_ = ffi.CallFunction(&SigVoidCmdBlitImage, c.cmdBlitImage, nil, args)
}

func (c *Commands) CmdBeginDebugUtilsLabelEXT(cb CommandBuffer, label uintptr) {
	if c.cmdBeginDebugUtilsLabelEXT == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&label)}
	_ = ffi.CallFunction(&SigVoidHandlePtr, c.cmdBeginDebugUtilsLabelEXT, nil, args)
}

func (c *Commands) CmdEndDebugUtilsLabelEXT(cb CommandBuffer) {
	if c.cmdEndDebugUtilsLabelEXT == nil {
		return
	}
	args := []unsafe.Pointer{unsafe.Pointer(&cb)}
	_ = ffi.CallFunction(&SigVoidHandle, c.cmdEndDebugUtilsLabelEXT, nil, args)
}
