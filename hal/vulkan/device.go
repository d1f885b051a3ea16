// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/forge-gpu/forge/frame"
	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/memory"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

// frameWaitTimeout bounds the begin-of-frame wait for the oldest in-flight
// frame. A frame taking this long means the device is hung or lost.
const frameWaitTimeout = 5_000_000_000 // ns

// defaultArenaReserve is the per-thread scratch arena reservation. Only
// pages actually touched are committed, so this can be generous.
const defaultArenaReserve = 4 << 20

// Options configures Open. The zero value is usable.
type Options struct {
	// AppName is reported to the driver through VkApplicationInfo.
	AppName string
	// FramesInFlight overrides the number of frame slots cycled through;
	// 0 selects frame.DefaultFramesInFlight.
	FramesInFlight uint32
	// MaxRecordingThreads bounds how many thread tokens can be held at
	// once; 0 selects 64.
	MaxRecordingThreads uint32
	// ArenaReserve overrides the per-thread scratch arena reservation in
	// bytes; 0 selects 4 MiB.
	ArenaReserve int
	// Validation requests VK_EXT_debug_utils: a messenger routing
	// validation-layer output to the package logger, and debug names on
	// created objects that carry a Label.
	Validation bool
}

// Device owns one logical Vulkan device and everything hanging off it:
// the handle pools for every resource kind, the device memory service,
// the per-frame records with their destruction queues, the transient
// buffer and descriptor pool recyclers, the universal timeline fence, and
// the swapchain manager. All methods are safe for concurrent use; command
// recording is routed to per-thread state through thread tokens.
type Device struct {
	cmds     *vk.Commands
	instance vk.Instance
	physical vk.PhysicalDevice
	native   vk.Device
	queue    vk.Queue

	queueFamily uint32

	properties vk.PhysicalDeviceProperties
	adapter    types.AdapterInfo

	messenger        vk.DebugUtilsMessengerEXT
	debugUtils       bool
	hasDeviceAddress bool

	counter      *frame.Counter
	threadTokens *frame.ThreadTokenPool
	arenaReserve int

	records     *records
	mem         *memory.Service
	timeline    *deviceFence
	semaphores  *semaphoreRecycler
	descriptors *descriptorPoolRecycler
	transients  *transientBufferPool
	swapchains  *swapchainManager

	frameRecords []*frameRecord
}

// Open loads the Vulkan library, creates an instance and a logical device
// on the best available physical device, and assembles the runtime state
// around them.
func Open(opts Options) (*Device, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}
	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	instance, err := createInstance(cmds, opts)
	if err != nil {
		return nil, err
	}
	vk.SetDeviceProcAddr(instance)
	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	var messenger vk.DebugUtilsMessengerEXT
	if opts.Validation {
		messenger = createDebugMessenger(cmds, instance)
	}

	physical, props, err := pickPhysicalDevice(cmds, instance)
	if err != nil {
		cmds.DestroyInstance(instance, nil)
		return nil, err
	}
	hal.Logger().Debug("vulkan: physical device selected",
		"name", props.DeviceNameString(),
		"api", fmt.Sprintf("%d.%d", vk.APIVersionMajor(props.ApiVersion), vk.APIVersionMinor(props.ApiVersion)))

	queueFamily, err := pickQueueFamily(cmds, physical)
	if err != nil {
		cmds.DestroyInstance(instance, nil)
		return nil, err
	}

	native, err := createLogicalDevice(cmds, physical, props.ApiVersion, queueFamily)
	if err != nil {
		cmds.DestroyInstance(instance, nil)
		return nil, err
	}
	if err := cmds.LoadDevice(native); err != nil {
		cmds.DestroyDevice(native, nil)
		cmds.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	var queue vk.Queue
	cmds.GetDeviceQueue(native, queueFamily, 0, &queue)

	var memProps vk.PhysicalDeviceMemoryProperties
	cmds.GetPhysicalDeviceMemoryProperties(physical, &memProps)
	mem := memory.NewService(cmds, native, memory.FromVk(&memProps))

	hasDeviceAddress := props.ApiVersion >= vk.APIVersion12
	if hasDeviceAddress {
		mem.EnableDeviceAddress()
	}

	timeline, err := initTimelineFence(cmds, native)
	if err != nil {
		hal.Logger().Warn("vulkan: timeline semaphore unavailable, using binary fence pool", "error", err)
		timeline = initBinaryFence()
	}

	framesInFlight := opts.FramesInFlight
	if framesInFlight == 0 {
		framesInFlight = frame.DefaultFramesInFlight
	}
	maxThreads := opts.MaxRecordingThreads
	if maxThreads == 0 {
		maxThreads = 64
	}
	arenaReserve := opts.ArenaReserve
	if arenaReserve == 0 {
		arenaReserve = defaultArenaReserve
	}

	d := &Device{
		cmds:             cmds,
		instance:         instance,
		physical:         physical,
		native:           native,
		queue:            queue,
		queueFamily:      queueFamily,
		properties:       props,
		adapter:          adapterInfoFrom(props),
		messenger:        messenger,
		debugUtils:       messenger != 0,
		hasDeviceAddress: hasDeviceAddress,
		counter:          frame.NewCounter(framesInFlight),
		threadTokens:     frame.NewThreadTokenPool(maxThreads),
		arenaReserve:     arenaReserve,
		records:          newRecords(),
		mem:              mem,
		timeline:         timeline,
	}
	d.semaphores = newSemaphoreRecycler(cmds, native)
	d.descriptors = newDescriptorPoolRecycler(cmds, native)
	d.transients = newTransientBufferPool(mem, cmds, native)
	d.swapchains, err = newSwapchainManager(
		&vkSurfaceCalls{cmds: cmds, instance: instance, physical: physical, device: native, queue: queue},
		d.semaphores, d.records.images)
	if err != nil {
		d.teardownPartial()
		return nil, err
	}

	d.frameRecords = make([]*frameRecord, framesInFlight)
	for i := range d.frameRecords {
		d.frameRecords[i] = newFrameRecord()
	}
	return d, nil
}

// createInstance builds the VkInstance with the surface extensions for the
// current session's display server, plus debug utils when validation is
// requested.
func createInstance(cmds *vk.Commands, opts Options) (vk.Instance, error) {
	appName := append([]byte(opts.AppName), 0)
	engineName := append([]byte("forge"), 0)
	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: uintptr(unsafe.Pointer(&appName[0])),
		PEngineName:      uintptr(unsafe.Pointer(&engineName[0])),
		ApiVersion:       vk.APIVersion13,
	}

	extensions := [][]byte{
		[]byte("VK_KHR_surface\x00"),
		[]byte(platformSurfaceExtension()),
	}
	if opts.Validation {
		extensions = append(extensions, []byte("VK_EXT_debug_utils\x00"))
	}
	extPtrs := make([]uintptr, len(extensions))
	for i := range extensions {
		extPtrs[i] = uintptr(unsafe.Pointer(&extensions[i][0]))
	}

	info := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extPtrs)),
		PpEnabledExtensionNames: uintptr(unsafe.Pointer(&extPtrs[0])),
	}

	var instance vk.Instance
	result := cmds.CreateInstance(&info, nil, &instance)
	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	runtime.KeepAlive(extensions)
	runtime.KeepAlive(extPtrs)
	if result != vk.Success {
		return 0, vkErr("vkCreateInstance", result)
	}
	return instance, nil
}

// pickPhysicalDevice prefers a discrete GPU, then an integrated one, then
// whatever enumerates first.
func pickPhysicalDevice(cmds *vk.Commands, instance vk.Instance) (vk.PhysicalDevice, vk.PhysicalDeviceProperties, error) {
	var count uint32
	if result := cmds.EnumeratePhysicalDevices(instance, &count, nil); result != vk.Success || count == 0 {
		return 0, vk.PhysicalDeviceProperties{}, fmt.Errorf("vulkan: no physical devices (result=%d, count=%d)", result, count)
	}
	devices := make([]vk.PhysicalDevice, count)
	if result := cmds.EnumeratePhysicalDevices(instance, &count, &devices[0]); result != vk.Success {
		return 0, vk.PhysicalDeviceProperties{}, vkErr("vkEnumeratePhysicalDevices", result)
	}

	rank := func(t vk.PhysicalDeviceType) int {
		switch t {
		case vk.PhysicalDeviceTypeDiscreteGpu:
			return 2
		case vk.PhysicalDeviceTypeIntegratedGpu:
			return 1
		default:
			return 0
		}
	}

	best := devices[0]
	var bestProps vk.PhysicalDeviceProperties
	cmds.GetPhysicalDeviceProperties(best, &bestProps)
	for _, pd := range devices[1:] {
		var props vk.PhysicalDeviceProperties
		cmds.GetPhysicalDeviceProperties(pd, &props)
		if rank(props.DeviceType) > rank(bestProps.DeviceType) {
			best, bestProps = pd, props
		}
	}
	return best, bestProps, nil
}

func pickQueueFamily(cmds *vk.Commands, physical vk.PhysicalDevice) (uint32, error) {
	var count uint32
	cmds.GetPhysicalDeviceQueueFamilyProperties(physical, &count, nil)
	if count == 0 {
		return 0, fmt.Errorf("vulkan: device reports no queue families")
	}
	families := make([]vk.QueueFamilyProperties, count)
	cmds.GetPhysicalDeviceQueueFamilyProperties(physical, &count, &families[0])
	for i, f := range families {
		if f.QueueFlags&vk.QueueGraphicsBit != 0 {
			return uint32(i), nil
		}
	}
	return 0, fmt.Errorf("vulkan: no graphics-capable queue family")
}

// createLogicalDevice requests the swapchain extension and enables the
// core 1.2/1.3 features the runtime records against: timeline semaphores
// and buffer device address on 1.2+, dynamic rendering and
// synchronization2 on 1.3+.
func createLogicalDevice(cmds *vk.Commands, physical vk.PhysicalDevice, apiVersion uint32, queueFamily uint32) (vk.Device, error) {
	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamily,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}

	extensions := [][]byte{[]byte("VK_KHR_swapchain\x00")}
	extPtrs := make([]uintptr, len(extensions))
	for i := range extensions {
		extPtrs[i] = uintptr(unsafe.Pointer(&extensions[i][0]))
	}

	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       &queueInfo,
		EnabledExtensionCount:   uint32(len(extPtrs)),
		PpEnabledExtensionNames: uintptr(unsafe.Pointer(&extPtrs[0])),
	}

	timelineFeat := vk.PhysicalDeviceTimelineSemaphoreFeatures{
		SType:             vk.StructureTypePhysicalDeviceTimelineSemaphoreFeatures,
		TimelineSemaphore: 1,
	}
	addressFeat := vk.PhysicalDeviceBufferDeviceAddressFeatures{
		SType:               vk.StructureTypePhysicalDeviceBufferDeviceAddressFeatures,
		BufferDeviceAddress: 1,
	}
	dynamicFeat := vk.PhysicalDeviceDynamicRenderingFeatures{
		SType:            vk.StructureTypePhysicalDeviceDynamicRenderingFeatures,
		DynamicRendering: 1,
	}
	sync2Feat := vk.PhysicalDeviceSynchronization2Features{
		SType:            vk.StructureTypePhysicalDeviceSynchronization2Features,
		Synchronization2: 1,
	}
	if apiVersion >= vk.APIVersion12 {
		addressFeat.PNext = uintptr(unsafe.Pointer(&timelineFeat))
		info.PNext = uintptr(unsafe.Pointer(&addressFeat))
	}
	if apiVersion >= vk.APIVersion13 {
		timelineFeat.PNext = uintptr(unsafe.Pointer(&dynamicFeat))
		dynamicFeat.PNext = uintptr(unsafe.Pointer(&sync2Feat))
	}

	var device vk.Device
	result := cmds.CreateDevice(physical, &info, nil, &device)
	runtime.KeepAlive(extensions)
	runtime.KeepAlive(extPtrs)
	runtime.KeepAlive(&queueInfo)
	runtime.KeepAlive(&timelineFeat)
	runtime.KeepAlive(&addressFeat)
	runtime.KeepAlive(&dynamicFeat)
	runtime.KeepAlive(&sync2Feat)
	if result != vk.Success {
		return 0, vkErr("vkCreateDevice", result)
	}
	return device, nil
}

func adapterInfoFrom(props vk.PhysicalDeviceProperties) types.AdapterInfo {
	dt := types.DeviceTypeOther
	switch props.DeviceType {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		dt = types.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		dt = types.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		dt = types.DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		dt = types.DeviceTypeCPU
	}
	return types.AdapterInfo{
		Name:       props.DeviceNameString(),
		VendorID:   props.VendorID,
		DeviceID:   props.DeviceID,
		DeviceType: dt,
		Driver:     fmt.Sprintf("%d", props.DriverVersion),
	}
}

// AdapterInfo describes the physical device this runtime opened.
func (d *Device) AdapterInfo() types.AdapterInfo { return d.adapter }

// Features reports the optional capabilities the opened device exposes
// through this runtime.
func (d *Device) Features() types.Features {
	var f types.Features
	if d.properties.Limits.MaxPushConstantsSize > 0 {
		f.Insert(types.FeaturePushConstants)
	}
	if d.properties.Limits.TimestampComputeAndGraphics != 0 {
		f.Insert(types.FeatureTimestampQuery)
	}
	if d.properties.Limits.MaxDrawIndirectCount > 1 {
		f.Insert(types.FeatureMultiDrawIndirect)
	}
	return f
}

// Limits reports the driver limits most relevant to callers: binding
// alignments and attachment bounds, mapped into the backend-agnostic form.
func (d *Device) Limits() types.Limits {
	l := types.DefaultLimits()
	l.MinUniformBufferOffsetAlignment = uint32(d.properties.Limits.MinUniformBufferOffsetAlignment)
	l.MinStorageBufferOffsetAlignment = uint32(d.properties.Limits.MinStorageBufferOffsetAlignment)
	l.MaxPushConstantSize = d.properties.Limits.MaxPushConstantsSize
	l.MaxColorAttachments = d.properties.Limits.MaxColorAttachments
	l.MaxTextureDimension2D = d.properties.Limits.MaxImageDimension2D
	l.MaxTextureDimension3D = d.properties.Limits.MaxImageDimension3D
	l.MaxTextureArrayLayers = d.properties.Limits.MaxImageArrayLayers
	return l
}

// AcquireThreadToken reserves a per-thread recording slot. The token must
// be released when the thread stops recording for good; holding it across
// frames is the intended usage.
func (d *Device) AcquireThreadToken() frame.ThreadToken {
	tok, ok := d.threadTokens.Acquire()
	if !ok {
		panicMisuse("acquire_thread_token", "thread token pool exhausted; raise Options.MaxRecordingThreads")
	}
	return tok
}

// ReleaseThreadToken returns a token to the pool.
func (d *Device) ReleaseThreadToken(t frame.ThreadToken) { d.threadTokens.Release(t) }

// BeginFrame acquires the next frame slot: it blocks until the slot's
// previous use has fully retired on the GPU, reclaims everything that
// frame deferred (per-thread pools, recycled semaphores and descriptor
// pools, destruction queues), ages the swapchain recycle lists, and scans
// for empty memory super-blocks. The returned token gates every
// frame-scoped operation until EndFrame.
func (d *Device) BeginFrame() (frame.Token, error) {
	tok := d.counter.Begin()
	fr := d.frameRecords[tok.Index()]

	if err := d.timeline.waitForValue(d.cmds, d.native, fr.watermark.Load(), frameWaitTimeout); err != nil {
		return tok, err
	}
	if err := fr.beginFrame(d.cmds, d.native, d.mem, d.descriptors, d.transients, d.semaphores); err != nil {
		return tok, err
	}
	d.swapchains.beginFrame()
	d.mem.BeginFrame()
	return tok, nil
}

// EndFrame presents every swapchain touched this frame and releases the
// frame slot. tok must be the token BeginFrame returned.
func (d *Device) EndFrame(tok frame.Token) error {
	err := d.swapchains.present(d.frameRecords[tok.Index()])
	d.counter.End(tok)
	return err
}

// RequestTransientBuffer sub-allocates size bytes of host-visible,
// frame-lifetime buffer memory from the calling thread's transient
// allocator, aligned for the requested usage. Oversized requests are
// served by a dedicated buffer queued for destruction when the frame
// retires.
func (d *Device) RequestTransientBuffer(tok frame.Token, thread frame.ThreadToken, usage types.BufferUsage, size uint32) (TransientRegion, error) {
	fr := d.frameRecords[tok.Index()]
	ts, err := fr.threadFor(d.cmds, d.native, d.queueFamily, thread, d.arenaReserve)
	if err != nil {
		return TransientRegion{}, err
	}
	region, standalone, err := ts.transient.request(d.transients, size, d.transientAlignment(usage))
	if err != nil {
		return TransientRegion{}, err
	}
	if standalone != nil {
		fr.transientBuffers.push(standalone)
	}
	return region, nil
}

// transientAlignment derives the effective alignment for a transient
// sub-allocation: the strictest of the driver's offset alignments for
// each usage the caller declared.
func (d *Device) transientAlignment(usage types.BufferUsage) uint32 {
	align := uint32(1)
	if usage&types.BufferUsageUniform != 0 {
		align = max(align, uint32(d.properties.Limits.MinUniformBufferOffsetAlignment))
	}
	if usage&types.BufferUsageStorage != 0 {
		align = max(align, uint32(d.properties.Limits.MinStorageBufferOffsetAlignment))
	}
	if usage&(types.BufferUsageCopySrc|types.BufferUsageCopyDst) != 0 {
		align = max(align, uint32(d.properties.Limits.OptimalBufferCopyOffsetAlignment))
	}
	return align
}

// AcquireSwapchain returns a presentable image for window, creating or
// rebuilding the surface and swapchain as needed. The returned handle is
// valid for this frame only. When the surface has gone out of date the
// native swapchain is torn down and the error satisfies
// errors.Is(err, hal.ErrSurfaceOutdated); the caller should re-acquire
// with fresh dimensions next frame. Acquiring the same window twice in
// one frame is a programming error.
func (d *Device) AcquireSwapchain(tok frame.Token, window Window, width, height uint32, cfg SwapchainConfigurator) (uint32, uint32, types.TextureHandle, error) {
	return d.swapchains.acquire(window, width, height, cfg)
}

// DestroySwapchain tears down window's swapchain and surface. Presentation
// already in flight keeps the native objects alive until their recycle
// entries expire.
func (d *Device) DestroySwapchain(window Window) {
	d.swapchains.destroyWindow(window)
}

// Destroy waits for the device to go idle and releases every owned
// resource. Handles still live in the pools are destroyed with their
// native objects; using any handle from this device afterwards is invalid.
func (d *Device) Destroy() {
	if d.native != 0 {
		d.cmds.DeviceWaitIdle(d.native)
	}

	// Everything in flight has retired, so each frame record's deferred
	// work can be reclaimed and drained immediately.
	for _, fr := range d.frameRecords {
		if err := fr.beginFrame(d.cmds, d.native, d.mem, d.descriptors, d.transients, d.semaphores); err != nil {
			hal.Logger().Warn("vulkan: draining frame record at shutdown", "error", err)
		}
	}
	var g errgroup.Group
	for _, fr := range d.frameRecords {
		g.Go(func() error {
			fr.destroy(d.cmds, d.native)
			return nil
		})
	}
	_ = g.Wait()

	d.records.buffers.ForEach(func(_ handle.Handle, rec bufferRecord) {
		d.cmds.DestroyBuffer(d.native, rec.native, nil)
		d.mem.Free(rec.alloc)
	})
	d.records.images.ForEach(func(_ handle.Handle, rec imageRecord) {
		switch rec.kind {
		case imageUnique:
			d.cmds.DestroyImageView(d.native, rec.view, nil)
			d.cmds.DestroyImage(d.native, rec.native, nil)
			d.mem.Free(rec.alloc)
		case imageShared:
			if rec.shared.release() {
				for _, v := range rec.shared.takeViews() {
					d.cmds.DestroyImageView(d.native, v, nil)
				}
				d.cmds.DestroyImage(d.native, rec.shared.native, nil)
				d.mem.Free(rec.shared.alloc)
			}
		}
	})
	d.records.samplers.ForEach(func(_ handle.Handle, rec samplerRecord) {
		d.cmds.DestroySampler(d.native, rec.native, nil)
	})
	d.records.bindGroupLayouts.ForEach(func(_ handle.Handle, rec bindGroupLayoutRecord) {
		d.cmds.DestroyDescriptorSetLayout(d.native, rec.native, nil)
	})
	d.records.pipelines.ForEach(func(_ handle.Handle, rec pipelineRecord) {
		d.cmds.DestroyPipeline(d.native, rec.native, nil)
		d.cmds.DestroyPipelineLayout(d.native, rec.layout, nil)
	})

	d.swapchains.destroy()
	d.transients.destroy()
	d.descriptors.destroy()
	d.semaphores.destroy()
	d.timeline.destroy(d.cmds, d.native)
	d.mem.Destroy()

	d.teardownPartial()
}

// teardownPartial destroys the bootstrap-level objects; shared between
// Destroy and the Open failure path.
func (d *Device) teardownPartial() {
	if d.native != 0 {
		d.cmds.DestroyDevice(d.native, nil)
		d.native = 0
	}
	if d.messenger != 0 {
		destroyDebugMessenger(d.cmds, d.instance, d.messenger)
		d.messenger = 0
	}
	if d.instance != 0 {
		d.cmds.DestroyInstance(d.instance, nil)
		d.instance = 0
	}
}
