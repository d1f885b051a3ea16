// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/forge-gpu/forge/arena"
	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

// SwapchainConfigurator lets the windowing layer steer the present mode
// and surface format a swapchain negotiates, without this package taking
// a dependency on any particular windowing toolkit.
type SwapchainConfigurator interface {
	// ChoosePresentMode picks one of the modes the surface reports as
	// supported.
	ChoosePresentMode(supported []vk.PresentModeKHR) vk.PresentModeKHR
	// ChooseSurfaceFormat picks one of the (format, color space) pairs
	// the surface reports as supported.
	ChooseSurfaceFormat(supported []vk.SurfaceFormatKHR) vk.SurfaceFormatKHR
}

// surfaceCalls is the slice of the native surface the swapchain manager
// drives. Production code goes through vkSurfaceCalls; tests substitute
// a fake so acquire/rebuild/present state transitions can be exercised
// without a driver.
type surfaceCalls interface {
	createSurface(w Window) (vk.SurfaceKHR, error)
	destroySurface(s vk.SurfaceKHR)
	surfaceCapabilities(s vk.SurfaceKHR) (vk.SurfaceCapabilitiesKHR, error)
	surfaceFormats(s vk.SurfaceKHR) ([]vk.SurfaceFormatKHR, error)
	surfacePresentModes(s vk.SurfaceKHR) ([]vk.PresentModeKHR, error)
	createSwapchain(info *vk.SwapchainCreateInfoKHR) (vk.SwapchainKHR, error)
	destroySwapchain(sc vk.SwapchainKHR)
	swapchainImages(sc vk.SwapchainKHR) ([]vk.Image, error)
	createImageView(info *vk.ImageViewCreateInfo) (vk.ImageView, error)
	destroyImageView(v vk.ImageView)
	acquireNextImage(sc vk.SwapchainKHR, sem vk.Semaphore) (uint32, vk.Result)
	queuePresent(info *vk.PresentInfoKHR) vk.Result
}

// semaphoreSource hands out and reclaims binary semaphores;
// *semaphoreRecycler implements it.
type semaphoreSource interface {
	acquire() (vk.Semaphore, error)
	release(s vk.Semaphore)
}

// swapchainState is Vacant (no native swapchain, dimensions unknown) or
// Occupied (a live native swapchain backing acquire calls) for one
// window.
type swapchainState uint8

const (
	swapchainVacant swapchainState = iota
	swapchainOccupied
)

// swapchainEntry is the per-window record the swapchain manager keeps.
// acquireSemaphore/releaseSemaphore/imageIndex are per-frame fields the
// submit pre-pass and end-of-frame present read back.
type swapchainEntry struct {
	state swapchainState

	surface      vk.SurfaceKHR
	native       vk.SwapchainKHR
	lastRetired  vk.SwapchainKHR // chained as OldSwapchain on the next rebuild
	width        uint32
	height       uint32
	format       vk.SurfaceFormatKHR
	presentMode  vk.PresentModeKHR
	usage        vk.ImageUsageFlags
	capabilities vk.SurfaceCapabilitiesKHR

	images  []vk.Image
	views   []vk.ImageView
	handles []types.TextureHandle

	suboptimal bool

	acquireSemaphore  vk.Semaphore
	acquireStage      vk.PipelineStageFlags2
	releaseSemaphore  vk.Semaphore
	imageIndex        uint32
	acquiredThisFrame bool
}

type presentEntry struct {
	acquireSemaphore vk.Semaphore
	waitStage        vk.PipelineStageFlags2
}

// recycleEntry is one release semaphore awaiting reclaim, tagged with
// the swapchain whose presentation it guarded. With the
// swapchain-maintenance extension a present fence would gate the
// reclaim; this binding never loads that extension (see
// vk.Commands.HasSwapchainMaintenance1), so each entry instead decays
// over a fixed number of frames.
type recycleEntry struct {
	semaphore vk.Semaphore
	swapchain vk.SwapchainKHR
	ttl       uint32
}

// semaphoreRecycleTTL is how many begin-of-frame calls a semaphore
// survives before the manager assumes the present it guarded completed.
// It must exceed the deepest presentation queue a compositor keeps; three
// is comfortably past the two frame slots cycled by default.
const semaphoreRecycleTTL = 3

// presentOrderCapacity bounds the per-frame present-order record; an
// application presenting to more windows than this in a single frame is
// not a real workload.
const presentOrderCapacity = 256

// swapchainManager owns every window's swapchain state plus the
// device-wide deferral queues: swapchains awaiting teardown once nothing
// in flight references them, and release semaphores awaiting recycle.
type swapchainManager struct {
	calls      surfaceCalls
	semaphores semaphoreSource
	images     *handle.Pool[imageRecord]

	mu      sync.Mutex
	windows map[Window]*swapchainEntry

	// presentOrder records, in submit order, each window assigned a
	// release semaphore this frame; end-of-frame present follows it so
	// present order matches first-touch order. Guarded by mu.
	presentOrder *arena.Deque[Window]

	destroyMu sync.Mutex
	pendingDestroy []destroyedSwapchain

	recycleMu sync.Mutex
	recycle   []recycleEntry
}

type destroyedSwapchain struct {
	native  vk.SwapchainKHR
	views   []vk.ImageView
	surface vk.SurfaceKHR // 0 unless the whole window was destroyed
}

func newSwapchainManager(calls surfaceCalls, semaphores semaphoreSource, images *handle.Pool[imageRecord]) (*swapchainManager, error) {
	order, err := arena.NewDeque[Window](presentOrderCapacity)
	if err != nil {
		return nil, fmt.Errorf("vulkan: reserving present-order record: %w", err)
	}
	return &swapchainManager{
		calls:        calls,
		semaphores:   semaphores,
		images:       images,
		windows:      make(map[Window]*swapchainEntry),
		presentOrder: order,
	}, nil
}

// acquire returns a presentable image for window: create the surface and
// negotiate format/present-mode the first time window is seen, (re)create
// the native swapchain when vacant, size-mismatched or previously marked
// suboptimal, then acquire the next image. An out-of-date acquire tears
// the swapchain down and returns a hal.SurfaceError unwrapping to
// hal.ErrSurfaceOutdated; the next acquire starts from Vacant.
func (m *swapchainManager) acquire(window Window, width, height uint32, cfg SwapchainConfigurator) (uint32, uint32, types.TextureHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.windows[window]
	if !ok {
		surface, err := m.calls.createSurface(window)
		if err != nil {
			return 0, 0, 0, &hal.SurfaceError{Op: "acquire", Err: err}
		}
		entry = &swapchainEntry{surface: surface, state: swapchainVacant}
		m.windows[window] = entry
	}

	if entry.acquiredThisFrame {
		panicMisuse("acquire_swapchain", "window already acquired this frame")
	}

	if entry.state == swapchainOccupied &&
		(entry.width != width || entry.height != height || entry.suboptimal) {
		m.retireEntryLocked(entry, false)
	}
	if entry.state == swapchainVacant {
		if err := m.rebuild(entry, width, height, cfg); err != nil {
			return 0, 0, 0, &hal.SurfaceError{Op: "rebuild", Err: err}
		}
	}

	sem, err := m.semaphores.acquire()
	if err != nil {
		return 0, 0, 0, err
	}

	imgIndex, result := m.calls.acquireNextImage(entry.native, sem)
	switch result {
	case vk.Success:
	case vk.Suboptimal:
		// Usable this frame; rebuild at the next acquire.
		entry.suboptimal = true
	case vk.ErrorOutOfDateKhr:
		m.recycleSemaphoreLocked(sem, entry.native)
		m.retireEntryLocked(entry, false)
		return 0, 0, 0, &hal.SurfaceError{Op: "acquire", Err: hal.ErrSurfaceOutdated}
	default:
		m.recycleSemaphoreLocked(sem, entry.native)
		return 0, 0, 0, &hal.SurfaceError{Op: "acquire", Err: vkErr("vkAcquireNextImageKHR", result)}
	}

	entry.acquireSemaphore = sem
	entry.acquireStage = vk.PipelineStage2ColorAttachmentOutputBit
	entry.imageIndex = imgIndex
	entry.acquiredThisFrame = true

	return entry.width, entry.height, entry.handles[imgIndex], nil
}

// retireEntryLocked detaches the entry's image handles from the image
// pool, queues its native swapchain and views for deferred destruction,
// and resets the entry to Vacant. destroySurface additionally queues the
// surface, for whole-window teardown. Caller holds m.mu.
func (m *swapchainManager) retireEntryLocked(entry *swapchainEntry, destroySurface bool) {
	for _, h := range entry.handles {
		m.images.Remove(handle.Handle(h))
	}
	pending := destroyedSwapchain{native: entry.native, views: entry.views}
	if destroySurface {
		pending.surface = entry.surface
		entry.surface = 0
	}
	if pending.native != 0 || pending.surface != 0 {
		m.destroyMu.Lock()
		m.pendingDestroy = append(m.pendingDestroy, pending)
		m.destroyMu.Unlock()
	}
	entry.lastRetired = entry.native
	entry.native = 0
	entry.images = nil
	entry.views = nil
	entry.handles = nil
	entry.suboptimal = false
	entry.state = swapchainVacant
}

// rebuild negotiates surface parameters and creates a fresh native
// swapchain for entry, chaining the most recently retired one through
// OldSwapchain so the driver can recycle its images. Every image gets a
// view and a pool handle the renderer can treat like any other image.
func (m *swapchainManager) rebuild(entry *swapchainEntry, width, height uint32, cfg SwapchainConfigurator) error {
	caps, err := m.calls.surfaceCapabilities(entry.surface)
	if err != nil {
		return err
	}

	formats, err := m.calls.surfaceFormats(entry.surface)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return fmt.Errorf("vulkan: surface reports no supported formats")
	}
	modes, err := m.calls.surfacePresentModes(entry.surface)
	if err != nil {
		return err
	}
	if len(modes) == 0 {
		return fmt.Errorf("vulkan: surface reports no supported present modes")
	}

	format := cfg.ChooseSurfaceFormat(formats)
	if !surfaceFormatSupported(format, formats) {
		panicMisuse("acquire_swapchain", "configurator chose a surface format the surface does not support")
	}
	presentMode := cfg.ChoosePresentMode(modes)
	if !presentModeSupported(presentMode, modes) {
		panicMisuse("acquire_swapchain", "configurator chose a present mode the surface does not support")
	}

	extent := clampExtent(vk.Extent2D{Width: width, Height: height}, caps)
	if extent.Width == 0 || extent.Height == 0 {
		return hal.ErrZeroArea
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	usage := vk.ImageUsageColorAttachmentBit
	if caps.SupportedUsageFlags&vk.ImageUsageTransferDstBit != 0 {
		usage |= vk.ImageUsageTransferDstBit
	}

	createInfo := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKhr,
		Surface:          entry.surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       usage,
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBitKhr,
		PresentMode:      presentMode,
		Clipped:          vk.Bool32(1),
		OldSwapchain:     entry.lastRetired,
	}

	native, err := m.calls.createSwapchain(&createInfo)
	if err != nil {
		return err
	}

	images, err := m.calls.swapchainImages(native)
	if err != nil {
		return err
	}

	surfaceFormat, err := fromVkFormat(format.Format)
	if err != nil {
		return err
	}
	surfaceUsage := types.TextureUsageRenderAttachment
	if usage&vk.ImageUsageTransferDstBit != 0 {
		surfaceUsage |= types.TextureUsageCopyDst
	}

	views := make([]vk.ImageView, len(images))
	handles := make([]types.TextureHandle, len(images))
	for i, img := range images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    img,
			ViewType: vk.ImageViewType2D,
			Format:   format.Format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColorBit,
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		views[i], err = m.calls.createImageView(&viewInfo)
		if err != nil {
			return fmt.Errorf("vulkan: creating view for swapchain image %d: %w", i, err)
		}
		handles[i] = types.TextureHandle(m.images.Insert(imageRecord{
			kind:          imageSwapchain,
			native:        img,
			swapchainView: views[i],
			extent:        Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1},
			format:        surfaceFormat,
			usage:         surfaceUsage,
			mipLevels:     1,
			samples:       1,
		}))
	}

	hal.Logger().Debug("vulkan: swapchain rebuilt",
		"width", extent.Width, "height", extent.Height, "images", len(images))

	entry.native = native
	entry.width = extent.Width
	entry.height = extent.Height
	entry.format = format
	entry.presentMode = presentMode
	entry.usage = usage
	entry.capabilities = caps
	entry.images = images
	entry.views = views
	entry.handles = handles
	entry.suboptimal = false
	entry.state = swapchainOccupied
	return nil
}

func surfaceFormatSupported(f vk.SurfaceFormatKHR, supported []vk.SurfaceFormatKHR) bool {
	for _, s := range supported {
		if s == f {
			return true
		}
	}
	return false
}

func presentModeSupported(m vk.PresentModeKHR, supported []vk.PresentModeKHR) bool {
	for _, s := range supported {
		if s == m {
			return true
		}
	}
	return false
}

func clampExtent(requested vk.Extent2D, caps vk.SurfaceCapabilitiesKHR) vk.Extent2D {
	if caps.CurrentExtent.Width != 0xFFFFFFFF {
		return caps.CurrentExtent
	}
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(requested.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(requested.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func (m *swapchainManager) recycleSemaphoreLocked(s vk.Semaphore, swapchain vk.SwapchainKHR) {
	m.recycleMu.Lock()
	m.recycle = append(m.recycle, recycleEntry{semaphore: s, swapchain: swapchain, ttl: semaphoreRecycleTTL})
	m.recycleMu.Unlock()
}

// presentEntry returns the acquire semaphore and wait stage submit must
// wait on for window, recorded by the acquire call this frame.
func (m *swapchainManager) presentEntry(window Window) (presentEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.windows[window]
	if !ok || !entry.acquiredThisFrame {
		return presentEntry{}, false
	}
	return presentEntry{acquireSemaphore: entry.acquireSemaphore, waitStage: entry.acquireStage}, true
}

// newReleaseSemaphore hands submit a semaphore to signal at end of
// rendering, drawn from the device-wide semaphore recycler.
func (m *swapchainManager) newReleaseSemaphore() (vk.Semaphore, error) {
	return m.semaphores.acquire()
}

// setReleaseSemaphore records the release semaphore submit assigned to
// window and appends the window to this frame's present order.
func (m *swapchainManager) setReleaseSemaphore(window Window, sem vk.Semaphore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.windows[window]
	if !ok {
		return
	}
	if entry.releaseSemaphore == 0 {
		if err := m.presentOrder.PushBack(window); err != nil {
			panicMisusef("submit", "present-order record full: %v", err)
		}
	}
	entry.releaseSemaphore = sem
}

// present issues one batched present covering every window a submit
// assigned a release semaphore this frame, in first-touch order, then
// clears the per-frame acquire bookkeeping. Acquire semaphores of
// presented windows were waited by this frame's submissions, so they go
// onto fr's recycled-semaphore queue and return to the device-wide pool
// when the frame retires; release semaphores are only waited by the
// presentation engine, which the timeline cannot observe, so they take
// the TTL recycle list instead.
func (m *swapchainManager) present(fr *frameRecord) error {
	m.mu.Lock()
	count := m.presentOrder.Len()
	swapchains := make([]vk.SwapchainKHR, 0, count)
	imageIndices := make([]uint32, 0, count)
	waitSemaphores := make([]vk.Semaphore, 0, count)
	presented := make([]*swapchainEntry, 0, count)

	m.presentOrder.ForEach(func(_ int, window Window) {
		entry, ok := m.windows[window]
		if !ok || !entry.acquiredThisFrame || entry.releaseSemaphore == 0 {
			return
		}
		swapchains = append(swapchains, entry.native)
		imageIndices = append(imageIndices, entry.imageIndex)
		waitSemaphores = append(waitSemaphores, entry.releaseSemaphore)
		presented = append(presented, entry)
	})
	m.presentOrder.Reset()

	for _, entry := range m.windows {
		if !entry.acquiredThisFrame {
			continue
		}
		if entry.releaseSemaphore != 0 {
			fr.recycledSemaphores.push(entry.acquireSemaphore)
			m.recycleSemaphoreLocked(entry.releaseSemaphore, entry.native)
		} else {
			// Acquired but never drawn to: the image is abandoned and the
			// acquire semaphore's signal was never waited, so only the TTL
			// can age it back into the pool.
			m.recycleSemaphoreLocked(entry.acquireSemaphore, entry.native)
		}
		entry.acquiredThisFrame = false
		entry.acquireSemaphore = 0
		entry.releaseSemaphore = 0
	}
	m.mu.Unlock()

	if len(swapchains) == 0 {
		return nil
	}

	results := make([]vk.Result, len(swapchains))
	info := vk.PresentInfoKHR{
		SType:              vk.StructureTypePresentInfoKhr,
		WaitSemaphoreCount: uint32(len(waitSemaphores)),
		PWaitSemaphores:    &waitSemaphores[0],
		SwapchainCount:     uint32(len(swapchains)),
		PSwapchains:        &swapchains[0],
		PImageIndices:      &imageIndices[0],
		PResults:           &results[0],
	}

	batchResult := m.calls.queuePresent(&info)

	m.mu.Lock()
	for i, entry := range presented {
		switch results[i] {
		case vk.Success:
		case vk.Suboptimal, vk.ErrorOutOfDateKhr:
			// The next acquire for this window rebuilds before acquiring.
			entry.suboptimal = true
		default:
			m.mu.Unlock()
			return &hal.SurfaceError{Op: "present", Err: vkErr("vkQueuePresentKHR", results[i])}
		}
	}
	m.mu.Unlock()

	switch batchResult {
	case vk.Success, vk.Suboptimal, vk.ErrorOutOfDateKhr:
		return nil
	default:
		return &hal.SurfaceError{Op: "present", Err: vkErr("vkQueuePresentKHR", batchResult)}
	}
}

// beginFrame ages the release-semaphore recycle list and destroys every
// pending swapchain no live recycle entry references anymore. The
// fence-based variant of this bookkeeping requires the
// swapchain-maintenance extension, which this binding never loads, so
// only the TTL countdown runs.
func (m *swapchainManager) beginFrame() {
	var ready []vk.Semaphore
	stillReferenced := make(map[vk.SwapchainKHR]bool)

	m.recycleMu.Lock()
	remaining := m.recycle[:0]
	for _, e := range m.recycle {
		e.ttl--
		if e.ttl == 0 {
			ready = append(ready, e.semaphore)
			continue
		}
		stillReferenced[e.swapchain] = true
		remaining = append(remaining, e)
	}
	m.recycle = remaining
	m.recycleMu.Unlock()

	for _, s := range ready {
		m.semaphores.release(s)
	}

	m.destroyMu.Lock()
	pending := m.pendingDestroy[:0]
	var destroyNow []destroyedSwapchain
	for _, s := range m.pendingDestroy {
		if stillReferenced[s.native] {
			pending = append(pending, s)
			continue
		}
		destroyNow = append(destroyNow, s)
	}
	m.pendingDestroy = pending
	m.destroyMu.Unlock()

	if len(destroyNow) == 0 {
		return
	}
	destroyed := make(map[vk.SwapchainKHR]bool, len(destroyNow))
	for _, s := range destroyNow {
		for _, v := range s.views {
			m.calls.destroyImageView(v)
		}
		if s.native != 0 {
			m.calls.destroySwapchain(s.native)
			destroyed[s.native] = true
		}
		if s.surface != 0 {
			m.calls.destroySurface(s.surface)
		}
	}

	// A retired swapchain already destroyed can no longer serve as the
	// OldSwapchain chain on the next rebuild.
	m.mu.Lock()
	for _, entry := range m.windows {
		if destroyed[entry.lastRetired] {
			entry.lastRetired = 0
		}
	}
	m.mu.Unlock()
}

// destroyWindow retires window's swapchain and queues its surface for
// destruction once in-flight presentation drains, then forgets the
// window.
func (m *swapchainManager) destroyWindow(window Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.windows[window]
	if !ok {
		return
	}
	m.retireEntryLocked(entry, true)
	delete(m.windows, window)
}

// destroy tears down every window's native swapchain, views and surface,
// fanning the per-window teardown out across windows. Called only at
// device shutdown, after the device has gone idle.
func (m *swapchainManager) destroy() {
	m.mu.Lock()
	var g errgroup.Group
	for _, entry := range m.windows {
		g.Go(func() error {
			for _, v := range entry.views {
				m.calls.destroyImageView(v)
			}
			if entry.native != 0 {
				m.calls.destroySwapchain(entry.native)
			}
			if entry.surface != 0 {
				m.calls.destroySurface(entry.surface)
			}
			return nil
		})
	}
	_ = g.Wait()
	m.windows = nil
	m.mu.Unlock()

	m.destroyMu.Lock()
	for _, s := range m.pendingDestroy {
		for _, v := range s.views {
			m.calls.destroyImageView(v)
		}
		if s.native != 0 {
			m.calls.destroySwapchain(s.native)
		}
		if s.surface != 0 {
			m.calls.destroySurface(s.surface)
		}
	}
	m.pendingDestroy = nil
	m.destroyMu.Unlock()

	if err := m.presentOrder.Close(); err != nil {
		hal.Logger().Warn("vulkan: closing present-order record", "error", err)
	}
}

// vkSurfaceCalls is the production surfaceCalls implementation, routing
// every call through the loaded command table.
type vkSurfaceCalls struct {
	cmds     *vk.Commands
	instance vk.Instance
	physical vk.PhysicalDevice
	device   vk.Device
	queue    vk.Queue
}

func (c *vkSurfaceCalls) createSurface(w Window) (vk.SurfaceKHR, error) {
	return createSurface(c.cmds, c.instance, w)
}

func (c *vkSurfaceCalls) destroySurface(s vk.SurfaceKHR) {
	c.cmds.DestroySurfaceKHR(c.instance, s, nil)
}

func (c *vkSurfaceCalls) surfaceCapabilities(s vk.SurfaceKHR) (vk.SurfaceCapabilitiesKHR, error) {
	var caps vk.SurfaceCapabilitiesKHR
	if result := c.cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(c.physical, s, &caps); result != vk.Success {
		return caps, vkErr("vkGetPhysicalDeviceSurfaceCapabilitiesKHR", result)
	}
	return caps, nil
}

func (c *vkSurfaceCalls) surfaceFormats(s vk.SurfaceKHR) ([]vk.SurfaceFormatKHR, error) {
	var count uint32
	c.cmds.GetPhysicalDeviceSurfaceFormatsKHR(c.physical, s, &count, nil)
	if count == 0 {
		return nil, nil
	}
	formats := make([]vk.SurfaceFormatKHR, count)
	if result := c.cmds.GetPhysicalDeviceSurfaceFormatsKHR(c.physical, s, &count, &formats[0]); result != vk.Success {
		return nil, vkErr("vkGetPhysicalDeviceSurfaceFormatsKHR", result)
	}
	return formats[:count], nil
}

func (c *vkSurfaceCalls) surfacePresentModes(s vk.SurfaceKHR) ([]vk.PresentModeKHR, error) {
	var count uint32
	c.cmds.GetPhysicalDeviceSurfacePresentModesKHR(c.physical, s, &count, nil)
	if count == 0 {
		return nil, nil
	}
	modes := make([]vk.PresentModeKHR, count)
	if result := c.cmds.GetPhysicalDeviceSurfacePresentModesKHR(c.physical, s, &count, &modes[0]); result != vk.Success {
		return nil, vkErr("vkGetPhysicalDeviceSurfacePresentModesKHR", result)
	}
	return modes[:count], nil
}

func (c *vkSurfaceCalls) createSwapchain(info *vk.SwapchainCreateInfoKHR) (vk.SwapchainKHR, error) {
	var sc vk.SwapchainKHR
	if result := c.cmds.CreateSwapchainKHR(c.device, info, nil, &sc); result != vk.Success {
		return 0, vkErr("vkCreateSwapchainKHR", result)
	}
	return sc, nil
}

func (c *vkSurfaceCalls) destroySwapchain(sc vk.SwapchainKHR) {
	c.cmds.DestroySwapchainKHR(c.device, sc, nil)
}

func (c *vkSurfaceCalls) swapchainImages(sc vk.SwapchainKHR) ([]vk.Image, error) {
	var count uint32
	c.cmds.GetSwapchainImagesKHR(c.device, sc, &count, nil)
	if count == 0 {
		return nil, vkErr("vkGetSwapchainImagesKHR", vk.Incomplete)
	}
	images := make([]vk.Image, count)
	if result := c.cmds.GetSwapchainImagesKHR(c.device, sc, &count, &images[0]); result != vk.Success {
		return nil, vkErr("vkGetSwapchainImagesKHR", result)
	}
	return images[:count], nil
}

func (c *vkSurfaceCalls) createImageView(info *vk.ImageViewCreateInfo) (vk.ImageView, error) {
	var view vk.ImageView
	if result := c.cmds.CreateImageView(c.device, info, nil, &view); result != vk.Success {
		return 0, vkErr("vkCreateImageView", result)
	}
	return view, nil
}

func (c *vkSurfaceCalls) destroyImageView(v vk.ImageView) {
	c.cmds.DestroyImageView(c.device, v, nil)
}

func (c *vkSurfaceCalls) acquireNextImage(sc vk.SwapchainKHR, sem vk.Semaphore) (uint32, vk.Result) {
	var index uint32
	result := c.cmds.AcquireNextImageKHR(c.device, sc, ^uint64(0), sem, 0, &index)
	return index, result
}

func (c *vkSurfaceCalls) queuePresent(info *vk.PresentInfoKHR) vk.Result {
	return c.cmds.QueuePresentKHR(c.queue, info)
}
