// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/handle"
	"github.com/forge-gpu/forge/types"
)

func TestClampExtentHonorsFixedCurrentExtent(t *testing.T) {
	caps := vk.SurfaceCapabilitiesKHR{
		CurrentExtent:  vk.Extent2D{Width: 800, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	got := clampExtent(vk.Extent2D{Width: 1920, Height: 1080}, caps)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("clampExtent = %dx%d, want the surface's fixed 800x600", got.Width, got.Height)
	}
}

func TestClampExtentClampsFlexibleSurfaces(t *testing.T) {
	caps := vk.SurfaceCapabilitiesKHR{
		CurrentExtent:  vk.Extent2D{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 2048, Height: 2048},
	}
	tests := []struct {
		req  vk.Extent2D
		want vk.Extent2D
	}{
		{vk.Extent2D{Width: 1920, Height: 1080}, vk.Extent2D{Width: 1920, Height: 1080}},
		{vk.Extent2D{Width: 16, Height: 16}, vk.Extent2D{Width: 64, Height: 64}},
		{vk.Extent2D{Width: 8192, Height: 8192}, vk.Extent2D{Width: 2048, Height: 2048}},
	}
	for _, tt := range tests {
		if got := clampExtent(tt.req, caps); got != tt.want {
			t.Errorf("clampExtent(%v) = %v, want %v", tt.req, got, tt.want)
		}
	}
}

func TestConfiguratorChoiceValidation(t *testing.T) {
	formats := []vk.SurfaceFormatKHR{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinearKhr},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinearKhr},
	}
	if !surfaceFormatSupported(formats[1], formats) {
		t.Error("a listed surface format should validate")
	}
	if surfaceFormatSupported(vk.SurfaceFormatKHR{Format: vk.FormatR8Unorm}, formats) {
		t.Error("an unlisted surface format should not validate")
	}

	modes := []vk.PresentModeKHR{vk.PresentModeFifoKhr}
	if !presentModeSupported(vk.PresentModeFifoKhr, modes) {
		t.Error("a listed present mode should validate")
	}
	if presentModeSupported(vk.PresentModeKHR(42), modes) {
		t.Error("an unlisted present mode should not validate")
	}
}

// fakeSemaphores implements semaphoreSource with counted handles.
type fakeSemaphores struct {
	next     vk.Semaphore
	released []vk.Semaphore
}

func (f *fakeSemaphores) acquire() (vk.Semaphore, error) {
	f.next++
	return f.next, nil
}

func (f *fakeSemaphores) release(s vk.Semaphore) { f.released = append(f.released, s) }

// fakeSurfaceCalls implements surfaceCalls against no driver at all:
// handles are counters, and the acquire result can be scripted per call
// to simulate the window system invalidating the swapchain.
type fakeSurfaceCalls struct {
	imageCount uint32
	nextHandle uint64

	acquireResults []vk.Result // consumed per acquireNextImage; empty means Success

	destroyedSwapchains []vk.SwapchainKHR
	destroyedViews      []vk.ImageView
	destroyedSurfaces   []vk.SurfaceKHR
	presents            int
}

func (f *fakeSurfaceCalls) handle() uint64 {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeSurfaceCalls) createSurface(Window) (vk.SurfaceKHR, error) {
	return vk.SurfaceKHR(f.handle()), nil
}

func (f *fakeSurfaceCalls) destroySurface(s vk.SurfaceKHR) {
	f.destroyedSurfaces = append(f.destroyedSurfaces, s)
}

func (f *fakeSurfaceCalls) surfaceCapabilities(vk.SurfaceKHR) (vk.SurfaceCapabilitiesKHR, error) {
	return vk.SurfaceCapabilitiesKHR{
		MinImageCount:       2,
		CurrentExtent:       vk.Extent2D{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF},
		MinImageExtent:      vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent:      vk.Extent2D{Width: 8192, Height: 8192},
		SupportedUsageFlags: vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit,
	}, nil
}

func (f *fakeSurfaceCalls) surfaceFormats(vk.SurfaceKHR) ([]vk.SurfaceFormatKHR, error) {
	return []vk.SurfaceFormatKHR{{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinearKhr}}, nil
}

func (f *fakeSurfaceCalls) surfacePresentModes(vk.SurfaceKHR) ([]vk.PresentModeKHR, error) {
	return []vk.PresentModeKHR{vk.PresentModeFifoKhr}, nil
}

func (f *fakeSurfaceCalls) createSwapchain(*vk.SwapchainCreateInfoKHR) (vk.SwapchainKHR, error) {
	return vk.SwapchainKHR(f.handle()), nil
}

func (f *fakeSurfaceCalls) destroySwapchain(sc vk.SwapchainKHR) {
	f.destroyedSwapchains = append(f.destroyedSwapchains, sc)
}

func (f *fakeSurfaceCalls) swapchainImages(vk.SwapchainKHR) ([]vk.Image, error) {
	images := make([]vk.Image, f.imageCount)
	for i := range images {
		images[i] = vk.Image(f.handle())
	}
	return images, nil
}

func (f *fakeSurfaceCalls) createImageView(*vk.ImageViewCreateInfo) (vk.ImageView, error) {
	return vk.ImageView(f.handle()), nil
}

func (f *fakeSurfaceCalls) destroyImageView(v vk.ImageView) {
	f.destroyedViews = append(f.destroyedViews, v)
}

func (f *fakeSurfaceCalls) acquireNextImage(vk.SwapchainKHR, vk.Semaphore) (uint32, vk.Result) {
	if len(f.acquireResults) > 0 {
		r := f.acquireResults[0]
		f.acquireResults = f.acquireResults[1:]
		return 0, r
	}
	return 0, vk.Success
}

func (f *fakeSurfaceCalls) queuePresent(info *vk.PresentInfoKHR) vk.Result {
	f.presents++
	results := unsafeResults(info)
	for i := range results {
		results[i] = vk.Success
	}
	return vk.Success
}

// unsafeResults views the per-swapchain result array a present batch
// carries.
func unsafeResults(info *vk.PresentInfoKHR) []vk.Result {
	if info.PResults == nil || info.SwapchainCount == 0 {
		return nil
	}
	return unsafe.Slice(info.PResults, info.SwapchainCount)
}

// fifoConfigurator picks the first supported format and present mode.
type fifoConfigurator struct{}

func (fifoConfigurator) ChoosePresentMode(supported []vk.PresentModeKHR) vk.PresentModeKHR {
	return supported[0]
}

func (fifoConfigurator) ChooseSurfaceFormat(supported []vk.SurfaceFormatKHR) vk.SurfaceFormatKHR {
	return supported[0]
}

func testSwapchainManager(t *testing.T, calls *fakeSurfaceCalls) (*swapchainManager, *fakeSemaphores, *handle.Pool[imageRecord]) {
	t.Helper()
	sems := &fakeSemaphores{}
	images := handle.New[imageRecord](8)
	m, err := newSwapchainManager(calls, sems, images)
	if err != nil {
		t.Fatalf("newSwapchainManager: %v", err)
	}
	return m, sems, images
}

// TestSwapchainOutOfDateReacquire drives the acquire state machine
// through an out-of-date report: the swapchain must tear down to Vacant
// with its handles detached, surface a hal.ErrSurfaceOutdated-classified
// error, and the next acquire with the same dimensions must rebuild and
// hand back a fresh, valid image set.
func TestSwapchainOutOfDateReacquire(t *testing.T) {
	calls := &fakeSurfaceCalls{imageCount: 3}
	m, _, images := testSwapchainManager(t, calls)

	var win Window
	cfg := fifoConfigurator{}

	w, h, img, err := m.acquire(win, 800, 600, cfg)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if w != 800 || h != 600 {
		t.Fatalf("first acquire returned %dx%d, want 800x600", w, h)
	}
	if !images.Contains(handle.Handle(img)) {
		t.Fatal("first acquire returned a handle not present in the image pool")
	}
	firstSet := append([]types.TextureHandle(nil), m.windows[win].handles...)
	firstChain := m.windows[win].native

	// End the frame so the window can be acquired again.
	if err := m.present(newFrameRecord()); err != nil {
		t.Fatalf("present: %v", err)
	}

	calls.acquireResults = []vk.Result{vk.ErrorOutOfDateKhr}
	_, _, _, err = m.acquire(win, 800, 600, cfg)
	if !errors.Is(err, hal.ErrSurfaceOutdated) {
		t.Fatalf("out-of-date acquire returned %v, want hal.ErrSurfaceOutdated in the chain", err)
	}
	if !hal.IsSurfaceError(err) {
		t.Error("out-of-date acquire should surface a hal.SurfaceError")
	}
	if m.windows[win].state != swapchainVacant {
		t.Error("out-of-date acquire should leave the window Vacant")
	}
	for _, old := range firstSet {
		if images.Contains(handle.Handle(old)) {
			t.Error("retired swapchain handles must be detached from the image pool")
		}
	}

	// Re-acquire with the same dimensions: Vacant -> Occupied with a new,
	// valid image set distinct from the retired one.
	w, h, img2, err := m.acquire(win, 800, 600, cfg)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	if w != 800 || h != 600 {
		t.Fatalf("re-acquire returned %dx%d, want 800x600", w, h)
	}
	if m.windows[win].state != swapchainOccupied {
		t.Error("re-acquire should leave the window Occupied")
	}
	if !images.Contains(handle.Handle(img2)) {
		t.Fatal("re-acquire returned a handle not present in the image pool")
	}
	for _, old := range firstSet {
		for _, now := range m.windows[win].handles {
			if old == now {
				t.Error("re-acquire reused a handle from the retired image set")
			}
		}
	}

	// The retired swapchain is destroyed once nothing in flight
	// references it: after the TTL drains, deferred teardown runs.
	for i := 0; i < semaphoreRecycleTTL; i++ {
		m.beginFrame()
	}
	found := false
	for _, sc := range calls.destroyedSwapchains {
		if sc == firstChain {
			found = true
		}
	}
	if !found {
		t.Error("the retired swapchain was never destroyed after its recycle entries drained")
	}
}

// TestSwapchainPresentRecyclesAcquireSemaphores checks the split recycle
// paths: a presented window's acquire semaphore rides the frame record's
// recycled queue (reusable once the frame retires), while the release
// semaphore ages through the TTL list.
func TestSwapchainPresentRecyclesAcquireSemaphores(t *testing.T) {
	calls := &fakeSurfaceCalls{imageCount: 2}
	m, sems, _ := testSwapchainManager(t, calls)

	var win Window
	if _, _, _, err := m.acquire(win, 640, 480, fifoConfigurator{}); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	acquireSem := m.windows[win].acquireSemaphore

	release, err := m.newReleaseSemaphore()
	if err != nil {
		t.Fatal(err)
	}
	m.setReleaseSemaphore(win, release)

	fr := newFrameRecord()
	if err := m.present(fr); err != nil {
		t.Fatalf("present: %v", err)
	}
	if calls.presents != 1 {
		t.Fatalf("present issued %d batches, want 1", calls.presents)
	}

	var frameRecycled []vk.Semaphore
	fr.recycledSemaphores.drain(func(s vk.Semaphore) { frameRecycled = append(frameRecycled, s) })
	if len(frameRecycled) != 1 || frameRecycled[0] != acquireSem {
		t.Errorf("frame record recycled %v, want the acquire semaphore %d", frameRecycled, acquireSem)
	}

	// The release semaphore comes back only after its TTL expires.
	for i := 0; i < semaphoreRecycleTTL; i++ {
		m.beginFrame()
	}
	found := false
	for _, s := range sems.released {
		if s == release {
			found = true
		}
	}
	if !found {
		t.Error("the release semaphore never aged back into the device-wide pool")
	}
}
