//go:build linux

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// platformSurfaceExtension returns the Linux surface extension to request
// at instance creation. The swapchain manager falls back across whatever
// the driver actually loaded at surface-creation time via the
// HasCreate*SurfaceKHR capability checks, so this only needs to pick a
// reasonable default for the session's display server.
func platformSurfaceExtension() string {
	if isWayland() {
		return "VK_KHR_wayland_surface\x00"
	}
	return "VK_KHR_xcb_surface\x00"
}

// isWayland returns true if the session is running under Wayland.
func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// windowKind distinguishes the display servers a raw window identifier
// can come from.
type windowKind int

const (
	windowKindXlib windowKind = iota
	windowKindXcb
	windowKindWayland
)

// Window is a raw window identifier handed in by the windowing layer,
// which this package treats purely as an opaque key plus the values
// surface creation needs: Xcb {connection, window}, Xlib {display,
// window}, or Wayland {display, surface}. It is comparable and usable as
// a map key.
type Window struct {
	kind    windowKind
	display uintptr // Xlib Display*, Xcb connection, or Wayland wl_display*
	window  uintptr // Xlib Window, Xcb xcb_window_t, or Wayland wl_surface*
}

// NewXlibWindow wraps an Xlib Display* and Window pair.
func NewXlibWindow(display uintptr, window uintptr) Window {
	return Window{kind: windowKindXlib, display: display, window: window}
}

// NewXcbWindow wraps an xcb_connection_t* and xcb_window_t pair.
func NewXcbWindow(connection uintptr, window uint32) Window {
	return Window{kind: windowKindXcb, display: connection, window: uintptr(window)}
}

// NewWaylandWindow wraps a wl_display* and wl_surface* pair.
func NewWaylandWindow(display uintptr, surface uintptr) Window {
	return Window{kind: windowKindWayland, display: display, window: surface}
}

// createSurface creates a vk.SurfaceKHR from a display-server-specific
// window identifier, trying the extension the driver actually exposes.
// An identifier whose native extension is unavailable falls through to
// whichever X11 surface extension the driver did load, since Xlib and Xcb
// identifiers describe the same connection/window pair.
func createSurface(cmds *vk.Commands, instance vk.Instance, w Window) (vk.SurfaceKHR, error) {
	switch w.kind {
	case windowKindWayland:
		if cmds.HasCreateWaylandSurfaceKHR() {
			return createWaylandSurface(cmds, instance, w.display, w.window)
		}
	case windowKindXcb:
		if cmds.HasCreateXcbSurfaceKHR() {
			return createXcbSurface(cmds, instance, w.display, uint32(w.window))
		}
	case windowKindXlib:
		if cmds.HasCreateXlibSurfaceKHR() {
			return createXlibSurface(cmds, instance, w.display, w.window)
		}
	}
	if cmds.HasCreateXcbSurfaceKHR() {
		return createXcbSurface(cmds, instance, w.display, uint32(w.window))
	}
	if cmds.HasCreateXlibSurfaceKHR() {
		return createXlibSurface(cmds, instance, w.display, w.window)
	}
	if cmds.HasCreateWaylandSurfaceKHR() {
		return createWaylandSurface(cmds, instance, w.display, w.window)
	}
	return 0, fmt.Errorf("vulkan: no surface creation extension available (need VK_KHR_xlib_surface, VK_KHR_xcb_surface or VK_KHR_wayland_surface)")
}

// createXlibSurface creates an X11 surface via VK_KHR_xlib_surface.
func createXlibSurface(cmds *vk.Commands, instance vk.Instance, display, window uintptr) (vk.SurfaceKHR, error) {
	createInfo := vk.XlibSurfaceCreateInfoKHR{
		SType:  vk.StructureTypeXlibSurfaceCreateInfoKhr,
		Window: vk.XlibWindow(window),
	}
	// Dpy holds a raw C Display* value; go vet rejects unsafe.Pointer(uintptr)
	// directly, so write through the field's address instead.
	*(*uintptr)(unsafe.Pointer(&createInfo.Dpy)) = display

	var surface vk.SurfaceKHR
	result := cmds.CreateXlibSurfaceKHR(instance, &createInfo, nil, &surface)
	if result != vk.Success {
		return 0, vkErr("vkCreateXlibSurfaceKHR", result)
	}
	if surface == 0 {
		return 0, fmt.Errorf("vulkan: vkCreateXlibSurfaceKHR returned success but surface is null")
	}
	return surface, nil
}

// createXcbSurface creates an X11 surface via VK_KHR_xcb_surface.
func createXcbSurface(cmds *vk.Commands, instance vk.Instance, connection uintptr, window uint32) (vk.SurfaceKHR, error) {
	createInfo := vk.XcbSurfaceCreateInfoKHR{
		SType:      vk.StructureTypeXcbSurfaceCreateInfoKhr,
		Connection: connection,
		Window:     vk.XcbWindow(window),
	}

	var surface vk.SurfaceKHR
	result := cmds.CreateXcbSurfaceKHR(instance, &createInfo, nil, &surface)
	if result != vk.Success {
		return 0, vkErr("vkCreateXcbSurfaceKHR", result)
	}
	if surface == 0 {
		return 0, fmt.Errorf("vulkan: vkCreateXcbSurfaceKHR returned success but surface is null")
	}
	return surface, nil
}

// createWaylandSurface creates a Wayland surface via VK_KHR_wayland_surface.
func createWaylandSurface(cmds *vk.Commands, instance vk.Instance, display, surfaceHandle uintptr) (vk.SurfaceKHR, error) {
	createInfo := vk.WaylandSurfaceCreateInfoKHR{
		SType: vk.StructureTypeWaylandSurfaceCreateInfoKhr,
	}
	// Display/Surface hold raw wl_display*/wl_surface* values, both Go
	// pointer-shaped fields that must carry a foreign C pointer.
	*(*uintptr)(unsafe.Pointer(&createInfo.Display)) = display
	*(*uintptr)(unsafe.Pointer(&createInfo.Surface)) = surfaceHandle

	var surface vk.SurfaceKHR
	result := cmds.CreateWaylandSurfaceKHR(instance, &createInfo, nil, &surface)
	if result != vk.Success {
		return 0, vkErr("vkCreateWaylandSurfaceKHR", result)
	}
	if surface == 0 {
		return 0, fmt.Errorf("vulkan: vkCreateWaylandSurfaceKHR returned success but surface is null")
	}
	return surface, nil
}
