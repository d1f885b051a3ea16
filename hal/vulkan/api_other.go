//go:build !linux

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// Window is the raw window identifier the windowing layer hands in. Only
// the Linux display servers (Xlib, Xcb, Wayland) have a surface path in
// this module; on other platforms the type exists so the package
// compiles, but surface creation always fails.
type Window struct {
	kind    int
	display uintptr
	window  uintptr
}

func platformSurfaceExtension() string {
	return "VK_KHR_surface\x00"
}

func createSurface(_ *vk.Commands, _ vk.Instance, _ Window) (vk.SurfaceKHR, error) {
	return 0, fmt.Errorf("vulkan: surface creation is not implemented on this platform")
}
