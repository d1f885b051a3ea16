// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides Pure Go Vulkan 1.3-class bindings over goffi, the
// pure-Go libffi-equivalent used throughout this module for calling into
// the platform Vulkan loader without CGO.
//
// Unlike a full vk.xml-generated binding, this package carries only the
// handles, structs, enums and commands the device runtime in package
// vulkan actually calls: instance/device bootstrap, memory, buffers,
// images, descriptors, pipelines, command buffers, sync2 barriers,
// timeline semaphores, dynamic rendering, swapchains (Xlib/Xcb/Wayland),
// and debug-utils. core.go defines the types; commands_wrap.go defines
// typed wrapper methods on *Commands; signatures.go/signatures_ext.go
// define the goffi CallInterface shapes those wrappers dispatch through.
//
// # Usage
//
//	if err := vk.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
//	cmds := vk.NewCommands()
//	cmds.LoadGlobal()
//	// ... vkCreateInstance via cmds.CreateInstance ...
//	cmds.LoadInstance(instance)
//	// ... vkCreateDevice ...
//	cmds.LoadDevice(device)
//
// # Platform support
//
//   - Linux: libvulkan.so.1
//   - Windows: vulkan-1.dll
//   - macOS: libvulkan.dylib
package vk
