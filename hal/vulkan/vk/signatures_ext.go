// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// The handful of call shapes signatures.go's ~60-signature table doesn't
// already cover, needed by the commands this module actually calls
// (timeline-semaphore waits, push constants, blits).
var (
	// VkResult(handle, ptr, u64) - vkWaitSemaphores
	SigResultHandlePtrU64 types.CallInterface

	// void(handle, handle, u32, u32, u32, ptr) - vkCmdPushConstants
	SigVoidCmdPushConstants types.CallInterface

	// void(handle, handle, u32, handle, u32, u32, ptr, u32) - vkCmdBlitImage
	SigVoidCmdBlitImage types.CallInterface
)

func initCoreSignatures() error {
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	resultRet := types.SInt32TypeDescriptor

	if err := ffi.PrepareCallInterface(&SigResultHandlePtrU64, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, ptr, u64}); err != nil {
		return err
	}
	if err := ffi.PrepareCallInterface(&SigVoidCmdPushConstants, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u64, u32, u32, u32, ptr}); err != nil {
		return err
	}
	if err := ffi.PrepareCallInterface(&SigVoidCmdBlitImage, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u64, u32, u64, u32, u32, ptr, u32}); err != nil {
		return err
	}
	return nil
}
