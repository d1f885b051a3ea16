// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/forge-gpu/forge/hal"
	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

// vkErr wraps a failing native call as a hal.DriverError, classifying
// the result codes callers branch on so errors.Is works against the hal
// sentinels.
func vkErr(call string, result vk.Result) error {
	var sentinel error
	switch result {
	case vk.ErrorDeviceLost:
		sentinel = hal.ErrDeviceLost
	case vk.ErrorSurfaceLostKhr:
		sentinel = hal.ErrSurfaceLost
	case vk.ErrorOutOfDeviceMemory, vk.ErrorOutOfHostMemory:
		sentinel = hal.ErrDeviceOutOfMemory
	}
	return &hal.DriverError{Call: call, Code: int32(result), Err: sentinel}
}

// programmingError is the panic payload for violated API invariants
// (unbalanced maps, stale handles on non-destroy paths, double acquire
// of a window). It implements error so a recovering test can assert the
// class of the failure without matching message text.
type programmingError struct {
	op  string
	msg string
}

func (e *programmingError) Error() string { return "vulkan: " + e.op + ": " + e.msg }

func panicMisuse(op, msg string) {
	panic(&programmingError{op: op, msg: msg})
}

func panicMisusef(op, format string, args ...any) {
	panic(&programmingError{op: op, msg: fmt.Sprintf(format, args...)})
}
