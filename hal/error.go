package hal

import (
	"errors"
	"fmt"
)

// Common HAL errors representing unrecoverable GPU states.
var (
	// ErrDeviceOutOfMemory indicates the GPU has exhausted its memory.
	// This is unrecoverable - the application should reduce resource usage
	// or gracefully terminate.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the GPU device has been lost.
	// This can happen due to:
	//   - GPU driver crash or reset
	//   - GPU hardware disconnection
	//   - Driver timeout (TDR on Windows)
	// The device cannot be recovered and must be recreated.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrSurfaceLost indicates the rendering surface has been destroyed.
	// This typically happens when the window is closed.
	// The surface cannot be recovered - create a new one if needed.
	ErrSurfaceLost = errors.New("hal: surface lost")

	// ErrSurfaceOutdated indicates the surface configuration is stale.
	// This happens when:
	//   - Window was resized
	//   - Display mode changed
	//   - Surface pixel format changed
	// The swapchain has been torn down; acquire again with the current
	// window dimensions to rebuild it.
	ErrSurfaceOutdated = errors.New("hal: surface outdated")

	// ErrTimeout indicates an operation timed out.
	// This is typically returned by Wait operations.
	ErrTimeout = errors.New("hal: timeout")

	// ErrZeroArea indicates that both surface width and height must be
	// non-zero. Swapchain acquisition returns it when the window has zero
	// area — typically while minimized or not yet fully mapped. Retry the
	// acquire once the window has real dimensions.
	ErrZeroArea = errors.New("hal: surface width and height must be non-zero")

	// ErrDriverBug indicates the GPU driver returned an invalid or unexpected result
	// that violates the graphics API specification. This typically indicates a
	// driver bug rather than an application error.
	//
	// Known cases:
	//   - Intel Iris Xe: vkCreateGraphicsPipelines returns VK_SUCCESS but writes
	//     VK_NULL_HANDLE to pipeline output (Vulkan spec violation)
	//
	// The operation cannot be completed; updating the GPU driver is the
	// only known workaround.
	ErrDriverBug = errors.New("hal: driver bug detected (API spec violation)")
)

// DriverError reports a non-success result from a native API call. It
// unwraps to the sentinel classifying the failure when the result code
// maps to one (device lost, surface lost, memory exhausted), so both
// errors.Is against the sentinels and errors.As against *DriverError
// work on anything the backend returns.
type DriverError struct {
	Call string // native entry point, e.g. "vkCreateBuffer"
	Code int32  // raw result value as reported by the driver
	Err  error  // sentinel classification; nil for unclassified codes
}

// Error implements the error interface.
func (e *DriverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hal: %s: %v (result %d)", e.Call, e.Err, e.Code)
	}
	return fmt.Sprintf("hal: %s failed: result %d", e.Call, e.Code)
}

// Unwrap returns the sentinel this failure classifies as, if any.
func (e *DriverError) Unwrap() error { return e.Err }

// SurfaceError wraps a failure from the swapchain acquire/present path
// with the operation that produced it. It unwraps to the underlying
// cause, so the recoverable out-of-date condition is tested with
//
//	if errors.Is(err, hal.ErrSurfaceOutdated) { /* re-acquire */ }
type SurfaceError struct {
	Op  string // "acquire", "rebuild", "present"
	Err error  // sentinel or driver error underneath
}

// Error implements the error interface.
func (e *SurfaceError) Error() string {
	return fmt.Sprintf("hal: surface %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SurfaceError) Unwrap() error { return e.Err }

// IsDriverError returns true if any error in err's chain is a
// DriverError.
func IsDriverError(err error) bool {
	var de *DriverError
	return errors.As(err, &de)
}

// IsSurfaceError returns true if any error in err's chain is a
// SurfaceError.
func IsSurfaceError(err error) bool {
	var se *SurfaceError
	return errors.As(err, &se)
}
