// Package hal holds the pieces of the Vulkan hardware abstraction layer
// that sit below the device runtime and are shared by it and by package vk:
// structured logging (see Logger/SetLogger) and the sentinel error values
// that classify unrecoverable GPU states.
//
// Earlier revisions of this tree exposed a backend-agnostic Instance/
// Adapter/Device/Queue interface set so Vulkan, Metal, DX12 and GL could be
// swapped at runtime (see git history for hal/api.go and hal/resource.go).
// This module targets Vulkan only and replaces that indirection with the
// concrete handle-pool-based device runtime in package vulkan, so those
// interfaces and the per-backend registry they required were retired.
//
// # Error Handling
//
// hal's sentinel errors classify unrecoverable device states:
//
//   - ErrDeviceOutOfMemory - GPU memory exhausted
//   - ErrDeviceLost - GPU disconnected or driver reset
//   - ErrSurfaceLost - window destroyed or surface invalidated
//   - ErrSurfaceOutdated - window resized, needs reconfiguration
//   - ErrTimeout - a wait operation exceeded its deadline
//
// The structured types DriverError (a failing native call with its raw
// result code) and SurfaceError (an acquire/rebuild/present failure)
// wrap these: both implement Unwrap, so errors.Is against a sentinel
// works through them, and IsDriverError/IsSurfaceError answer "what kind
// of failure" via errors.As. Misuse of the API itself (incorrect call
// ordering, stale handles) is a programming error and panics with a
// typed payload rather than returning an error.
package hal
