// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package memory implements the device memory service: memory type
// selection, super-block allocation from vkAllocateMemory, and
// per-(memory-type, tiling-class) TLSF instances that sub-allocate those
// super-blocks for buffer and image placement.
//
// Super-blocks are large (256 MiB by default, clamped on small heaps) so
// that individual resource creation almost never touches the driver;
// freeing is deferred sub-allocation bookkeeping, and entirely empty
// super-blocks are handed back to the driver in a begin-of-frame sweep.
package memory
