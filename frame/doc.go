// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package frame implements the frame counter and thread token: a
// single atomic that gates begin_frame/end_frame pairing and
// selects which of the K in-flight per-frame records is live, plus a
// small fixed-capacity pool handing out thread tokens that key
// per-thread recording state.
//
// Everything Vulkan-specific that actually hangs off a frame index or
// thread token — destruction queues, command pools, transient buffers —
// lives in the vulkan package; this package only knows about the
// counter and the capability tokens it mints.
package frame
