// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import "sync/atomic"

// DefaultFramesInFlight is the number of per-frame records a device
// cycles through: deep enough to keep the GPU fed while the CPU records
// the next frame, shallow enough to bound latency and memory.
const DefaultFramesInFlight = 2

// Counter is a single atomic usize gating begin_frame/end_frame pairing.
// Even state means no frame is currently acquired; odd means one is.
// The zero value is not usable; construct with NewCounter.
type Counter struct {
	state atomic.Uint64
	k     uint32
}

// NewCounter constructs a frame counter cycling through framesInFlight
// per-frame record slots. framesInFlight must be at least 1.
func NewCounter(framesInFlight uint32) *Counter {
	if framesInFlight == 0 {
		panicMisuse("new_counter", "framesInFlight must be at least 1")
	}
	return &Counter{k: framesInFlight}
}

// Token is the capability returned by Begin: operations scoped to a
// single frame take a Token as proof that a frame is currently acquired.
type Token struct {
	counter *Counter
	value   uint64
	index   uint32
}

// Index returns which of the K per-frame records this frame selects.
func (t Token) Index() uint32 { return t.index }

// Begin acquires a new frame, panicking if a frame is already acquired
// on this counter (begin_frame called twice without an intervening
// end_frame).
func (c *Counter) Begin() Token {
	v := c.state.Add(1)
	if (v-1)&1 != 0 {
		panicMisuse("begin_frame", "called while a frame is already acquired")
	}
	return Token{
		counter: c,
		value:   v,
		index:   uint32((v >> 1) % uint64(c.k)),
	}
}

// End releases the frame acquired by the matching Begin. It panics if no
// frame is acquired, or if t is not the token for the currently acquired
// frame (a stale or foreign token).
func (c *Counter) End(t Token) {
	if t.counter != c {
		panicMisuse("end_frame", "token does not belong to this counter")
	}
	if c.state.Load() != t.value {
		panicMisuse("end_frame", "token is stale")
	}
	v := c.state.Add(1)
	if (v-1)&1 != 1 {
		panicMisuse("end_frame", "called without a matching begin_frame")
	}
}

// FramesInFlight returns K, the configured per-frame record count.
func (c *Counter) FramesInFlight() uint32 { return c.k }
