// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import "sync"

// ThreadToken is the capability a recording thread holds for the
// duration of its use of the device: it indexes the per-thread record
// (command pool cursor, descriptor pool, transient allocator, arena)
// the vulkan package keeps for it.
type ThreadToken struct {
	index uint32
}

// Index returns the token's slot index, stable for as long as the token
// is held.
func (t ThreadToken) Index() uint32 { return t.index }

// ThreadTokenPool hands out a small, fixed number of thread tokens. A
// token is freelist-recycled the way the handle pool recycles slots,
// but carries no generation: once released, its index is simply
// available for reuse by the next Acquire.
type ThreadTokenPool struct {
	mu   sync.Mutex
	free []uint32
	next uint32
	cap  uint32
}

// NewThreadTokenPool constructs a pool capable of handing out up to
// capacity concurrently-held tokens.
func NewThreadTokenPool(capacity uint32) *ThreadTokenPool {
	return &ThreadTokenPool{cap: capacity}
}

// Acquire reserves a token, or reports false if the pool is exhausted.
func (p *ThreadTokenPool) Acquire() (ThreadToken, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return ThreadToken{index: idx}, true
	}
	if p.next >= p.cap {
		return ThreadToken{}, false
	}
	idx := p.next
	p.next++
	return ThreadToken{index: idx}, true
}

// Release returns a token to the pool for reuse.
func (p *ThreadTokenPool) Release(t ThreadToken) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, t.index)
}

// Capacity returns the maximum number of tokens this pool can have
// outstanding at once.
func (p *ThreadTokenPool) Capacity() uint32 { return p.cap }
