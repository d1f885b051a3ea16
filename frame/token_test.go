// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frame

import "testing"

func TestThreadTokenPoolAcquireExhausts(t *testing.T) {
	p := NewThreadTokenPool(2)
	a, ok := p.Acquire()
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}
	b, ok := p.Acquire()
	if !ok {
		t.Fatal("expected second acquire to succeed")
	}
	if a.Index() == b.Index() {
		t.Error("distinct tokens should have distinct indices")
	}
	if _, ok := p.Acquire(); ok {
		t.Error("expected pool to be exhausted at capacity")
	}
}

func TestThreadTokenPoolReleaseRecycles(t *testing.T) {
	p := NewThreadTokenPool(1)
	a, _ := p.Acquire()
	p.Release(a)

	b, ok := p.Acquire()
	if !ok {
		t.Fatal("expected acquire to succeed after release")
	}
	if b.Index() != a.Index() {
		t.Errorf("released index %d should be reused, got %d", a.Index(), b.Index())
	}
}

func TestThreadTokenPoolCapacity(t *testing.T) {
	p := NewThreadTokenPool(5)
	if p.Capacity() != 5 {
		t.Errorf("Capacity() = %d, want 5", p.Capacity())
	}
}
