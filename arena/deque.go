// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package arena

import "fmt"

// Deque is a growable double-ended queue of fixed-size elements, backed by
// its own virtual reservation so that repeated per-frame growth never
// triggers a Go slice reallocation (and the copy that implies) once the
// working set's high-water mark has been committed once.
//
// Deque is intentionally simple: push at the back, iterate, reset. It
// backs the swapchain manager's per-frame present-order record. Elements
// must not contain Go pointers; the garbage collector does not scan the
// backing reservation.
type Deque[T any] struct {
	arena    *Arena
	elemSize int
	len      int
}

// NewDeque reserves capacity for up to maxElems elements of T.
func NewDeque[T any](maxElems int) (*Deque[T], error) {
	var zero T
	elemSize := sizeOf(zero)
	a, err := New(elemSize * maxElems)
	if err != nil {
		return nil, fmt.Errorf("deque: %w", err)
	}
	return &Deque[T]{arena: a, elemSize: elemSize}, nil
}

// Close releases the backing reservation.
func (d *Deque[T]) Close() error { return d.arena.Close() }

// slice views the deque's committed elements as a Go slice without
// copying, valid until the next PushBack grows the backing arena.
func (d *Deque[T]) slice() []T {
	if d.len == 0 {
		return nil
	}
	raw := d.arena.mem[:d.elemSize*d.len]
	return unsafeSliceT[T](raw, d.len)
}

// PushBack appends v, growing the backing commitment if needed.
func (d *Deque[T]) PushBack(v T) error {
	// Elements are packed at i*elemSize from the page-aligned base, which
	// keeps each one aligned for T and matches the layout slice() views.
	buf, err := d.arena.Alloc(d.elemSize, 1)
	if err != nil {
		return fmt.Errorf("deque: push: %w", err)
	}
	*(*T)(ptrOf(buf)) = v
	d.len++
	return nil
}

// At returns the i-th element in push order.
func (d *Deque[T]) At(i int) T {
	return d.slice()[i]
}

// Len returns the number of elements currently pushed since the last
// Reset.
func (d *Deque[T]) Len() int { return d.len }

// ForEach visits every element in push order.
func (d *Deque[T]) ForEach(fn func(int, T)) {
	s := d.slice()
	for i, v := range s {
		fn(i, v)
	}
}

// Reset empties the deque without releasing committed pages, ready for
// the next frame's use.
func (d *Deque[T]) Reset() {
	d.len = 0
	d.arena.Reset()
}
