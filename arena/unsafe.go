// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package arena

import "unsafe"

// sizeOf returns the in-memory size of a value of type T. T must not
// contain Go pointers (the deque is meant for flat scratch records such
// as transient-buffer descriptors, not values the garbage collector needs
// to trace into arena-backed memory).
func sizeOf[T any](zero T) int {
	return int(unsafe.Sizeof(zero))
}

func ptrOf(b []byte) unsafe.Pointer {
	return unsafe.Pointer(&b[0])
}

// unsafeSliceT reinterprets a raw byte buffer known to hold n contiguous
// values of T as a []T, without copying.
func unsafeSliceT[T any](raw []byte, n int) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}

// AllocSlice returns a zeroed []T of length n backed by arena memory,
// valid until the arena is reset. T must not contain Go pointers: the
// garbage collector does not scan arena-backed memory.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	var zero T
	raw, err := a.Alloc(sizeOf(zero)*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(raw)
	return unsafeSliceT[T](raw, n), nil
}
