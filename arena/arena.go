// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package arena provides reserved-virtual, commit-on-grow scratch
// containers used for per-frame allocation: a bump Arena for the native
// info structs a command encoder records, and a Deque for growable
// per-frame sequences (the present-order record) that must never
// reallocate out from under a live pointer.
//
// Both reserve a large contiguous span of address space up front with
// PROT_NONE and commit (mprotect to PROT_READ|PROT_WRITE) only the pages
// actually used, so a per-thread arena can be sized generously without
// paying for that size in resident memory. This mirrors the per-frame
// scratch containers of the thread this package's callers belong to: each
// is reset, not freed, at begin-of-frame.
package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pageSize is resolved once; it is almost always 4096 but reserving in
// whole pages is required for mprotect.
var pageSize = unix.Getpagesize()

func roundUpToPage(n int) int {
	p := pageSize
	return (n + p - 1) &^ (p - 1)
}

// Arena is a bump allocator over a reserved virtual range. It is not safe
// for concurrent use; callers keep one Arena per thread token.
type Arena struct {
	mem       []byte // full reservation, PROT_NONE beyond committed
	committed int    // bytes currently mapped PROT_READ|PROT_WRITE
	offset    int    // bump cursor, 0 <= offset <= committed
}

// New reserves `reserve` bytes of address space (rounded up to a whole
// number of pages) with no access rights. No physical memory is used
// until Alloc forces a grow.
func New(reserve int) (*Arena, error) {
	reserve = roundUpToPage(reserve)
	mem, err := unix.Mmap(-1, 0, reserve, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", reserve, err)
	}
	return &Arena{mem: mem}, nil
}

// Close releases the reservation. The arena must not be used afterward.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	err := unix.Munmap(a.mem)
	a.mem = nil
	return err
}

// grow commits additional pages so that at least `need` bytes beyond the
// current offset are mapped.
func (a *Arena) grow(need int) error {
	want := roundUpToPage(a.offset + need)
	if want <= a.committed {
		return nil
	}
	if want > len(a.mem) {
		return fmt.Errorf("arena: grow to %d bytes exceeds reservation of %d bytes", want, len(a.mem))
	}
	if err := unix.Mprotect(a.mem[a.committed:want], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("arena: commit pages: %w", err)
	}
	a.committed = want
	return nil
}

// Alloc returns size bytes aligned to align (a power of two), committing
// fresh pages if the current commitment is exhausted.
func (a *Arena) Alloc(size, align int) ([]byte, error) {
	aligned := (a.offset + align - 1) &^ (align - 1)
	if err := a.grow(aligned + size - a.offset); err != nil {
		return nil, err
	}
	out := a.mem[aligned : aligned+size : aligned+size]
	a.offset = aligned + size
	return out, nil
}

// Reset rewinds the bump cursor to zero without releasing committed
// pages, so the next frame's allocations reuse already-mapped memory.
// Called once per thread slot at begin-of-frame.
func (a *Arena) Reset() {
	a.offset = 0
}

// Used returns the number of bytes allocated since the last Reset.
func (a *Arena) Used() int { return a.offset }

// Committed returns the number of bytes currently backed by physical
// pages, for diagnostics.
func (a *Arena) Committed() int { return a.committed }
