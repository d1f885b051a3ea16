// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package arena

import "testing"

func TestArenaAllocAndReset(t *testing.T) {
	a, err := New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	buf, err := a.Alloc(128, 8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(buf) != 128 {
		t.Fatalf("len(buf) = %d, want 128", len(buf))
	}
	for i := range buf {
		buf[i] = byte(i)
	}
	if a.Used() != 128 {
		t.Fatalf("Used() = %d, want 128", a.Used())
	}

	a.Reset()
	if a.Used() != 0 {
		t.Fatalf("Used() after Reset = %d, want 0", a.Used())
	}
	committedBefore := a.Committed()

	buf2, err := a.Alloc(64, 8)
	if err != nil {
		t.Fatalf("Alloc after reset: %v", err)
	}
	if len(buf2) != 64 {
		t.Fatalf("len(buf2) = %d, want 64", len(buf2))
	}
	if a.Committed() != committedBefore {
		t.Fatalf("Committed() grew after reset-then-smaller-alloc: %d -> %d", committedBefore, a.Committed())
	}
}

func TestArenaAlignment(t *testing.T) {
	a, err := New(1 << 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, err := a.Alloc(3, 1); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	buf, err := a.Alloc(16, 16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	// The committed slice itself is page-aligned; verify the returned
	// sub-slice sits at an offset that is a multiple of 16 from the
	// arena's base by checking the bump cursor: offset 3 aligns up to 16,
	// and the 16-byte allocation ends at 32.
	if cap(buf) < 16 {
		t.Fatalf("buf too small")
	}
	if a.Used() != 32 {
		t.Fatalf("Used() = %d after a 16-aligned alloc at offset 3, want 32", a.Used())
	}
}

func TestArenaGrowBeyondReservationFails(t *testing.T) {
	a, err := New(pageSize)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, err := a.Alloc(pageSize*4, 8); err == nil {
		t.Fatalf("expected Alloc beyond reservation to fail")
	}
}

func TestAllocSlice(t *testing.T) {
	a, err := New(1 << 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	s, err := AllocSlice[uint64](a, 8)
	if err != nil {
		t.Fatalf("AllocSlice: %v", err)
	}
	if len(s) != 8 {
		t.Fatalf("len = %d, want 8", len(s))
	}
	for i := range s {
		if s[i] != 0 {
			t.Fatalf("s[%d] = %d, want zeroed memory", i, s[i])
		}
		s[i] = uint64(i)
	}

	// A reused region after Reset must come back zeroed.
	a.Reset()
	s2, err := AllocSlice[uint64](a, 8)
	if err != nil {
		t.Fatalf("AllocSlice after reset: %v", err)
	}
	for i := range s2 {
		if s2[i] != 0 {
			t.Fatalf("s2[%d] = %d, want zeroed memory", i, s2[i])
		}
	}

	if s3, err := AllocSlice[uint64](a, 0); err != nil || s3 != nil {
		t.Fatalf("zero-length AllocSlice = (%v, %v), want (nil, nil)", s3, err)
	}
}

func TestDequePushAndIterate(t *testing.T) {
	d, err := NewDeque[uint64](1024)
	if err != nil {
		t.Fatalf("NewDeque: %v", err)
	}
	defer d.Close()

	for i := uint64(0); i < 10; i++ {
		if err := d.PushBack(i * 7); err != nil {
			t.Fatalf("PushBack: %v", err)
		}
	}
	if d.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", d.Len())
	}

	var got []uint64
	d.ForEach(func(_ int, v uint64) { got = append(got, v) })
	for i, v := range got {
		if v != uint64(i)*7 {
			t.Fatalf("got[%d] = %d, want %d", i, v, uint64(i)*7)
		}
	}

	d.Reset()
	if d.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", d.Len())
	}
	if err := d.PushBack(42); err != nil {
		t.Fatalf("PushBack after reset: %v", err)
	}
	if d.At(0) != 42 {
		t.Fatalf("At(0) = %d, want 42", d.At(0))
	}
}
