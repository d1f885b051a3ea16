// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import "testing"

func TestWindowIdentityIsComparable(t *testing.T) {
	a := NewXcbWindow(0x1000, 7)
	b := NewXcbWindow(0x1000, 7)
	c := NewXlibWindow(0x1000, 7)
	if a != b {
		t.Error("identical Xcb identifiers should compare equal")
	}
	if a == c {
		t.Error("identifiers from different display servers should differ")
	}
}

func TestPlatformSurfaceExtensionIsNulTerminated(t *testing.T) {
	ext := platformSurfaceExtension()
	if len(ext) == 0 || ext[len(ext)-1] != 0 {
		t.Errorf("platformSurfaceExtension() = %q, want a NUL-terminated C string", ext)
	}
}
