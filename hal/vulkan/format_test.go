// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/types"
)

func TestToVkFormatKnownValues(t *testing.T) {
	tests := []struct {
		in   types.TextureFormat
		want vk.Format
	}{
		{types.TextureFormatRGBA8Unorm, vk.FormatR8g8b8a8Unorm},
		{types.TextureFormatBGRA8UnormSrgb, vk.FormatB8g8r8a8Srgb},
		{types.TextureFormatDepth32Float, vk.FormatD32Sfloat},
		{types.TextureFormatDepth24PlusStencil8, vk.FormatD24UnormS8Uint},
		{types.TextureFormatBC1RGBAUnorm, vk.FormatCompressedBlockBase},
	}
	for _, tt := range tests {
		got, err := toVkFormat(tt.in)
		if err != nil {
			t.Fatalf("toVkFormat(%d): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("toVkFormat(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for f := types.TextureFormatR8Unorm; f <= types.TextureFormatASTC12x12UnormSrgb; f++ {
		if f == types.TextureFormatDepth24Plus {
			// Promoted to 32-bit float depth; round-trips as Depth32Float.
			continue
		}
		native, err := toVkFormat(f)
		if err != nil {
			t.Fatalf("toVkFormat(%d): %v", f, err)
		}
		back, err := fromVkFormat(native)
		if err != nil {
			t.Fatalf("fromVkFormat(%d): %v", native, err)
		}
		if back != f {
			t.Errorf("round trip of format %d came back as %d", f, back)
		}
	}
}

func TestFromVkFormatRejectsUnknown(t *testing.T) {
	if _, err := fromVkFormat(vk.Format(9999999)); err == nil {
		t.Error("expected an error for an out-of-range compressed format")
	}
}

func TestFormatAspects(t *testing.T) {
	tests := []struct {
		format types.TextureFormat
		want   vk.ImageAspectFlags
	}{
		{types.TextureFormatRGBA8Unorm, vk.ImageAspectColorBit},
		{types.TextureFormatDepth32Float, vk.ImageAspectDepthBit},
		{types.TextureFormatStencil8, vk.ImageAspectStencilBit},
		{types.TextureFormatDepth24PlusStencil8, vk.ImageAspectDepthBit | vk.ImageAspectStencilBit},
	}
	for _, tt := range tests {
		if got := aspectFor(tt.format); got != tt.want {
			t.Errorf("aspectFor(%d) = %#x, want %#x", tt.format, got, tt.want)
		}
	}
}

func TestAspectForViewOverrides(t *testing.T) {
	f := types.TextureFormatDepth24PlusStencil8
	if got := aspectForView(types.TextureAspectDepthOnly, f); got != vk.ImageAspectDepthBit {
		t.Errorf("depth-only view aspect = %#x", got)
	}
	if got := aspectForView(types.TextureAspectStencilOnly, f); got != vk.ImageAspectStencilBit {
		t.Errorf("stencil-only view aspect = %#x", got)
	}
	if got := aspectForView(types.TextureAspectAll, f); got != vk.ImageAspectDepthBit|vk.ImageAspectStencilBit {
		t.Errorf("all-aspect view aspect = %#x", got)
	}
}
