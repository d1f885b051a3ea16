// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/types"
)

// formatTable covers every non-compressed types.TextureFormat this binding
// has a vk.Format constant for. The compressed range (BC/ETC2/EAC/ASTC) is
// handled separately in toVkFormat/fromVkFormat: both enums keep that range
// contiguous and in the same relative order, so it collapses to one offset
// add instead of 52 more table entries.
var formatTable = map[types.TextureFormat]vk.Format{
	types.TextureFormatUndefined: vk.FormatUndefined,

	types.TextureFormatR8Unorm: vk.FormatR8Unorm,
	types.TextureFormatR8Snorm: vk.FormatR8Snorm,
	types.TextureFormatR8Uint:  vk.FormatR8Uint,
	types.TextureFormatR8Sint:  vk.FormatR8Sint,

	types.TextureFormatR16Uint:  vk.FormatR16Uint,
	types.TextureFormatR16Sint:  vk.FormatR16Sint,
	types.TextureFormatR16Float: vk.FormatR16Sfloat,
	types.TextureFormatRG8Unorm: vk.FormatR8g8Unorm,
	types.TextureFormatRG8Snorm: vk.FormatR8g8Snorm,
	types.TextureFormatRG8Uint:  vk.FormatR8g8Uint,
	types.TextureFormatRG8Sint:  vk.FormatR8g8Sint,

	types.TextureFormatR32Uint:        vk.FormatR32Uint,
	types.TextureFormatR32Sint:        vk.FormatR32Sint,
	types.TextureFormatR32Float:       vk.FormatR32Sfloat,
	types.TextureFormatRG16Uint:       vk.FormatR16g16Uint,
	types.TextureFormatRG16Sint:       vk.FormatR16g16Sint,
	types.TextureFormatRG16Float:      vk.FormatR16g16Sfloat,
	types.TextureFormatRGBA8Unorm:     vk.FormatR8g8b8a8Unorm,
	types.TextureFormatRGBA8UnormSrgb: vk.FormatR8g8b8a8Srgb,
	types.TextureFormatRGBA8Snorm:     vk.FormatR8g8b8a8Snorm,
	types.TextureFormatRGBA8Uint:      vk.FormatR8g8b8a8Uint,
	types.TextureFormatRGBA8Sint:      vk.FormatR8g8b8a8Sint,
	types.TextureFormatBGRA8Unorm:     vk.FormatB8g8r8a8Unorm,
	types.TextureFormatBGRA8UnormSrgb: vk.FormatB8g8r8a8Srgb,

	types.TextureFormatRGB9E5Ufloat:  vk.FormatE5b9g9r9UfloatPack32,
	types.TextureFormatRGB10A2Uint:   vk.FormatA2b10g10r10UintPack32,
	types.TextureFormatRGB10A2Unorm:  vk.FormatA2b10g10r10UnormPack32,
	types.TextureFormatRG11B10Ufloat: vk.FormatB10g11r11UfloatPack32,

	types.TextureFormatRG32Uint:    vk.FormatR32g32Uint,
	types.TextureFormatRG32Sint:    vk.FormatR32g32Sint,
	types.TextureFormatRG32Float:   vk.FormatR32g32Sfloat,
	types.TextureFormatRGBA16Uint:  vk.FormatR16g16b16a16Uint,
	types.TextureFormatRGBA16Sint:  vk.FormatR16g16b16a16Sint,
	types.TextureFormatRGBA16Float: vk.FormatR16g16b16a16Sfloat,

	types.TextureFormatRGBA32Uint:  vk.FormatR32g32b32a32Uint,
	types.TextureFormatRGBA32Sint:  vk.FormatR32g32b32a32Sint,
	types.TextureFormatRGBA32Float: vk.FormatR32g32b32a32Sfloat,

	types.TextureFormatStencil8:             vk.FormatS8Uint,
	types.TextureFormatDepth16Unorm:         vk.FormatD16Unorm,
	types.TextureFormatDepth24Plus:          vk.FormatD32Sfloat, // no 24-bit-only depth format is mandatory; promote to 32-bit float
	types.TextureFormatDepth24PlusStencil8:  vk.FormatD24UnormS8Uint,
	types.TextureFormatDepth32Float:         vk.FormatD32Sfloat,
	types.TextureFormatDepth32FloatStencil8: vk.FormatD32SfloatS8Uint,
}

var vkFormatTable = func() map[vk.Format]types.TextureFormat {
	m := make(map[vk.Format]types.TextureFormat, len(formatTable))
	for tf, f := range formatTable {
		// Depth24Plus and Depth32Float both map to FormatD32Sfloat; keep
		// the round-trip preferring Depth32Float, the more specific name.
		if existing, ok := m[f]; ok && existing == types.TextureFormatDepth32Float {
			continue
		}
		m[f] = tf
	}
	return m
}()

// toVkFormat converts a texture format to its native Vulkan equivalent.
func toVkFormat(f types.TextureFormat) (vk.Format, error) {
	if f >= types.TextureFormatBC1RGBAUnorm {
		return vk.FormatCompressedBlockBase + vk.Format(f-types.TextureFormatBC1RGBAUnorm), nil
	}
	if vf, ok := formatTable[f]; ok {
		return vf, nil
	}
	return 0, fmt.Errorf("vulkan: unsupported texture format %d", f)
}

// fromVkFormat converts a native Vulkan format to its types.TextureFormat
// equivalent, used when registering swapchain images against the format
// the surface actually negotiated.
func fromVkFormat(f vk.Format) (types.TextureFormat, error) {
	if f >= vk.FormatCompressedBlockBase {
		offset := types.TextureFormat(f - vk.FormatCompressedBlockBase)
		tf := types.TextureFormatBC1RGBAUnorm + offset
		if tf > types.TextureFormatASTC12x12UnormSrgb {
			return 0, fmt.Errorf("vulkan: unrecognized compressed vk.Format %d", f)
		}
		return tf, nil
	}
	if tf, ok := vkFormatTable[f]; ok {
		return tf, nil
	}
	return 0, fmt.Errorf("vulkan: unrecognized vk.Format %d", f)
}
