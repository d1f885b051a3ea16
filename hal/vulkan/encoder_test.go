// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
	"github.com/forge-gpu/forge/types"
)

func TestAttachmentOps(t *testing.T) {
	if loadOpToVk(types.LoadOpClear) != vk.AttachmentLoadOpClear {
		t.Error("LoadOpClear should map to the clear op")
	}
	if loadOpToVk(types.LoadOpLoad) != vk.AttachmentLoadOpLoad {
		t.Error("LoadOpLoad should map to the load op")
	}
	if storeOpToVk(types.StoreOpStore) != vk.AttachmentStoreOpStore {
		t.Error("StoreOpStore should map to the store op")
	}
	if storeOpToVk(types.StoreOpDiscard) != vk.AttachmentStoreOpDontCare {
		t.Error("StoreOpDiscard should map to don't-care")
	}
}

func TestNativeBindPoint(t *testing.T) {
	if nativeBindPoint(bindPointGraphics) != vk.PipelineBindPointGraphics {
		t.Error("graphics bind point mismatch")
	}
	if nativeBindPoint(bindPointCompute) != vk.PipelineBindPointCompute {
		t.Error("compute bind point mismatch")
	}
}

func TestNativeImageByKind(t *testing.T) {
	unique := imageRecord{kind: imageUnique, native: 7}
	if nativeImage(unique) != 7 {
		t.Error("sole-owner records expose their own image")
	}

	shared := imageRecord{kind: imageShared, shared: &sharedImageState{native: 9}}
	if nativeImage(shared) != 9 {
		t.Error("shared records expose the shared node's image")
	}

	swap := imageRecord{kind: imageSwapchain, native: 11, swapchainView: 3}
	if nativeImage(swap) != 11 {
		t.Error("swapchain records expose the swapchain's image")
	}
	if attachmentView(swap) != 3 {
		t.Error("swapchain records bind the swapchain-provided view")
	}
}

func TestSharedImageRefCounting(t *testing.T) {
	s := &sharedImageState{views: map[viewKey]vk.ImageView{}}
	s.refCount.Store(1)
	s.retain()

	if s.release() {
		t.Error("first release of two references must not be last")
	}
	if !s.release() {
		t.Error("second release must report last")
	}

	defer func() {
		v := recover()
		if v == nil {
			t.Error("releasing past zero should panic")
		}
		if _, ok := v.(error); !ok {
			t.Errorf("panic payload is %T, want an error value", v)
		}
	}()
	s.release()
}
