// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"errors"
	"fmt"
	"testing"
)

func TestDriverErrorClassification(t *testing.T) {
	classified := &DriverError{Call: "vkQueueSubmit2", Code: -4, Err: ErrDeviceLost}
	if !errors.Is(classified, ErrDeviceLost) {
		t.Error("a device-lost driver error should satisfy errors.Is(err, ErrDeviceLost)")
	}
	if !IsDriverError(classified) {
		t.Error("IsDriverError should see the DriverError in the chain")
	}

	unclassified := &DriverError{Call: "vkCreateBuffer", Code: -13}
	if errors.Is(unclassified, ErrDeviceLost) {
		t.Error("an unclassified driver error must not match a sentinel")
	}
	if !IsDriverError(unclassified) {
		t.Error("IsDriverError should still match an unclassified code")
	}
}

func TestSurfaceErrorUnwrapsToSentinel(t *testing.T) {
	err := &SurfaceError{Op: "acquire", Err: ErrSurfaceOutdated}
	if !errors.Is(err, ErrSurfaceOutdated) {
		t.Error("out-of-date surface errors must satisfy errors.Is(err, ErrSurfaceOutdated)")
	}
	if !IsSurfaceError(err) {
		t.Error("IsSurfaceError should see the SurfaceError in the chain")
	}

	// Wrapping through fmt.Errorf must keep both tests working.
	wrapped := fmt.Errorf("frame 17: %w", err)
	if !errors.Is(wrapped, ErrSurfaceOutdated) || !IsSurfaceError(wrapped) {
		t.Error("wrapping a SurfaceError must preserve its classification")
	}
}

func TestDriverErrorThroughSurfaceError(t *testing.T) {
	err := &SurfaceError{
		Op:  "present",
		Err: &DriverError{Call: "vkQueuePresentKHR", Code: -1000000000, Err: ErrSurfaceLost},
	}
	if !errors.Is(err, ErrSurfaceLost) {
		t.Error("a lost surface reported at present should unwrap to ErrSurfaceLost")
	}
	if !IsDriverError(err) || !IsSurfaceError(err) {
		t.Error("both structured types should be visible in the chain")
	}
}
