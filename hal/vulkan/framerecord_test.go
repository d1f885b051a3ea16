// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"
	"testing"

	"github.com/forge-gpu/forge/hal/vulkan/vk"
)

func TestDestructionQueuePushDrain(t *testing.T) {
	var q destructionQueue[vk.Semaphore]
	for i := 1; i <= 4; i++ {
		q.push(vk.Semaphore(i))
	}

	var drained []vk.Semaphore
	q.drain(func(s vk.Semaphore) { drained = append(drained, s) })
	if len(drained) != 4 {
		t.Fatalf("drained %d items, want 4", len(drained))
	}

	q.drain(func(vk.Semaphore) { t.Error("queue should be empty after drain") })
}

func TestDestructionQueueConcurrentPush(t *testing.T) {
	var q destructionQueue[vk.Semaphore]
	const workers, perWorker = 8, 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				q.push(vk.Semaphore(i))
			}
		}()
	}
	wg.Wait()

	count := 0
	q.drain(func(vk.Semaphore) { count++ })
	if count != workers*perWorker {
		t.Errorf("drained %d items, want %d", count, workers*perWorker)
	}
}

func TestRaiseWatermarkIsMonotone(t *testing.T) {
	fr := newFrameRecord()
	fr.raiseWatermark(10)
	fr.raiseWatermark(5)
	if got := fr.watermark.Load(); got != 10 {
		t.Errorf("watermark = %d after raising 10 then 5, want 10", got)
	}

	var wg sync.WaitGroup
	for v := uint64(1); v <= 64; v++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fr.raiseWatermark(v)
		}()
	}
	wg.Wait()
	if got := fr.watermark.Load(); got != 64 {
		t.Errorf("watermark = %d after racing raises up to 64", got)
	}
}
