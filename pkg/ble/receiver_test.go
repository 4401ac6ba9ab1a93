package ble

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/carverauto/bleradar/pkg/metrics"
	"github.com/carverauto/bleradar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, r *eventReceiver) []queueItem {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var items []queueItem

	for {
		item, err := r.next(ctx)
		require.NoError(t, err)

		items = append(items, item)

		if item.end {
			return items
		}
	}
}

func TestEventReceiver_PreservesOrderAcrossGoroutines(t *testing.T) {
	const n = 1000

	r := newEventReceiver(metrics.Noop{})

	go func() {
		for i := 0; i < n; i++ {
			scanFoundCallback(r, deviceAddr, uint16(i), 1, 2)
		}

		scanDoneCallback(r)
	}()

	items := drain(t, r)
	require.Len(t, items, n+1)

	for i := 0; i < n; i++ {
		assert.Equal(t, uint16(i), items[i].device.Discriminator)
	}

	assert.True(t, items[n].end)
}

func TestEventReceiver_SingleSentinel(t *testing.T) {
	r := newEventReceiver(metrics.Noop{})

	r.onScanComplete()
	r.onScanComplete()
	r.onDeviceScanned(models.DeviceInfo{Address: deviceAddr})

	r.mu.Lock()
	defer r.mu.Unlock()

	require.Len(t, r.queue, 2)
	assert.True(t, r.queue[0].end)
	assert.False(t, r.queue[1].end, "late devices are queued after the sentinel, not dropped")
}

func TestEventReceiver_ScanErrorIsRecordedOnly(t *testing.T) {
	r := newEventReceiver(metrics.Noop{})

	scanErrorCallback(r, 12)
	scanErrorCallback(r, 13)

	assert.Equal(t, []int{12, 13}, r.scanErrorCodes())

	r.mu.Lock()
	assert.Empty(t, r.queue)
	r.mu.Unlock()
}

func TestEventReceiver_NextHonorsContext(t *testing.T) {
	r := newEventReceiver(metrics.Noop{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEventReceiver_PushNeverBlocks(t *testing.T) {
	r := newEventReceiver(metrics.Noop{})

	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 500; j++ {
				r.onDeviceScanned(models.DeviceInfo{Address: deviceAddr})
			}
		}()
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producers blocked without a consumer")
	}

	r.mu.Lock()
	assert.Len(t, r.queue, 2000)
	r.mu.Unlock()
}

func TestTrampolines_IgnoreForeignClosures(t *testing.T) {
	assert.NotPanics(t, func() {
		scanFoundCallback("not a receiver", deviceAddr, 1, 2, 3)
		scanDoneCallback(nil)
		scanErrorCallback((*eventReceiver)(nil), 1)
	})
}
