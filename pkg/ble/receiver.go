package ble

import (
	"context"
	"log"
	"sync"

	"github.com/carverauto/bleradar/pkg/metrics"
	"github.com/carverauto/bleradar/pkg/models"
)

// queueItem is either a device or the end-of-scan marker.
type queueItem struct {
	device models.DeviceInfo
	end    bool
}

// eventReceiver collects the events of one scan. The engine pushes from its
// own goroutines, the discovery iterator pulls. Pushes never block.
type eventReceiver struct {
	mu         sync.Mutex
	queue      []queueItem
	ended      bool
	scanErrors []int

	// wake holds at most one pending notification for the consumer.
	wake    chan struct{}
	metrics metrics.DiscoveryMetrics
}

func newEventReceiver(m metrics.DiscoveryMetrics) *eventReceiver {
	return &eventReceiver{
		wake:    make(chan struct{}, 1),
		metrics: m,
	}
}

func (r *eventReceiver) push(item queueItem) {
	r.mu.Lock()
	r.queue = append(r.queue, item)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *eventReceiver) onDeviceScanned(device models.DeviceInfo) {
	r.metrics.IncDevicesFound()
	r.push(queueItem{device: device})
}

func (r *eventReceiver) onScanComplete() {
	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		log.Printf("Ignoring duplicate scan-done signal")

		return
	}

	r.ended = true
	r.mu.Unlock()

	r.push(queueItem{end: true})
}

// onScanError records the code. In practice the engine reports its own
// timeout here right before scan-done, so the sequence is not ended.
func (r *eventReceiver) onScanError(code int) {
	r.mu.Lock()
	r.scanErrors = append(r.scanErrors, code)
	r.mu.Unlock()

	r.metrics.IncScanErrors()
	log.Printf("BLE scan reported error code %d", code)
}

// scanErrorCodes returns the error codes reported so far.
func (r *eventReceiver) scanErrorCodes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]int(nil), r.scanErrors...)
}

// next blocks until an item is queued or ctx is done.
func (r *eventReceiver) next(ctx context.Context) (queueItem, error) {
	for {
		r.mu.Lock()
		if len(r.queue) > 0 {
			item := r.queue[0]
			r.queue[0] = queueItem{}
			r.queue = r.queue[1:]
			r.mu.Unlock()

			return item, nil
		}
		r.mu.Unlock()

		select {
		case <-r.wake:
		case <-ctx.Done():
			return queueItem{}, ctx.Err()
		}
	}
}
