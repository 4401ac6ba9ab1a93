package ble

import (
	"context"
	"log"
	"time"

	"github.com/carverauto/bleradar/pkg/models"
)

// Handlers receive the results of DiscoverAsync. Any of them may be nil.
type Handlers struct {
	OnDevice func(address string, discriminator, vendor, product uint16)
	OnDone   func()
	// OnError receives setup failures and cancellation, always before OnDone.
	// Error codes reported mid-scan by the engine are not delivered here.
	OnError func(err error)
}

// DiscoverAsync runs Discover on its own goroutine and returns immediately.
// OnDevice is called once per sighting in engine order, then OnDone exactly
// once. The goroutine does not keep the process alive.
func (d *Discoverer) DiscoverAsync(
	ctx context.Context, timeout time.Duration, h Handlers, sel models.AdapterSelector) {
	go d.runAsync(ctx, timeout, h, sel)
}

func (d *Discoverer) runAsync(ctx context.Context, timeout time.Duration, h Handlers, sel models.AdapterSelector) {
	defer func() {
		if h.OnDone != nil {
			h.OnDone()
		}
	}()

	for device, err := range d.Discover(ctx, timeout, sel) {
		if err != nil {
			log.Printf("Async discovery failed: %v", err)

			if h.OnError != nil {
				h.OnError(err)
			}

			return
		}

		if h.OnDevice != nil {
			h.OnDevice(device.Address, device.Discriminator, device.Vendor, device.Product)
		}
	}
}
