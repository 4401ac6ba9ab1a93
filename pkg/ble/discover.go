/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ble

import (
	"context"
	"iter"
	"log"
	"time"

	"github.com/carverauto/bleradar/pkg/metrics"
	"github.com/carverauto/bleradar/pkg/models"
)

// Discoverer runs BLE discovery scans against an Engine.
type Discoverer struct {
	engine  Engine
	metrics metrics.DiscoveryMetrics
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithMetrics reports scan activity to m.
func WithMetrics(m metrics.DiscoveryMetrics) Option {
	return func(d *Discoverer) {
		if m != nil {
			d.metrics = m
		}
	}
}

// NewDiscoverer creates a Discoverer for engine.
func NewDiscoverer(engine Engine, opts ...Option) *Discoverer {
	d := &Discoverer{
		engine:  engine,
		metrics: metrics.Noop{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover scans for devices on the first adapter matching sel (or the first
// adapter when sel is nil) and yields them as the engine reports them.
//
// Nothing happens until the sequence is ranged over. Setup failures are
// yielded as a single *DiscoveryError before any device. Devices are not
// deduplicated. Breaking out of the loop or cancelling ctx stops the scan and
// releases every engine handle; cancellation is yielded as ctx.Err().
// The timeout is handed to the engine as is.
func (d *Discoverer) Discover(
	ctx context.Context, timeout time.Duration, sel models.AdapterSelector) iter.Seq2[models.DeviceInfo, error] {
	return func(yield func(models.DeviceInfo, error) bool) {
		list, err := d.engine.NewAdapterList()
		if err != nil || list == nil {
			d.metrics.IncSetupFailures(string(KindAdapterListingFailed))
			yield(models.DeviceInfo{}, newDiscoveryError(KindAdapterListingFailed, err))

			return
		}
		defer list.Delete()

		for list.Next() {
			address := list.Address()
			if !models.MatchesAdapter(sel, address) {
				continue
			}

			// Only the first matching adapter is ever scanned.
			d.scanAdapter(ctx, list, address, timeout, yield)

			return
		}

		if sel != nil {
			log.Printf("No BLE adapter matches %q", sel.AdapterAddress())
		} else {
			log.Printf("No BLE adapters available")
		}
	}
}

func (d *Discoverer) scanAdapter(
	ctx context.Context,
	list AdapterList,
	address string,
	timeout time.Duration,
	yield func(models.DeviceInfo, error) bool) {
	receiver := newEventReceiver(d.metrics)

	scan, err := d.engine.StartScan(receiver, list.RawAdapter(), timeout, trampolines)
	if err != nil || scan == nil {
		d.metrics.IncSetupFailures(string(KindScanStartFailed))
		yield(models.DeviceInfo{}, newDiscoveryError(KindScanStartFailed, err))

		return
	}

	start := time.Now()
	d.metrics.ObserveScanStarted()

	defer func() {
		scan.Delete()
		d.metrics.ObserveScanFinished(time.Since(start))

		if codes := receiver.scanErrorCodes(); len(codes) > 0 {
			log.Printf("Scan on %s finished with engine error codes %v", address, codes)
		}
	}()

	for {
		item, err := receiver.next(ctx)
		if err != nil {
			yield(models.DeviceInfo{}, err)
			return
		}

		if item.end {
			return
		}

		if !yield(item.device, nil) {
			return
		}
	}
}

// Collect runs Discover to completion and returns every sighting.
func (d *Discoverer) Collect(
	ctx context.Context, timeout time.Duration, sel models.AdapterSelector) ([]models.DeviceInfo, error) {
	var devices []models.DeviceInfo

	for device, err := range d.Discover(ctx, timeout, sel) {
		if err != nil {
			return devices, err
		}

		devices = append(devices, device)
	}

	return devices, nil
}
