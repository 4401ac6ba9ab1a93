//go:build linux

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

// Package bluez implements ble.Engine on top of BlueZ through
// tinygo.org/x/bluetooth.
package bluez

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/bleradar/pkg/ble"
	"tinygo.org/x/bluetooth"
)

var matterServiceUUID = bluetooth.New16BitUUID(MatterServiceUUID16)

const stopRetryInterval = 50 * time.Millisecond

// Engine scans on the system default adapter.
type Engine struct {
	adapter *bluetooth.Adapter

	mu      sync.Mutex
	enabled bool
}

// New returns an Engine bound to bluetooth.DefaultAdapter.
func New() *Engine {
	return &Engine{adapter: bluetooth.DefaultAdapter}
}

func (e *Engine) enable() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enabled {
		return nil
	}

	if err := e.adapter.Enable(); err != nil {
		return fmt.Errorf("%w: %w", errEnableAdapter, err)
	}

	e.enabled = true

	return nil
}

func (e *Engine) NewAdapterList() (ble.AdapterList, error) {
	if err := e.enable(); err != nil {
		return nil, err
	}

	addr, err := e.adapter.Address()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errAdapterAddress, err)
	}

	return &adapterList{
		addresses: []string{strings.ToUpper(addr.String())},
		adapters:  []*bluetooth.Adapter{e.adapter},
		pos:       -1,
	}, nil
}

func (*Engine) StartScan(
	closure any, raw ble.RawAdapter, timeout time.Duration, cb ble.Callbacks) (ble.ScanHandle, error) {
	adapter, ok := raw.(*bluetooth.Adapter)
	if !ok || adapter == nil {
		return nil, fmt.Errorf("%w: %T", errUnknownAdapter, raw)
	}

	s := &scan{adapter: adapter, done: make(chan struct{})}

	go s.run(closure, timeout, cb)

	return s, nil
}

type adapterList struct {
	addresses []string
	adapters  []*bluetooth.Adapter
	pos       int
}

func (l *adapterList) Next() bool {
	l.pos++
	return l.pos < len(l.adapters)
}

func (l *adapterList) Address() string { return l.addresses[l.pos] }

func (l *adapterList) RawAdapter() ble.RawAdapter { return l.adapters[l.pos] }

// Delete releases nothing: the default adapter lives for the whole process.
func (*adapterList) Delete() {}

// radio is the part of *bluetooth.Adapter a scan drives.
type radio interface {
	Scan(callback func(*bluetooth.Adapter, bluetooth.ScanResult)) error
	StopScan() error
}

type scan struct {
	adapter  radio
	deleted  atomic.Bool
	timedOut atomic.Bool

	// done is closed once Adapter.Scan has returned.
	done     chan struct{}
	stopOnce sync.Once
}

// run blocks in Adapter.Scan on its own goroutine and reports through cb.
func (s *scan) run(closure any, timeout time.Duration, cb ble.Callbacks) {
	if timeout > 0 {
		timer := time.AfterFunc(timeout, func() {
			s.timedOut.Store(true)
			s.stop()
		})
		defer timer.Stop()
	}

	err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		if s.deleted.Load() || s.timedOut.Load() {
			return
		}

		for _, sd := range result.ServiceData() {
			if sd.UUID != matterServiceUUID {
				continue
			}

			adv, ok := ParseServiceData(sd.Data)
			if !ok {
				continue
			}

			cb.DeviceFound(closure, strings.ToUpper(result.Address.String()), adv.Discriminator, adv.Vendor, adv.Product)
		}
	})

	close(s.done)

	if s.deleted.Load() {
		return
	}

	switch {
	case err != nil:
		log.Printf("BlueZ scan failed: %v", err)
		cb.Error(closure, ble.ScanFailedCode)
	case s.timedOut.Load():
		cb.Error(closure, ble.ScanTimeoutCode)
	}

	cb.Done(closure)
}

// stop asks BlueZ to end the scan. StopScan fails until Adapter.Scan has
// actually started, so it is retried until it succeeds or Scan returns.
func (s *scan) stop() {
	s.stopOnce.Do(func() {
		go s.stopLoop()
	})
}

func (s *scan) stopLoop() {
	ticker := time.NewTicker(stopRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		default:
		}

		if err := s.adapter.StopScan(); err == nil {
			return
		}

		select {
		case <-s.done:
			return
		case <-ticker.C:
		}
	}
}

// Delete stops the scan if it is still running. No callbacks fire afterwards.
func (s *scan) Delete() {
	s.deleted.Store(true)

	select {
	case <-s.done:
		return
	default:
	}

	s.stop()
}
