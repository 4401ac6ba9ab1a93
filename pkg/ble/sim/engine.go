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

// Package sim provides a scripted ble.Engine for demos and tests without
// Bluetooth hardware.
package sim

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/bleradar/pkg/ble"
)

var (
	errLoadScenario   = errors.New("failed to load simulation scenario")
	errListingFailed  = errors.New("simulated adapter listing failure")
	errStartFailed    = errors.New("simulated scan start failure")
	errUnknownAdapter = errors.New("unknown simulated adapter")
)

// Stats counts handle activity so leaks and double releases are visible.
type Stats struct {
	ListsCreated  int64
	ListsReleased int64
	ScansStarted  int64
	ScansReleased int64
}

// Engine implements ble.Engine from a Scenario.
type Engine struct {
	scenario Scenario

	listsCreated  atomic.Int64
	listsReleased atomic.Int64
	scansStarted  atomic.Int64
	scansReleased atomic.Int64
}

// New creates an Engine that plays s.
func New(s Scenario) *Engine {
	return &Engine{scenario: s}
}

// Stats returns a snapshot of handle counters.
func (e *Engine) Stats() Stats {
	return Stats{
		ListsCreated:  e.listsCreated.Load(),
		ListsReleased: e.listsReleased.Load(),
		ScansStarted:  e.scansStarted.Load(),
		ScansReleased: e.scansReleased.Load(),
	}
}

func (e *Engine) NewAdapterList() (ble.AdapterList, error) {
	if e.scenario.FailListing {
		return nil, errListingFailed
	}

	e.listsCreated.Add(1)

	return &adapterList{engine: e, pos: -1}, nil
}

func (e *Engine) StartScan(
	closure any, adapter ble.RawAdapter, timeout time.Duration, cb ble.Callbacks) (ble.ScanHandle, error) {
	idx, ok := adapter.(int)
	if !ok || idx < 0 || idx >= len(e.scenario.Adapters) {
		return nil, fmt.Errorf("%w: %v", errUnknownAdapter, adapter)
	}

	a := e.scenario.Adapters[idx]
	if a.FailStart {
		return nil, errStartFailed
	}

	e.scansStarted.Add(1)

	s := &scan{
		engine: e,
		stop:   make(chan struct{}),
	}

	go s.run(closure, a, timeout, cb)

	return s, nil
}

type adapterList struct {
	engine   *Engine
	pos      int
	released atomic.Bool
}

func (l *adapterList) Next() bool {
	l.pos++
	return l.pos < len(l.engine.scenario.Adapters)
}

func (l *adapterList) Address() string {
	return l.engine.scenario.Adapters[l.pos].Address
}

func (l *adapterList) RawAdapter() ble.RawAdapter {
	return l.pos
}

func (l *adapterList) Delete() {
	if !l.released.CompareAndSwap(false, true) {
		log.Printf("Simulated adapter list released twice")
		return
	}

	l.engine.listsReleased.Add(1)
}

type scan struct {
	engine *Engine
	stop   chan struct{}
	once   sync.Once
}

// run plays the adapter script on its own goroutine, like a native radio
// thread. Nothing is reported after Delete.
func (s *scan) run(closure any, a Adapter, timeout time.Duration, cb ble.Callbacks) {
	var deadline <-chan time.Time

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		deadline = timer.C
	}

	for _, d := range a.Devices {
		if d.Delay > 0 {
			wait := time.NewTimer(time.Duration(d.Delay))

			select {
			case <-s.stop:
				wait.Stop()
				return
			case <-deadline:
				wait.Stop()
				cb.Error(closure, ble.ScanTimeoutCode)
				cb.Done(closure)

				return
			case <-wait.C:
			}
		}

		select {
		case <-s.stop:
			return
		default:
		}

		cb.DeviceFound(closure, d.Address, d.Discriminator, d.Vendor, d.Product)
	}

	if deadline != nil {
		select {
		case <-s.stop:
			return
		case <-deadline:
		}
	}

	if a.ScanError != 0 {
		cb.Error(closure, a.ScanError)
	}

	cb.Done(closure)
}

func (s *scan) Delete() {
	s.once.Do(func() {
		close(s.stop)
		s.engine.scansReleased.Add(1)
	})
}
