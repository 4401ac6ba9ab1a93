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

// Package agent runs BLE discovery scans on request or on a schedule and
// keeps their results.
package agent

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/config"
	"github.com/carverauto/bleradar/pkg/models"
	"github.com/carverauto/bleradar/pkg/sightings"
)

const (
	maxScanHistory   = 100
	subscriberBuffer = 64
	pruneInterval    = time.Hour
)

// DiscoveryService implements Service for BLE discovery.
type DiscoveryService struct {
	discoverer AsyncDiscoverer
	store      sightings.Store
	config     *config.AgentConfig

	// baseCtx bounds every scan; Stop cancels it.
	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.RWMutex
	scans   map[string]*scanRecord
	order   []string
	stopped bool
	closed  chan struct{}
	wg      sync.WaitGroup
}

type scanRecord struct {
	status      models.ScanStatus
	subscribers map[chan models.ScanEvent]struct{}
	final       *models.ScanEvent
	finished    chan struct{}
}

// NewDiscoveryService creates a service. cfg is validated by the caller.
func NewDiscoveryService(cfg *config.AgentConfig, discoverer AsyncDiscoverer, store sightings.Store) *DiscoveryService {
	if cfg == nil {
		cfg = &config.AgentConfig{}
	}

	cfg.ApplyDefaults()

	if store == nil {
		store = sightings.NewInMemoryStore()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &DiscoveryService{
		discoverer: discoverer,
		store:      store,
		config:     cfg,
		baseCtx:    ctx,
		cancel:     cancel,
		scans:      make(map[string]*scanRecord),
		closed:     make(chan struct{}),
	}
}

func (*DiscoveryService) Name() string {
	return "ble_discovery"
}

// Start runs periodic scans and sighting pruning until ctx is done or Stop
// is called.
func (s *DiscoveryService) Start(ctx context.Context) error {
	var scanTick <-chan time.Time

	if interval := time.Duration(s.config.ScanInterval); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		scanTick = ticker.C

		if _, err := s.StartScan(ctx, models.ScanRequest{}); err != nil {
			log.Printf("Initial discovery failed to start: %v", err)
		}
	}

	pruneTicker := time.NewTicker(pruneInterval)
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closed:
			return nil
		case <-scanTick:
			if _, err := s.StartScan(ctx, models.ScanRequest{}); err != nil {
				log.Printf("Periodic discovery failed to start: %v", err)
			}
		case <-pruneTicker.C:
			if err := s.store.PruneSightings(ctx, time.Duration(s.config.Retention)); err != nil {
				log.Printf("Failed to prune sightings: %v", err)
			}
		}
	}
}

// Stop cancels in-flight scans, waits for them to report done, and closes
// the store.
func (s *DiscoveryService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.closed)
	}
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("Timed out waiting for scans to finish: %v", ctx.Err())
	}

	return s.store.Close()
}

// StartScan begins a discovery run and returns its initial status. Zero
// fields in req fall back to the configured timeout and adapter.
func (s *DiscoveryService) StartScan(_ context.Context, req models.ScanRequest) (models.ScanStatus, error) {
	if req.Timeout < 0 {
		return models.ScanStatus{}, errNegativeTimeout
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = time.Duration(s.config.ScanTimeout)
	}

	adapter := req.Adapter
	if adapter == "" {
		adapter = s.config.Adapter
	}

	rec := &scanRecord{
		status: models.ScanStatus{
			ID:      uuid.NewString(),
			Adapter: adapter,
			Timeout: timeout,
			State:   models.ScanRunning,
			Started: time.Now(),
		},
		subscribers: make(map[chan models.ScanEvent]struct{}),
		finished:    make(chan struct{}),
	}

	// The stopped check and wg.Add share the lock with Stop so no scan is
	// added after Stop has started waiting.
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return models.ScanStatus{}, errServiceStopped
	}

	s.scans[rec.status.ID] = rec
	s.order = append(s.order, rec.status.ID)
	s.trimHistoryLocked()
	s.wg.Add(1)

	initial := rec.status
	s.mu.Unlock()

	log.Printf("Starting BLE discovery %s (adapter=%q timeout=%s)", initial.ID, adapter, timeout)

	s.discoverer.DiscoverAsync(s.baseCtx, timeout, s.handlersFor(rec), models.ParseAdapterSelector(adapter))

	return initial, nil
}

func (s *DiscoveryService) handlersFor(rec *scanRecord) ble.Handlers {
	id := rec.status.ID
	adapter := rec.status.Adapter

	return ble.Handlers{
		OnDevice: func(address string, discriminator, vendor, product uint16) {
			device := models.DeviceInfo{
				Address:       address,
				Discriminator: discriminator,
				Vendor:        vendor,
				Product:       product,
			}

			sighting := &models.Sighting{
				ScanID:  id,
				Adapter: adapter,
				Device:  device,
				SeenAt:  time.Now(),
			}

			if err := s.store.SaveSighting(context.Background(), sighting); err != nil {
				log.Printf("Failed to save sighting for %s: %v", address, err)
			}

			s.mu.Lock()
			rec.status.Devices++
			s.broadcastLocked(rec, models.ScanEvent{Type: models.EventDevice, ScanID: id, Device: &device})
			s.mu.Unlock()
		},
		OnError: func(err error) {
			s.mu.Lock()
			rec.status.State = models.ScanFailed
			rec.status.Error = err.Error()
			s.mu.Unlock()
		},
		OnDone: func() {
			defer s.wg.Done()

			s.mu.Lock()
			defer s.mu.Unlock()

			rec.status.Finished = time.Now()

			final := models.ScanEvent{Type: models.EventDone, ScanID: id}

			if rec.status.State == models.ScanFailed {
				final = models.ScanEvent{Type: models.EventError, ScanID: id, Error: rec.status.Error}
			} else {
				rec.status.State = models.ScanDone
			}

			rec.final = &final
			s.broadcastLocked(rec, final)

			for ch := range rec.subscribers {
				close(ch)
			}

			rec.subscribers = nil
			close(rec.finished)

			log.Printf("BLE discovery %s finished: state=%s devices=%d",
				id, rec.status.State, rec.status.Devices)
		},
	}
}

// broadcastLocked fans ev out without blocking the discovery goroutine.
// Slow subscribers lose events.
func (*DiscoveryService) broadcastLocked(rec *scanRecord, ev models.ScanEvent) {
	for ch := range rec.subscribers {
		select {
		case ch <- ev:
		default:
			log.Printf("Dropping %s event for slow subscriber of scan %s", ev.Type, ev.ScanID)
		}
	}
}

func (s *DiscoveryService) trimHistoryLocked() {
	for len(s.order) > maxScanHistory {
		oldest := s.order[0]

		rec := s.scans[oldest]
		if rec != nil && rec.status.State == models.ScanRunning {
			return
		}

		delete(s.scans, oldest)
		s.order = s.order[1:]
	}
}

// GetScan returns the status of one scan.
func (s *DiscoveryService) GetScan(id string) (models.ScanStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.scans[id]
	if !ok {
		return models.ScanStatus{}, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}

	return rec.status, nil
}

// ListScans returns known scans, newest first.
func (s *DiscoveryService) ListScans() []models.ScanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScanStatus, 0, len(s.order))

	for i := len(s.order) - 1; i >= 0; i-- {
		if rec, ok := s.scans[s.order[i]]; ok {
			out = append(out, rec.status)
		}
	}

	return out
}

// Subscribe streams a scan's events. The channel is closed after the final
// done or error event. For a finished scan only the final event is sent.
// The returned func unsubscribes.
func (s *DiscoveryService) Subscribe(id string) (<-chan models.ScanEvent, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.scans[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}

	ch := make(chan models.ScanEvent, subscriberBuffer)

	if rec.final != nil {
		ch <- *rec.final
		close(ch)

		return ch, func() {}, nil
	}

	rec.subscribers[ch] = struct{}{}

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := rec.subscribers[ch]; ok {
			delete(rec.subscribers, ch)
			close(ch)
		}
	}

	return ch, unsubscribe, nil
}

// Wait blocks until the scan has finished or ctx is done.
func (s *DiscoveryService) Wait(ctx context.Context, id string) (models.ScanStatus, error) {
	s.mu.RLock()
	rec, ok := s.scans[id]
	s.mu.RUnlock()

	if !ok {
		return models.ScanStatus{}, fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}

	select {
	case <-rec.finished:
	case <-ctx.Done():
		return models.ScanStatus{}, ctx.Err()
	}

	return s.GetScan(id)
}

// Sightings returns stored sightings.
func (s *DiscoveryService) Sightings(ctx context.Context, filter *models.SightingFilter) ([]models.Sighting, error) {
	return s.store.GetSightings(ctx, filter)
}
