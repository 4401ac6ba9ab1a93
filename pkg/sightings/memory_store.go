package sightings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carverauto/bleradar/pkg/models"
)

// InMemoryStore implements Store for agents running without a database.
type InMemoryStore struct {
	mu        sync.RWMutex
	sightings []models.Sighting
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sightings: make([]models.Sighting, 0),
	}
}

func (s *InMemoryStore) SaveSighting(_ context.Context, sighting *models.Sighting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sightings = append(s.sightings, *sighting)

	return nil
}

func (s *InMemoryStore) GetSightings(_ context.Context, filter *models.SightingFilter) ([]models.Sighting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Sighting, 0)

	for i := range s.sightings {
		if matchesFilter(&s.sightings[i], filter) {
			results = append(results, s.sightings[i])
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SeenAt.After(results[j].SeenAt)
	})

	if filter != nil && filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}

	return results, nil
}

func (s *InMemoryStore) PruneSightings(_ context.Context, age time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-age)
	kept := s.sightings[:0]

	for _, sighting := range s.sightings {
		if !sighting.SeenAt.Before(cutoff) {
			kept = append(kept, sighting)
		}
	}

	s.sightings = kept

	return nil
}

func (*InMemoryStore) Close() error { return nil }

// filterCheck is a type for individual filter checks.
type filterCheck func(*models.Sighting, *models.SightingFilter) bool

var filterChecks = []filterCheck{
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.ScanID == "" || s.ScanID == f.ScanID
	},
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.Address == "" || s.Device.Address == f.Address
	},
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.Discriminator == nil || s.Device.Discriminator == *f.Discriminator
	},
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.Vendor == nil || s.Device.Vendor == *f.Vendor
	},
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.StartTime.IsZero() || !s.SeenAt.Before(f.StartTime)
	},
	func(s *models.Sighting, f *models.SightingFilter) bool {
		return f.EndTime.IsZero() || !s.SeenAt.After(f.EndTime)
	},
}

func matchesFilter(sighting *models.Sighting, filter *models.SightingFilter) bool {
	if filter == nil {
		return true
	}

	for _, check := range filterChecks {
		if !check(sighting, filter) {
			return false
		}
	}

	return true
}
