// Package sightings keeps the history of devices reported by discovery scans.
package sightings

import (
	"context"
	"time"

	"github.com/carverauto/bleradar/pkg/models"
)

//go:generate mockgen -destination=mock_store.go -package=sightings github.com/carverauto/bleradar/pkg/sightings Store

// Store defines storage operations for device sightings. Every sighting is
// kept; repeated reports of one device are separate rows.
type Store interface {
	// SaveSighting persists a single sighting
	SaveSighting(context.Context, *models.Sighting) error
	// GetSightings retrieves sightings matching the filter, newest first
	GetSightings(context.Context, *models.SightingFilter) ([]models.Sighting, error)
	// PruneSightings removes sightings older than the given age
	PruneSightings(context.Context, time.Duration) error
	// Close releases the store
	Close() error
}
