package api

import (
	"context"

	"github.com/carverauto/bleradar/pkg/models"
)

// DiscoveryService is the part of the agent the API exposes.
type DiscoveryService interface {
	StartScan(context.Context, models.ScanRequest) (models.ScanStatus, error)
	GetScan(id string) (models.ScanStatus, error)
	ListScans() []models.ScanStatus
	Subscribe(id string) (<-chan models.ScanEvent, func(), error)
	Sightings(context.Context, *models.SightingFilter) ([]models.Sighting, error)
}
