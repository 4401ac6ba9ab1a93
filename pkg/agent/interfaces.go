package agent

import (
	"context"
	"time"

	"github.com/carverauto/bleradar/pkg/ble"
	"github.com/carverauto/bleradar/pkg/models"
)

// Service is what the lifecycle package runs.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
	Name() string
}

// AsyncDiscoverer starts a discovery without blocking. *ble.Discoverer
// implements it.
type AsyncDiscoverer interface {
	DiscoverAsync(ctx context.Context, timeout time.Duration, h ble.Handlers, sel models.AdapterSelector)
}
