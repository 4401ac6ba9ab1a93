package metrics

import "time"

//go:generate mockgen -destination=mock_metrics.go -package=metrics github.com/carverauto/bleradar/pkg/metrics DiscoveryMetrics

// DiscoveryMetrics defines the counters the discovery core reports.
type DiscoveryMetrics interface {
	// Scan lifecycle
	ObserveScanStarted()
	ObserveScanFinished(duration time.Duration)

	// Events delivered by the engine
	IncDevicesFound()
	IncScanErrors()

	// Setup failures, labeled by error kind
	IncSetupFailures(kind string)
}
