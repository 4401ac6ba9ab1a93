package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscovery_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDiscovery(reg)

	m.ObserveScanStarted()
	m.IncDevicesFound()
	m.IncDevicesFound()
	m.IncScanErrors()
	m.IncSetupFailures("scan_start_failed")

	assert.InDelta(t, 1, testutil.ToFloat64(m.ScansStarted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ActiveScans), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.DevicesFound), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ScanErrors), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SetupFailures.WithLabelValues("scan_start_failed")), 0)

	m.ObserveScanFinished(2 * time.Second)
	assert.InDelta(t, 0, testutil.ToFloat64(m.ActiveScans), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	assert.Contains(t, names, "bleradar_scan_duration_seconds")
}

func TestDiscovery_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDiscovery(prometheus.NewRegistry())
		NewDiscovery(prometheus.NewRegistry())
	})
}
