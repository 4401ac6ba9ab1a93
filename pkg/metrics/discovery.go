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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bleradar"

// Discovery implements DiscoveryMetrics on top of Prometheus collectors.
type Discovery struct {
	ScansStarted  prometheus.Counter
	ActiveScans   prometheus.Gauge
	ScanDuration  prometheus.Histogram
	DevicesFound  prometheus.Counter
	ScanErrors    prometheus.Counter
	SetupFailures *prometheus.CounterVec // labels: kind
}

// NewDiscovery registers the discovery collectors with reg.
func NewDiscovery(reg prometheus.Registerer) *Discovery {
	factory := promauto.With(reg)

	return &Discovery{
		ScansStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_started_total",
			Help:      "Total number of BLE scans started",
		}),
		ActiveScans: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_scans",
			Help:      "Number of BLE scans currently in flight",
		}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time from scan start until the handle was released",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		DevicesFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "devices_found_total",
			Help:      "Total number of device sightings delivered by the engine",
		}),
		ScanErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_errors_total",
			Help:      "Total number of mid-scan error codes reported by the engine",
		}),
		SetupFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "setup_failures_total",
			Help:      "Total number of discoveries that failed before scanning",
		}, []string{"kind"}),
	}
}

func (d *Discovery) ObserveScanStarted() {
	d.ScansStarted.Inc()
	d.ActiveScans.Inc()
}

func (d *Discovery) ObserveScanFinished(duration time.Duration) {
	d.ActiveScans.Dec()
	d.ScanDuration.Observe(duration.Seconds())
}

func (d *Discovery) IncDevicesFound() { d.DevicesFound.Inc() }

func (d *Discovery) IncScanErrors() { d.ScanErrors.Inc() }

func (d *Discovery) IncSetupFailures(kind string) {
	d.SetupFailures.WithLabelValues(kind).Inc()
}

// Noop discards everything. It is the default for library callers.
type Noop struct{}

func (Noop) ObserveScanStarted()                 {}
func (Noop) ObserveScanFinished(_ time.Duration) {}
func (Noop) IncDevicesFound()                    {}
func (Noop) IncScanErrors()                      {}
func (Noop) IncSetupFailures(_ string)           {}
