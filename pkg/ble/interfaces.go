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

// Package ble bridges callback-driven BLE scan engines into Go iterators.
package ble

import (
	"time"
)

//go:generate mockgen -destination=mock_ble.go -package=ble github.com/carverauto/bleradar/pkg/ble Engine,AdapterList,ScanHandle

// RawAdapter is the engine's own handle for an enumerated adapter. It is
// passed back to StartScan untouched.
type RawAdapter any

// DeviceFoundFunc is invoked by an engine for every advertisement it decodes.
type DeviceFoundFunc func(closure any, address string, discriminator, vendor, product uint16)

// ScanDoneFunc is invoked by an engine once the scan has finished.
type ScanDoneFunc func(closure any)

// ScanErrorFunc is invoked by an engine when the scan reports an error code.
type ScanErrorFunc func(closure any, code int)

// Callbacks is the fixed set of entry points an engine fires during a scan.
// Engines may call them from any goroutine.
type Callbacks struct {
	DeviceFound DeviceFoundFunc
	Done        ScanDoneFunc
	Error       ScanErrorFunc
}

// Engine is the native scanning machinery.
type Engine interface {
	// NewAdapterList enumerates the adapters present on the system.
	// A nil list is treated as a failure.
	NewAdapterList() (AdapterList, error)
	// StartScan begins a scan on adapter and returns immediately. The engine
	// owns the timeout and reports progress through cb, passing closure back
	// unchanged. A nil handle is treated as a failure.
	StartScan(closure any, adapter RawAdapter, timeout time.Duration, cb Callbacks) (ScanHandle, error)
}

// AdapterList is a cursor over enumerated adapters. It must be released with
// Delete exactly once.
type AdapterList interface {
	Next() bool
	Address() string
	RawAdapter() RawAdapter
	Delete()
}

// ScanHandle is an in-flight scan. Delete stops the scan if it is still
// running and releases it.
type ScanHandle interface {
	Delete()
}
