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

package models

import (
	"strings"
	"time"
)

// DeviceInfo is a single sighting of a commissionable device reported by a scan.
// The same device may be reported more than once during one scan.
type DeviceInfo struct {
	Address       string `json:"address"`
	Discriminator uint16 `json:"discriminator"`
	Vendor        uint16 `json:"vendor"`
	Product       uint16 `json:"product"`
}

// AdapterSelector picks which enumerated adapter a discovery runs on.
type AdapterSelector interface {
	AdapterAddress() string
}

// AdapterAddress selects an adapter by its hardware address.
type AdapterAddress string

// AdapterAddress returns the upper-cased address.
func (a AdapterAddress) AdapterAddress() string {
	return strings.ToUpper(string(a))
}

// AdapterInfo describes an enumerated adapter. It can be used as a selector.
type AdapterInfo struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

func (a AdapterInfo) AdapterAddress() string {
	return a.Address
}

// ParseAdapterSelector turns user input into a selector. Empty input means
// "first adapter" and returns nil.
func ParseAdapterSelector(s string) AdapterSelector {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return AdapterAddress(s)
}

// MatchesAdapter reports whether an enumerated adapter address satisfies sel.
// A nil selector matches every adapter.
func MatchesAdapter(sel AdapterSelector, address string) bool {
	if sel == nil {
		return true
	}

	return strings.EqualFold(sel.AdapterAddress(), address)
}

// ScanState is the lifecycle state of a discovery run tracked by the agent.
type ScanState string

const (
	ScanRunning ScanState = "running"
	ScanDone    ScanState = "done"
	ScanFailed  ScanState = "failed"
)

// ScanStatus summarizes one discovery run.
type ScanStatus struct {
	ID       string        `json:"id"`
	Adapter  string        `json:"adapter,omitempty"`
	Timeout  time.Duration `json:"timeout"`
	State    ScanState     `json:"state"`
	Devices  int           `json:"devices"`
	Error    string        `json:"error,omitempty"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished,omitempty"`
}

// Sighting is a stored DeviceInfo with the scan it came from.
type Sighting struct {
	ScanID  string     `json:"scan_id"`
	Adapter string     `json:"adapter,omitempty"`
	Device  DeviceInfo `json:"device"`
	SeenAt  time.Time  `json:"seen_at"`
}

// SightingFilter defines criteria for retrieving sightings.
type SightingFilter struct {
	ScanID        string
	Address       string
	Discriminator *uint16
	Vendor        *uint16
	StartTime     time.Time
	EndTime       time.Time
	Limit         int
}

// ScanRequest asks the agent for a discovery run.
type ScanRequest struct {
	Timeout time.Duration
	Adapter string
}

// ScanEventType tags messages streamed to scan subscribers.
type ScanEventType string

const (
	EventDevice ScanEventType = "device"
	EventDone   ScanEventType = "done"
	EventError  ScanEventType = "error"
)

// ScanEvent is one message on a scan's live stream.
type ScanEvent struct {
	Type   ScanEventType `json:"type"`
	ScanID string        `json:"scan_id"`
	Device *DeviceInfo   `json:"device,omitempty"`
	Error  string        `json:"error,omitempty"`
}
