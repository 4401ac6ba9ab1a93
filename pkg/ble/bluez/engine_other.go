//go:build !linux

package bluez

import (
	"time"

	"github.com/carverauto/bleradar/pkg/ble"
)

// Engine is unavailable off linux; every call fails.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (*Engine) NewAdapterList() (ble.AdapterList, error) {
	return nil, errUnsupported
}

func (*Engine) StartScan(any, ble.RawAdapter, time.Duration, ble.Callbacks) (ble.ScanHandle, error) {
	return nil, errUnsupported
}
