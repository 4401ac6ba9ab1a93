package ble

import (
	"log"

	"github.com/carverauto/bleradar/pkg/models"
)

// trampolines are the entry points handed to every engine. The closure is the
// *eventReceiver of the scan, carried through the engine untouched.
var trampolines = Callbacks{
	DeviceFound: scanFoundCallback,
	Done:        scanDoneCallback,
	Error:       scanErrorCallback,
}

func receiverFor(closure any) *eventReceiver {
	r, ok := closure.(*eventReceiver)
	if !ok || r == nil {
		log.Printf("Dropping BLE callback: %v (%T)", errUnknownClosure, closure)
		return nil
	}

	return r
}

func scanFoundCallback(closure any, address string, discriminator, vendor, product uint16) {
	if r := receiverFor(closure); r != nil {
		r.onDeviceScanned(models.DeviceInfo{
			Address:       address,
			Discriminator: discriminator,
			Vendor:        vendor,
			Product:       product,
		})
	}
}

func scanDoneCallback(closure any) {
	if r := receiverFor(closure); r != nil {
		r.onScanComplete()
	}
}

func scanErrorCallback(closure any, code int) {
	if r := receiverFor(closure); r != nil {
		r.onScanError(code)
	}
}
