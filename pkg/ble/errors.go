package ble

import (
	"errors"
	"fmt"
)

// ErrorKind classifies discovery failures.
type ErrorKind string

// Engine error codes passed to ScanErrorFunc by the bundled engines.
const (
	ScanTimeoutCode = 0x32
	ScanFailedCode  = 0xAC
)

const (
	KindAdapterListingFailed ErrorKind = "adapter_listing_failed"
	KindScanStartFailed      ErrorKind = "scan_start_failed"
	KindScanError            ErrorKind = "scan_error"
)

var (
	ErrAdapterListingFailed = errors.New("failed to list available adapters")
	ErrScanStartFailed      = errors.New("failed to start BLE scan")
	ErrScanError            = errors.New("BLE scan reported an error")
	errUnknownClosure       = errors.New("callback closure is not a scan receiver")
)

// DiscoveryError is returned by Discover and handed to Handlers.OnError.
type DiscoveryError struct {
	Kind ErrorKind
	// Code is the engine error code for KindScanError.
	Code int
	Err  error
}

func newDiscoveryError(kind ErrorKind, err error) *DiscoveryError {
	return &DiscoveryError{Kind: kind, Err: err}
}

func (e *DiscoveryError) Error() string {
	msg := e.sentinel().Error()

	if e.Kind == KindScanError {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *DiscoveryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}

	return []error{e.sentinel(), e.Err}
}

func (e *DiscoveryError) sentinel() error {
	switch e.Kind {
	case KindAdapterListingFailed:
		return ErrAdapterListingFailed
	case KindScanStartFailed:
		return ErrScanStartFailed
	default:
		return ErrScanError
	}
}

// KindOf returns the kind of a DiscoveryError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *DiscoveryError
	if errors.As(err, &de) {
		return de.Kind, true
	}

	return "", false
}
