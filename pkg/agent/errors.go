package agent

import "errors"

var (
	ErrScanNotFound    = errors.New("scan not found")
	errServiceStopped  = errors.New("discovery service is stopped")
	errNegativeTimeout = errors.New("scan timeout must not be negative")
	errUnknownEngine   = errors.New("unknown engine")
)
