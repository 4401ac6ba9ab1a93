package api

import "errors"

const (
	defaultDeviceLimit = 100
	maxDeviceLimit     = 1000
	maxRequestBody     = 1 << 16
)

var (
	errInvalidQuery = errors.New("invalid query parameter")
	errInvalidBody  = errors.New("invalid request body")
)

// scanRequest is the body of POST /api/scans.
type scanRequest struct {
	TimeoutMS int64  `json:"timeout_ms"`
	Adapter   string `json:"adapter"`
}

type errorResponse struct {
	Error string `json:"error"`
}
