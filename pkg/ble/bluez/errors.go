package bluez

import "errors"

var (
	errEnableAdapter  = errors.New("failed to enable bluetooth adapter")
	errAdapterAddress = errors.New("failed to read adapter address")
	errUnknownAdapter = errors.New("raw adapter is not a bluetooth adapter")
	errUnsupported    = errors.New("BlueZ scanning is only supported on linux")
)
