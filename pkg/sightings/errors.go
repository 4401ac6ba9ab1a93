package sightings

import "errors"

var (
	errOpenDB         = errors.New("failed to open database")
	errEnableWAL      = errors.New("failed to enable WAL mode")
	errInitSchema     = errors.New("failed to initialize schema")
	errSaveSighting   = errors.New("failed to save sighting")
	errQuerySightings = errors.New("failed to query sightings")
	errScanRow        = errors.New("failed to scan row")
	errPruneSightings = errors.New("error pruning sightings")
	errBeginTx        = errors.New("failed to begin transaction")
)
