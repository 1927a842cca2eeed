package storage

import "errors"

var (
	// ErrRunNotFound indicates no run directory with the given id exists.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrCorruptRun indicates a run's files could not be parsed.
	ErrCorruptRun = errors.New("storage: corrupt run data")
)
