package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound              = errors.New("hackathon not found")
	ErrConflict              = errors.New("hackathon already exists")
	ErrUnsupportedSeedFormat = errors.New("unsupported seed file format")
)
