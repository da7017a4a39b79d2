package model

import "errors"

// Sentinel kinds for validation failures.
var (
	ErrInvalidHackathon = errors.New("invalid hackathon")
	ErrInvalidProfile   = errors.New("invalid profile")
)
