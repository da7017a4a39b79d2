package smoke

import "errors"

var (
	// ErrUnexpectedStatus is returned when the server answers with an unexpected HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrInvariant is returned when an answer breaks a documented guarantee.
	ErrInvariant = errors.New("invariant violated")
)
