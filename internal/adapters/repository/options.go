package repository

import (
	"time"

	"github.com/google/uuid"
)

const idPrefix = "hackathon-"

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: func() string { return idPrefix + uuid.NewString() },
	}
}

// Option applies a configuration option to a catalog store.
type Option func(*options)

// WithClock sets the clock used for default dates on create.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the uuid-based ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}
