// Package smoke exercises a running hackstack server end to end: it hosts
// random hackathons, checks the recommendation and search answers, and
// removes what it created.
package smoke

import (
	"time"

	"github.com/okian/hackstack/internal/domain/model"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Hackathons int           // Number of hackathons to host
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Log every request outcome
}

// DefaultConfig returns the settings used by the CLI when flags are left alone.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:9080",
		Hackathons: DefaultHackathons,
		Workers:    DefaultWorkers,
		Timeout:    DefaultTimeout,
	}
}

// Stats holds run statistics.
type Stats struct {
	Created         int           `json:"created"`
	Replayed        int           `json:"replayed"`
	Failed          int           `json:"failed"`
	Deleted         int           `json:"deleted"`
	Recommendations int           `json:"recommendations"`
	SearchMatches   int           `json:"search_matches"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	Duration        time.Duration `json:"duration"`
}

// created pairs a hosted record with the idempotency key used to host it.
type created struct {
	key       string
	hackathon model.Hackathon
}

type searchResponse struct {
	Stage string            `json:"stage"`
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

type recommendResponse struct {
	Stage string                 `json:"stage"`
	Items []model.Recommendation `json:"items"`
}
