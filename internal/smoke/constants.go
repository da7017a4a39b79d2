package smoke

import "time"

// Run defaults.
const (
	DefaultHackathons = 12
	DefaultWorkers    = 4
	DefaultTimeout    = 10 * time.Second
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// Response limits enforced by verification.
const (
	maxRecommendations = 5
	maxReasonLength    = 150
	maxConfidence      = 100
)
