package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
)

const (
	// DefaultReason is used when no specific reason applies.
	DefaultReason = "Great opportunity for you"

	maxReasonLength = 150
	reasonEllipsis  = "..."
	reasonJoiner    = " with "
	maxReasonParts  = 2
	ampleTimeDays   = 7
)

// Reason builds the human-readable justification for recommending h to p.
// Candidates are domain, difficulty, mode, then preparation time; the first
// two that apply are joined.
func Reason(p model.UserProfile, h model.Hackathon) string {
	parts := make([]string, 0, 4)

	if p.HasSkill(h.Domain) {
		parts = append(parts, fmt.Sprintf("Matches your %s skills", h.Domain))
	}
	if LevelRank(h.Level) <= ExperienceRank(p.ExperienceLevel) {
		parts = append(parts, fmt.Sprintf("%s-friendly difficulty", h.Level))
	}
	if strings.EqualFold(string(h.Mode), string(p.PreferredMode)) {
		parts = append(parts, fmt.Sprintf("Your preferred %s format", h.Mode))
	}
	if h.DaysLeft > ampleTimeDays {
		parts = append(parts, fmt.Sprintf("Ample time to prepare (%d days left)", h.DaysLeft))
	}

	if len(parts) == 0 {
		return DefaultReason
	}
	if len(parts) > maxReasonParts {
		parts = parts[:maxReasonParts]
	}
	return Truncate(strings.Join(parts, reasonJoiner))
}

// Truncate caps s at 150 characters, replacing the tail with an ellipsis.
// Length is counted in runes so multi-byte titles are never split.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxReasonLength {
		return s
	}
	return string(r[:maxReasonLength-len(reasonEllipsis)]) + reasonEllipsis
}
