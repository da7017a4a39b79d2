// Package scoring rates how well a hackathon fits a participant profile.
package scoring

import (
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
)

// Score bounds and the neutral starting point.
const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100
)

// Additive weights, applied in this order.
const (
	domainMatchBonus   = 30
	domainPartialBonus = 10

	difficultyFitBonus        = 25
	difficultyStretchBonus    = 15
	difficultyMismatchPenalty = -20

	modeMatchBonus  = 15
	modeHybridBonus = 8

	statusOpenBonus        = 20
	statusClosingSoonBonus = 10
	statusEndedPenalty     = -50

	deadlineRushedDays    = 3
	deadlineRushedPenalty = -15
	deadlineTightDays     = 7
	deadlineTightPenalty  = -8
	deadlineFarDays       = 60
	deadlineFarPenalty    = -5

	soloTeamMax       = 1
	haveTeamMin       = 4
	teamFitBonus      = 10
	popularThreshold  = 500
	popularityBonus   = 5
	availHighBonus    = 10
	availMediumBonus  = 5
	returningBonus    = 5
	defaultDifficulty = 2
)

// Scorer rates a (profile, hackathon) pair and explains the rating.
type Scorer interface {
	// Score returns a value in [0,100].
	Score(p model.UserProfile, h model.Hackathon) int
	// Reason returns a short, non-empty justification.
	Reason(p model.UserProfile, h model.Hackathon) string
}

// Heuristic is the additive weighted Scorer. The zero value is ready to use.
type Heuristic struct{}

// NewHeuristic returns the default Scorer.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Score implements Scorer.
func (Heuristic) Score(p model.UserProfile, h model.Hackathon) int { return Score(p, h) }

// Reason implements Scorer.
func (Heuristic) Reason(p model.UserProfile, h model.Hackathon) string { return Reason(p, h) }

// Score computes the confidence score for h under p.
// Intermediate sums may leave [0,100]; only the result is clamped.
func Score(p model.UserProfile, h model.Hackathon) int {
	score := baseScore

	switch {
	case p.HasSkill(h.Domain):
		score += domainMatchBonus
	case len(p.Skills) > 0:
		score += domainPartialBonus
	}

	userRank, hackRank := ExperienceRank(p.ExperienceLevel), LevelRank(h.Level)
	switch {
	case hackRank <= userRank:
		score += difficultyFitBonus
	case hackRank == userRank+1:
		score += difficultyStretchBonus
	default:
		score += difficultyMismatchPenalty
	}

	switch {
	case strings.EqualFold(string(h.Mode), string(p.PreferredMode)):
		score += modeMatchBonus
	case strings.EqualFold(string(h.Mode), string(model.ModeHybrid)) &&
		!strings.EqualFold(string(p.PreferredMode), string(model.ModeInPerson)):
		score += modeHybridBonus
	}

	switch model.Status(strings.ToLower(string(h.Status))) {
	case model.StatusOpen:
		score += statusOpenBonus
	case model.StatusClosingSoon:
		score += statusClosingSoonBonus
	case model.StatusEnded:
		score += statusEndedPenalty
	}

	switch {
	case h.DaysLeft < deadlineRushedDays:
		score += deadlineRushedPenalty
	case h.DaysLeft < deadlineTightDays:
		score += deadlineTightPenalty
	case h.DaysLeft > deadlineFarDays:
		score += deadlineFarPenalty
	}

	switch p.TeamPreference {
	case model.TeamSolo:
		if h.TeamSize.Max <= soloTeamMax {
			score += teamFitBonus
		}
	case model.TeamHaveTeam:
		if h.TeamSize.Max >= haveTeamMin {
			score += teamFitBonus
		}
	}

	if h.Participants > popularThreshold {
		score += popularityBonus
	}

	switch p.Availability {
	case model.AvailabilityHigh:
		score += availHighBonus
	case model.AvailabilityMedium:
		score += availMediumBonus
	}

	if p.PreviousParticipation {
		score += returningBonus
	}

	return clamp(score)
}

// ExperienceRank maps a profile level to 1..3. Unknown values rank as Intermediate.
func ExperienceRank(l model.ExperienceLevel) int {
	return rankOf(string(l))
}

// LevelRank maps a hackathon level to 1..3. "all" and unknown values rank as intermediate.
func LevelRank(l model.Level) int {
	return rankOf(string(l))
}

func rankOf(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case string(model.LevelBeginner):
		return 1
	case string(model.LevelIntermediate):
		return 2
	case string(model.LevelAdvanced):
		return 3
	}
	return defaultDifficulty
}

func clamp(score int) int {
	return max(minScore, min(maxScore, score))
}
