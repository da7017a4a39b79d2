package model

import (
	"fmt"
	"strings"
)

// ExperienceLevel is how experienced a participant says they are.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// TeamPreference describes whether a participant wants to team up.
type TeamPreference string

const (
	TeamSolo       TeamPreference = "Solo"
	TeamLookingFor TeamPreference = "Looking for team"
	TeamHaveTeam   TeamPreference = "Have team"
)

// Availability is how much time a participant can commit.
type Availability string

const (
	AvailabilityLow    Availability = "Low"
	AvailabilityMedium Availability = "Medium"
	AvailabilityHigh   Availability = "High"
)

// UserProfile is the questionnaire answer used to rank hackathons.
type UserProfile struct {
	Skills                []string        `json:"skills"`
	ExperienceLevel       ExperienceLevel `json:"experience_level"`
	PreferredMode         Mode            `json:"preferred_mode"`
	PreviousParticipation bool            `json:"previous_participation"`
	TeamPreference        TeamPreference  `json:"team_preference"`
	Availability          Availability    `json:"availability"`
}

// DefaultProfile mirrors the questionnaire's initial answers.
func DefaultProfile() UserProfile {
	return UserProfile{
		ExperienceLevel: ExperienceIntermediate,
		PreferredMode:   ModeHybrid,
		TeamPreference:  TeamLookingFor,
		Availability:    AvailabilityMedium,
	}
}

// Validate is the caller-side check run before asking for recommendations.
// Ranking itself accepts any profile.
func (p UserProfile) Validate() error {
	if len(CleanTags(p.Skills)) == 0 {
		return fmt.Errorf("%w: select at least one skill", ErrInvalidProfile)
	}
	return nil
}

// HasSkill reports whether any skill equals tag, ignoring case.
func (p UserProfile) HasSkill(tag string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, tag) {
			return true
		}
	}
	return false
}
