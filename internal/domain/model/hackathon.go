// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Level is the difficulty tier a hackathon targets.
type Level string

// Known levels. LevelAll marks an event open to every tier.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelAll          Level = "all"
)

// Mode is how a hackathon is attended.
type Mode string

const (
	ModeOnline   Mode = "online"
	ModeInPerson Mode = "in-person"
	ModeHybrid   Mode = "hybrid"
)

// Status is the registration state of a hackathon.
type Status string

const (
	StatusOpen        Status = "open"
	StatusClosingSoon Status = "closing-soon"
	StatusEnded       Status = "ended"
)

// Defaults applied to newly hosted hackathons when the form leaves a field blank.
const (
	DefaultPrize        = "$0"
	DefaultEligibility  = "Open to all"
	DefaultTeamSizeMin  = 1
	DefaultTeamSizeMax  = 5
	DefaultDaysLeft     = 30
	dateLayout          = "2006-01-02"
	maxTitleLength      = 200
	maxDescriptionChars = 5000
)

// TeamSize bounds how many people may form a team.
type TeamSize struct {
	Min int `json:"min" yaml:"min" toml:"min"`
	Max int `json:"max" yaml:"max" toml:"max"`
}

// Hackathon is a catalog record. The scoring and search code treats it as read-only.
type Hackathon struct {
	ID              string   `json:"id" yaml:"id" toml:"id"`
	Title           string   `json:"title" yaml:"title" toml:"title"`
	Description     string   `json:"description" yaml:"description" toml:"description"`
	FullDescription string   `json:"full_description,omitempty" yaml:"full_description" toml:"full_description"`
	Organizer       string   `json:"organizer" yaml:"organizer" toml:"organizer"`
	Prize           string   `json:"prize,omitempty" yaml:"prize" toml:"prize"`
	Eligibility     string   `json:"eligibility,omitempty" yaml:"eligibility" toml:"eligibility"`
	StartDate       string   `json:"start_date,omitempty" yaml:"start_date" toml:"start_date"`
	EndDate         string   `json:"end_date,omitempty" yaml:"end_date" toml:"end_date"`
	Domain          string   `json:"domain" yaml:"domain" toml:"domain"`
	Level           Level    `json:"level" yaml:"level" toml:"level"`
	Mode            Mode     `json:"mode" yaml:"mode" toml:"mode"`
	Status          Status   `json:"status" yaml:"status" toml:"status"`
	DaysLeft        int      `json:"days_left" yaml:"days_left" toml:"days_left"`
	Participants    int      `json:"participants" yaml:"participants" toml:"participants"`
	TeamSize        TeamSize `json:"team_size" yaml:"team_size" toml:"team_size"`
	TechStack       []string `json:"tech_stack" yaml:"tech_stack" toml:"tech_stack"`
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
		return true
	}
	return false
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnline, ModeInPerson, ModeHybrid:
		return true
	}
	return false
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosingSoon, StatusEnded:
		return true
	}
	return false
}

// ApplyDefaults fills blank optional fields the way the hosting form does and
// lowercases the enum fields. now supplies the date used for missing start
// and end dates. Ended events keep a zero DaysLeft.
func (h *Hackathon) ApplyDefaults(now time.Time) {
	if strings.TrimSpace(h.FullDescription) == "" {
		h.FullDescription = h.Description
	}
	if strings.TrimSpace(h.Prize) == "" {
		h.Prize = DefaultPrize
	}
	if strings.TrimSpace(h.Eligibility) == "" {
		h.Eligibility = DefaultEligibility
	}
	today := now.Format(dateLayout)
	if h.StartDate == "" {
		h.StartDate = today
	}
	if h.EndDate == "" {
		h.EndDate = today
	}
	if h.TeamSize.Min == 0 {
		h.TeamSize.Min = DefaultTeamSizeMin
	}
	if h.TeamSize.Max == 0 {
		h.TeamSize.Max = DefaultTeamSizeMax
	}
	h.Level = Level(normalize(string(h.Level), string(LevelAll)))
	h.Mode = Mode(normalize(string(h.Mode), string(ModeOnline)))
	h.Status = Status(normalize(string(h.Status), string(StatusOpen)))
	if h.DaysLeft == 0 && h.Status != StatusEnded {
		h.DaysLeft = DefaultDaysLeft
	}
	h.TechStack = CleanTags(h.TechStack)
}

// normalize lowercases an enum value, substituting def when it is blank.
func normalize(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

// Validate checks the fields a catalog needs before storing a record.
func (h *Hackathon) Validate() error {
	switch {
	case strings.TrimSpace(h.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidHackathon)
	case len(h.Title) > maxTitleLength:
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrInvalidHackathon, maxTitleLength)
	case strings.TrimSpace(h.Organizer) == "":
		return fmt.Errorf("%w: organizer is required", ErrInvalidHackathon)
	case strings.TrimSpace(h.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidHackathon)
	case len(h.Description) > maxDescriptionChars:
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrInvalidHackathon, maxDescriptionChars)
	case strings.TrimSpace(h.Domain) == "":
		return fmt.Errorf("%w: domain is required", ErrInvalidHackathon)
	case !h.Level.Valid():
		return fmt.Errorf("%w: unknown level %q", ErrInvalidHackathon, h.Level)
	case !h.Mode.Valid():
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidHackathon, h.Mode)
	case !h.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidHackathon, h.Status)
	case h.Participants < 0:
		return fmt.Errorf("%w: participants cannot be negative", ErrInvalidHackathon)
	case h.TeamSize.Min < 1 || h.TeamSize.Max < 1:
		return fmt.Errorf("%w: team size bounds must be at least 1", ErrInvalidHackathon)
	case h.TeamSize.Min > h.TeamSize.Max:
		return fmt.Errorf("%w: team size min %d exceeds max %d", ErrInvalidHackathon, h.TeamSize.Min, h.TeamSize.Max)
	}
	return nil
}

// Clone returns a deep copy so callers can hand records out without sharing the tech stack.
func (h Hackathon) Clone() Hackathon {
	h.TechStack = slices.Clone(h.TechStack)
	return h
}

// CleanTags trims tags and drops empty ones, keeping order.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
