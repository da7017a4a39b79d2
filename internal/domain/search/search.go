// Package search narrows a catalog snapshot by free text and selectors,
// relaxing the criteria step by step so the result is never empty when the
// catalog is not.
package search

import (
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
)

// All is the selector value meaning "no filter". An empty selector means the same.
const All = "all"

// Stage names which step of the cascade produced a result.
type Stage string

const (
	StageUnfiltered Stage = "unfiltered"
	StageStrict     Stage = "strict"
	StageRelaxed    Stage = "relaxed"
	StageQueryOnly  Stage = "query_only"
	StageFallback   Stage = "fallback"
)

// Criteria is what the browse grid sends.
type Criteria struct {
	Query  string `json:"q"`
	Domain string `json:"domain"`
	Mode   string `json:"mode"`
	Level  string `json:"level"`
	Status string `json:"status"`
}

// Active reports whether any part of c filters anything.
func (c Criteria) Active() bool {
	return c.Query != "" ||
		selects(c.Domain) || selects(c.Mode) || selects(c.Level) || selects(c.Status)
}

func selects(v string) bool {
	return v != "" && !strings.EqualFold(v, All)
}

// Filter returns the hackathons matching c, relaxing c until something matches.
func Filter(c Criteria, hs []model.Hackathon) []model.Hackathon {
	out, _ := FilterWithStage(c, hs)
	return out
}

// FilterWithStage is Filter plus the stage that produced the result.
// Matching stages return new slices in catalog order; the fast path and the
// fallback return hs itself.
func FilterWithStage(c Criteria, hs []model.Hackathon) ([]model.Hackathon, Stage) {
	if !c.Active() {
		return hs, StageUnfiltered
	}
	q := strings.ToLower(c.Query)
	for _, st := range stages {
		if st.needsQuery && q == "" {
			continue
		}
		if out := keep(hs, func(h *model.Hackathon) bool { return st.match(c, q, h) }); len(out) > 0 {
			return out, st.name
		}
	}
	return hs, StageFallback
}

type stage struct {
	name       Stage
	needsQuery bool
	match      func(c Criteria, q string, h *model.Hackathon) bool
}

var stages = []stage{
	{name: StageStrict, match: strictMatch},
	{name: StageRelaxed, needsQuery: true, match: relaxedMatch},
	{name: StageQueryOnly, needsQuery: true, match: queryOnlyMatch},
}

func strictMatch(c Criteria, q string, h *model.Hackathon) bool {
	return (q == "" || matchesText(h, q, true)) &&
		domainMatches(c.Domain, h) &&
		selectorMatches(c.Mode, string(h.Mode)) &&
		levelMatches(c.Level, h.Level) &&
		selectorMatches(c.Status, string(h.Status))
}

// relaxedMatch drops organizer from the text fields and every selector but domain.
func relaxedMatch(c Criteria, q string, h *model.Hackathon) bool {
	return matchesText(h, q, false) && domainMatches(c.Domain, h)
}

func queryOnlyMatch(_ Criteria, q string, h *model.Hackathon) bool {
	return matchesText(h, q, true)
}

// matchesText looks for the lowercased query q in the searchable fields.
func matchesText(h *model.Hackathon, q string, withOrganizer bool) bool {
	if contains(h.Title, q) || contains(h.Description, q) || contains(h.Domain, q) {
		return true
	}
	if withOrganizer && contains(h.Organizer, q) {
		return true
	}
	for _, t := range h.TechStack {
		if contains(t, q) {
			return true
		}
	}
	return false
}

func domainMatches(domain string, h *model.Hackathon) bool {
	return !selects(domain) || strings.EqualFold(h.Domain, domain)
}

func selectorMatches(want, got string) bool {
	return !selects(want) || strings.EqualFold(got, want)
}

// levelMatches treats a hackathon open to every level as matching any filter.
func levelMatches(want string, l model.Level) bool {
	return !selects(want) || strings.EqualFold(string(l), want) || strings.EqualFold(string(l), All)
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}

func keep(hs []model.Hackathon, pred func(*model.Hackathon) bool) []model.Hackathon {
	var out []model.Hackathon
	for i := range hs {
		if pred(&hs[i]) {
			out = append(out, hs[i])
		}
	}
	return out
}
