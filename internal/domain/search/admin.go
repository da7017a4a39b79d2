package search

import (
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
)

// Admin is the management-table lookup: a plain substring match over title,
// organizer and domain with no relaxation. An empty query returns hs.
func Admin(query string, hs []model.Hackathon) []model.Hackathon {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return hs
	}
	out := keep(hs, func(h *model.Hackathon) bool {
		return contains(h.Title, q) || contains(h.Organizer, q) || contains(h.Domain, q)
	})
	if out == nil {
		return []model.Hackathon{}
	}
	return out
}
