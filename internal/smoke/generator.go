package smoke

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/hackstack/internal/domain/model"
)

var (
	domains    = []string{"AI", "Web", "Blockchain", "Mobile", "Cybersecurity", "Game Dev", "Climate", "Health"}
	levels     = []model.Level{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced, model.LevelAll}
	modes      = []model.Mode{model.ModeOnline, model.ModeInPerson, model.ModeHybrid}
	techs      = []string{"Go", "Python", "React", "Rust", "Solidity", "Kotlin", "Unity", "PyTorch"}
	organizers = []string{"Smoke Labs", "Test Foundation", "Probe Collective"}
)

// pick returns a random element using crypto/rand.
func pick[T any](items []T) T {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(items))))
	if err != nil {
		return items[0]
	}
	return items[n.Int64()]
}

// between returns a random integer in [lo, hi].
func between(lo, hi int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return lo
	}
	return lo + int(n.Int64())
}

// newMarker returns a token unique to one run so search can find its records.
func newMarker() string {
	return "smoke" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// generateHackathons builds n random hosting forms tagged with marker.
func generateHackathons(marker string, n int) []created {
	out := make([]created, n)
	for i := range out {
		domain := pick(domains)
		minTeam := between(1, 3)
		out[i] = created{
			key: uuid.NewString(),
			hackathon: model.Hackathon{
				Title:       fmt.Sprintf("%s %s Sprint %d", marker, domain, i+1),
				Description: fmt.Sprintf("Generated %s hackathon for smoke testing.", domain),
				Organizer:   pick(organizers),
				Domain:      domain,
				Level:       pick(levels),
				Mode:        pick(modes),
				DaysLeft:    between(1, 45),
				TeamSize:    model.TeamSize{Min: minTeam, Max: minTeam + between(0, 4)},
				TechStack:   []string{pick(techs), pick(techs), marker},
			},
		}
	}
	return out
}
