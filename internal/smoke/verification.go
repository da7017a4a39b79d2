package smoke

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/search"
)

// verifyRecommendations checks the guarantees every recommendation list carries.
func verifyRecommendations(recs []model.Recommendation) error {
	if len(recs) > maxRecommendations {
		return fmt.Errorf("%w: %d recommendations exceed the cap of %d", ErrInvariant, len(recs), maxRecommendations)
	}
	seen := make(map[string]struct{}, len(recs))
	for i, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: hackathon %s recommended twice", ErrInvariant, r.ID)
		}
		seen[r.ID] = struct{}{}

		if r.ConfidenceScore < 0 || r.ConfidenceScore > maxConfidence {
			return fmt.Errorf("%w: confidence %d of %s outside 0..%d", ErrInvariant, r.ConfidenceScore, r.ID, maxConfidence)
		}
		if strings.TrimSpace(r.Reason) == "" {
			return fmt.Errorf("%w: empty reason for %s", ErrInvariant, r.ID)
		}
		if utf8.RuneCountInString(r.Reason) > maxReasonLength {
			return fmt.Errorf("%w: reason for %s longer than %d characters", ErrInvariant, r.ID, maxReasonLength)
		}
		if i > 0 && recs[i-1].ConfidenceScore < r.ConfidenceScore {
			return fmt.Errorf("%w: entry %d scores higher than entry %d", ErrInvariant, i, i-1)
		}
	}
	return nil
}

// verifySearch checks that a marker search found every hosted record and nothing else.
func verifySearch(resp searchResponse, marker string, hosted []created) error {
	if resp.Count != len(resp.Items) {
		return fmt.Errorf("%w: count %d does not match %d items", ErrInvariant, resp.Count, len(resp.Items))
	}
	if resp.Stage != string(search.StageStrict) {
		return fmt.Errorf("%w: marker search answered by stage %q", ErrInvariant, resp.Stage)
	}
	ids := make([]string, 0, len(resp.Items))
	for _, h := range resp.Items {
		if !strings.Contains(strings.ToLower(h.Title), marker) && !slices.Contains(h.TechStack, marker) {
			return fmt.Errorf("%w: %s does not mention %s", ErrInvariant, h.ID, marker)
		}
		ids = append(ids, h.ID)
	}
	for _, c := range hosted {
		if !slices.Contains(ids, c.hackathon.ID) {
			return fmt.Errorf("%w: hosted %s missing from search", ErrInvariant, c.hackathon.ID)
		}
	}
	return nil
}
