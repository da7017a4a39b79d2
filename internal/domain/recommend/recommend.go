// Package recommend ranks catalog hackathons for a participant profile and
// falls back to broader suggestions when ranking produces nothing.
package recommend

import (
	"fmt"
	"sort"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/scoring"
)

// MaxResults caps every recommendation list.
const MaxResults = 5

const (
	activeMinResults   = 3
	popularTopScore    = 60
	popularScoreStep   = 5
	popularScoreFloor  = 40
	popularReasonShape = "Popular hackathon with %d+ participants. Great community!"
)

// Stage names which step of the cascade produced a result.
type Stage string

const (
	StagePrimary Stage = "primary"
	StageActive  Stage = "active"
	StagePopular Stage = "popular"
)

// Recommender turns a profile and a catalog snapshot into at most five
// recommendations. It holds no mutable state and is safe for concurrent use.
type Recommender struct {
	scorer     scoring.Scorer
	maxResults int
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithScorer replaces the default heuristic scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(r *Recommender) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithMaxResults lowers the result cap. Values outside 1..MaxResults are ignored.
func WithMaxResults(n int) Option {
	return func(r *Recommender) {
		if n > 0 && n <= MaxResults {
			r.maxResults = n
		}
	}
}

// New creates a Recommender.
func New(opts ...Option) *Recommender {
	r := &Recommender{
		scorer:     scoring.NewHeuristic(),
		maxResults: MaxResults,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns ranked recommendations for p over hs.
func (r *Recommender) Recommend(p model.UserProfile, hs []model.Hackathon) []model.Recommendation {
	out, _ := r.RecommendWithStage(p, hs)
	return out
}

// RecommendWithStage is Recommend plus the stage that produced the result.
// Stages run in order and the first that accepts its output wins. The input
// slice is never reordered.
func (r *Recommender) RecommendWithStage(p model.UserProfile, hs []model.Hackathon) ([]model.Recommendation, Stage) {
	for _, st := range stages {
		if out, ok := st.run(r, p, hs); ok {
			return out, st.name
		}
	}
	return []model.Recommendation{}, StagePopular
}

type stage struct {
	name Stage
	run  func(r *Recommender, p model.UserProfile, hs []model.Hackathon) ([]model.Recommendation, bool)
}

var stages = []stage{
	{name: StagePrimary, run: primaryStage},
	{name: StageActive, run: activeStage},
	{name: StagePopular, run: popularStage},
}

// primaryStage ranks the whole catalog. Any result at all is accepted.
func primaryStage(r *Recommender, p model.UserProfile, hs []model.Hackathon) ([]model.Recommendation, bool) {
	out := r.ranked(p, hs)
	return out, len(out) > 0
}

// activeStage ranks what has not ended and needs at least three picks.
func activeStage(r *Recommender, p model.UserProfile, hs []model.Hackathon) ([]model.Recommendation, bool) {
	out := r.ranked(p, withoutEnded(hs))
	return out, len(out) >= activeMinResults
}

// popularStage is terminal.
func popularStage(r *Recommender, _ model.UserProfile, hs []model.Hackathon) ([]model.Recommendation, bool) {
	return r.popular(withoutEnded(hs)), true
}

type scored struct {
	h     model.Hackathon
	score int
}

// ranked scores every hackathon, sorts by score descending keeping catalog
// order for ties, and keeps the top results.
func (r *Recommender) ranked(p model.UserProfile, hs []model.Hackathon) []model.Recommendation {
	if len(hs) == 0 {
		return nil
	}
	items := make([]scored, len(hs))
	for i := range hs {
		items[i] = scored{h: hs[i], score: r.scorer.Score(p, hs[i])}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	items = items[:min(len(items), r.maxResults)]
	out := make([]model.Recommendation, len(items))
	for i, it := range items {
		out[i] = model.Recommendation{
			ID:              it.h.ID,
			Title:           it.h.Title,
			Reason:          r.scorer.Reason(p, it.h),
			ConfidenceScore: it.score,
		}
	}
	return out
}

// popular orders by participant count and assigns synthetic, strictly
// non-increasing confidence.
func (r *Recommender) popular(hs []model.Hackathon) []model.Recommendation {
	if len(hs) == 0 {
		return []model.Recommendation{}
	}
	sorted := make([]model.Hackathon, len(hs))
	copy(sorted, hs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Participants > sorted[j].Participants })

	sorted = sorted[:min(len(sorted), r.maxResults)]
	out := make([]model.Recommendation, len(sorted))
	for i, h := range sorted {
		out[i] = model.Recommendation{
			ID:              h.ID,
			Title:           h.Title,
			Reason:          scoring.Truncate(fmt.Sprintf(popularReasonShape, max(h.Participants, 0))),
			ConfidenceScore: PopularConfidence(i),
		}
	}
	return out
}

// PopularConfidence is the synthetic score for the i-th popular pick.
func PopularConfidence(i int) int {
	return max(popularTopScore-popularScoreStep*i, popularScoreFloor)
}

func withoutEnded(hs []model.Hackathon) []model.Hackathon {
	out := make([]model.Hackathon, 0, len(hs))
	for i := range hs {
		if hs[i].Status != model.StatusEnded {
			out = append(out, hs[i])
		}
	}
	return out
}
