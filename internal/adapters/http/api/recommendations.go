package api

import (
	"context"
	"net/http"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
)

// RecommendationDependencies defines the ranking operation.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, p model.UserProfile) ([]model.Recommendation, recommend.Stage, error)
}

type recommendResponse struct {
	Stage recommend.Stage        `json:"stage"`
	Items []model.Recommendation `json:"items"`
}

// RecommendationHandler handles POST /recommendations.
type RecommendationHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(deps RecommendationDependencies) *RecommendationHandler {
	return &RecommendationHandler{deps: deps}
}

// HandleRecommend ranks the catalog for the posted questionnaire. Missing
// answers take the questionnaire defaults; at least one skill is required.
func (h *RecommendationHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, op, http.MethodPost)
		return
	}
	p := model.DefaultProfile()
	if err := decodeJSON(r, w, &p); err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	recs, stage, err := h.deps.Recommend(r.Context(), p)
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{Stage: stage, Items: recs})
}
