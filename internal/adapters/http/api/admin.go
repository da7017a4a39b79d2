package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/hackstack/internal/domain/model"
)

var (
	errMissingID             = errors.New("missing hackathon id")
	errIdempotencyKeyTooLong = errors.New("idempotency key longer than 255 bytes")
)

// AdminDependencies defines the management-table operations.
type AdminDependencies interface {
	AdminSearch(ctx context.Context, query string) ([]model.Hackathon, error)
	Stats(ctx context.Context) (model.CatalogStats, error)
}

type adminListResponse struct {
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

// AdminHandler handles /admin/hackathons and /admin/stats.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleSearch handles GET /admin/hackathons?q=.
func (h *AdminHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_search"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, op, http.MethodGet)
		return
	}
	items, err := h.deps.AdminSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	if items == nil {
		items = []model.Hackathon{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Count: len(items), Items: items})
}

// HandleStats handles GET /admin/stats.
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_stats"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, op, http.MethodGet)
		return
	}
	st, err := h.deps.Stats(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}
