package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/search"
)

// IdempotencyKeyHeader lets a client retry POST /hackathons safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// ReplayedHeader is set to "true" when a create was answered from a remembered key.
const ReplayedHeader = "Idempotent-Replayed"

const maxIdempotencyKeyLen = 255

// HackathonDependencies defines the catalog operations the handler needs.
type HackathonDependencies interface {
	Search(ctx context.Context, c search.Criteria) ([]model.Hackathon, search.Stage, error)
	Create(ctx context.Context, h model.Hackathon, key string) (model.Hackathon, bool, error)
	Get(ctx context.Context, id string) (model.Hackathon, error)
	Update(ctx context.Context, id string, p model.HackathonPatch) (model.Hackathon, error)
	Delete(ctx context.Context, id string) error
}

// searchResponse is the browse-grid answer.
type searchResponse struct {
	Stage search.Stage      `json:"stage"`
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

// HackathonsHandler handles /hackathons and /hackathons/{id}.
type HackathonsHandler struct {
	deps HackathonDependencies
}

// NewHackathonsHandler creates a new hackathons handler.
func NewHackathonsHandler(deps HackathonDependencies) *HackathonsHandler {
	return &HackathonsHandler{deps: deps}
}

// HandleCollection handles GET (search) and POST (create) on /hackathons.
func (h *HackathonsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleSearch(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w, r, "api.hackathons", "GET, POST")
	}
}

func (h *HackathonsHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_hackathons"
	q := r.URL.Query()
	c := search.Criteria{
		Query:  strings.TrimSpace(q.Get("q")),
		Domain: q.Get("domain"),
		Mode:   q.Get("mode"),
		Level:  q.Get("level"),
		Status: q.Get("status"),
	}
	items, stage, err := h.deps.Search(r.Context(), c)
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	if items == nil {
		items = []model.Hackathon{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Stage: stage, Count: len(items), Items: items})
}

func (h *HackathonsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_hackathon"
	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		writeFailure(r.Context(), w, WrapKind(op, ErrBadRequest, errIdempotencyKeyTooLong))
		return
	}

	var req model.Hackathon
	if err := decodeJSON(r, w, &req); err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	created, replayed, err := h.deps.Create(r.Context(), req, key)
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	if replayed {
		w.Header().Set(ReplayedHeader, "true")
	}
	w.Header().Set("Location", "/hackathons/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// HandleItem handles GET, PUT and DELETE on /hackathons/{id}.
func (h *HackathonsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.hackathon"
	id := strings.TrimPrefix(r.URL.Path, "/hackathons/")
	if id == "" || strings.Contains(id, "/") {
		writeFailure(r.Context(), w, WrapKind(op, ErrBadRequest, errMissingID))
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := h.deps.Get(r.Context(), id)
		if err != nil {
			writeFailure(r.Context(), w, Wrap("api.get_hackathon", err))
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodPut, http.MethodPatch:
		var p model.HackathonPatch
		if err := decodeJSON(r, w, &p); err != nil {
			writeFailure(r.Context(), w, Wrap("api.update_hackathon", err))
			return
		}
		rec, err := h.deps.Update(r.Context(), id, p)
		if err != nil {
			writeFailure(r.Context(), w, Wrap("api.update_hackathon", err))
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := h.deps.Delete(r.Context(), id); err != nil {
			writeFailure(r.Context(), w, Wrap("api.delete_hackathon", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, op, "GET, PUT, PATCH, DELETE")
	}
}
