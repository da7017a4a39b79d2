// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/okian/hackstack/internal/adapters/repository"
	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/pkg/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	HackathonDependencies
	RecommendationDependencies
	AdminDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	hackathonsHandler     *HackathonsHandler
	recommendationHandler *RecommendationHandler
	adminHandler          *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:         NewHealthHandler(),
		statsHandler:          NewStatsHandler(deps),
		hackathonsHandler:     NewHackathonsHandler(deps),
		recommendationHandler: NewRecommendationHandler(deps),
		adminHandler:          NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/hackathons", MetricsMiddleware(s.hackathonsHandler.HandleCollection, "hackathons"))
	mux.HandleFunc("/hackathons/", MetricsMiddleware(s.hackathonsHandler.HandleItem, "hackathon"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationHandler.HandleRecommend, "recommendations"))
	mux.HandleFunc("/admin/hackathons", MetricsMiddleware(s.adminHandler.HandleSearch, "admin_hackathons"))
	mux.HandleFunc("/admin/stats", MetricsMiddleware(s.adminHandler.HandleStats, "admin_stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a service error onto a status and code.
func writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, ErrBadRequest):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, model.ErrInvalidHackathon):
		status, code = http.StatusBadRequest, "invalid_hackathon"
	case errors.Is(err, model.ErrInvalidProfile):
		status, code = http.StatusBadRequest, "invalid_profile"
	case errors.Is(err, repository.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, ErrUnsupportedMedia):
		status, code = http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, ErrMethodNotAllowed):
		status, code = http.StatusMethodNotAllowed, "method_not_allowed"
	}
	if status >= http.StatusInternalServerError {
		logger.Get().Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}

// methodNotAllowed answers with 405 and the allowed methods.
func methodNotAllowed(w http.ResponseWriter, r *http.Request, op string, allowed string) {
	w.Header().Set("Allow", allowed)
	writeFailure(r.Context(), w, NewKind(op, ErrMethodNotAllowed))
}

// decodeJSON reads one JSON document from the body into v. Unknown fields
// and trailing data are rejected.
func decodeJSON(r *http.Request, w http.ResponseWriter, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return ErrUnsupportedMedia
		}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must hold a single JSON value", ErrBadRequest)
	}
	return nil
}
