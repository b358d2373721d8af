// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/leetview/internal/app"
	"github.com/okian/leetview/internal/domain/types"
	"github.com/okian/leetview/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListSolutions(ctx context.Context, language string) ([]types.FileEntry, error)
	GetSolution(ctx context.Context, language, path string) (types.Solution, error)
	SaveRating(ctx context.Context, language, path string, rating int) (types.RatingReceipt, error)
	Languages(ctx context.Context) ([]types.Language, error)
	IsLanguage(ctx context.Context, name string) bool
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	solutionsHandler *SolutionsHandler
	ratingsHandler   *RatingsHandler
	languagesHandler *LanguagesHandler

	allowedOrigins []string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow list; "*" allows any origin.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if origins != nil {
			s.allowedOrigins = origins
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		solutionsHandler: NewSolutionsHandler(deps),
		ratingsHandler:   NewRatingsHandler(deps),
		languagesHandler: NewLanguagesHandler(deps),
		allowedOrigins:   []string{"http://localhost:5173"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/languages", MetricsMiddleware(s.languagesHandler.HandleGetLanguages, "languages"))
	mux.HandleFunc("/ratings", MetricsMiddleware(s.ratingsHandler.HandlePostRating, "ratings"))
	mux.HandleFunc("/solutions", MetricsMiddleware(s.solutionsHandler.HandleSolutions, "solutions"))
	mux.HandleFunc("/solutions/", MetricsMiddleware(s.solutionsHandler.HandleSolutions, "solutions"))
}

// Handler wraps h with the cross-cutting middleware every route shares.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestID(CORS(s.allowedOrigins)(h))
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeServiceError maps err onto a status and code. Server errors are
// logged; the client only sees a generic message for them.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Get().Error(ctx, "request failed", logger.Error(err))
		writeError(w, status, code, nil)
		return
	}
	writeError(w, status, code, err)
}

// statusFor translates the service taxonomy into HTTP terms.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, service.ErrPathTraversal):
		return http.StatusBadRequest, "path_traversal"
	case errors.Is(err, service.ErrValidation), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, service.ErrUnknownLanguage):
		return http.StatusNotFound, "unknown_language"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

// allowMethods writes a 405 unless r uses one of methods.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	for _, m := range methods {
		w.Header().Add("Allow", m)
	}
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(r.Method+" "+r.URL.Path, ErrMethodNotAllowed))
	return false
}
