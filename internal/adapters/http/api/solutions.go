package api

import (
	"context"
	"net/http"
	"strings"
)

// SolutionsDependencies defines the operations behind /solutions.
type SolutionsDependencies interface {
	ListSolutions(ctx context.Context, language string) ([]Entry, error)
	GetSolution(ctx context.Context, language, path string) (Solution, error)
	IsLanguage(ctx context.Context, name string) bool
}

// SolutionsHandler serves listings and segmented files.
type SolutionsHandler struct {
	deps SolutionsDependencies
}

// NewSolutionsHandler creates a new solutions handler.
func NewSolutionsHandler(deps SolutionsDependencies) *SolutionsHandler {
	return &SolutionsHandler{deps: deps}
}

// HandleSolutions handles every GET under /solutions.
//
//	/solutions                   flat listing
//	/solutions/{language}        language listing
//	/solutions/{language}/{path} language file
//	/solutions/{path}            flat file
//
// The first segment is a language only when it names a known language
// directory; otherwise the whole remainder is a flat path.
func (h *SolutionsHandler) HandleSolutions(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	ctx := r.Context()

	rest := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/solutions"), "/")
	if rest == "" {
		h.list(ctx, w, "")
		return
	}

	first, remainder, _ := strings.Cut(rest, "/")
	if h.deps.IsLanguage(ctx, first) {
		if strings.Trim(remainder, "/") == "" {
			h.list(ctx, w, first)
			return
		}
		h.get(ctx, w, r, first, remainder)
		return
	}
	h.get(ctx, w, r, "", rest)
}

func (h *SolutionsHandler) list(ctx context.Context, w http.ResponseWriter, language string) {
	entries, err := h.deps.ListSolutions(ctx, language)
	if err != nil {
		writeServiceError(ctx, w, Wrap("solutions.list", err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *SolutionsHandler) get(ctx context.Context, w http.ResponseWriter, r *http.Request, language, path string) {
	sol, err := h.deps.GetSolution(ctx, language, path)
	if err != nil {
		writeServiceError(ctx, w, Wrap("solutions.get", err))
		return
	}

	if sol.Digest != "" {
		etag := `"` + sol.Digest + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if matchETag(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, sol)
}

// matchETag reports whether an If-None-Match header lists etag.
func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
