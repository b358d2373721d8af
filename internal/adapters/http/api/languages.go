package api

import (
	"context"
	"net/http"
)

// LanguagesDependencies defines the operations behind /languages.
type LanguagesDependencies interface {
	Languages(ctx context.Context) ([]Language, error)
}

// LanguagesHandler lists the languages present in the solutions tree.
type LanguagesHandler struct {
	deps LanguagesDependencies
}

// NewLanguagesHandler creates a new languages handler.
func NewLanguagesHandler(deps LanguagesDependencies) *LanguagesHandler {
	return &LanguagesHandler{deps: deps}
}

// HandleGetLanguages handles GET /languages requests.
func (h *LanguagesHandler) HandleGetLanguages(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	langs, err := h.deps.Languages(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, Wrap("languages.list", err))
		return
	}
	writeJSON(w, http.StatusOK, langs)
}
