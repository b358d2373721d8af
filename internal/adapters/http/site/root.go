// Package site serves a prebuilt single-page frontend from disk.
package site

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Error constants
var (
	ErrNoIndex = errors.New("frontend directory has no index.html")
)

// Register serves dir at "/". Paths that do not name a file fall back to
// index.html so client-side routes load the app. An empty dir registers
// nothing.
func Register(_ context.Context, mux *http.ServeMux, dir string) error {
	if mux == nil {
		panic("mux is nil")
	}
	if dir == "" {
		return nil
	}
	h, err := NewRootHandler(dir)
	if err != nil {
		return err
	}
	mux.HandleFunc("/", h.HandleRoot)
	return nil
}

// RootHandler serves the frontend build directory.
type RootHandler struct {
	dir   string
	files http.Handler
}

// NewRootHandler creates a handler for dir, which must contain index.html.
func NewRootHandler(dir string) (*RootHandler, error) {
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	if err != nil || info.IsDir() {
		return nil, ErrNoIndex
	}
	return &RootHandler{dir: dir, files: http.FileServer(http.Dir(dir))}, nil
}

// HandleRoot handles GET requests for frontend assets.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	// http.Dir already refuses to leave dir; this only decides on fallback.
	name := path.Clean("/" + r.URL.Path)
	if name != "/" && !strings.HasSuffix(name, "/") {
		info, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(name)))
		if err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
			return
		}
	}
	h.files.ServeHTTP(w, r)
}
