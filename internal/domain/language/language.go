// Package language holds the fixed table of solution languages: the
// subdirectory name each one lives under, how it is displayed, which files
// belong to it and which comment marker its files use.
package language

import (
	"sort"
	"sync"

	"github.com/okian/leetview/internal/domain/types"
)

// Spec describes one solution language.
type Spec struct {
	// Value is the subdirectory name under the solutions directory.
	Value string
	// Name is the display name.
	Name string
	Icon string
	// Extension filters files, including the leading dot.
	Extension string
	// Marker starts a comment line.
	Marker string
	// Lexer names the syntax highlighter used by the CLI.
	Lexer string
}

// Public returns the client-facing view of the spec.
func (s Spec) Public() types.Language {
	return types.Language{Name: s.Name, Value: s.Value, Icon: s.Icon}
}

// Registry maps subdirectory names to language specs.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Default returns a registry with the built-in languages.
func Default() *Registry {
	r := NewRegistry()
	for _, s := range builtin {
		r.Register(s)
	}
	return r
}

var builtin = []Spec{
	{Value: "python", Name: "Python", Icon: "🐍", Extension: ".py", Marker: "#", Lexer: "python"},
	{Value: "typescript", Name: "TypeScript", Icon: "🟦", Extension: ".ts", Marker: "//", Lexer: "typescript"},
	{Value: "c++", Name: "C++", Icon: "⚙️", Extension: ".cpp", Marker: "//", Lexer: "cpp"},
	{Value: "rust", Name: "Rust", Icon: "🦀", Extension: ".rs", Marker: "//", Lexer: "rust"},
}

// Register adds or replaces a language spec.
func (r *Registry) Register(s Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[s.Value] = s
}

// Lookup returns the spec for a subdirectory name.
func (r *Registry) Lookup(value string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[value]
	return s, ok
}

// ByExtension returns the spec registered for a file extension.
func (r *Registry) ByExtension(ext string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.specs {
		if s.Extension == ext {
			return s, true
		}
	}
	return Spec{}, false
}

// All returns every registered spec ordered by value.
func (r *Registry) All() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
