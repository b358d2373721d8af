// Package terminal prints catalog data for humans: lipgloss styled headings
// and chroma highlighted code.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/leetview/internal/domain/types"
)

// DefaultTheme is the chroma style used when none is given.
const DefaultTheme = "monokai"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))
)

// Renderer writes catalog views to an output stream.
type Renderer struct {
	w         io.Writer
	theme     string
	highlight bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme selects the chroma style.
func WithTheme(theme string) Option {
	return func(r *Renderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithHighlight toggles syntax highlighting of code blocks.
func WithHighlight(on bool) Option {
	return func(r *Renderer) {
		r.highlight = on
	}
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, theme: DefaultTheme, highlight: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Solution prints a segmented file. lexer names the chroma lexer for the
// code block; an empty lexer lets chroma guess.
func (r *Renderer) Solution(sol types.Solution, lexer string) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(sol.Filename))
	b.WriteString("\n")
	if sol.SourceLink != "" {
		b.WriteString(dimStyle.Render(sol.SourceLink))
		b.WriteString("\n")
	}
	if sol.YoutubeLink != "" {
		b.WriteString(dimStyle.Render(sol.YoutubeLink))
		b.WriteString("\n")
	}
	if sol.Description != "" {
		b.WriteString("\n" + headingStyle.Render("Description") + "\n")
		b.WriteString(sol.Description + "\n")
	}
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return err
	}

	if sol.Code != "" {
		if _, err := io.WriteString(r.w, "\n"+headingStyle.Render("Code")+"\n"); err != nil {
			return err
		}
		if err := r.code(sol.Code, lexer); err != nil {
			return err
		}
	}

	if sol.Complexity != "" {
		_, err := io.WriteString(r.w, "\n"+headingStyle.Render("Complexity")+"\n"+sol.Complexity+"\n")
		return err
	}
	return nil
}

func (r *Renderer) code(src, lexer string) error {
	if r.highlight {
		if err := quick.Highlight(r.w, src+"\n", lexer, "terminal256", r.theme); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(r.w, src+"\n")
	return err
}

// Files prints a listing, one file per line with its rating.
func (r *Renderer) Files(entries []types.FileEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.w, dimStyle.Render("no solutions found"))
		return err
	}
	for _, e := range entries {
		rating := dimStyle.Render("-")
		if e.Rating != nil {
			rating = ratingStyle.Render(Stars(*e.Rating))
		}
		if _, err := fmt.Fprintf(r.w, "%s  %s\n", rating, e.Filename); err != nil {
			return err
		}
	}
	return nil
}

// Languages prints the available languages.
func (r *Renderer) Languages(langs []types.Language) error {
	if len(langs) == 0 {
		_, err := fmt.Fprintln(r.w, dimStyle.Render("no language directories found"))
		return err
	}
	for _, l := range langs {
		if _, err := fmt.Fprintf(r.w, "%s %s %s\n", l.Icon, headingStyle.Render(l.Name), dimStyle.Render("("+l.Value+")")); err != nil {
			return err
		}
	}
	return nil
}

// Receipt confirms a stored rating.
func (r *Renderer) Receipt(rc types.RatingReceipt) error {
	_, err := fmt.Fprintf(r.w, "%s %s %s\n", successStyle.Render(rc.Message), rc.Filename, ratingStyle.Render(Stars(rc.Rating)))
	return err
}

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
