package terminal_test

import (
	"bytes"
	"testing"

	"github.com/okian/leetview/internal/adapters/terminal"
	"github.com/okian/leetview/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Solution(t *testing.T) {
	var buf bytes.Buffer
	r := terminal.NewRenderer(&buf, terminal.WithHighlight(false))

	err := r.Solution(types.Solution{
		Filename:    "two_sum.py",
		Description: "Problem: Two Sum",
		Code:        "def solve(): pass",
		Complexity:  "O(n) time",
		SourceLink:  "https://leetcode.com/problems/two_sum/",
	}, "python")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "two_sum.py")
	assert.Contains(t, out, "https://leetcode.com/problems/two_sum/")
	assert.Contains(t, out, "Problem: Two Sum")
	assert.Contains(t, out, "def solve(): pass\n")
	assert.Contains(t, out, "O(n) time")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Description")), bytes.Index(buf.Bytes(), []byte("Complexity")))
}

func TestRenderer_HighlightedCode(t *testing.T) {
	var buf bytes.Buffer
	r := terminal.NewRenderer(&buf, terminal.WithTheme("dracula"))

	require.NoError(t, r.Solution(types.Solution{Filename: "a.rs", Code: "fn main() {}"}, "rust"))
	out := buf.String()
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "\x1b[", "terminal256 output carries escape codes")
}

func TestRenderer_Files(t *testing.T) {
	var buf bytes.Buffer
	r := terminal.NewRenderer(&buf)

	four := 4
	require.NoError(t, r.Files([]types.FileEntry{
		{Filename: "a.py"},
		{Filename: "sub/b.py", Rating: &four},
	}))
	out := buf.String()
	assert.Contains(t, out, "a.py")
	assert.Contains(t, out, "★★★★☆  sub/b.py")

	buf.Reset()
	require.NoError(t, r.Files(nil))
	assert.Contains(t, buf.String(), "no solutions found")
}

func TestRenderer_LanguagesAndReceipt(t *testing.T) {
	var buf bytes.Buffer
	r := terminal.NewRenderer(&buf)

	require.NoError(t, r.Languages([]types.Language{{Name: "Rust", Value: "rust", Icon: "🦀"}}))
	assert.Contains(t, buf.String(), "🦀")
	assert.Contains(t, buf.String(), "(rust)")

	buf.Reset()
	require.NoError(t, r.Receipt(types.RatingReceipt{Filename: "a.py", Rating: 5, Message: "Rating saved successfully"}))
	assert.Contains(t, buf.String(), "Rating saved successfully a.py ★★★★★")
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★☆☆☆☆", terminal.Stars(1))
	assert.Equal(t, "☆☆☆☆☆", terminal.Stars(-3))
	assert.Equal(t, "★★★★★", terminal.Stars(9))
}
