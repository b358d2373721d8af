// Package filesystem reads solution trees: it resolves user supplied paths
// inside a root, walks the tree for matching files and hashes file content.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
)

// Resolve joins rel onto root and returns the canonical path of the result.
// The path must exist and, after following symlinks, must stay inside the
// canonical root. Absolute paths are always rejected.
func Resolve(root, rel string) (string, error) {
	_, canon, err := resolve(root, rel)
	return canon, err
}

func resolve(root, rel string) (string, string, error) {
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") || filepath.VolumeName(rel) != "" {
		return "", "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	canonRoot, err := CanonicalRoot(root)
	if err != nil {
		return "", "", err
	}

	joined := filepath.Join(canonRoot, filepath.FromSlash(rel))
	if !Within(canonRoot, joined) {
		return "", "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}

	canon, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return "", "", fmt.Errorf("%q: %w", rel, ErrNotExist)
		}
		return "", "", fmt.Errorf("resolve %q: %w: %w", rel, ErrNotExist, err)
	}
	if !Within(canonRoot, canon) {
		return "", "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return canonRoot, canon, nil
}

// ResolveFile is Resolve plus a check that the target is a regular file.
func ResolveFile(root, rel string) (string, error) {
	path, _, err := ResolveFileRel(root, rel)
	return path, err
}

// ResolveFileRel is ResolveFile that also returns the file's path relative
// to the canonical root, slash-separated. That is the form Walk reports, so
// "./a.py", "sub/../a.py" and "a.py" all come back as "a.py".
func ResolveFileRel(root, rel string) (string, string, error) {
	canonRoot, path, err := resolve(root, rel)
	if err != nil {
		return "", "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("stat %q: %w", rel, ErrNotExist)
	}
	if !info.Mode().IsRegular() {
		return "", "", fmt.Errorf("%q: %w", rel, ErrNotRegular)
	}
	clean, err := filepath.Rel(canonRoot, path)
	if err != nil {
		return "", "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return path, filepath.ToSlash(clean), nil
}

// CanonicalRoot returns the absolute, symlink-free form of root.
func CanonicalRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs %q: %w", root, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", abs, ErrRootMissing)
	}
	info, err := os.Stat(canon)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s: %w", canon, ErrRootMissing)
	}
	return canon, nil
}

// Within reports whether path equals root or lies below it. Both must be
// clean absolute paths.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ReadFile reads a resolved file and returns its content and digest.
func ReadFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, Digest(data), nil
}

// Digest returns the hex xxh3 hash of data.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
