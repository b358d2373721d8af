package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnores are directory names never descended into.
var DefaultIgnores = []string{
	".git",
	"__pycache__",
	"node_modules",
	".venv",
}

// Walk calls fn with the slash-separated path, relative to root, of every
// regular file under root whose name ends with ext. Directories whose name
// is in ignores are skipped. Unreadable entries are skipped too.
//
// The walk starts at the canonical root, so a root that is itself a symlink
// is listed, and the paths match the ones Resolve accepts.
func Walk(ctx context.Context, root, ext string, ignores []string, fn func(rel string) error) error {
	absRoot, err := CanonicalRoot(root)
	if err != nil {
		return err
	}

	skip := make(map[string]bool, len(ignores))
	for _, name := range ignores {
		skip[name] = true
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != absRoot && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		return fn(filepath.ToSlash(rel))
	})
}

// Subdirs returns the sorted names of the directories directly below root,
// following symlinks.
func Subdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ErrRootMissing
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(root, e.Name())); err == nil && info.IsDir() {
				dirs = append(dirs, e.Name())
			}
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
