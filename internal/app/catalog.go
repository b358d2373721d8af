package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/okian/leetview/internal/adapters/filesystem"
	"github.com/okian/leetview/internal/adapters/repository"
	"github.com/okian/leetview/internal/domain/segment"
	"github.com/okian/leetview/internal/domain/types"
	"github.com/okian/leetview/pkg/metrics"
)

// Catalog lists, reads and rates the files of one solution tree.
type Catalog struct {
	// Language is the metrics label; empty for the flat tree.
	Language  string
	Root      string
	Extension string
	Marker    string
	// KeyPrefix is prepended to root-relative paths to form rating keys.
	KeyPrefix string
	Ignores   []string
	Store     repository.Store
}

// ListFiles walks the tree and joins every matching file with its rating.
// Returns filesystem.ErrRootMissing when Root is not a directory.
func (c *Catalog) ListFiles(ctx context.Context) ([]types.FileEntry, error) {
	entries := []types.FileEntry{}
	err := filesystem.Walk(ctx, c.Root, c.Extension, c.Ignores, func(rel string) error {
		r, ok, err := c.Store.Get(ctx, c.KeyPrefix+rel)
		if err != nil {
			return err
		}
		entries = append(entries, types.FileEntry{Filename: rel, Rating: types.RatingPtr(r, ok)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordFilesListed(c.Language, len(entries))
	return entries, nil
}

// ReadSegmented reads rel and splits it with the catalog marker.
func (c *Catalog) ReadSegmented(ctx context.Context, rel string) (types.Solution, error) {
	if err := ctx.Err(); err != nil {
		return types.Solution{}, err
	}
	path, clean, err := c.resolve(rel)
	if err != nil {
		return types.Solution{}, err
	}
	data, digest, err := filesystem.ReadFile(path)
	if err != nil {
		return types.Solution{}, err
	}

	start := time.Now()
	doc := segment.SegmentText(string(data), c.Marker)
	metrics.RecordSegmentLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordSolutionRead(c.Language)

	return types.Solution{
		Filename:    clean,
		Description: doc.Description,
		Code:        doc.Code,
		Complexity:  doc.Complexity,
		Digest:      digest,
	}, nil
}

// RateFile validates rating, checks rel names a file inside Root and
// upserts it under the file's root-relative path, which it returns.
func (c *Catalog) RateFile(ctx context.Context, rel string, rating int) (string, error) {
	if err := repository.ValidateRating(rating); err != nil {
		return "", err
	}
	_, clean, err := c.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := c.Store.Upsert(ctx, c.KeyPrefix+clean, rating); err != nil {
		return "", err
	}
	return clean, nil
}

// resolve returns the canonical path of rel and its root-relative form,
// the same form ListFiles reports.
func (c *Catalog) resolve(rel string) (string, string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", "", filesystem.ErrNotExist
	}
	path, clean, err := filesystem.ResolveFileRel(c.Root, rel)
	if errors.Is(err, filesystem.ErrOutsideRoot) {
		metrics.RecordPathRejection("traversal")
	}
	return path, clean, err
}
