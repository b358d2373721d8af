// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/okian/leetview/internal/adapters/filesystem"
	"github.com/okian/leetview/internal/adapters/repository"
	"github.com/okian/leetview/internal/domain/language"
	"github.com/okian/leetview/internal/domain/segment"
	"github.com/okian/leetview/internal/domain/types"
	"github.com/okian/leetview/pkg/logger"
	"github.com/okian/leetview/pkg/metrics"
)

// Store drivers accepted by WithStoreDriver.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// RatingSavedMessage is returned with every stored rating.
const RatingSavedMessage = "Rating saved successfully"

// Service owns the rating store and serves the solution catalogs.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	languages *language.Registry

	// Configuration
	solutionsDir    string
	extension       string
	marker          string
	ignoreDirs      []string
	storeDriver     string
	dbPath          string
	ratingCacheSize int
	sourceLink      string
	youtubeLink     string

	// State
	started bool
	// ownStore is false when the store came from WithStore.
	ownStore bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSolutionsDir sets the root of the solution tree.
func WithSolutionsDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.solutionsDir = dir
		}
	}
}

// WithExtension sets the file suffix listed by the flat catalog.
func WithExtension(ext string) Option {
	return func(s *Service) {
		if ext != "" {
			s.extension = ext
		}
	}
}

// WithMarker sets the comment marker of the flat catalog.
func WithMarker(marker string) Option {
	return func(s *Service) {
		if marker != "" {
			s.marker = marker
		}
	}
}

// WithIgnoreDirs sets the directory names skipped while listing.
func WithIgnoreDirs(dirs []string) Option {
	return func(s *Service) {
		if dirs != nil {
			s.ignoreDirs = dirs
		}
	}
}

// WithStoreDriver selects the rating store opened by Start.
func WithStoreDriver(driver string) Option {
	return func(s *Service) {
		if driver != "" {
			s.storeDriver = driver
		}
	}
}

// WithDBPath sets the SQLite database file.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithRatingCacheSize sets the LRU size in front of the store; 0 disables it.
func WithRatingCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.ratingCacheSize = size
		}
	}
}

// WithStore injects a ready store. Start will not open one and Stop will
// not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLinkTemplates sets the fmt templates used for source and video links.
// Each receives the file slug; an empty template disables that link.
func WithLinkTemplates(source, youtube string) Option {
	return func(s *Service) {
		s.sourceLink = source
		s.youtubeLink = youtube
	}
}

// WithLanguages replaces the language table.
func WithLanguages(r *language.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.languages = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		languages:       language.Default(),
		solutionsDir:    "solutions",
		extension:       ".py",
		marker:          segment.DefaultMarker,
		ignoreDirs:      filesystem.DefaultIgnores,
		storeDriver:     DriverSQLite,
		dbPath:          "ratings.db",
		ratingCacheSize: 1024,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the rating store and checks the solutions directory.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...")

	if s.store == nil {
		store, err := s.openStore(ctx)
		if err != nil {
			return err
		}
		s.store = store
		s.ownStore = true
	}

	if _, err := filesystem.CanonicalRoot(s.solutionsDir); err != nil {
		s.logger.Warn(ctx, "solutions directory not found; listings will be empty",
			logger.String("solutionsDir", s.solutionsDir),
		)
	}

	s.started = true
	metrics.UpdateLanguagesAvailable(len(s.availableLanguages()))
	s.logger.Info(ctx, "catalog service started",
		logger.String("solutionsDir", s.solutionsDir),
		logger.String("extension", s.extension),
		logger.String("storeDriver", s.storeDriver),
		logger.String("dbPath", s.dbPath),
		logger.Int("ratingCacheSize", s.ratingCacheSize),
	)

	return nil
}

func (s *Service) openStore(ctx context.Context) (repository.Store, error) {
	var base repository.Store
	switch s.storeDriver {
	case DriverMemory:
		base = repository.NewMemoryStore()
	case DriverSQLite:
		db, err := repository.OpenSQLite(ctx, s.dbPath)
		if err != nil {
			return nil, fmt.Errorf("open rating store: %w", err)
		}
		base = db
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", ErrValidation, s.storeDriver)
	}

	store, err := repository.NewCachedStore(base, s.ratingCacheSize)
	if err != nil {
		_ = base.Close()
		return nil, err
	}
	return store, nil
}

// Stop closes the rating store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping catalog service...")

	if s.ownStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "close rating store", logger.Error(err))
		}
		s.store = nil
		s.ownStore = false
	}

	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// catalog returns the catalog for lang; empty lang is the flat tree.
func (s *Service) catalog(lang string) (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	if lang == "" {
		return &Catalog{
			Root:      s.solutionsDir,
			Extension: s.extension,
			Marker:    s.marker,
			Ignores:   s.ignoreDirs,
			Store:     s.store,
		}, nil
	}

	spec, ok := s.languages.Lookup(lang)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return &Catalog{
		Language:  spec.Value,
		Root:      filepath.Join(s.solutionsDir, spec.Value),
		Extension: spec.Extension,
		Marker:    spec.Marker,
		KeyPrefix: spec.Value + "/",
		Ignores:   s.ignoreDirs,
		Store:     s.store,
	}, nil
}

// ListSolutions lists the files of lang's catalog with their ratings.
// A missing directory yields an empty list.
func (s *Service) ListSolutions(ctx context.Context, lang string) ([]types.FileEntry, error) {
	c, err := s.catalog(lang)
	if err != nil {
		return nil, err
	}
	entries, err := c.ListFiles(ctx)
	if errors.Is(err, filesystem.ErrRootMissing) {
		s.logger.Warn(ctx, "solutions directory not found",
			logger.String("root", c.Root),
			logger.String("language", lang),
		)
		return []types.FileEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	return entries, nil
}

// GetSolution reads and segments one file of lang's catalog.
func (s *Service) GetSolution(ctx context.Context, lang, rel string) (types.Solution, error) {
	if strings.TrimSpace(rel) == "" {
		return types.Solution{}, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	c, err := s.catalog(lang)
	if err != nil {
		return types.Solution{}, err
	}
	sol, err := c.ReadSegmented(ctx, rel)
	if err != nil {
		return types.Solution{}, classify(rel, err)
	}
	s.decorate(&sol)
	return sol, nil
}

// SaveRating stores rating for rel in lang's catalog.
func (s *Service) SaveRating(ctx context.Context, lang, rel string, rating int) (types.RatingReceipt, error) {
	if strings.TrimSpace(rel) == "" {
		return types.RatingReceipt{}, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	if err := repository.ValidateRating(rating); err != nil {
		return types.RatingReceipt{}, classify(rel, err)
	}
	c, err := s.catalog(lang)
	if err != nil {
		return types.RatingReceipt{}, err
	}
	filename, err := c.RateFile(ctx, rel, rating)
	if err != nil {
		return types.RatingReceipt{}, classify(rel, err)
	}
	metrics.RecordRatingSaved(fmt.Sprint(rating))
	s.logger.Debug(ctx, "rating saved",
		logger.String("filename", filename),
		logger.String("language", lang),
		logger.Int("rating", rating),
	)
	return types.RatingReceipt{Filename: filename, Rating: rating, Message: RatingSavedMessage}, nil
}

// Languages returns the known languages present as subdirectories of the
// solutions directory, ordered by value.
func (s *Service) Languages(ctx context.Context) ([]types.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	specs := s.availableLanguages()
	out := make([]types.Language, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.Public())
	}
	metrics.UpdateLanguagesAvailable(len(out))
	return out, nil
}

// LanguageSpec returns the full spec for a known language value.
func (s *Service) LanguageSpec(value string) (language.Spec, bool) {
	return s.languages.Lookup(value)
}

// IsLanguage reports whether name is a known language with a directory.
func (s *Service) IsLanguage(_ context.Context, name string) bool {
	if _, ok := s.languages.Lookup(name); !ok {
		return false
	}
	_, err := filesystem.CanonicalRoot(filepath.Join(s.solutionsDir, name))
	return err == nil
}

func (s *Service) availableLanguages() []language.Spec {
	dirs, err := filesystem.Subdirs(s.solutionsDir)
	if err != nil {
		return nil
	}
	present := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		present[d] = true
	}
	var out []language.Spec
	for _, spec := range s.languages.All() {
		if present[spec.Value] {
			out = append(out, spec)
		}
	}
	return out
}

func (s *Service) decorate(sol *types.Solution) {
	slug := Slug(sol.Filename)
	if s.sourceLink != "" {
		sol.SourceLink = fmt.Sprintf(s.sourceLink, slug)
	}
	if s.youtubeLink != "" {
		sol.YoutubeLink = fmt.Sprintf(s.youtubeLink, slug)
	}
}

// Slug returns the base name of a slash-separated path without extension.
func Slug(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Ping checks the rating store.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return ErrNotStarted
	}
	return s.store.Ping(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"solutionsDir": s.solutionsDir,
		"extension":    s.extension,
		"storeDriver":  s.storeDriver,
		"cacheSize":    s.ratingCacheSize,
	}

	if s.started {
		ctx := context.Background()
		if n, err := s.store.Count(ctx); err == nil {
			stats["ratedFiles"] = n
			metrics.UpdateStoreRecordsTotal(n)
		}
		langs := s.availableLanguages()
		names := make([]string, 0, len(langs))
		for _, l := range langs {
			names = append(names, l.Value)
		}
		stats["languages"] = names
	}

	return stats
}
