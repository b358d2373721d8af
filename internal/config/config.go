// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SolutionsDir is the root of the solution tree. Language directories,
	// when present, are its immediate subdirectories.
	SolutionsDir string `koanf:"solutions_dir"`

	// Extension filters files in the flat listing.
	Extension string `koanf:"extension"`

	// Marker is the comment marker for files in the flat listing.
	Marker string `koanf:"marker"`

	// IgnoreDirs lists directory names skipped while walking.
	IgnoreDirs []string `koanf:"ignore_dirs"`

	// StoreDriver selects the rating store: sqlite or memory.
	StoreDriver string `koanf:"store_driver"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// RatingCacheSize bounds the rating LRU cache; 0 disables it.
	RatingCacheSize int `koanf:"rating_cache_size"`

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// StaticDir, when set, is a built frontend served at "/".
	StaticDir string `koanf:"static_dir"`

	// SourceLinkTemplate and YoutubeLinkTemplate are fmt templates with a
	// single %s receiving the file slug. Empty disables the link.
	SourceLinkTemplate  string `koanf:"source_link_template"`
	YoutubeLinkTemplate string `koanf:"youtube_link_template"`

	// Metrics settings for serve. Latency histograms observe milliseconds;
	// empty buckets keep the Prometheus defaults. Labels are added to every
	// series.
	MetricsEnabled         bool              `koanf:"metrics_enabled"`
	MetricsNamespace       string            `koanf:"metrics_namespace"`
	MetricsSubsystem       string            `koanf:"metrics_subsystem"`
	MetricsPrefix          string            `koanf:"metrics_prefix"`
	MetricsBuckets         []float64         `koanf:"metrics_buckets"`
	MetricsRefreshInterval time.Duration     `koanf:"metrics_refresh_interval"`
	MetricsLabels          map[string]string `koanf:"metrics_labels"`
}

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8000",
		SolutionsDir:        "solutions",
		Extension:           ".py",
		Marker:              "#",
		IgnoreDirs:          []string{".git", "__pycache__", "node_modules", ".venv"},
		StoreDriver:         DriverSQLite,
		DBPath:              "ratings.db",
		RatingCacheSize:     1024,
		AllowedOrigins:      []string{"http://localhost:5173"},
		SourceLinkTemplate:  "https://leetcode.com/problems/%s/",
		YoutubeLinkTemplate: "https://www.youtube.com/results?search_query=neetcode+%s",

		MetricsEnabled:         true,
		MetricsNamespace:       "leetview",
		MetricsSubsystem:       "catalog",
		MetricsRefreshInterval: 10 * time.Second,
	}
}
