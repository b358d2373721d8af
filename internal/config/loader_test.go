package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/okian/leetview/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.Extension, convey.ShouldEqual, ".py")
				convey.So(cfg.RatingCacheSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LEETVIEW_ADDR", ":8080")
			_ = os.Setenv("LEETVIEW_SOLUTIONS_DIR", "/srv/solutions")
			_ = os.Setenv("LEETVIEW_STORE_DRIVER", "memory")
			_ = os.Setenv("LEETVIEW_RATING_CACHE_SIZE", "0")
			_ = os.Setenv("LEETVIEW_ALLOWED_ORIGINS", "http://a.test,http://b.test")
			_ = os.Setenv("LEETVIEW_STATIC_DIR", "frontend/dist")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SolutionsDir, convey.ShouldEqual, "/srv/solutions")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMemory)
				convey.So(cfg.RatingCacheSize, convey.ShouldEqual, 0)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://a.test", "http://b.test"})
				convey.So(cfg.StaticDir, convey.ShouldEqual, "frontend/dist")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
solutions_dir: "./python"
marker: "//"
extension: ".ts"
db_path: "data/ratings.db"
ignore_dirs: [".git", "dist"]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEETVIEW_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SolutionsDir, convey.ShouldEqual, "./python")
				convey.So(cfg.Marker, convey.ShouldEqual, "//")
				convey.So(cfg.Extension, convey.ShouldEqual, ".ts")
				convey.So(cfg.DBPath, convey.ShouldEqual, "data/ratings.db")
				convey.So(cfg.IgnoreDirs, convey.ShouldResemble, []string{".git", "dist"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
db_path: "file.db"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEETVIEW_CONFIG", tmpFile)
			_ = os.Setenv("LEETVIEW_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBPath, convey.ShouldEqual, "file.db")
				convey.So(cfg.Marker, convey.ShouldEqual, "#")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LEETVIEW_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LEETVIEW_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("LEETVIEW_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown store driver", func() {
			_ = os.Setenv("LEETVIEW_STORE_DRIVER", "redis")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoadMetrics(t *testing.T) {
	convey.Convey("Given metrics settings in a file and the environment", t, func() {
		clearConfigEnvVars()
		tmpFile := createTempConfigFile("metrics_namespace: lv\nmetrics_labels:\n  env: staging\n")
		defer func() { _ = os.Remove(tmpFile) }()
		_ = os.Setenv("LEETVIEW_METRICS_BUCKETS", "1,5,25")
		_ = os.Setenv("LEETVIEW_METRICS_REFRESH_INTERVAL", "30s")
		_ = os.Setenv("LEETVIEW_METRICS_ENABLED", "false")
		defer clearConfigEnvVars()

		cfg, err := config.LoadFile(tmpFile)

		convey.Convey("Then every metrics key is decoded", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "lv")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "catalog")
			convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
			convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 5, 25})
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
		})
	})
}

func TestConfigLoadFile(t *testing.T) {
	convey.Convey("Given an explicit config path", t, func() {
		clearConfigEnvVars()
		tmpFile := createTempConfigFile("store_driver: memory\nrating_cache_size: 8\n")
		defer func() { _ = os.Remove(tmpFile) }()

		cfg, err := config.LoadFile(tmpFile)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMemory)
		convey.So(cfg.RatingCacheSize, convey.ShouldEqual, 8)
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"LEETVIEW_CONFIG",
		"LEETVIEW_ADDR",
		"LEETVIEW_SOLUTIONS_DIR",
		"LEETVIEW_STORE_DRIVER",
		"LEETVIEW_RATING_CACHE_SIZE",
		"LEETVIEW_ALLOWED_ORIGINS",
		"LEETVIEW_STATIC_DIR",
		"LEETVIEW_METRICS_BUCKETS",
		"LEETVIEW_METRICS_REFRESH_INTERVAL",
		"LEETVIEW_METRICS_ENABLED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "leetview-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
