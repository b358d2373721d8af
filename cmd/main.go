package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	app "github.com/okian/leetview/internal/app"
	"github.com/okian/leetview/internal/config"
	"github.com/okian/leetview/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "leetview",
		Short: "Browse and rate coding-problem solutions",
		Long: `leetview lists solution files from a directory tree, splits each one into
its description, code and complexity notes, and stores a 1-5 rating per file.

Configuration comes from defaults, an optional YAML file (--config or
LEETVIEW_CONFIG) and LEETVIEW_* environment variables. A .env file in the
working directory is loaded first.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(flags),
		newListCmd(flags),
		newShowCmd(flags),
		newRateCmd(flags),
		newLanguagesCmd(flags),
	)
	return cmd
}

// runEnv is the state every command needs before it can touch the catalog.
type runEnv struct {
	cfg *config.Config
	log logger.Logger
}

// loadRuntime loads .env, configuration and the global logger. Logs go to
// logOut so command output on stdout stays clean.
func loadRuntime(flags *rootFlags, logOut io.Writer) (*runEnv, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	path := flags.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(logOut)); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(context.Background(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return &runEnv{cfg: cfg, log: log}, nil
}

// serviceOptions maps configuration onto service options.
func (rt *runEnv) serviceOptions() []app.Option {
	cfg := rt.cfg
	return []app.Option{
		app.WithLogger(rt.log),
		app.WithSolutionsDir(cfg.SolutionsDir),
		app.WithExtension(cfg.Extension),
		app.WithMarker(cfg.Marker),
		app.WithIgnoreDirs(cfg.IgnoreDirs),
		app.WithStoreDriver(cfg.StoreDriver),
		app.WithDBPath(cfg.DBPath),
		app.WithRatingCacheSize(cfg.RatingCacheSize),
		app.WithLinkTemplates(cfg.SourceLinkTemplate, cfg.YoutubeLinkTemplate),
	}
}

// startService builds and starts the service. Callers must Stop it.
func (rt *runEnv) startService(ctx context.Context) (*app.Service, error) {
	svc := app.New(rt.serviceOptions()...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}
