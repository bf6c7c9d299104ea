package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	mdbadge "github.com/alnah/go-mdbadge"
	"github.com/alnah/go-mdbadge/internal/config"
	"github.com/alnah/go-mdbadge/internal/fileutil"
	"github.com/alnah/go-mdbadge/internal/hints"
	"github.com/alnah/go-mdbadge/internal/logging"
)

// Sentinel errors for settings resolution.
var (
	ErrNoDocsDir          = errors.New("docs directory not found")
	ErrOutputInsideDocs   = errors.New("output directory must not be inside the docs directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// defaultOutputName is the sibling directory written when no output is set.
const defaultOutputName = "site-src"

// settings is everything a command needs after flags, env and config merge.
type settings struct {
	cfg       *config.Config
	docsDir   string
	outputDir string
	logs      *logging.Provider
	converter *mdbadge.Converter
}

// resolveSettings merges configuration sources and builds the converter.
// Priority: CLI flags > config file > env vars > defaults.
func resolveSettings(flags *cmdFlags, args []string, env *Environment) (*settings, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := mergedConfig(flags, envCfg)
	if err != nil {
		return nil, err
	}

	docsDir, err := resolveDocsDir(args, cfg)
	if err != nil {
		return nil, err
	}
	outputDir, err := resolveOutputDir(docsDir, cfg)
	if err != nil {
		return nil, err
	}

	logs, err := newLogProvider(flags, cfg)
	if err != nil {
		return nil, err
	}

	converter, err := newConverter(cfg, logs)
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:       cfg,
		docsDir:   docsDir,
		outputDir: outputDir,
		logs:      logs,
		converter: converter,
	}, nil
}

// mergedConfig layers env vars, the config file and CLI flags over the defaults.
func mergedConfig(flags *cmdFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	applyEnvConfig(envCfg, cfg)

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfigOver(cfg, configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(configName) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to cfg (CLI wins).
func mergeFlags(flags *cmdFlags, cfg *config.Config) {
	if flags.site.conventions != "" {
		cfg.Site.Conventions = flags.site.conventions
	}
	if flags.site.changelog != "" {
		cfg.Site.Changelog = flags.site.changelog
	}
	if flags.isSet("strip-depth") {
		cfg.Site.StripDepth = flags.site.stripDepth
	}

	if flags.out.output != "" {
		cfg.Docs.Output = flags.out.output
	}
	if flags.out.html {
		cfg.HTML.Enabled = true
	}
	if flags.out.style != "" {
		cfg.HTML.Style = flags.out.style
	}
	if flags.out.noStyle {
		cfg.HTML.Style = ""
	}
	if flags.out.assetPath != "" {
		cfg.HTML.AssetPath = flags.out.assetPath
	}

	if flags.log.level != "" {
		cfg.Log.Level = flags.log.level
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}
	if flags.common.verbose {
		cfg.Log.Level = "debug"
	}

	if flags.isSet("workers") {
		cfg.Workers = flags.workers
	}
}

// resolveDocsDir picks the docs root from the positional arg or config.
func resolveDocsDir(args []string, cfg *config.Config) (string, error) {
	dir := cfg.Docs.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return "", fmt.Errorf("%w: none specified%s", ErrNoDocsDir, hints.ForDocsDir(""))
	}
	if !fileutil.DirExists(dir) {
		return "", fmt.Errorf("%w: %s%s", ErrNoDocsDir, dir, hints.ForDocsDir(dir))
	}
	return filepath.Clean(dir), nil
}

// resolveOutputDir returns the output root, defaulting to a site-src
// directory next to the docs root.
func resolveOutputDir(docsDir string, cfg *config.Config) (string, error) {
	out := cfg.Docs.Output
	if out == "" {
		out = filepath.Join(filepath.Dir(docsDir), defaultOutputName)
	}
	out = filepath.Clean(out)

	absDocs, errDocs := filepath.Abs(docsDir)
	absOut, errOut := filepath.Abs(out)
	if errDocs == nil && errOut == nil && fileutil.IsWithin(absDocs, absOut) {
		return "", fmt.Errorf("%w: %s is under %s", ErrOutputInsideDocs, out, docsDir)
	}
	return out, nil
}

// newLogProvider builds the diagnostic logger. Quiet runs only log errors.
func newLogProvider(flags *cmdFlags, cfg *config.Config) (*logging.Provider, error) {
	level := cfg.Log.Level
	if flags.common.quiet && !flags.common.verbose {
		level = "error"
	}
	return logging.NewProvider(logging.Config{
		Level:  strings.ToLower(level),
		Format: strings.ToLower(cfg.Log.Format),
	})
}

// newConverter builds the page converter from the merged config.
func newConverter(cfg *config.Config, logs *logging.Provider) (*mdbadge.Converter, error) {
	converter, err := mdbadge.NewConverter(
		mdbadge.WithTransformerOptions(
			mdbadge.WithStripDepth(cfg.Site.StripDepth),
			mdbadge.WithSitePaths(mdbadge.SitePaths{
				Conventions: cfg.Site.Conventions,
				Changelog:   cfg.Site.Changelog,
			}),
			mdbadge.WithLogger(logs.GetLogger("transform")),
		),
		mdbadge.WithStyle(cfg.HTML.Style),
		mdbadge.WithAssetPath(cfg.HTML.AssetPath),
	)
	if err != nil {
		if errors.Is(err, mdbadge.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(mdbadge.StyleNames()))
		}
		return nil, err
	}
	return converter, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolvePoolSize returns the worker count for a batch of n pages.
// 0 means auto: GOMAXPROCS, which automaxprocs has already fitted to the
// container quota.
func resolvePoolSize(workers, n int) int {
	size := workers
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if size > config.MaxWorkers {
		size = config.MaxWorkers
	}
	if size > n {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return size
}
