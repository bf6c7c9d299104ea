package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdbadge/internal/fileutil"
	"github.com/alnah/go-mdbadge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits for config fields.
const (
	MaxPathLength      = 4096
	MaxStyleLength     = 64
	MaxStripDepth      = 16
	MaxWorkers         = 32
	DefaultStripDepth  = 1
	DefaultConventions = "sw/changelog/conventions.md"
	DefaultChangelog   = "sw/changelog/index.md"
	DefaultStyle       = "default"
	DefaultLogLevel    = "error"
	DefaultLogFormat   = "console"
)

// appDirName is the directory under the user config dir searched for named configs.
const appDirName = "go-mdbadge"

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json", "pretty"}
)

// Config holds all configuration for a badge build.
type Config struct {
	Docs    DocsConfig `yaml:"docs"`
	Site    SiteConfig `yaml:"site"`
	HTML    HTMLConfig `yaml:"html"`
	Log     LogConfig  `yaml:"log"`
	Workers int        `yaml:"workers"` // 0 = auto
}

// DocsConfig defines where pages are read from and written to.
type DocsConfig struct {
	Dir    string `yaml:"dir"`    // Docs root (empty = must specify)
	Output string `yaml:"output"` // Output root (empty = derived from dir)
}

// SiteConfig defines the documents badges link to and how links are computed.
type SiteConfig struct {
	Conventions string `yaml:"conventions"` // Page with #version, #feature, ... anchors
	Changelog   string `yaml:"changelog"`   // Page with version anchors
	StripDepth  int    `yaml:"stripDepth"`  // Leading segments dropped from relative links
}

// HTMLConfig defines HTML preview output.
type HTMLConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Style     string `yaml:"style"`     // Badge stylesheet name or "" for none
	AssetPath string `yaml:"assetPath"` // Directory with styles/{name}.css overrides
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console, json, pretty
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Conventions: DefaultConventions,
			Changelog:   DefaultChangelog,
			StripDepth:  DefaultStripDepth,
		},
		HTML: HTMLConfig{Style: DefaultStyle},
		Log:  LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks field lengths and ranges.
// Called by LoadConfig, and available for callers that build a Config in code.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"docs.dir", c.Docs.Dir, MaxPathLength},
		{"docs.output", c.Docs.Output, MaxPathLength},
		{"site.conventions", c.Site.Conventions, MaxPathLength},
		{"site.changelog", c.Site.Changelog, MaxPathLength},
		{"html.style", c.HTML.Style, MaxStyleLength},
		{"html.assetPath", c.HTML.AssetPath, MaxPathLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateSitePath("site.conventions", c.Site.Conventions); err != nil {
		return err
	}
	if err := validateSitePath("site.changelog", c.Site.Changelog); err != nil {
		return err
	}
	if c.Site.StripDepth < 0 || c.Site.StripDepth > MaxStripDepth {
		return fmt.Errorf("%w: site.stripDepth must be between 0 and %d, got %d", ErrInvalidValue, MaxStripDepth, c.Site.StripDepth)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if err := validateOneOf("log.level", c.Log.Level, validLogLevels); err != nil {
		return err
	}
	if err := validateOneOf("log.format", c.Log.Format, validLogFormats); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateSitePath checks a site-relative document path.
func validateSitePath(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidValue, fieldName)
	}
	if strings.Contains(value, "#") {
		return fmt.Errorf("%w: %s must not contain an anchor, got %q", ErrInvalidValue, fieldName, value)
	}
	if strings.HasPrefix(value, "/") {
		return fmt.Errorf("%w: %s must be site-relative, got %q", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// validateOneOf accepts empty values (defaults apply) or one of allowed.
func validateOneOf(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidValue, fieldName, strings.Join(allowed, ", "), value)
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it names a
// config searched in standard locations. Fields omitted from the file keep
// their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	return LoadConfigOver(DefaultConfig(), nameOrPath)
}

// LoadConfigOver is LoadConfig with base supplying the values of omitted
// fields. base itself is not modified.
func LoadConfigOver(base *Config, nameOrPath string) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	merged := *base
	cfg := &merged
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths lists the files tried for a config name, in order:
// ./NAME.yaml, ./NAME.yml, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
