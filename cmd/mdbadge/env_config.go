package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdbadge/internal/config"
)

// stripDepthUnset marks MDBADGE_STRIP_DEPTH as absent.
// Since 0 is a valid depth, we use an out-of-range sentinel.
const stripDepthUnset = -1

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // MDBADGE_CONFIG: config file name or path
	DocsDir     string // MDBADGE_DOCS_DIR: docs root
	OutputDir   string // MDBADGE_OUTPUT_DIR: output root
	Conventions string // MDBADGE_CONVENTIONS: conventions page
	Changelog   string // MDBADGE_CHANGELOG: changelog page
	StripDepth  int    // MDBADGE_STRIP_DEPTH: -1 when unset
	Style       string // MDBADGE_STYLE: badge stylesheet name
	LogLevel    string // MDBADGE_LOG_LEVEL
	LogFormat   string // MDBADGE_LOG_FORMAT
	Workers     int    // MDBADGE_WORKERS: parallel workers
}

// knownEnvVars lists valid MDBADGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBADGE_CONFIG":      true,
	"MDBADGE_DOCS_DIR":    true,
	"MDBADGE_OUTPUT_DIR":  true,
	"MDBADGE_CONVENTIONS": true,
	"MDBADGE_CHANGELOG":   true,
	"MDBADGE_STRIP_DEPTH": true,
	"MDBADGE_STYLE":       true,
	"MDBADGE_LOG_LEVEL":   true,
	"MDBADGE_LOG_FORMAT":  true,
	"MDBADGE_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MDBADGE_CONFIG"),
		DocsDir:     os.Getenv("MDBADGE_DOCS_DIR"),
		OutputDir:   os.Getenv("MDBADGE_OUTPUT_DIR"),
		Conventions: os.Getenv("MDBADGE_CONVENTIONS"),
		Changelog:   os.Getenv("MDBADGE_CHANGELOG"),
		StripDepth:  stripDepthUnset,
		Style:       os.Getenv("MDBADGE_STYLE"),
		LogLevel:    os.Getenv("MDBADGE_LOG_LEVEL"),
		LogFormat:   os.Getenv("MDBADGE_LOG_FORMAT"),
	}

	if depth := os.Getenv("MDBADGE_STRIP_DEPTH"); depth != "" {
		if n, err := strconv.Atoi(depth); err == nil && n >= 0 {
			cfg.StripDepth = n
		}
	}

	if workers := os.Getenv("MDBADGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MDBADGE_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDBADGE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on cfg.
// It runs before the config file is loaded, so the resulting priority is:
// CLI flags > config file > env vars > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DocsDir != "" {
		cfg.Docs.Dir = env.DocsDir
	}
	if env.OutputDir != "" {
		cfg.Docs.Output = env.OutputDir
	}
	if env.Conventions != "" {
		cfg.Site.Conventions = env.Conventions
	}
	if env.Changelog != "" {
		cfg.Site.Changelog = env.Changelog
	}
	if env.StripDepth != stripDepthUnset {
		cfg.Site.StripDepth = env.StripDepth
	}
	if env.Style != "" {
		cfg.HTML.Style = env.Style
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
