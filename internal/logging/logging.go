// Package logging adapts github.com/goliatone/go-logger to the mdbadge.Logger contract.
package logging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	mdbadge "github.com/alnah/go-mdbadge"
)

// ErrUnsupportedFormat is returned for an unknown log format.
var ErrUnsupportedFormat = errors.New("unsupported log format")

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string // trace, debug, info, warn, error ("" = library default)
	Format    string // console, json, pretty ("" = console)
	AddSource bool
}

// Provider hands out named loggers backed by one go-logger root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider constructs a provider backed by go-logger.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns a child logger named name, or the root for "".
// A nil provider yields a no-op logger.
func (p *Provider) GetLogger(name string) mdbadge.Logger {
	if p == nil {
		return mdbadge.NopLogger()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) mdbadge.Logger {
	if inner == nil {
		return mdbadge.NopLogger()
	}
	return &adapter{inner: inner}
}

// Adapter implements both the leveled and the fields contract.
var (
	_ mdbadge.Logger       = (*adapter)(nil)
	_ mdbadge.FieldsLogger = (*adapter)(nil)
)

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) mdbadge.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(cloneFields(fields)))
	}
	return l
}

// WithContext binds ctx to subsequent log calls.
func (l *adapter) WithContext(ctx context.Context) mdbadge.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return copied
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}
