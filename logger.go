package mdbadge

// Logger is the leveled logging contract used by the transformer.
// It matches the method set of github.com/goliatone/go-logger loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// FieldsLogger is an optional extension for attaching structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// withFields attaches fields when logger supports it and returns logger otherwise.
func withFields(logger Logger, fields map[string]any) Logger {
	if logger == nil {
		return NopLogger()
	}
	if len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(FieldsLogger); ok {
		return fl.WithFields(fields)
	}
	return logger
}
