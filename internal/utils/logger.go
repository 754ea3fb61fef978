// Package utils holds the logging interface and path helpers shared by the
// aggregation packages.
package utils

// Logger is the printf-style logger the core packages (ignore, walker,
// aggregate, setup) accept through their WithLogger options. They never
// print on their own; the CLI passes its levelled stderr logger in.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default when no logger is set.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}
