// Package logx is the thin leveled-logging wrapper spec.md §6's CLI
// surface describes (-v/--verbose 0..4). The underlying global mutable
// logger of the original implementation becomes a small, explicitly
// constructed service (spec.md §9's "process-lifetime initialised-once
// services" resolution for global state) built on
// github.com/sirupsen/logrus.
package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Level is the 0..4 verbosity scale spec.md §6 fixes: 0 silent, 1
// error, 2 warning (the CLI default), 3 info, 4 debug.
type Level int

const (
	Silent Level = iota
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Silent:
		return logrus.PanicLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Logger is preppy's logging handle, passed explicitly into anything
// that needs to report progress or warnings rather than reached for as
// a package-level global.
type Logger struct {
	entry *logrus.Logger
}

// New returns a Logger at the given verbosity, writing to stderr so
// stdout stays free for any data a caller pipes elsewhere.
func New(level Level) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level.logrusLevel())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{entry: l}
}

// FromVerbosity clamps v into [Silent, DebugLevel] and constructs a
// Logger at that level, mirroring the CLI's -v/--verbose flag.
func FromVerbosity(v int) *Logger {
	switch {
	case v <= int(Silent):
		return New(Silent)
	case v >= int(DebugLevel):
		return New(DebugLevel)
	default:
		return New(Level(v))
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// WithField returns a *logrus.Entry prefilled with key/value, for
// callers that want structured context (e.g. the procedure being run)
// attached to a handful of related log lines.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.entry.WithField(key, value)
}
