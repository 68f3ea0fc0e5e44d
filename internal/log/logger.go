// Package log wraps logrus with package-level helpers. The TUI owns the
// terminal, so the logger writes to a file (or is discarded entirely)
// instead of stdout.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Setup directs log output to the given file, creating parent directories
// as needed. An empty path leaves output discarded.
func Setup(path string, debug bool) error {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logger.SetOutput(f)
	return nil
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug toggles debug-level logging
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Info logs a formatted informational message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a formatted debug message
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// WithField returns an entry carrying a structured field
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}
