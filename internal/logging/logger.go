// Package logging provides the process-wide structured logger.
//
// Every subsystem takes a *logrus.Logger (or a field-scoped *logrus.Entry)
// at construction rather than reaching for a package-level global, so tests
// can inject a silent or buffered logger. New builds the one instance the
// CLI entry point wires into everything else.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level names accepted by -l/--log-level, matching logrus's own vocabulary.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// New builds a logger writing text-formatted lines to w at the given level.
// An unrecognized level falls back to info.
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// OpenFile opens path for appending, creating the file if necessary. The
// parent directory must already exist. Callers use the returned file as
// the logger's output and are responsible for closing it on shutdown.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Discard returns a logger that drops everything, for tests that don't
// care about log output but exercise code paths that log.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
