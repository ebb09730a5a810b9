// Package diaglog writes timestamped diagnostic records to the setup log file.
//
// The log is opened once at process start (truncating any previous run's
// records) and closed at shutdown; callers receive a Logger value instead of
// reaching for a package-level logger.
package diaglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/conn-castle/devstarter/internal/messages"
)

// DefaultLevel records errors only.
const DefaultLevel = "error"

// Kv is a set of structured fields attached to every record of a Logger.
type Kv map[string]any

// Logger is the logging surface used by the provisioning worker and the CLI.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	WithValues(values Kv) Logger
}

// Noop discards all records.
var Noop Logger = noop{}

type noop struct{}

func (noop) Debugf(string, ...any)   {}
func (noop) Infof(string, ...any)    {}
func (noop) Warningf(string, ...any) {}
func (noop) Errorf(string, ...any)   {}
func (n noop) WithValues(Kv) Logger  { return n }

type logrusLogger struct {
	entry *logrus.Entry
}

// New returns a Logger writing text records with full timestamps to w.
func New(w io.Writer, level string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.Out = w
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return &logrusLogger{entry: logrus.NewEntry(l)}, nil
}

// ParseLevel parses a logrus level name; an empty name means DefaultLevel.
func ParseLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf(messages.DiagLogLevelFmt, level, err)
	}
	return lvl, nil
}

func (l *logrusLogger) Debugf(format string, args ...any)   { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...any)    { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warningf(format string, args ...any) { l.entry.Warningf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...any)   { l.entry.Errorf(format, args...) }

func (l *logrusLogger) WithValues(values Kv) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(values))}
}

// File is an open diagnostics log.
type File struct {
	Logger
	file *os.File
	path string
}

// Open truncates (or creates) the log file at path and returns a Logger
// writing to it. Parent directories are created as needed.
func Open(path string, level string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf(messages.DiagLogCreateFmt, dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.DiagLogOpenFmt, path, err)
	}
	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{Logger: logger, file: f, path: path}, nil
}

// Path returns the log file location.
func (f *File) Path() string {
	return f.path
}

// Close flushes and closes the log file. Calling Close more than once is a no-op.
func (f *File) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	err := f.file.Sync()
	if cerr := f.file.Close(); err == nil {
		err = cerr
	}
	f.file = nil
	return err
}
