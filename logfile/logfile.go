// Package logfile appends human-readable log lines to a local file.
//
// Each entry is a single line:
//
//	[2026-10-15 14:03:27] [ERROR] => payment declined
//
// Lines are written with one write(2) call under an exclusive lock (an
// in-process mutex plus flock(2) where available), so concurrent writers in
// one or several processes never interleave inside a line. Existing content is
// never truncated.
package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
)

// Level is a log severity. Only the four declared levels are ever written.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelDebug   Level = "DEBUG"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

const (
	// DefaultPath is used when no path is configured.
	DefaultPath = "log/app.log"

	timestampLayout = "2006-01-02 15:04:05"
	dirMode         = 0o777
	fileMode        = 0o666
)

// ErrEmptyPath is returned by Logger methods on a zero Logger.
var ErrEmptyPath = errors.New("log file path is empty")

// ParseLevel upper-cases s and returns the matching Level, or LevelInfo when s
// is not one of INFO, DEBUG, WARNING, ERROR.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelInfo, LevelDebug, LevelWarning, LevelError:
		return l
	default:
		return LevelInfo
	}
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock sets the clock used for timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(l *Logger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithObserver registers fn to be called with the level of every line written.
func WithObserver(fn func(Level)) Option {
	return func(l *Logger) {
		l.observe = fn
	}
}

// Logger appends lines to one file. It is safe for concurrent use.
type Logger struct {
	path    string
	clock   clockwork.Clock
	observe func(Level)

	mu sync.Mutex
}

// New returns a Logger writing to path, or DefaultPath when path is empty.
// The file and its directory are created lazily on the first write.
func New(path string, opts ...Option) *Logger {
	if path == "" {
		path = DefaultPath
	}
	l := &Logger{
		path:  path,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Log appends message at level (see ParseLevel for normalisation).
func (l *Logger) Log(message, level string) error {
	return l.write(ParseLevel(level), message)
}

func (l *Logger) Info(message string) error    { return l.write(LevelInfo, message) }
func (l *Logger) Debug(message string) error   { return l.write(LevelDebug, message) }
func (l *Logger) Warning(message string) error { return l.write(LevelWarning, message) }
func (l *Logger) Error(message string) error   { return l.write(LevelError, message) }

// FormatLine renders one log line including the trailing newline.
func FormatLine(timestamp string, level Level, message string) string {
	return "[" + timestamp + "] [" + string(level) + "] => " + message + "\n"
}

func (l *Logger) write(level Level, message string) error {
	if l == nil || l.path == "" {
		return ErrEmptyPath
	}

	line := FormatLine(l.clock.Now().Format(timestampLayout), level, message)

	if err := os.MkdirAll(filepath.Dir(l.path), dirMode); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, fileMode)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("lock log file: %w", err)
	}
	defer func() { _ = unlockFile(f) }()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}

	if l.observe != nil {
		l.observe(level)
	}
	return nil
}

// Log appends one line to path (DefaultPath when empty) without keeping a Logger.
func Log(message, level, path string) error {
	return New(path).Log(message, level)
}
