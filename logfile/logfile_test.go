package logfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[(INFO|DEBUG|WARNING|ERROR)\] => .*$`)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"info":    LevelInfo,
		"Debug":   LevelDebug,
		"warning": LevelWarning,
		"eRRoR":   LevelError,
		" error ": LevelError,
		"warn":    LevelInfo,
		"fatal":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", in, got, want)
		}
	}
}

func TestLogCreatesDirectoryAndFormatsLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "app.log")
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 15, 14, 3, 27, 0, time.Local))
	l := New(path, WithClock(clock))

	if err := l.Log("payment declined", "error"); err != nil {
		t.Fatalf("log: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := "[2026-10-15 14:03:27] [ERROR] => payment declined"
	if lines[0] != want {
		t.Fatalf("got %q want %q", lines[0], want)
	}
}

func TestLogAppendsAndPreservesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing line\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := Log("first", "debug", path); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := Log("second", "nonsense", path); err != nil {
		t.Fatalf("log: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 3 || lines[0] != "existing line" {
		t.Fatalf("unexpected content %q", lines)
	}
	if !strings.Contains(lines[1], "[DEBUG] => first") {
		t.Fatalf("unexpected line %q", lines[1])
	}
	if !strings.Contains(lines[2], "[INFO] => second") {
		t.Fatalf("unknown level must fall back to INFO: %q", lines[2])
	}
}

func TestConcurrentAppendsNeverInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := New(path)
	other := New(path)

	const writers = 16
	const perWriter = 50
	payload := strings.Repeat("x", 512)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			target := l
			if w%2 == 1 {
				target = other
			}
			for i := 0; i < perWriter; i++ {
				if err := target.Log(fmt.Sprintf("w%02d-%03d %s", w, i, payload), "warning"); err != nil {
					t.Errorf("log: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	lines := readLines(t, path)
	if len(lines) != writers*perWriter {
		t.Fatalf("expected %d lines, got %d", writers*perWriter, len(lines))
	}
	for _, line := range lines {
		if !linePattern.MatchString(line) || !strings.HasSuffix(line, payload) {
			t.Fatalf("corrupted line %q", line)
		}
	}
}

func TestObserverSeesNormalisedLevel(t *testing.T) {
	var got []Level
	l := New(filepath.Join(t.TempDir(), "a.log"), WithObserver(func(level Level) {
		got = append(got, level)
	}))
	_ = l.Log("m", "Error")
	_ = l.Info("m")
	if len(got) != 2 || got[0] != LevelError || got[1] != LevelInfo {
		t.Fatalf("unexpected observed levels %v", got)
	}
}

func TestNewDefaultsPath(t *testing.T) {
	if New("").Path() != DefaultPath {
		t.Fatalf("expected default path")
	}
	var zero *Logger
	if err := zero.Log("m", "info"); err != ErrEmptyPath {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestSlogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slog.log")
	logger := slog.New(NewHandler(New(path), slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("user signed in", "user_id", "u-1")
	logger.With("request_id", "r-9").WithGroup("http").Warn("slow", "ms", 1200)
	logger.Error("boom")

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	if !strings.HasSuffix(lines[0], "[INFO] => user signed in user_id=u-1") {
		t.Fatalf("unexpected info line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[WARNING] => slow request_id=r-9 http.ms=1200") {
		t.Fatalf("unexpected warning line %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "[ERROR] => boom") {
		t.Fatalf("unexpected error line %q", lines[2])
	}
}

func TestLevelFromSlog(t *testing.T) {
	tests := map[slog.Level]Level{
		slog.LevelDebug:     LevelDebug,
		slog.LevelInfo:      LevelInfo,
		slog.LevelInfo + 2:  LevelInfo,
		slog.LevelWarn:      LevelWarning,
		slog.LevelError:     LevelError,
		slog.LevelError + 4: LevelError,
	}
	for in, want := range tests {
		if got := LevelFromSlog(in); got != want {
			t.Fatalf("LevelFromSlog(%v)=%s want %s", in, got, want)
		}
	}
}
