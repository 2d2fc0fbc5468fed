// Package logging provides tests for run logs and tail output.
package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewRunLogger(t *testing.T) {
	t.Run("creates log file under project dir", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := t.TempDir()

		logger, err := NewRunLogger(baseDir, workDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.RunID == "" {
			t.Error("expected RunID to be set")
		}
		if filepath.Dir(logger.Dir) != filepath.Clean(baseDir) {
			t.Errorf("Dir %q is not directly under %q", logger.Dir, baseDir)
		}
		if !strings.HasSuffix(logger.LogPath, LogExt) {
			t.Errorf("LogPath %q should end in %s", logger.LogPath, LogExt)
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewRunLogger("", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "empty") {
			t.Fatalf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates nested base dir", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "new-logs", "nested")
		logger, err := NewRunLogger(baseDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()
		if _, err := os.Stat(logger.Dir); err != nil {
			t.Errorf("log dir not created: %v", err)
		}
	})
}

func TestRunLoggerCloseNil(t *testing.T) {
	var r *RunLogger
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
}

func TestFindLogDirMatchesRunLogger(t *testing.T) {
	baseDir := t.TempDir()
	workDir := t.TempDir()

	logger, err := NewRunLogger(baseDir, workDir)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	dir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		t.Fatal(err)
	}
	if dir != logger.Dir {
		t.Errorf("FindLogDir: got %q, want %q", dir, logger.Dir)
	}

	other, err := FindLogDir(baseDir, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if other == dir {
		t.Error("different work dirs should map to different log dirs")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project!", "My_Project"},
		{"a  b", "a_b"},
		{"", "project"},
		{"///", "project"},
		{"v1.2_x", "v1.2_x"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/a")
	if len(a) != 8 {
		t.Errorf("hash length: got %d, want 8", len(a))
	}
	if a != hashPath("/a") {
		t.Error("hash should be deterministic")
	}
	if a == hashPath("/b") {
		t.Error("different inputs should hash differently")
	}
}

func TestSetupWritesLogFile(t *testing.T) {
	session, err := Setup(Options{
		Dir:     t.TempDir(),
		WorkDir: t.TempDir(),
		Level:   "warn",
		Format:  "logfmt",
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	session.Logger.Info("hidden")
	session.Logger.Warn("snapshot is malformed", "key", "todos")
	if err := session.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(session.Run.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "snapshot is malformed") || !strings.Contains(out, "key=todos") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json should map to JSONFormatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt should map to LogfmtFormatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Error("empty should map to TextFormatter")
	}
}

func writeRun(t *testing.T, dir, id, content string, mod time.Time) string {
	t.Helper()
	p := filepath.Join(dir, id+LogExt)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(p, mod, mod); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFindLogRuns(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeRun(t, dir, "20260101-000000-1", "a\n", now.Add(-2*time.Hour))
	newest := writeRun(t, dir, "20260101-010000-2", "b\n", now)
	writeRun(t, dir, "20260101-005000-3", "c\n", now.Add(-time.Hour))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := FindLogRuns(dir)
	if err != nil {
		t.Fatalf("FindLogRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs: got %d, want 3", len(runs))
	}
	if runs[0].Path != newest || runs[0].RunID != "20260101-010000-2" {
		t.Errorf("newest run: got %+v", runs[0])
	}
	if runs[2].RunID != "20260101-000000-1" {
		t.Errorf("oldest run: got %q", runs[2].RunID)
	}

	latest, err := FindLatestLog(dir)
	if err != nil {
		t.Fatal(err)
	}
	if latest != newest {
		t.Errorf("FindLatestLog: got %q, want %q", latest, newest)
	}
}

func TestFindLatestLogMissingDir(t *testing.T) {
	latest, err := FindLatestLog(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("FindLatestLog: %v", err)
	}
	if latest != "" {
		t.Errorf("FindLatestLog: got %q, want empty", latest)
	}
}

func TestTailLog(t *testing.T) {
	dir := t.TempDir()
	path := writeRun(t, dir, "run", "one\ntwo\nthree\nfour\n", time.Now())

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"all lines", 0, "one\ntwo\nthree\nfour\n"},
		{"last two", 2, "three\nfour\n"},
		{"more than available", 10, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("TailLog: got %q, want %q", buf.String(), tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, filepath.Join(dir, "nope.log"), 0, false); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

// waitFor polls buf until it contains want or two seconds pass.
func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(buf.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q, got %q", want, buf.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTailLogFollowStopsOnCancel(t *testing.T) {
	path := writeRun(t, t.TempDir(), "run", "first\n", time.Now())

	old := followInterval
	followInterval = 5 * time.Millisecond
	defer func() { followInterval = old }()

	ctx, cancel := context.WithCancel(context.Background())
	var buf syncBuffer
	done := make(chan error, 1)
	go func() { done <- TailLog(ctx, &buf, path, 1, true) }()

	waitFor(t, &buf, "first")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("second\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	waitFor(t, &buf, "second")
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("TailLog: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("TailLog did not return after cancel")
	}
	if got := buf.String(); got != "first\nsecond\n" {
		t.Errorf("followed output: got %q", got)
	}
}
