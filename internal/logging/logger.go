package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures the logger built by Setup.
type Options struct {
	Dir        string // base log directory
	WorkDir    string // selects the per-project subdirectory
	Level      string
	Format     string
	Timestamps bool
	Caller     bool
}

// Session is an open run log and the logger writing to it.
type Session struct {
	Logger *log.Logger
	Run    *RunLogger
}

// Setup opens a run log file and returns a logger writing to it.
func Setup(opts Options) (*Session, error) {
	run, err := NewRunLogger(opts.Dir, opts.WorkDir)
	if err != nil {
		return nil, err
	}
	return &Session{Logger: New(run.Writer(), opts), Run: run}, nil
}

// Close closes the run log file.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return s.Run.Close()
}

// New builds a charmbracelet/log logger for w from opts.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		ReportCaller:    opts.Caller,
		Prefix:          "listkeep",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name; unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name; unknown names mean text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
