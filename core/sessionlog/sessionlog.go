// Package sessionlog records a full transcript of one agent run to an
// append-only log file. The transcript captures every model request, every
// raw reply, and every tool result, so a run can be replayed and debugged
// after the fact.
//
// Logging is strictly best-effort: a failed write is reported through slog
// and never interrupts the run.
package sessionlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry kinds. Each transcript line is tagged with one of these.
const (
	KindRequest    = "REQUEST"
	KindReply      = "REPLY"
	KindToolResult = "TOOL_RESULT"
	KindEvent      = "EVENT"
)

// timestampFormat is the human-readable prefix on every transcript line.
const timestampFormat = "2006-01-02 15:04:05"

// DirName is the subdirectory of the project directory that holds run
// transcripts.
const DirName = "agentlog"

// fileTimeFormat names transcript files so they sort chronologically.
const fileTimeFormat = "20060102-150405"

// Logger appends transcript entries to a single run file. Safe for
// concurrent use.
type Logger struct {
	mu  sync.Mutex
	w   io.WriteCloser
	now func() time.Time
}

// New creates a transcript logger for a fresh run under
// <projectDir>/agentlog/<timestamp>.agentrun.log. The directory is created
// if missing. Rotation guards against a runaway session filling the disk.
func New(projectDir string) (*Logger, error) {
	dir := filepath.Join(projectDir, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session log directory: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format(fileTimeFormat)+".agentrun.log")
	return NewWithWriter(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
	}), nil
}

// NewWithWriter creates a transcript logger over an arbitrary writer. Used
// by tests.
func NewWithWriter(w io.WriteCloser) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Request records the payload submitted to the model.
func (l *Logger) Request(payload string) {
	l.append(KindRequest, payload)
}

// Reply records the raw model reply before parsing.
func (l *Logger) Reply(reply string) {
	l.append(KindReply, reply)
}

// ToolResult records the observation produced by a tool dispatch.
func (l *Logger) ToolResult(result string) {
	l.append(KindToolResult, result)
}

// Event records a loop lifecycle note (run started, state changes, abort
// reasons).
func (l *Logger) Event(format string, args ...any) {
	l.append(KindEvent, fmt.Sprintf(format, args...))
}

func (l *Logger) append(kind, content string) {
	if l == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(timestampFormat), kind, content)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write([]byte(line)); err != nil {
		slog.Warn("session log write failed", "error", err, "kind", kind)
	}
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
