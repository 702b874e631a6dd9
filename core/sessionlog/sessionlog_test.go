package sessionlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type memoryWriter struct {
	buf    bytes.Buffer
	closed bool
	fail   bool
}

func (m *memoryWriter) Write(p []byte) (int, error) {
	if m.fail {
		return 0, errors.New("disk full")
	}
	return m.buf.Write(p)
}

func (m *memoryWriter) Close() error {
	m.closed = true
	return nil
}

func newMemoryLogger() (*Logger, *memoryWriter) {
	w := &memoryWriter{}
	l := NewWithWriter(w)
	l.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return l, w
}

// TestLogger_EntryFormat verifies every entry kind produces a timestamped,
// tagged line.
func TestLogger_EntryFormat(t *testing.T) {
	logger, w := newMemoryLogger()

	logger.Request(`{"model":"m"}`)
	logger.Reply("<thought>hi</thought>")
	logger.ToolResult("ok")
	logger.Event("run finished after %d steps", 3)

	lines := strings.Split(strings.TrimRight(w.buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	want := []string{
		`[2025-03-14 09:26:53] REQUEST: {"model":"m"}`,
		`[2025-03-14 09:26:53] REPLY: <thought>hi</thought>`,
		`[2025-03-14 09:26:53] TOOL_RESULT: ok`,
		`[2025-03-14 09:26:53] EVENT: run finished after 3 steps`,
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

// TestLogger_AppendOnly verifies entries accumulate in order.
func TestLogger_AppendOnly(t *testing.T) {
	logger, w := newMemoryLogger()

	logger.Event("first")
	logger.Event("second")

	out := w.buf.String()
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("entries out of order")
	}
}

// TestLogger_WriteFailureIsNonFatal verifies a failing writer never panics
// or surfaces an error to callers.
func TestLogger_WriteFailureIsNonFatal(t *testing.T) {
	w := &memoryWriter{fail: true}
	logger := NewWithWriter(w)

	logger.Request("payload")
	logger.Event("still alive")
}

// TestLogger_NilReceiver verifies a nil logger is a no-op, so callers can
// run without a transcript.
func TestLogger_NilReceiver(t *testing.T) {
	var logger *Logger

	logger.Request("x")
	logger.Reply("y")
	logger.ToolResult("z")
	logger.Event("e")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
}

// TestLogger_Close verifies Close reaches the underlying writer.
func TestLogger_Close(t *testing.T) {
	logger, w := newMemoryLogger()
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !w.closed {
		t.Error("underlying writer not closed")
	}
}

// TestNew_CreatesLogDirectory verifies New places the transcript under the
// project's agentlog directory.
func TestNew_CreatesLogDirectory(t *testing.T) {
	projectDir := t.TempDir()

	logger, err := New(projectDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Event("hello")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(projectDir, DirName))
	if err != nil {
		t.Fatalf("reading log directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d log files, want 1", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), ".agentrun.log") {
		t.Errorf("log file name = %q", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(projectDir, DirName, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	if !strings.Contains(string(data), "EVENT: hello") {
		t.Errorf("transcript missing entry: %q", data)
	}
}
