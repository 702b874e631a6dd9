package terminal

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/reagent/providers/tool"
)

func newTestTool(t *testing.T, opts Options) (*tool.Tool[Input, Output], string) {
	t.Helper()
	root := t.TempDir()
	sandbox, err := tool.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	return New(sandbox, opts), root
}

func runCommand(t *testing.T, terminalTool *tool.Tool[Input, Output], command string) Output {
	t.Helper()
	args, _ := json.Marshal(Input{Command: command})
	raw, err := terminalTool.Call(context.Background(), string(args))
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", command, err)
	}
	var out Output
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return out
}

// TestTerminal_CapturesStdout verifies a simple command runs in the project
// directory and its output is captured.
func TestTerminal_CapturesStdout(t *testing.T) {
	terminalTool, _ := newTestTool(t, Options{})

	out := runCommand(t, terminalTool, "echo hello")
	if strings.TrimSpace(out.Stdout) != "hello" {
		t.Errorf("stdout = %q, want hello", out.Stdout)
	}
	if out.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", out.ExitCode)
	}
}

// TestTerminal_WorkingDirectory verifies commands run rooted at the project
// directory.
func TestTerminal_WorkingDirectory(t *testing.T) {
	terminalTool, root := newTestTool(t, Options{})

	out := runCommand(t, terminalTool, "pwd")
	if strings.TrimSpace(out.Stdout) != root {
		t.Errorf("pwd = %q, want %q", strings.TrimSpace(out.Stdout), root)
	}
}

// TestTerminal_NonZeroExitIsData verifies a failing command is reported via
// ExitCode rather than as an execution error.
func TestTerminal_NonZeroExitIsData(t *testing.T) {
	terminalTool, _ := newTestTool(t, Options{})

	out := runCommand(t, terminalTool, "echo oops >&2; exit 3")
	if out.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", out.ExitCode)
	}
	if strings.TrimSpace(out.Stderr) != "oops" {
		t.Errorf("stderr = %q, want oops", out.Stderr)
	}
}

// TestTerminal_Timeout verifies a command exceeding the configured timeout
// fails the call.
func TestTerminal_Timeout(t *testing.T) {
	terminalTool, _ := newTestTool(t, Options{Timeout: 100 * time.Millisecond})

	_, err := terminalTool.Call(context.Background(), `{"command":"sleep 5"}`)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestTerminal_ConfirmDecline verifies a declined confirmation fails the call
// without running the command.
func TestTerminal_ConfirmDecline(t *testing.T) {
	var asked string
	terminalTool, root := newTestTool(t, Options{
		Confirm: func(command string) bool {
			asked = command
			return false
		},
	})

	_, err := terminalTool.Call(context.Background(), `{"command":"touch marker.txt"}`)
	if err == nil {
		t.Fatal("expected error for declined command")
	}
	if asked != "touch marker.txt" {
		t.Errorf("confirm hook saw %q", asked)
	}

	out := runCommand(t, New(mustSandbox(t, root), Options{}), "ls")
	if strings.Contains(out.Stdout, "marker.txt") {
		t.Error("declined command was executed anyway")
	}
}

// TestTerminal_TruncatesLongOutput verifies oversized output is capped with a
// truncation marker.
func TestTerminal_TruncatesLongOutput(t *testing.T) {
	terminalTool, _ := newTestTool(t, Options{})

	out := runCommand(t, terminalTool, "yes x | head -n 5000")
	if len(out.Stdout) > MaxOutputLength+64 {
		t.Errorf("stdout length %d exceeds cap", len(out.Stdout))
	}
	if !strings.Contains(out.Stdout, "[truncated]") {
		t.Error("expected truncation marker in stdout")
	}
}

func mustSandbox(t *testing.T, dir string) *tool.Sandbox {
	t.Helper()
	sandbox, err := tool.NewSandbox(dir)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	return sandbox
}
