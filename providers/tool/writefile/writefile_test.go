package writefile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leofalp/reagent/providers/tool"
)

func newTestTool(t *testing.T) (*tool.Tool[Input, Output], string) {
	t.Helper()
	root := t.TempDir()
	sandbox, err := tool.NewSandbox(root)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	return New(sandbox), root
}

// TestWriteFile_CreatesFileAndParents verifies content lands on disk with
// parent directories created as needed.
func TestWriteFile_CreatesFileAndParents(t *testing.T) {
	writeTool, root := newTestTool(t)

	args, _ := json.Marshal(Input{Path: "sub/dir/out.txt", Content: "line1\nline2"})
	if _, err := writeTool.Call(context.Background(), string(args)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "sub", "dir", "out.txt"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "line1\nline2" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

// TestWriteFile_Overwrite verifies an existing file is replaced, not
// appended to.
func TestWriteFile_Overwrite(t *testing.T) {
	writeTool, root := newTestTool(t)
	path := filepath.Join(root, "x.txt")
	if err := os.WriteFile(path, []byte("old old old"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	if _, err := writeTool.Call(context.Background(), `{"path":"x.txt","content":"new"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected overwrite, got %q", data)
	}
}

// TestWriteFile_SandboxViolation verifies no mutation happens for escaping
// paths.
func TestWriteFile_SandboxViolation(t *testing.T) {
	writeTool, root := newTestTool(t)

	_, err := writeTool.Call(context.Background(), `{"path":"../escape.txt","content":"x"}`)
	if !errors.Is(err, tool.ErrSandboxViolation) {
		t.Fatalf("expected ErrSandboxViolation, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt")); statErr == nil {
		t.Error("file was created outside the sandbox")
	}
}

// TestWriteFile_Effects verifies the side-effect description names the path
// and size.
func TestWriteFile_Effects(t *testing.T) {
	writeTool, _ := newTestTool(t)

	desc := writeTool.Describe(`{"path":"a.txt","content":"hello"}`)
	if !strings.Contains(desc, "a.txt") || !strings.Contains(desc, "5 bytes") {
		t.Errorf("unexpected effects description: %q", desc)
	}
}
