package tool

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrSandboxViolation marks a path argument that escapes the project
// directory. It is checked with errors.Is before any filesystem or process
// side effect is attempted.
var ErrSandboxViolation = errors.New("path escapes the project directory")

// Sandbox confines all file and process side effects to one project
// directory. It is the single choke point for path containment: tools never
// build absolute paths themselves, they resolve through the sandbox.
type Sandbox struct {
	root string
}

// NewSandbox creates a sandbox rooted at dir. The directory is made absolute
// so containment checks are independent of the process working directory.
func NewSandbox(dir string) (*Sandbox, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving sandbox root: %w", err)
	}
	return &Sandbox{root: root}, nil
}

// Root returns the absolute project directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve maps a model-supplied relative path to an absolute path inside the
// sandbox. Absolute paths, empty paths, and any path whose cleaned form
// escapes the root (".." traversal) fail with [ErrSandboxViolation].
func (s *Sandbox) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrSandboxViolation)
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: absolute path %q (use paths relative to the project directory)", ErrSandboxViolation, path)
	}

	// Join cleans the result, collapsing any ".." segments.
	resolved := filepath.Join(s.root, path)
	if resolved != s.root && !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves outside the project directory", ErrSandboxViolation, path)
	}
	return resolved, nil
}
