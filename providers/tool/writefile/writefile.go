// Package writefile provides the write_to_file tool: it creates or
// overwrites a file inside the project directory, creating parent
// directories as needed. Paths are resolved through the sandbox before any
// mutation.
package writefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leofalp/reagent/providers/tool"
)

// Input holds the arguments the model passes to the write_to_file tool.
type Input struct {
	// Path is the file to write, relative to the project directory
	Path string `json:"path" jsonschema:"description=File path relative to the project directory,required"`

	// Content is written verbatim, replacing any existing content
	Content string `json:"content" jsonschema:"description=The full content to write to the file,required"`
}

// Output reports the completed write back to the model.
type Output struct {
	Path         string `json:"path" jsonschema:"description=The path that was written"`
	BytesWritten int    `json:"bytes_written" jsonschema:"description=Number of bytes written"`
}

// New returns the write_to_file tool bound to the given sandbox.
func New(sandbox *tool.Sandbox) *tool.Tool[Input, Output] {
	t := tool.NewTool("write_to_file", func(ctx context.Context, input Input) (Output, error) {
		resolved, err := sandbox.Resolve(input.Path)
		if err != nil {
			return Output{}, err
		}

		if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
			return Output{}, fmt.Errorf("creating parent directories for %s: %w", input.Path, err)
		}
		if err := os.WriteFile(resolved, []byte(input.Content), 0o644); err != nil {
			return Output{}, fmt.Errorf("writing %s: %w", input.Path, err)
		}

		return Output{
			Path:         input.Path,
			BytesWritten: len(input.Content),
		}, nil
	}, tool.WithDescription("Creates or overwrites a file in the project directory with the given content, creating parent directories as needed. The path must be relative to the project directory."))

	return t.WithEffects(func(input Input) string {
		return fmt.Sprintf("wrote %d bytes to %s", len(input.Content), input.Path)
	})
}
