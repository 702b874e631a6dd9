// Package readfile provides the read_file tool: it returns the contents of a
// file inside the project directory. Paths are resolved through the sandbox;
// anything outside the project directory is rejected before the filesystem is
// touched.
package readfile

import (
	"context"
	"fmt"
	"os"

	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/tool"
)

// MaxContentLength bounds the returned file content so one large file cannot
// flood the conversation.
const MaxContentLength = 64 * 1024

// Input holds the arguments the model passes to the read_file tool.
type Input struct {
	// Path is the file to read, relative to the project directory
	Path string `json:"path" jsonschema:"description=File path relative to the project directory,required"`
}

// Output holds the file contents returned to the model.
type Output struct {
	Path    string `json:"path" jsonschema:"description=The path that was read"`
	Content string `json:"content" jsonschema:"description=The file contents (truncated when very large)"`
}

// New returns the read_file tool bound to the given sandbox.
func New(sandbox *tool.Sandbox) *tool.Tool[Input, Output] {
	return tool.NewTool("read_file", func(ctx context.Context, input Input) (Output, error) {
		resolved, err := sandbox.Resolve(input.Path)
		if err != nil {
			return Output{}, err
		}

		data, err := os.ReadFile(resolved)
		if err != nil {
			if os.IsNotExist(err) {
				return Output{}, fmt.Errorf("file not found: %s", input.Path)
			}
			return Output{}, fmt.Errorf("reading %s: %w", input.Path, err)
		}

		return Output{
			Path:    input.Path,
			Content: utils.Truncate(string(data), MaxContentLength),
		}, nil
	}, tool.WithDescription("Reads a file from the project directory and returns its contents. The path must be relative to the project directory."))
}
