// Package terminal provides the run_terminal_command tool. Commands run
// through the shell with the sandbox root as working directory, so relative
// paths in the command stay inside the project.
package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/tool"
)

// MaxOutputLength caps each captured stream before it is returned to the
// model. Longer output is truncated with a marker.
const MaxOutputLength = 4000

// Input is the argument struct for run_terminal_command.
type Input struct {
	Command string `json:"command" jsonschema:"description=Shell command to execute in the project directory,required"`
}

// Output carries the command result. A non-zero exit code is a normal
// outcome, not an error.
type Output struct {
	Stdout   string `json:"stdout" jsonschema:"description=Captured standard output"`
	Stderr   string `json:"stderr" jsonschema:"description=Captured standard error"`
	ExitCode int    `json:"exit_code" jsonschema:"description=Process exit code"`
}

// Options configures command execution.
type Options struct {
	// Timeout bounds a single command. Zero means no limit.
	Timeout time.Duration

	// Confirm, when set, is asked before every command runs. Returning false
	// fails the call without spawning the process.
	Confirm func(command string) bool
}

// New returns the run_terminal_command tool bound to the given sandbox.
func New(sandbox *tool.Sandbox, opts Options) *tool.Tool[Input, Output] {
	t := tool.NewTool("run_terminal_command", func(ctx context.Context, input Input) (Output, error) {
		if opts.Confirm != nil && !opts.Confirm(input.Command) {
			return Output{}, fmt.Errorf("command not approved by the user: %s", input.Command)
		}

		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, "sh", "-c", input.Command)
		cmd.Dir = sandbox.Root()

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Output{}, fmt.Errorf("command timed out after %s: %w", opts.Timeout, ctxErr)
			}
			exitErr, ok := err.(*exec.ExitError)
			if !ok {
				// Spawn failure (shell missing, permission denied).
				return Output{}, fmt.Errorf("running command: %w", err)
			}
			return Output{
				Stdout:   utils.Truncate(stdout.String(), MaxOutputLength),
				Stderr:   utils.Truncate(stderr.String(), MaxOutputLength),
				ExitCode: exitErr.ExitCode(),
			}, nil
		}

		return Output{
			Stdout:   utils.Truncate(stdout.String(), MaxOutputLength),
			Stderr:   utils.Truncate(stderr.String(), MaxOutputLength),
			ExitCode: 0,
		}, nil
	}, tool.WithDescription("Executes a shell command in the project directory and returns its stdout, stderr, and exit code. A non-zero exit code is reported in the output, not as a failure."))

	return t.WithEffects(func(input Input) string {
		return fmt.Sprintf("ran command: %s", input.Command)
	})
}
