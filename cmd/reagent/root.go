package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/leofalp/reagent/agent"
	"github.com/leofalp/reagent/core/sessionlog"
	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/ai/manual"
	"github.com/leofalp/reagent/providers/ai/openrouter"
	"github.com/leofalp/reagent/providers/observability/slogobs"
	"github.com/leofalp/reagent/providers/tool"
	"github.com/leofalp/reagent/providers/tool/fetchurl"
	"github.com/leofalp/reagent/providers/tool/readfile"
	"github.com/leofalp/reagent/providers/tool/terminal"
	"github.com/leofalp/reagent/providers/tool/websearch"
	"github.com/leofalp/reagent/providers/tool/writefile"
)

var (
	flagModel          string
	flagMaxIterations  int
	flagCommandTimeout time.Duration
	flagAutoApprove    bool
	flagVerbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "reagent <project_directory>",
	Short: "Drives a reason-and-act model loop against a sandboxed project directory",
	Long: `reagent gives a language model a small tool set (file access, shell,
web search, URL fetch) scoped to one project directory, asks you for a task,
and loops between model replies and tool executions until the model delivers
a final answer.

With OPENROUTER_API_KEY set (environment or .env file) replies come from the
OpenRouter API; without it the payload is printed for you to relay to a model
by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgent,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagModel, "model", openrouter.DefaultModel, "model identifier for the automatic transport")
	rootCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", agent.DefaultMaxIterations, "maximum loop iterations before aborting")
	rootCmd.Flags().DurationVar(&flagCommandTimeout, "command-timeout", 0, "timeout for run_terminal_command (0 means unbounded)")
	rootCmd.Flags().BoolVar(&flagAutoApprove, "auto-approve", false, "run terminal commands without asking for confirmation")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "emit span logs to stderr")
}

func runAgent(cmd *cobra.Command, args []string) error {
	projectDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}
	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		if err := os.MkdirAll(projectDir, 0o755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created directory: %s\n", projectDir)
	}

	// One reader shared by every interactive prompt so buffered input is
	// never lost between them.
	stdin := bufio.NewReader(cmd.InOrStdin())

	sandbox, err := tool.NewSandbox(projectDir)
	if err != nil {
		return err
	}
	catalog := tool.NewCatalogWithTools(
		readfile.New(sandbox),
		writefile.New(sandbox),
		terminal.New(sandbox, terminal.Options{
			Timeout: flagCommandTimeout,
			Confirm: commandConfirmer(cmd, stdin),
		}),
		websearch.New(websearch.Options{}),
		fetchurl.New(),
	)

	transport := selectTransport(cmd, stdin)

	transcript, err := sessionlog.New(projectDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := transcript.Close(); closeErr != nil {
			slog.Warn("closing session log", "error", closeErr)
		}
	}()

	runner := agent.New(transport, catalog, projectDir).
		WithModel(flagModel).
		WithMaxIterations(flagMaxIterations).
		WithSessionLog(transcript).
		WithThoughtHandler(func(thought string) {
			fmt.Fprintf(cmd.OutOrStdout(), "\nThought: %s\n", thought)
		})
	if flagVerbose {
		runner.WithObservability(slogobs.New(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))))
	}

	task, err := readTask(cmd, stdin)
	if err != nil {
		return err
	}

	answer, err := runner.Run(cmd.Context(), task)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nFinal Answer: %s\n", answer)
	return nil
}

// selectTransport picks the automatic transport when a credential is
// present, manual otherwise.
func selectTransport(cmd *cobra.Command, stdin *bufio.Reader) ai.Transport {
	if os.Getenv("OPENROUTER_API_KEY") != "" {
		return openrouter.New()
	}
	fmt.Fprintln(cmd.OutOrStdout(), "OPENROUTER_API_KEY not set: running in manual transport mode.")
	return manual.NewWithIO(stdin, cmd.OutOrStdout())
}

// commandConfirmer returns the terminal-command confirmation hook, or nil
// when --auto-approve is set.
func commandConfirmer(cmd *cobra.Command, stdin *bufio.Reader) func(string) bool {
	if flagAutoApprove {
		return nil
	}
	return func(command string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "\nRun command? %s\nContinue? (Y/N): ", command)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}

// readTask prompts for the task description on stdin.
func readTask(cmd *cobra.Command, stdin *bufio.Reader) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Please enter task: ")
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading task: %w", err)
	}
	task := strings.TrimSpace(line)
	if task == "" {
		return "", errors.New("no task provided")
	}
	return task, nil
}
