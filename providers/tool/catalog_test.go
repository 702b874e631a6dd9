package tool

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func newTestCatalog() *Catalog {
	upper := NewTool("upper", func(ctx context.Context, input echoInput) (echoOutput, error) {
		return echoOutput{Result: strings.ToUpper(input.Text)}, nil
	}, WithDescription("Uppercases text."))

	boom := NewTool("boom", func(ctx context.Context, input echoInput) (echoOutput, error) {
		return echoOutput{}, fmt.Errorf("reading %q: %w", input.Text, ErrSandboxViolation)
	})

	return NewCatalogWithTools(upper, boom)
}

// TestCatalog_GetIsCaseInsensitive verifies lookup normalization.
func TestCatalog_GetIsCaseInsensitive(t *testing.T) {
	catalog := newTestCatalog()

	if _, ok := catalog.Get("UPPER"); !ok {
		t.Error("expected case-insensitive lookup to find tool")
	}
	if catalog.Has("missing") {
		t.Error("did not expect to find unregistered tool")
	}
}

// TestCatalog_SchemasSorted verifies deterministic, name-sorted schemas.
func TestCatalog_SchemasSorted(t *testing.T) {
	schemas := newTestCatalog().Schemas()

	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}
	if schemas[0].Name != "boom" || schemas[1].Name != "upper" {
		t.Errorf("expected schemas sorted by name, got %s, %s", schemas[0].Name, schemas[1].Name)
	}
}

// TestDispatch_Success verifies a successful dispatch carries the tool output
// and no error.
func TestDispatch_Success(t *testing.T) {
	result := newTestCatalog().Dispatch(context.Background(), "upper", `{"text":"hi"}`)

	if result.Failed() {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if !strings.Contains(result.Output, "HI") {
		t.Errorf("unexpected output: %s", result.Output)
	}
	if result.Tool != "upper" {
		t.Errorf("unexpected tool name: %s", result.Tool)
	}
}

// TestDispatch_UnknownTool verifies unknown names come back as an error
// result listing the available tools, never a Go error.
func TestDispatch_UnknownTool(t *testing.T) {
	result := newTestCatalog().Dispatch(context.Background(), "nope", `{}`)

	if !result.Failed() {
		t.Fatal("expected failure for unknown tool")
	}
	if !strings.Contains(result.Error, "unknown tool") || !strings.Contains(result.Error, "upper") {
		t.Errorf("unexpected error: %s", result.Error)
	}
}

// TestDispatch_SandboxViolationIsFlagged verifies the distinguished sandbox
// error class is visible in the result text.
func TestDispatch_SandboxViolationIsFlagged(t *testing.T) {
	result := newTestCatalog().Dispatch(context.Background(), "boom", `{"text":"../x"}`)

	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(result.Error, "sandbox violation:") {
		t.Errorf("expected sandbox violation prefix, got %s", result.Error)
	}
}

// TestDispatch_InvalidArguments verifies argument validation failures are
// results, not errors.
func TestDispatch_InvalidArguments(t *testing.T) {
	result := newTestCatalog().Dispatch(context.Background(), "upper", `{"times": 1}`)

	if !result.Failed() {
		t.Fatal("expected failure for missing required argument")
	}
	if !strings.Contains(result.Error, "missing required argument") {
		t.Errorf("unexpected error: %s", result.Error)
	}
}

// TestResult_Observation verifies the JSON observation shape.
func TestResult_Observation(t *testing.T) {
	result := Result{Tool: "upper", Output: `{"result":"HI"}`}

	obs := result.Observation()
	if !strings.Contains(obs, `"tool":"upper"`) {
		t.Errorf("unexpected observation: %s", obs)
	}
	if strings.Contains(obs, `"error"`) {
		t.Errorf("empty error must be omitted: %s", obs)
	}
}
