package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type echoInput struct {
	Text  string `json:"text" jsonschema:"description=Text to echo,required"`
	Times int    `json:"times,omitempty"`
}

type echoOutput struct {
	Result string `json:"result"`
}

func newEchoTool() *Tool[echoInput, echoOutput] {
	return NewTool("echo", func(ctx context.Context, input echoInput) (echoOutput, error) {
		times := input.Times
		if times <= 0 {
			times = 1
		}
		return echoOutput{Result: strings.Repeat(input.Text, times)}, nil
	}, WithDescription("Echoes text back."))
}

// TestNewTool_Schema verifies name, description, and derived parameter schema.
func TestNewTool_Schema(t *testing.T) {
	schema := newEchoTool().Schema()

	if schema.Name != "echo" {
		t.Errorf("unexpected name: %q", schema.Name)
	}
	if schema.Description != "Echoes text back." {
		t.Errorf("unexpected description: %q", schema.Description)
	}
	if schema.Parameters == nil || schema.Parameters.Properties["text"] == nil {
		t.Fatal("expected derived parameters schema with text property")
	}
	if len(schema.Parameters.Required) != 1 || schema.Parameters.Required[0] != "text" {
		t.Errorf("unexpected required list: %v", schema.Parameters.Required)
	}
}

// TestCall_Success verifies decode, execution, and JSON output.
func TestCall_Success(t *testing.T) {
	out, err := newEchoTool().Call(context.Background(), `{"text":"ab","times":2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"result":"abab"}` {
		t.Errorf("unexpected output: %s", out)
	}
}

// TestCall_RepairedArguments verifies malformed model JSON is repaired rather
// than rejected.
func TestCall_RepairedArguments(t *testing.T) {
	out, err := newEchoTool().Call(context.Background(), `{text: 'hi'}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("unexpected output: %s", out)
	}
}

// TestCall_MissingRequiredArgument verifies validation rejects calls without
// required fields before the function runs.
func TestCall_MissingRequiredArgument(t *testing.T) {
	_, err := newEchoTool().Call(context.Background(), `{"times":3}`)
	if err == nil {
		t.Fatal("expected error for missing required argument")
	}
	if !strings.Contains(err.Error(), "missing required argument") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestCall_FunctionError verifies execution failures propagate as errors from
// Call (the catalog converts them to Result values).
func TestCall_FunctionError(t *testing.T) {
	failing := NewTool("fail", func(ctx context.Context, input echoInput) (echoOutput, error) {
		return echoOutput{}, errors.New("boom")
	})

	if _, err := failing.Call(context.Background(), `{"text":"x"}`); err == nil || err.Error() != "boom" {
		t.Errorf("expected boom error, got %v", err)
	}
}

// TestDescribe verifies the side-effect description capability.
func TestDescribe(t *testing.T) {
	echo := newEchoTool().WithEffects(func(input echoInput) string {
		return "echoed " + input.Text
	})

	if got := echo.Describe(`{"text":"hi"}`); got != "echoed hi" {
		t.Errorf("unexpected description: %q", got)
	}

	plain := newEchoTool()
	if got := plain.Describe(`{"text":"hi"}`); got != "" {
		t.Errorf("expected empty description for tool without effects, got %q", got)
	}
}
