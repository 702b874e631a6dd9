package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leofalp/reagent/core/parse"
	"github.com/leofalp/reagent/internal/jsonschema"
	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/observability"
)

// Tool binds a name and description to a strongly-typed Go function and
// automatically derives the JSON schema for its input type I via reflection.
// Use [NewTool] to construct a Tool; store it behind [GenericTool] for
// type-erased dispatch.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)

	// Effects, when set, describes the side effects a call with the given
	// input performs. The description rides along in the Result so the model
	// (and the session log) can see what changed.
	Effects func(input I) string
}

// GenericTool is the type-erased interface for all tools. It abstracts over
// the concrete generic type parameters of [Tool] so tools can be stored,
// dispatched, and advertised without knowing their exact input/output types.
// The three capabilities are argument validation (part of Call), execution
// (Call), and result description (Describe).
type GenericTool interface {
	// Schema returns the metadata (name, description, parameter schema) used
	// to advertise this tool to the model.
	Schema() ai.ToolSchema

	// Call validates and decodes the JSON-encoded input, executes the tool,
	// and returns the JSON-encoded output. Returns an error if validation,
	// decoding, or execution fails.
	Call(ctx context.Context, inputJSON string) (string, error)

	// Describe returns a human-readable side-effect description for a call
	// with the given input, or "" when the tool declares none.
	Describe(inputJSON string) string
}

// funcToolOptions holds optional configuration for a tool created via [NewTool].
type funcToolOptions struct {
	Description string
}

// WithDescription sets a human-readable description for the tool. The
// description is surfaced to the model to help it decide when and how to
// invoke the tool.
func WithDescription(description string) func(*funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Description = description
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
// The JSON schema for the input type I is derived automatically via
// reflection.
//
// Example:
//
//	readTool := tool.NewTool("read_file", readFunc,
//	    tool.WithDescription("Reads a file from the project directory."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(*funcToolOptions)) *Tool[I, O] {
	opts := &funcToolOptions{}
	for _, option := range options {
		option(opts)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: opts.Description,
		Parameters:  jsonschema.For[I](),
		Function:    function,
	}
}

// WithEffects sets the side-effect describer and returns the tool for
// chaining.
func (t *Tool[I, O]) WithEffects(describe func(input I) string) *Tool[I, O] {
	t.Effects = describe
	return t
}

// Schema returns the [ai.ToolSchema] used to advertise this tool to the model.
func (t *Tool[I, O]) Schema() ai.ToolSchema {
	return ai.ToolSchema{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call invokes the tool's underlying function with the given JSON-encoded
// input. Arguments are validated against the derived schema (required fields
// must be present), decoded into the input type I, and the result is
// serialized as JSON. Observability span events are emitted at the start and
// end of execution when a span is present in ctx.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJSON),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	start := time.Now()

	input, err := t.decode(inputJSON)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
		}
		return "", err
	}

	output, err := t.Function(ctx, input)
	duration := time.Since(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String(observability.AttrToolError, err.Error()),
				observability.Duration(observability.AttrToolDuration, duration),
			)
		}
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrToolOutput, string(outputBytes)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return string(outputBytes), nil
}

// Describe implements the result-description capability. A tool without an
// Effects describer, or an undecodable input, yields "".
func (t *Tool[I, O]) Describe(inputJSON string) string {
	if t.Effects == nil {
		return ""
	}
	input, err := t.decode(inputJSON)
	if err != nil {
		return ""
	}
	return t.Effects(input)
}

// decode validates the raw arguments against the derived schema and parses
// them into the input type. Missing required arguments are rejected here so
// the tool function can rely on them being present.
func (t *Tool[I, O]) decode(inputJSON string) (I, error) {
	var zero I

	if inputJSON == "" {
		inputJSON = "{}"
	}

	if t.Parameters != nil && len(t.Parameters.Required) > 0 {
		raw, err := parse.StringAs[map[string]json.RawMessage](inputJSON)
		if err != nil {
			return zero, fmt.Errorf("invalid arguments for %s: %w", t.Name, err)
		}
		for _, name := range t.Parameters.Required {
			if _, ok := raw[name]; !ok {
				return zero, fmt.Errorf("missing required argument %q for %s", name, t.Name)
			}
		}
	}

	input, err := parse.StringAs[I](inputJSON)
	if err != nil {
		return zero, fmt.Errorf("invalid arguments for %s: %w", t.Name, err)
	}
	return input, nil
}
