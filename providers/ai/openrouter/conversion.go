package openrouter

import (
	"github.com/leofalp/reagent/internal/jsonschema"
	"github.com/leofalp/reagent/providers/ai"
)

// Wire types for the chat-completions endpoint. The generic ai.Request is
// converted here so the rest of the system never sees the provider's JSON
// dialect.

type chatCompletionsRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Tools    []wireTool    `json:"tools,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []wireChoice `json:"choices"`
	Error   *wireError   `json:"error,omitempty"`
}

type wireChoice struct {
	Index        int         `json:"index"`
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// requestToWire converts the generic request into the chat-completions
// dialect. Tool-role messages become "tool" role entries with the tool name
// preserved; the tool schemas ride along in OpenAI function format.
func requestToWire(request ai.Request) chatCompletionsRequest {
	wire := chatCompletionsRequest{
		Model:    request.Model,
		Messages: make([]wireMessage, 0, len(request.Messages)),
	}

	for _, m := range request.Messages {
		wire.Messages = append(wire.Messages, wireMessage{
			Role:    string(m.Role),
			Content: m.Content,
			Name:    m.Name,
		})
	}

	for _, t := range request.Tools {
		wire.Tools = append(wire.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	return wire
}
