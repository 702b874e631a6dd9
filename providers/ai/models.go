package ai

import (
	"time"

	"github.com/leofalp/reagent/internal/jsonschema"
)

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message or corrective feedback
	RoleAssistant MessageRole = "assistant" // Model reply
	RoleTool      MessageRole = "tool"      // Tool execution output
)

// Message is a single entry in a conversation. Messages are treated as
// immutable once appended to the conversation; ordering is the conversation
// order.
type Message struct {
	// Core fields (always present)
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	// Name carries the tool name for role=tool messages
	Name string `json:"name,omitempty"`

	// Timestamp records when the message was appended. It is not part of the
	// wire payload; the session log keeps its own timestamps.
	Timestamp time.Time `json:"-"`
}

// ToolSchema advertises one tool to the model: its name, what it does, and
// the JSON shape of its arguments.
type ToolSchema struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// Request is the logical payload submitted to the model on every turn: the
// full ordered conversation plus the schemas of every registered tool. Both
// transport variants serialize this same structure, which keeps the response
// parser transport-agnostic.
type Request struct {
	Model    string       `json:"model,omitempty"`
	Messages []Message    `json:"messages"`
	Tools    []ToolSchema `json:"tools,omitempty"`
}
