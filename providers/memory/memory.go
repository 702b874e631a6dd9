// Package memory defines the storage abstraction for conversation state. One
// run owns exactly one provider instance; messages are append-only and
// ordered, and the stored sequence is the single source of truth for what
// gets submitted to the model each turn.
package memory

import (
	"context"

	"github.com/leofalp/reagent/providers/ai"
)

// Provider stores the ordered message sequence of one conversation.
type Provider interface {
	// AppendMessage stores message at the end of the history. Messages are
	// immutable once appended.
	AppendMessage(ctx context.Context, message *ai.Message)

	// AllMessages returns a copy of the history in insertion order.
	AllMessages(ctx context.Context) []ai.Message

	// Count returns the number of stored messages.
	Count(ctx context.Context) int
}
