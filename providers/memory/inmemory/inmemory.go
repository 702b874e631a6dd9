// Package inmemory provides the conversation store used for a single agent
// run: a mutex-guarded, append-only slice of messages.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/memory"
	"github.com/leofalp/reagent/providers/observability"
)

// ArrayMemory is a simple, concurrency-safe in-memory message store.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns a new, empty [ArrayMemory] ready for immediate use.
func New() *ArrayMemory {
	return &ArrayMemory{
		messages: []ai.Message{},
	}
}

// Ensure ArrayMemory implements memory.Provider at compile time.
var _ memory.Provider = (*ArrayMemory)(nil)

// AppendMessage stores a copy of message at the end of the history.
// It is a no-op when message is nil. A zero Timestamp is filled with the
// append time. When an observability span is present in ctx, an event is
// recorded with the message role and content length, and the running total
// message count is set as a span attribute.
func (m *ArrayMemory) AppendMessage(ctx context.Context, message *ai.Message) {
	if message == nil {
		return
	}

	stored := *message
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now()
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventConversationAppend,
			observability.String(observability.AttrMessageRole, string(stored.Role)),
			observability.Int(observability.AttrMessageLength, len(stored.Content)),
		)
	}

	m.mu.Lock()
	m.messages = append(m.messages, stored)
	total := len(m.messages)
	m.mu.Unlock()

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrTotalMessages, total),
		)
	}
}

// AllMessages returns a copy of all messages to avoid external mutation of
// internal state.
func (m *ArrayMemory) AllMessages(_ context.Context) []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ai.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Count returns the number of messages stored.
func (m *ArrayMemory) Count(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
