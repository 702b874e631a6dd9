package inmemory

import (
	"context"
	"testing"

	"github.com/leofalp/reagent/providers/ai"
)

// TestAppendMessage_PreservesOrder verifies insertion order equals
// conversation order.
func TestAppendMessage_PreservesOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleSystem, Content: "sys"})
	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: "task"})
	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleAssistant, Content: "reply"})

	messages := store.AllMessages(ctx)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	wantRoles := []ai.MessageRole{ai.RoleSystem, ai.RoleUser, ai.RoleAssistant}
	for i, want := range wantRoles {
		if messages[i].Role != want {
			t.Errorf("message %d: expected role %q, got %q", i, want, messages[i].Role)
		}
	}
}

// TestAppendMessage_NilIsNoop verifies nil appends are ignored.
func TestAppendMessage_NilIsNoop(t *testing.T) {
	store := New()
	store.AppendMessage(context.Background(), nil)
	if got := store.Count(context.Background()); got != 0 {
		t.Errorf("expected empty store, got %d messages", got)
	}
}

// TestAppendMessage_SetsTimestamp verifies a zero timestamp is filled in at
// append time.
func TestAppendMessage_SetsTimestamp(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: "task"})

	if ts := store.AllMessages(ctx)[0].Timestamp; ts.IsZero() {
		t.Error("expected timestamp to be set on append")
	}
}

// TestAllMessages_ReturnsCopy verifies mutating the returned slice does not
// affect stored state.
func TestAllMessages_ReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: "original"})

	leaked := store.AllMessages(ctx)
	leaked[0].Content = "mutated"

	if got := store.AllMessages(ctx)[0].Content; got != "original" {
		t.Errorf("internal state was mutated: %q", got)
	}
}
