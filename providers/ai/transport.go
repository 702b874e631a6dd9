package ai

import (
	"context"
	"fmt"
)

// Transport is the channel by which the conversation is exchanged with the
// model. Implementations must be synchronous: Submit blocks until a reply is
// available or the exchange fails.
type Transport interface {
	// Submit sends the full conversation payload and returns the raw model
	// reply text. Any failure (network, authentication, timeout, malformed or
	// empty reply) is returned as a [*TransportError]; the caller treats such
	// failures as fatal for the run.
	Submit(ctx context.Context, request Request) (string, error)

	// Mode identifies the transport variant ("automatic" or "manual") for
	// session bookkeeping and logging.
	Mode() string
}

// Transport mode names.
const (
	ModeAutomatic = "automatic"
	ModeManual    = "manual"
)

// TransportError wraps any failure to exchange a conversation turn with the
// model. It is the only fatal error class in the system: everything else is
// fed back to the model as data.
type TransportError struct {
	Mode string // transport variant that failed
	Op   string // short operation description, e.g. "chat completion"
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %s: %v", e.Mode, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
