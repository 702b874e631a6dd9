// Package manual implements the copy-paste model transport. The full JSON
// payload is written to the terminal so it can be pasted into any chat
// interface, and Submit then blocks until the user pastes the model's reply
// back. There is no timeout: the only way out is a reply, end of input, or
// process interruption.
package manual

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/observability"
)

// ReplyTerminator ends a pasted reply: a line containing only this marker.
const ReplyTerminator = "EOF"

const divider = "================================================================================"

// Transport implements ai.Transport over an input/output stream pair.
type Transport struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a manual transport bound to stdin/stdout.
func New() *Transport {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a manual transport with explicit streams. Used by tests
// and by callers that want to drive the exchange programmatically.
func NewWithIO(in io.Reader, out io.Writer) *Transport {
	scanner := bufio.NewScanner(in)
	// Pasted replies can be large; raise the line limit well beyond the
	// bufio default.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Transport{in: scanner, out: out}
}

// Ensure Transport implements ai.Transport at compile time.
var _ ai.Transport = (*Transport)(nil)

// Mode reports the transport variant.
func (t *Transport) Mode() string {
	return ai.ModeManual
}

// Submit prints the JSON payload and blocks until a non-empty reply has been
// pasted, terminated by a line containing only [ReplyTerminator] or by end of
// input. An empty reply or a closed input stream is a *ai.TransportError.
// The context is checked between reads so interruption is honoured.
func (t *Transport) Submit(ctx context.Context, request ai.Request) (string, error) {
	payload, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "serialize payload", Err: err}
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventModelSubmit,
			observability.String(observability.AttrTransportMode, t.Mode()),
			observability.String(observability.AttrModel, request.Model),
		)
	}

	fmt.Fprintln(t.out, divider)
	fmt.Fprintln(t.out, "MODEL REQUEST (copy-paste the JSON below into your chat interface)")
	fmt.Fprintln(t.out, divider)
	fmt.Fprintln(t.out, string(payload))
	fmt.Fprintln(t.out, divider)
	fmt.Fprintf(t.out, "Paste the model reply, then finish with a line containing only %q:\n", ReplyTerminator)

	var lines []string
	for t.in.Scan() {
		if err := ctx.Err(); err != nil {
			return "", &ai.TransportError{Mode: t.Mode(), Op: "read reply", Err: err}
		}
		line := t.in.Text()
		if strings.TrimSpace(line) == ReplyTerminator {
			break
		}
		lines = append(lines, line)
	}
	if err := t.in.Err(); err != nil {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "read reply", Err: err}
	}

	reply := strings.TrimSpace(strings.Join(lines, "\n"))
	if reply == "" {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "read reply", Err: fmt.Errorf("empty reply")}
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventModelReply,
			observability.Int(observability.AttrReplyLength, len(reply)),
		)
	}

	return reply, nil
}
