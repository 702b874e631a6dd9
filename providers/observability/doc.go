// Package observability defines the tracing abstraction used across the
// agent: spans with attributes and events, carried through context. The loop
// opens a span per iteration, transports and tools attach events to whatever
// span is present in their context, and packages stay decoupled from the
// concrete backend.
//
// The only shipped backend is [github.com/leofalp/reagent/providers/observability/slogobs],
// which renders spans and events through log/slog.
package observability
