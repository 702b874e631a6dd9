// Package ai defines the conversation data model and the transport
// abstraction through which one conversation turn is exchanged with a
// language model. Two transports ship with reagent: an automatic one that
// calls an OpenAI-compatible chat-completions endpoint
// ([github.com/leofalp/reagent/providers/ai/openrouter]) and a manual one
// that prints the payload and blocks for a pasted reply
// ([github.com/leofalp/reagent/providers/ai/manual]). Both consume the same
// [Request] value, so everything above the transport is variant-agnostic.
package ai
