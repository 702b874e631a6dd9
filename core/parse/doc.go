// Package parse converts model-supplied text into typed Go values. Language
// models routinely emit slightly malformed JSON (single quotes, trailing
// commas, unquoted keys), so complex types go through a repair pass with
// jsonrepair before the parse is abandoned. Parse failures are ordinary
// errors; callers decide whether to surface them to the model or to the user.
package parse
