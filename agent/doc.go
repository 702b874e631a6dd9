// Package agent drives the reason-and-act loop: it submits the conversation
// to the model, parses each reply into an action, dispatches tool calls
// through the catalog, and feeds observations back until the model produces
// a final answer or the iteration limit is hit.
package agent
