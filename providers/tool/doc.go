// Package tool provides the typed tool machinery and the registry the agent
// dispatches through. A tool binds a name and description to a strongly-typed
// Go function; its argument schema is derived by reflection and advertised to
// the model. All execution flows through [Catalog.Dispatch], which validates
// arguments, runs the tool, and always returns a [Result]: tool failures are
// data for the model to reason about, never errors that cross the registry
// boundary.
//
// Filesystem containment is enforced by [Sandbox]: every file tool resolves
// its paths through the one sandbox instance before touching disk.
package tool
