// Package utils provides shared low-level helpers used throughout the
// reagent internals. It covers the synchronous HTTP JSON round-trip used by
// the automatic model transport, string truncation helpers shared by the
// tools and the session log, and small I/O conveniences.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [Truncate] for bounding tool observations, and [CloseWithLog] for
// deferred closes whose errors should be logged but not propagated.
package utils
