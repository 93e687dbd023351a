// Package app wires the application together: it configures the logger,
// loads recipes and the catalog snapshot, invokes the compiler, and writes
// the result. The catalog fetch is the only step that may block on I/O and
// it always happens here, before compilation starts.
package app
