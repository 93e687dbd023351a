// Package dag builds and validates the dependency graph derived from a
// recipe. The graph is ephemeral: it exists for the duration of one
// compilation, indexes steps by their declaration position (an arena of
// validated handles rather than raw string ids), and is never persisted.
//
// Validation proves referential integrity and acyclicity and produces the
// deterministic execution order every emitter consumes. Ties between steps
// that become ready at the same time are broken by declaration order, so the
// same recipe always compiles to byte-identical output.
package dag
