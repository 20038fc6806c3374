// Package graph is the in-memory model of a visual-scripting node graph.
//
// A [Graph] owns [Node] values, each carrying typed input and output [Pin]s,
// and a set of [Connection]s wiring an output pin of one node to an input
// pin of another. Every text notation in this module parses into a Graph and
// every generator walks one.
//
// # Invariants
//
// The graph maintains two invariants after every public operation:
//
//   - every connection references live nodes and pins
//   - a pin's Connected flag is true iff some live connection references it
//
// Operations that would break either invariant fail without mutating the
// graph. [Graph.Validate] checks both and is used by tests and importers.
//
// # Compatibility
//
// Two pins are compatible when their types are equal or either is
// [Wildcard]. Connection direction is not checked; by convention the source
// is an output pin and the target an input pin.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Callers that share a graph across
// goroutines must serialize access.
package graph
