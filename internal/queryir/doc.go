// Package queryir provides an abstract query intermediate representation
// for filtering recorded propagation traces.
//
// The IR sits between callers that want a slice of a trace (the trace CLI
// command, test helpers) and the storage backend that executes the filter:
//
//	[trace filters] → [Query IR] → [SQLite backend]
//
// Predicates cover exactly the columns a trace filter can reason about:
// step kind, step outcome, and a substring of the rule rendering.
// Conjunction is the only combinator; a caller wanting OR semantics runs
// two queries.
//
// Query and Predicate are sealed interfaces using the marker method
// pattern. Only types in this package implement them, which keeps type
// switches in backends exhaustive and prevents external extensions from
// silently compiling against one backend but not another.
package queryir
