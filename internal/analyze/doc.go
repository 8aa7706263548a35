// Package analyze implements the deduction core of the solver: linear
// equality constraints over groups of fields, and the algebra that reduces
// them to known values.
//
// A FieldRule states that a collection of disjoint FieldGroups sums to an
// integer. Two rules may initially refer to overlapping but non-identical
// field sets; CheckIntersection splits such groups into disjoint sub-groups
// so that both rules speak about the same variables. Simplify then removes
// groups whose value is already known and detects forced values.
//
// ARCHITECTURE:
//
// Identity, not content:
// FieldGroups are compared by pointer identity. The shared KnownValues map
// is keyed by *FieldGroup, and a split deliberately produces new group
// objects even when their content could coincide with an existing group.
// Group content never changes after construction; operations that would
// change membership produce new groups and retire old ones from the rules
// that referenced them.
//
// Single-threaded by design:
// CheckIntersection and Simplify mutate the group lists of one or two rules
// and the shared KnownValues map with no internal synchronization. A caller
// that wants parallelism must partition rules into connected components that
// share no group, directly or transitively.
//
// Failure is a value:
// An unsatisfiable constraint set is an expected, recoverable condition for
// the caller (an external search triggers it routinely while exploring
// branches). Simplify reports it as a SimplifyResult, never as a panic.
// Panics are reserved for contract violations such as calling NCr on a rule
// with more than one group.
package analyze
