// Package engine drives constraint propagation to a fixed point.
//
// The Solver owns a set of live rules and the shared known-values table.
// Solve runs two phases:
//
//  1. Intersection resolution: CheckIntersection is invoked over all rule
//     pairs, repeatedly, until no pair reports a split. Each split fragments
//     overlapping groups into disjoint sub-groups shared by both rules.
//  2. Simplification: Simplify sweeps over all rules until every rule
//     reports no effect, or a rule reports an unsatisfiable constraint.
//
// The loop is strictly single-goroutine: both phases mutate rule group
// lists and the known-values table, and determinism (same input order, same
// output) is a design requirement, not an optimization target. Rules are
// visited in registration order, pairs in index order, so identical inputs
// always produce identical known values, residual rules, and traces.
//
// Propagation is bounded by a round cap (WithMaxRounds) so a pathological
// input terminates with an error instead of spinning.
//
// Each effective mutation can be recorded as an ir.Step through a Recorder,
// which is how the CLI persists deduction traces for later inspection.
package engine
