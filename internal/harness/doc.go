// Package harness provides a conformance testing framework for the
// propagation engine.
//
// Scenarios are YAML documents naming a rule set and the expected fixed
// point: outcome, forced group values, and remaining rules. The harness
// runs each scenario through the real solver with a fixed run token and an
// in-memory step recorder, so results and traces are fully deterministic.
//
// Two comparison modes are supported:
//   - Verify checks a result against the scenario's expect clause and
//     returns one error per mismatch.
//   - RunWithGolden serializes the full trace as canonical JSON and
//     compares it against testdata/golden/{name}.golden via goldie.
//     Regenerate with: go test ./internal/harness -update
package harness
