// Package store persists deduction traces to SQLite.
//
// The deduction core itself performs no persistence; this store is an
// optional sink the CLI wires behind the engine's Recorder interface so a
// run's splits and simplifications can be inspected after the fact.
//
// Two tables: runs (one row per propagation run, keyed by run token) and
// steps (one row per recorded mutation, content-addressed IDs, unique per
// run and sequence number). Step writes are idempotent: replaying a run
// with the same token re-derives the same IDs and the inserts no-op.
package store
