// Package ir defines the serializable records shared by the compiler, the
// trace store, the harness, and the CLI: constraint documents on the way in,
// propagation steps on the way out.
//
// Step identity is content-addressed: a step hashes to the same ID whenever
// the same run token produces the same mutation at the same sequence number.
// Hashing uses canonical JSON (RFC 8785 key ordering, NFC-normalized
// strings, no floats) so IDs are stable across platforms and replays.
package ir
