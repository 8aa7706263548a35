package engine

import "github.com/minededuce/minededuce/internal/ir"

// Recorder receives one ir.Step per effective propagation mutation.
// Implemented by the SQLite trace sink in the CLI and by MemoryRecorder in
// tests. Recording happens inline in the solve loop, so implementations
// should be cheap; a slow sink slows propagation.
type Recorder interface {
	RecordStep(step ir.Step) error
}

// NopRecorder discards all steps. Used when no trace sink is configured.
type NopRecorder struct{}

// RecordStep implements Recorder.
func (NopRecorder) RecordStep(ir.Step) error { return nil }

// MemoryRecorder accumulates steps in order. Used by tests and the
// harness to assert on traces without a database.
type MemoryRecorder struct {
	steps []ir.Step
}

// RecordStep implements Recorder.
func (r *MemoryRecorder) RecordStep(step ir.Step) error {
	r.steps = append(r.steps, step)
	return nil
}

// Steps returns the recorded steps in sequence order.
func (r *MemoryRecorder) Steps() []ir.Step {
	return r.steps
}
