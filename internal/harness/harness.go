package harness

import (
	"errors"
	"fmt"

	"github.com/minededuce/minededuce/internal/analyze"
	"github.com/minededuce/minededuce/internal/engine"
	"github.com/minededuce/minededuce/internal/ir"
)

// Result is the observed fixed point of one scenario run.
type Result struct {
	// Outcome is the run outcome. Unsatisfiable sets report their failure
	// outcome here rather than as an error: scenarios are allowed to
	// expect contradictions.
	Outcome string

	// Known maps group renderings to forced values. Empty on failure.
	Known map[string]int

	// Remaining holds the renderings of rules still live at the fixed
	// point, in registration order. Empty on failure.
	Remaining []string

	// Rounds is the number of fixed-point sweeps used. Zero on failure.
	Rounds int

	// RunToken identifies the run in the recorded trace.
	RunToken string

	// Steps is the full recorded trace in sequence order.
	Steps []ir.Step
}

// Run executes a scenario through the solver with a fixed run token and an
// in-memory recorder. An unsatisfiable set is a valid result, not an
// error; only infrastructure problems (a hit round cap, a broken rule
// spec) return an error.
func Run(scenario *Scenario) (*Result, error) {
	token := scenario.RunToken
	if token == "" {
		token = "scenario-" + scenario.Name
	}

	rules := make([]*analyze.FieldRule[string], 0, len(scenario.Rules))
	for _, spec := range scenario.Rules {
		var cause *string
		if spec.Cause != "" {
			c := spec.Cause
			cause = &c
		}
		rules = append(rules, analyze.NewFieldRule(cause, spec.Fields, spec.Result))
	}

	recorder := &engine.MemoryRecorder{}
	solver := engine.New(rules,
		engine.WithRunToken[string](token),
		engine.WithRecorder[string](recorder),
	)

	solved, err := solver.Solve()
	if err != nil {
		var unsat *engine.UnsatisfiableError
		if !errors.As(err, &unsat) {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		return &Result{
			Outcome:  unsat.Outcome(),
			RunToken: token,
			Steps:    recorder.Steps(),
		}, nil
	}

	result := &Result{
		Outcome:  solved.Outcome,
		Known:    map[string]int{},
		Rounds:   solved.Rounds,
		RunToken: token,
		Steps:    recorder.Steps(),
	}
	for group, value := range solved.Known {
		result.Known[group.String()] = value
	}
	for _, rule := range solved.Rules {
		result.Remaining = append(result.Remaining, rule.String())
	}
	return result, nil
}
