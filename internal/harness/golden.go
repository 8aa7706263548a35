package harness

import (
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/minededuce/minededuce/internal/ir"
)

// TraceSnapshot captures the full result of a scenario run for golden
// comparison. Serialized only through canonical JSON so byte-for-byte
// comparison is meaningful.
type TraceSnapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap flattens the snapshot into the map/slice/scalar shapes
// ir.MarshalCanonical accepts. Known entries are sorted by group rendering.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	known := make([]any, 0, len(s.Result.Known))
	groups := make([]string, 0, len(s.Result.Known))
	for group := range s.Result.Known {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		known = append(known, map[string]any{
			"group": group,
			"value": s.Result.Known[group],
		})
	}

	remaining := make([]any, 0, len(s.Result.Remaining))
	for _, rule := range s.Result.Remaining {
		remaining = append(remaining, rule)
	}

	steps := make([]any, 0, len(s.Result.Steps))
	for _, step := range s.Result.Steps {
		steps = append(steps, map[string]any{
			"id":         step.ID,
			"kind":       string(step.Kind),
			"other_rule": step.OtherRule,
			"outcome":    step.Outcome,
			"rule":       step.Rule,
			"seq":        step.Seq,
		})
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"run_token":     s.Result.RunToken,
		"outcome":       s.Result.Outcome,
		"rounds":        s.Result.Rounds,
		"known":         known,
		"remaining":     remaining,
		"steps":         steps,
	}
}

// RunWithGolden executes a scenario and compares its canonical-JSON trace
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snapshot := TraceSnapshot{ScenarioName: scenario.Name, Result: result}
	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
