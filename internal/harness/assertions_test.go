package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minededuce/minededuce/internal/ir"
)

func TestVerifyPasses(t *testing.T) {
	scenario := &Scenario{
		Name: "pass",
		Expect: Expectation{
			Outcome: "solved",
			Known:   map[string]int{"(a)": 1},
		},
	}
	result := &Result{
		Outcome: "solved",
		Known:   map[string]int{"(a)": 1},
	}

	assert.Empty(t, Verify(scenario, result))
}

func TestVerifyOutcomeMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:   "outcome",
		Expect: Expectation{Outcome: "solved"},
	}
	result := &Result{Outcome: "partial"}

	errs := Verify(scenario, result)
	require.Len(t, errs, 1)

	var aerr *AssertionError
	require.ErrorAs(t, errs[0], &aerr)
	assert.Equal(t, "outcome", aerr.Field)
	assert.Contains(t, aerr.Error(), "expected: solved")
	assert.Contains(t, aerr.Error(), "actual:   partial")
}

func TestVerifyKnownExactMatch(t *testing.T) {
	scenario := &Scenario{
		Name: "known",
		Expect: Expectation{
			Outcome: "solved",
			Known:   map[string]int{"(a)": 1},
		},
	}

	// Extra entries fail too, not just missing ones.
	result := &Result{
		Outcome: "solved",
		Known:   map[string]int{"(a)": 1, "(b)": 0},
	}

	errs := Verify(scenario, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "known mismatch")
}

func TestVerifyRemainingOrderMatters(t *testing.T) {
	scenario := &Scenario{
		Name: "remaining",
		Expect: Expectation{
			Outcome:   "partial",
			Remaining: []string{"(a) = 1", "(b) = 1"},
		},
	}
	result := &Result{
		Outcome:   "partial",
		Remaining: []string{"(b) = 1", "(a) = 1"},
	}

	errs := Verify(scenario, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "remaining mismatch")
}

func TestAssertionErrorIncludesTrace(t *testing.T) {
	result := &Result{
		Outcome: "partial",
		Steps: []ir.Step{
			{Seq: 1, Kind: ir.StepSplit, Rule: "(a) + (b) = 1", Outcome: "split"},
		},
	}
	aerr := &AssertionError{
		Scenario: "traced",
		Field:    "outcome",
		Expected: "solved",
		Actual:   "partial",
		Result:   result,
	}

	msg := aerr.Error()
	assert.Contains(t, msg, "trace:")
	assert.Contains(t, msg, "[1] split (a) + (b) = 1 -> split")
}
