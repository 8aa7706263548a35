package harness

import (
	"fmt"
	"sort"
	"strings"
)

// AssertionError reports one mismatch between a scenario's expect clause
// and the observed result, with the full trace for context.
type AssertionError struct {
	Scenario string
	Field    string // "outcome", "known", or "remaining"
	Expected string
	Actual   string
	Result   *Result
}

func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s: %s mismatch\n", e.Scenario, e.Field)
	fmt.Fprintf(&b, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&b, "  actual:   %s\n", e.Actual)
	if len(e.Result.Steps) > 0 {
		b.WriteString("trace:\n")
		for _, step := range e.Result.Steps {
			fmt.Fprintf(&b, "  [%d] %s %s -> %s\n", step.Seq, step.Kind, step.Rule, step.Outcome)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Verify compares a result against the scenario's expect clause and
// returns one error per mismatch. Known values are compared exactly;
// remaining rules are compared in order.
func Verify(scenario *Scenario, result *Result) []error {
	var errs []error

	fail := func(field, expected, actual string) {
		errs = append(errs, &AssertionError{
			Scenario: scenario.Name,
			Field:    field,
			Expected: expected,
			Actual:   actual,
			Result:   result,
		})
	}

	if result.Outcome != scenario.Expect.Outcome {
		fail("outcome", scenario.Expect.Outcome, result.Outcome)
	}

	if !knownEqual(scenario.Expect.Known, result.Known) {
		fail("known", renderKnown(scenario.Expect.Known), renderKnown(result.Known))
	}

	if !slicesEqual(scenario.Expect.Remaining, result.Remaining) {
		fail("remaining",
			strings.Join(scenario.Expect.Remaining, "; "),
			strings.Join(result.Remaining, "; "),
		)
	}

	return errs
}

func knownEqual(expected, actual map[string]int) bool {
	if len(expected) != len(actual) {
		return false
	}
	for group, value := range expected {
		got, ok := actual[group]
		if !ok || got != value {
			return false
		}
	}
	return true
}

func renderKnown(known map[string]int) string {
	if len(known) == 0 {
		return "(none)"
	}
	groups := make([]string, 0, len(known))
	for group := range known {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		parts = append(parts, fmt.Sprintf("%s=%d", group, known[group]))
	}
	return strings.Join(parts, " ")
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
