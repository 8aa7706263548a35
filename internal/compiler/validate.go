package compiler

import (
	"fmt"

	"github.com/minededuce/minededuce/internal/ir"
)

// ValidationError describes one semantic problem in a constraint set.
// Index is the offending rule's position, or -1 for set-level problems.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("rule %d: %s", e.Index, e.Message)
	}
	return e.Message
}

// Validate checks a compiled constraint set for semantic problems the CUE
// syntax cannot express: empty or duplicate fields, and results that no
// assignment could ever satisfy. All problems are collected, not just the
// first.
//
// A result equal to len(fields) is valid (every field is a mine); only
// results outside [0, len(fields)] are rejected here. Deeper contradictions
// between rules are the solver's job to detect.
func Validate(set *ir.ConstraintSet) []error {
	var errs []error

	if set.Name == "" {
		errs = append(errs, &ValidationError{Index: -1, Message: "constraint set has no name"})
	}
	if len(set.Rules) == 0 {
		errs = append(errs, &ValidationError{Index: -1, Message: "constraint set has no rules"})
	}

	for i, rule := range set.Rules {
		if len(rule.Fields) == 0 {
			errs = append(errs, &ValidationError{Index: i, Message: "rule has no fields"})
			continue
		}

		seen := make(map[string]bool, len(rule.Fields))
		for _, f := range rule.Fields {
			if f == "" {
				errs = append(errs, &ValidationError{Index: i, Message: "empty field name"})
				continue
			}
			if seen[f] {
				errs = append(errs, &ValidationError{Index: i, Message: fmt.Sprintf("duplicate field %q", f)})
			}
			seen[f] = true
		}

		if rule.Result < 0 {
			errs = append(errs, &ValidationError{Index: i, Message: fmt.Sprintf("negative result %d", rule.Result)})
		} else if rule.Result > len(seen) {
			errs = append(errs, &ValidationError{
				Index:   i,
				Message: fmt.Sprintf("result %d exceeds field count %d", rule.Result, len(seen)),
			})
		}
	}

	return errs
}
