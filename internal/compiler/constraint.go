// Package compiler turns CUE constraint documents into ir.ConstraintSet
// values the solver can consume.
//
// A document has the shape:
//
//	constraints: {
//	    name: "corner-3x3"
//	    rules: [
//	        {cause: "c11", fields: ["a1", "a2", "b1"], result: 1},
//	        {fields: ["a2", "b1", "b2"], result: 2},
//	    ]
//	}
//
// The compiler only parses and checks documents; deciding which constraints
// a board produces is the author's job.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/minededuce/minededuce/internal/ir"
)

// CompileConstraintSet parses a CUE value into an ir.ConstraintSet. The
// value should be the constraints struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(doc)
//	set, err := CompileConstraintSet(v.LookupPath(cue.ParsePath("constraints")))
//
// The result is syntactically complete but not yet validated; callers run
// Validate before building rules.
func CompileConstraintSet(v cue.Value) (*ir.ConstraintSet, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if !v.Exists() {
		return nil, &CompileError{
			Field:   "constraints",
			Message: "document has no constraints struct",
		}
	}

	set := &ir.ConstraintSet{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	set.Name = name

	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, &CompileError{
			Field:   "rules",
			Message: "rules list is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		rule, err := compileRule(iter.Value())
		if err != nil {
			return nil, err
		}
		set.Rules = append(set.Rules, *rule)
	}

	return set, nil
}

// compileRule parses one rule struct: optional cause, fields list, result.
func compileRule(v cue.Value) (*ir.RuleSpec, error) {
	rule := &ir.RuleSpec{}

	causeVal := v.LookupPath(cue.ParsePath("cause"))
	if causeVal.Exists() {
		cause, err := causeVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		rule.Cause = cause
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{
			Field:   "fields",
			Message: "rule is missing its fields list",
			Pos:     v.Pos(),
		}
	}
	fieldsIter, err := fieldsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for fieldsIter.Next() {
		field, err := fieldsIter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		rule.Fields = append(rule.Fields, field)
	}

	resultVal := v.LookupPath(cue.ParsePath("result"))
	if !resultVal.Exists() {
		return nil, &CompileError{
			Field:   "result",
			Message: "rule is missing its result",
			Pos:     v.Pos(),
		}
	}
	result, err := resultVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	rule.Result = int(result)

	return rule, nil
}

// CompileError is a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE's multi-error values.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
