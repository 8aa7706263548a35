package queryir

import "fmt"

// Validate checks a query for structural problems before compilation: a
// missing run token, empty predicate values, nil members in a conjunction.
// All problems are collected, not just the first.
//
// Validate is a pure function with no side effects.
func Validate(query Query) []error {
	v := &validator{}
	v.validateQuery(query)
	return v.errs
}

type validator struct {
	errs []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(query Query) {
	switch q := query.(type) {
	case Steps:
		v.validateSteps(q)
	case *Steps:
		if q == nil {
			v.fail("nil Steps query")
			return
		}
		v.validateSteps(*q)
	case nil:
		v.fail("nil query")
	default:
		v.fail("unsupported query type: %T", query)
	}
}

func (v *validator) validateSteps(q Steps) {
	if q.RunToken == "" {
		v.fail("Steps query has no run token")
	}
	if q.Filter != nil {
		v.validatePredicate(q.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case KindIs:
		if pred.Kind != "split" && pred.Kind != "simplify" {
			v.fail("KindIs: unknown kind %q", pred.Kind)
		}
	case *KindIs:
		if pred == nil {
			v.fail("nil KindIs predicate")
			return
		}
		v.validatePredicate(*pred)
	case OutcomeIs:
		if pred.Outcome == "" {
			v.fail("OutcomeIs: empty outcome")
		}
	case *OutcomeIs:
		if pred == nil {
			v.fail("nil OutcomeIs predicate")
			return
		}
		v.validatePredicate(*pred)
	case RuleContains:
		if pred.Substring == "" {
			v.fail("RuleContains: empty substring")
		}
	case *RuleContains:
		if pred == nil {
			v.fail("nil RuleContains predicate")
			return
		}
		v.validatePredicate(*pred)
	case And:
		if len(pred.Predicates) == 0 {
			v.fail("And: no member predicates")
		}
		for _, member := range pred.Predicates {
			if member == nil {
				v.fail("And: nil member predicate")
				continue
			}
			v.validatePredicate(member)
		}
	case *And:
		if pred == nil {
			v.fail("nil And predicate")
			return
		}
		v.validatePredicate(*pred)
	default:
		v.fail("unsupported predicate type: %T", p)
	}
}
