package engine

import (
	"errors"
	"fmt"

	"github.com/minededuce/minededuce/internal/analyze"
)

// UnsatisfiableError reports that propagation proved the constraint set has
// no valid assignment. For a caller exploring branches of a search this is
// an expected outcome: abandon the branch, not the process.
type UnsatisfiableError struct {
	// Result is the failing simplify outcome (FailedNegativeResult or
	// FailedTooBigResult).
	Result analyze.SimplifyResult

	// Rule is the rendering of the rule that failed, for diagnostics.
	Rule string
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("unsatisfiable constraint set: %s on rule %s", e.Result, e.Rule)
}

// Outcome maps the failing result to its stored run outcome name.
func (e *UnsatisfiableError) Outcome() string {
	if e.Result == analyze.FailedNegativeResult {
		return "failed_negative_result"
	}
	return "failed_too_big_result"
}

// IsUnsatisfiable reports whether err signals an unsatisfiable constraint
// set. Uses errors.As to handle wrapped errors.
func IsUnsatisfiable(err error) bool {
	var ue *UnsatisfiableError
	return errors.As(err, &ue)
}

// RoundsExceededError reports that propagation hit the configured round cap
// before reaching a fixed point. This signals either a pathological input
// or a cap set too low, not an unsatisfiable constraint set.
type RoundsExceededError struct {
	Rounds int
	Max    int
}

func (e *RoundsExceededError) Error() string {
	return fmt.Sprintf("propagation exceeded max rounds (%d >= %d)", e.Rounds, e.Max)
}

// IsRoundsExceeded reports whether err is a round-cap error.
func IsRoundsExceeded(err error) bool {
	var re *RoundsExceededError
	return errors.As(err, &re)
}
