package analyze

// SimplifyResult classifies the outcome of one Simplify call.
//
// The two failure values signal that the current constraint set has no
// valid assignment. They are expected outcomes for a caller exploring
// branches, not errors: the driver must abandon the branch, not crash.
type SimplifyResult int

const (
	// NoEffect means the rule could not be reduced further.
	NoEffect SimplifyResult = iota

	// Simplified means at least one group's value became known.
	Simplified

	// FailedNegativeResult means known values force more mines than the
	// rule's remaining budget allows (result went negative).
	FailedNegativeResult

	// FailedTooBigResult means the remaining fields cannot supply the
	// required sum (result exceeds the count of unknown fields).
	FailedTooBigResult
)

// Failed reports whether the result signals an unsatisfiable constraint set.
func (r SimplifyResult) Failed() bool {
	return r == FailedNegativeResult || r == FailedTooBigResult
}

// String returns the snake_case name used in traces and CLI output.
func (r SimplifyResult) String() string {
	switch r {
	case NoEffect:
		return "no_effect"
	case Simplified:
		return "simplified"
	case FailedNegativeResult:
		return "failed_negative_result"
	case FailedTooBigResult:
		return "failed_too_big_result"
	default:
		return "unknown"
	}
}
