package ir

// ConstraintSet is a named collection of raw constraints, as authored in a
// CUE document or a harness scenario. It is the caller-facing form; the
// solver turns each RuleSpec into a live rule.
type ConstraintSet struct {
	Name  string     `json:"name" yaml:"name"`
	Rules []RuleSpec `json:"rules" yaml:"rules"`
}

// RuleSpec is one raw constraint: the named fields sum to Result. Cause is
// an optional provenance label (typically the revealed cell the constraint
// came from) carried through to diagnostics.
type RuleSpec struct {
	Cause  string   `json:"cause,omitempty" yaml:"cause,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
	Result int      `json:"result" yaml:"result"`
}

// StepKind distinguishes the two mutations propagation can make.
type StepKind string

const (
	// StepSplit records a group split linking two rules.
	StepSplit StepKind = "split"

	// StepSimplify records an effective Simplify call (Simplified or a
	// failure; NoEffect sweeps are not recorded).
	StepSimplify StepKind = "simplify"
)

// Step is one recorded propagation mutation. For splits, Rule and
// OtherRule hold both linked rules rendered after the split (showing the
// shared group). For simplifications, Rule holds the rule as it read before
// the call and OtherRule is empty. Outcome is "split" for splits and the
// SimplifyResult name otherwise.
type Step struct {
	ID        string   `json:"id"`
	RunToken  string   `json:"run_token"`
	Seq       int64    `json:"seq"`
	Kind      StepKind `json:"kind"`
	Rule      string   `json:"rule"`
	OtherRule string   `json:"other_rule,omitempty"`
	Outcome   string   `json:"outcome"`
}

// Run outcomes as stored and displayed.
const (
	OutcomeSolved         = "solved"
	OutcomePartial        = "partial"
	OutcomeFailedNegative = "failed_negative_result"
	OutcomeFailedTooBig   = "failed_too_big_result"
	OutcomeRoundsExceeded = "rounds_exceeded"
)
