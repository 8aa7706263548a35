package engine

import (
	"log/slog"

	"github.com/minededuce/minededuce/internal/analyze"
	"github.com/minededuce/minededuce/internal/ir"
)

// DefaultMaxRounds caps fixed-point sweeps across both phases. Real boards
// converge in a handful of rounds; the cap exists so a pathological input
// terminates with an error instead of spinning.
const DefaultMaxRounds = 10000

// Solver drives a set of rules to their simplified fixed point.
//
// Not safe for concurrent use: Solve mutates rule group lists and the
// known-values table. The safe unit of parallelism is a fully independent
// rule set sharing no group with any other.
type Solver[T comparable] struct {
	rules     []*analyze.FieldRule[T]
	known     analyze.KnownValues[T]
	clock     *Clock
	recorder  Recorder
	runToken  string
	maxRounds int
}

// SolverOption configures a Solver.
type SolverOption[T comparable] func(*Solver[T])

// WithMaxRounds sets the fixed-point round cap.
func WithMaxRounds[T comparable](n int) SolverOption[T] {
	return func(s *Solver[T]) {
		s.maxRounds = n
	}
}

// WithRecorder sets the step sink. Defaults to NopRecorder.
func WithRecorder[T comparable](r Recorder) SolverOption[T] {
	return func(s *Solver[T]) {
		s.recorder = r
	}
}

// WithRunToken pins the run token instead of generating a UUIDv7. Tests and
// the harness use fixed tokens for reproducible traces.
func WithRunToken[T comparable](token string) SolverOption[T] {
	return func(s *Solver[T]) {
		s.runToken = token
	}
}

// New creates a Solver over the given rules. The slice is copied; the rules
// themselves are owned by the solver from here on and will be mutated by
// Solve. Rule order is preserved and determines deterministic visit order.
func New[T comparable](rules []*analyze.FieldRule[T], opts ...SolverOption[T]) *Solver[T] {
	ruleCopy := make([]*analyze.FieldRule[T], len(rules))
	copy(ruleCopy, rules)

	s := &Solver[T]{
		rules:     ruleCopy,
		known:     analyze.KnownValues[T]{},
		clock:     NewClock(),
		recorder:  NopRecorder{},
		maxRounds: DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runToken == "" {
		s.runToken = UUIDv7Generator{}.Generate()
	}
	return s
}

// RunToken returns the token identifying this run.
func (s *Solver[T]) RunToken() string {
	return s.runToken
}

// Result is the output of one propagation run.
type Result[T comparable] struct {
	// Known maps resolved groups to their forced values.
	Known analyze.KnownValues[T]

	// Rules are the rules still carrying groups at the fixed point, in
	// registration order. Empty (fully resolved) rules are dropped.
	Rules []*analyze.FieldRule[T]

	// Combinations is the number of field-level assignments consistent with
	// the forced values: the product of C(size, value) over every group in
	// Known. On a partial outcome only the resolved groups contribute.
	Combinations float64

	// Rounds is the number of fixed-point sweeps both phases used.
	Rounds int

	// Outcome is OutcomeSolved when every rule fully resolved, otherwise
	// OutcomePartial.
	Outcome string

	// RunToken identifies the run in traces.
	RunToken string
}

// Solve runs propagation to the fixed point.
//
// Phase one repeatedly checks all rule pairs for intersections until no
// pair splits. Phase two repeatedly simplifies all rules against the shared
// known-values table until every rule reports no effect.
//
// Returns *UnsatisfiableError when a rule fails to simplify (the caller's
// current branch has no valid assignment) and *RoundsExceededError when the
// round cap is hit. On error the solver's intermediate state is not usable
// for further deduction.
func (s *Solver[T]) Solve() (*Result[T], error) {
	slog.Info("propagation starting", "run_token", s.runToken, "rules", len(s.rules))

	rounds := 0
	if err := s.resolveIntersections(&rounds); err != nil {
		return nil, err
	}
	if err := s.simplifyAll(&rounds); err != nil {
		return nil, err
	}

	result := &Result[T]{
		Known:        s.known,
		Rounds:       rounds,
		Outcome:      ir.OutcomeSolved,
		Combinations: 1,
		RunToken:     s.runToken,
	}
	for _, rule := range s.rules {
		if rule.IsEmpty() {
			continue
		}
		result.Outcome = ir.OutcomePartial
		result.Rules = append(result.Rules, rule)
	}
	for group, value := range s.known {
		result.Combinations *= analyze.NCR(group.Size(), value)
	}

	slog.Info("propagation finished",
		"run_token", s.runToken,
		"outcome", result.Outcome,
		"rounds", rounds,
		"known_groups", len(s.known),
		"live_rules", len(result.Rules),
	)
	return result, nil
}

// resolveIntersections sweeps all ordered rule pairs until a full sweep
// performs no split. Each CheckIntersection call performs at most one
// split, so a sweep may split the same pair's fragments again on the next
// pass; sweeping to quiescence reaches the pairwise-disjoint fixed point.
func (s *Solver[T]) resolveIntersections(rounds *int) error {
	for {
		*rounds++
		if *rounds > s.maxRounds {
			return &RoundsExceededError{Rounds: *rounds, Max: s.maxRounds}
		}

		split := false
		for i, ruleA := range s.rules {
			for j, ruleB := range s.rules {
				if i == j {
					continue
				}
				for ruleA.CheckIntersection(ruleB) {
					split = true
					if err := s.record(ir.StepSplit, ruleA.String(), ruleB.String(), "split"); err != nil {
						return err
					}
					slog.Debug("split performed",
						"run_token", s.runToken,
						"rule", ruleA.String(),
						"other_rule", ruleB.String(),
					)
				}
			}
		}
		if !split {
			return nil
		}
	}
}

// simplifyAll sweeps all rules against the known-values table until every
// rule reports no effect or one reports a failure.
func (s *Solver[T]) simplifyAll(rounds *int) error {
	for {
		*rounds++
		if *rounds > s.maxRounds {
			return &RoundsExceededError{Rounds: *rounds, Max: s.maxRounds}
		}

		simplified := false
		for _, rule := range s.rules {
			before := rule.String()
			res := rule.Simplify(s.known)
			if res == analyze.NoEffect {
				continue
			}

			if err := s.record(ir.StepSimplify, before, "", res.String()); err != nil {
				return err
			}
			if res.Failed() {
				slog.Debug("simplify failed",
					"run_token", s.runToken,
					"rule", before,
					"result", res.String(),
				)
				return &UnsatisfiableError{Result: res, Rule: before}
			}

			simplified = true
			slog.Debug("rule simplified",
				"run_token", s.runToken,
				"rule", before,
				"known_groups", len(s.known),
			)
		}
		if !simplified {
			return nil
		}
	}
}

// record stamps and emits one trace step.
func (s *Solver[T]) record(kind ir.StepKind, rule, otherRule, outcome string) error {
	step := ir.Step{
		RunToken:  s.runToken,
		Seq:       s.clock.Next(),
		Kind:      kind,
		Rule:      rule,
		OtherRule: otherRule,
		Outcome:   outcome,
	}
	id, err := ir.StepID(step)
	if err != nil {
		return err
	}
	step.ID = id
	return s.recorder.RecordStep(step)
}
