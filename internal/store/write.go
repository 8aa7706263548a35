package store

import (
	"context"
	"fmt"

	"github.com/minededuce/minededuce/internal/ir"
)

// CreateRun registers a new propagation run. The outcome stays 'pending'
// until FinishRun. Creating an existing token is an error: run tokens are
// unique per run, and a collision means the caller reused one.
func (s *Store) CreateRun(ctx context.Context, token string, ruleCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (token, rule_count) VALUES (?, ?)`,
		token, ruleCount,
	)
	if err != nil {
		return fmt.Errorf("create run %s: %w", token, err)
	}
	return nil
}

// FinishRun records a run's final outcome and round count.
func (s *Store) FinishRun(ctx context.Context, token, outcome string, rounds int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET outcome = ?, rounds = ? WHERE token = ?`,
		outcome, rounds, token,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run %s: run not found", token)
	}
	return nil
}

// WriteStep persists one propagation step. Idempotent via the
// content-addressed primary key: rewriting the same step reports
// inserted=false and changes nothing.
func (s *Store) WriteStep(ctx context.Context, step ir.Step) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO steps (id, run_token, seq, kind, rule, other_rule, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		step.ID, step.RunToken, step.Seq, string(step.Kind), step.Rule, step.OtherRule, step.Outcome,
	)
	if err != nil {
		return false, fmt.Errorf("write step %s: %w", step.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write step %s: %w", step.ID, err)
	}
	return affected > 0, nil
}
