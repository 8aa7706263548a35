package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minededuce/minededuce/internal/ir"
	"github.com/minededuce/minededuce/internal/queryir"
	"github.com/minededuce/minededuce/internal/querysql"
)

// ErrRunNotFound is returned when a run token has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one stored propagation run.
type Run struct {
	Token     string
	CreatedAt string
	RuleCount int
	Rounds    int
	Outcome   string
}

// ReadRun loads one run by token. Returns ErrRunNotFound (wrapped) when
// the token is unknown.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT token, created_at, rule_count, rounds, outcome FROM runs WHERE token = ?`,
		token,
	).Scan(&run.Token, &run.CreatedAt, &run.RuleCount, &run.Rounds, &run.Outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, token)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return run, nil
}

// ListRuns returns all runs ordered by creation. UUIDv7 tokens are
// time-sortable, so token order doubles as creation order for ties within
// one datetime() second.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token, created_at, rule_count, rounds, outcome FROM runs ORDER BY created_at, token`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Token, &run.CreatedAt, &run.RuleCount, &run.Rounds, &run.Outcome); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ReadSteps loads a run's steps in sequence order.
func (s *Store) ReadSteps(ctx context.Context, token string) ([]ir.Step, error) {
	return s.QuerySteps(ctx, queryir.Steps{RunToken: token})
}

// QuerySteps runs a filtered trace query. The filter is compiled to
// parameterized SQL; results are always in sequence order.
func (s *Store) QuerySteps(ctx context.Context, query queryir.Steps) ([]ir.Step, error) {
	sqlText, params, err := querysql.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("query steps for %s: %w", query.RunToken, err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("query steps for %s: %w", query.RunToken, err)
	}
	defer rows.Close()

	var steps []ir.Step
	for rows.Next() {
		var step ir.Step
		var kind string
		if err := rows.Scan(&step.ID, &step.RunToken, &step.Seq, &kind, &step.Rule, &step.OtherRule, &step.Outcome); err != nil {
			return nil, fmt.Errorf("query steps for %s: %w", query.RunToken, err)
		}
		step.Kind = ir.StepKind(kind)
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query steps for %s: %w", query.RunToken, err)
	}
	return steps, nil
}
