// Package querysql compiles queryir trace queries to parameterized SQL
// for SQLite. All values are parameterized, never interpolated, and every
// compiled query carries an ORDER BY so results are deterministic.
package querysql

import (
	"fmt"
	"strings"

	"github.com/minededuce/minededuce/internal/queryir"
)

// stepColumns is the fixed projection for step queries, matching the
// steps table schema and scan order in the store.
const stepColumns = "id, run_token, seq, kind, rule, other_rule, outcome"

// Compile converts a queryir query to parameterized SQL. Returns the SQL
// text and its parameters in placeholder order.
//
// The query is validated first; a structurally broken query fails here
// rather than at execution time.
func Compile(query queryir.Query) (string, []any, error) {
	if errs := queryir.Validate(query); len(errs) > 0 {
		return "", nil, fmt.Errorf("invalid query: %w", errs[0])
	}

	switch q := query.(type) {
	case queryir.Steps:
		return compileSteps(q)
	case *queryir.Steps:
		return compileSteps(*q)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", query)
	}
}

func compileSteps(q queryir.Steps) (string, []any, error) {
	var (
		conditions = []string{"run_token = ?"}
		params     = []any{q.RunToken}
	)

	if q.Filter != nil {
		sql, filterParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		conditions = append(conditions, sql)
		params = append(params, filterParams...)
	}

	sql := fmt.Sprintf("SELECT %s FROM steps WHERE %s ORDER BY seq",
		stepColumns, strings.Join(conditions, " AND "))
	return sql, params, nil
}

func compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.KindIs:
		return "kind = ?", []any{pred.Kind}, nil
	case *queryir.KindIs:
		return compilePredicate(*pred)
	case queryir.OutcomeIs:
		return "outcome = ?", []any{pred.Outcome}, nil
	case *queryir.OutcomeIs:
		return compilePredicate(*pred)
	case queryir.RuleContains:
		// ESCAPE makes the substring literal: % and _ in field names
		// must not act as wildcards.
		return "rule LIKE ? ESCAPE '\\'", []any{"%" + escapeLike(pred.Substring) + "%"}, nil
	case *queryir.RuleContains:
		return compilePredicate(*pred)
	case queryir.And:
		var (
			parts  []string
			params []any
		)
		for _, member := range pred.Predicates {
			sql, memberParams, err := compilePredicate(member)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
			params = append(params, memberParams...)
		}
		return "(" + strings.Join(parts, " AND ") + ")", params, nil
	case *queryir.And:
		return compilePredicate(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
