package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minededuce/minededuce/internal/ir"
	"github.com/minededuce/minededuce/internal/queryir"
	"github.com/minededuce/minededuce/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Kind     string
	Outcome  string
	Rule     string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-token]",
		Short: "Inspect recorded propagation runs",
		Long: `List runs recorded in a trace database, or dump the steps of one run
when a run token is given. Step dumps can be narrowed with --kind,
--outcome and --rule filters; filters combine with AND.

Example:
  minededuce trace --db trace.db
  minededuce trace --db trace.db 0198a3f2-...
  minededuce trace --db trace.db 0198a3f2-... --kind simplify --rule b3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runTraceSteps(opts, args[0], cmd)
			}
			return runTraceList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only steps of this kind (split|simplify)")
	cmd.Flags().StringVar(&opts.Outcome, "outcome", "", "only steps with this outcome")
	cmd.Flags().StringVar(&opts.Rule, "rule", "", "only steps whose rule rendering contains this substring")

	return cmd
}

// runReport is the JSON shape of one listed run.
type runReport struct {
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
	RuleCount int    `json:"rule_count"`
	Rounds    int    `json:"rounds"`
	Outcome   string `json:"outcome"`
}

func runTraceList(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	defer closeStore(st)

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	reports := make([]runReport, 0, len(runs))
	for _, run := range runs {
		reports = append(reports, runReport{
			Token:     run.Token,
			CreatedAt: run.CreatedAt,
			RuleCount: run.RuleCount,
			Rounds:    run.Rounds,
			Outcome:   run.Outcome,
		})
	}
	if opts.Format == "json" {
		return formatter.Success(reports)
	}

	if len(reports) == 0 {
		return formatter.Success("no runs recorded")
	}
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s  %s  rules=%d rounds=%d  %s\n", r.Token, r.CreatedAt, r.RuleCount, r.Rounds, r.Outcome)
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}

func runTraceSteps(opts *TraceOptions, token string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	defer closeStore(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run, err := st.ReadRun(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", token), nil)
			return NewExitError(ExitCommandError, "run not found")
		}
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	steps, err := st.QuerySteps(ctx, stepQuery(opts, token))
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read steps", err)
	}
	slog.Debug("trace loaded", "run_token", token, "steps", len(steps))

	if opts.Format == "json" {
		return formatter.Success(struct {
			Run   runReport `json:"run"`
			Steps []ir.Step `json:"steps"`
		}{
			Run: runReport{
				Token:     run.Token,
				CreatedAt: run.CreatedAt,
				RuleCount: run.RuleCount,
				Rounds:    run.Rounds,
				Outcome:   run.Outcome,
			},
			Steps: steps,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %s, rules=%d rounds=%d\n", run.Token, run.Outcome, run.RuleCount, run.Rounds)
	for _, step := range steps {
		switch step.Kind {
		case ir.StepSplit:
			fmt.Fprintf(&b, "%4d  split     %s | %s\n", step.Seq, step.Rule, step.OtherRule)
		default:
			fmt.Fprintf(&b, "%4d  simplify  %s -> %s\n", step.Seq, step.Rule, step.Outcome)
		}
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}

// stepQuery builds the trace query from the command's filter flags.
func stepQuery(opts *TraceOptions, token string) queryir.Steps {
	var predicates []queryir.Predicate
	if opts.Kind != "" {
		predicates = append(predicates, queryir.KindIs{Kind: opts.Kind})
	}
	if opts.Outcome != "" {
		predicates = append(predicates, queryir.OutcomeIs{Outcome: opts.Outcome})
	}
	if opts.Rule != "" {
		predicates = append(predicates, queryir.RuleContains{Substring: opts.Rule})
	}

	query := queryir.Steps{RunToken: token}
	switch len(predicates) {
	case 0:
	case 1:
		query.Filter = predicates[0]
	default:
		query.Filter = queryir.And{Predicates: predicates}
	}
	return query
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing trace database", "error", err)
	}
}
