package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minededuce/minededuce/internal/analyze"
	"github.com/minededuce/minededuce/internal/engine"
	"github.com/minededuce/minededuce/internal/ir"
	"github.com/minededuce/minededuce/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Database string

	// TokenGenerator allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGenerator engine.RunTokenGenerator
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Propagate a constraint document to its fixed point",
		Long: `Load a CUE constraint document (a file or a directory of .cue files),
propagate the constraints to their fixed point, and print the forced
values and any remaining rules.

With --db, each effective propagation step is recorded to a SQLite trace
database for later inspection with the trace command.

Example:
  minededuce solve board.cue
  minededuce solve ./boards --db trace.db --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (optional)")

	return cmd
}

// solveReport is the JSON payload for a completed solve.
type solveReport struct {
	RunToken  string       `json:"run_token"`
	Outcome   string       `json:"outcome"`
	Rounds    int          `json:"rounds"`
	Known     []knownEntry `json:"known"`
	Remaining []string     `json:"remaining,omitempty"`
}

type knownEntry struct {
	Group string `json:"group"`
	Value int    `json:"value"`
}

func runSolve(opts *SolveOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	loaded, errs := LoadConstraints(path, LoadModeFailFast)
	if len(errs) > 0 {
		return reportLoadErrors(formatter, errs)
	}
	set := loaded.Set
	slog.Info("constraints loaded", "name", set.Name, "rules", len(set.Rules), "files", loaded.FileCount)

	rules := buildRules(set)

	tokenGen := opts.TokenGenerator
	if tokenGen == nil {
		tokenGen = engine.UUIDv7Generator{}
	}
	token := tokenGen.Generate()

	solverOpts := []engine.SolverOption[string]{
		engine.WithRunToken[string](token),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var st *store.Store
	if opts.Database != "" {
		var err error
		st, err = store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open trace database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing trace database", "error", closeErr)
			}
		}()
		if err := st.CreateRun(ctx, token, len(rules)); err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to create run", err)
		}
		solverOpts = append(solverOpts, engine.WithRecorder[string](&storeRecorder{ctx: ctx, store: st}))
	}

	solver := engine.New(rules, solverOpts...)
	result, solveErr := solver.Solve()

	if solveErr != nil {
		outcome := ir.OutcomeRoundsExceeded
		code := ErrCodeNoFixedPoint
		var unsat *engine.UnsatisfiableError
		if errors.As(solveErr, &unsat) {
			outcome = unsat.Outcome()
			code = ErrCodeUnsatisfiable
		}
		if st != nil {
			if err := st.FinishRun(ctx, token, outcome, 0); err != nil {
				slog.Error("error finishing run", "run_token", token, "error", err)
			}
		}
		_ = formatter.Error(code, solveErr.Error(), map[string]string{"run_token": token, "outcome": outcome})
		return WrapExitError(ExitFailure, outcome, solveErr)
	}

	if st != nil {
		if err := st.FinishRun(ctx, token, result.Outcome, result.Rounds); err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to finish run", err)
		}
	}

	report := buildReport(result)
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	return formatter.Success(renderReport(report))
}

// buildRules converts raw rule specs to live rules, in document order.
func buildRules(set *ir.ConstraintSet) []*analyze.FieldRule[string] {
	rules := make([]*analyze.FieldRule[string], 0, len(set.Rules))
	for _, spec := range set.Rules {
		var cause *string
		if spec.Cause != "" {
			c := spec.Cause
			cause = &c
		}
		rules = append(rules, analyze.NewFieldRule(cause, spec.Fields, spec.Result))
	}
	return rules
}

// buildReport flattens a solver result into its display form, with known
// groups sorted by rendering for stable output.
func buildReport(result *engine.Result[string]) solveReport {
	report := solveReport{
		RunToken: result.RunToken,
		Outcome:  result.Outcome,
		Rounds:   result.Rounds,
		Known:    []knownEntry{},
	}
	for group, value := range result.Known {
		report.Known = append(report.Known, knownEntry{Group: group.String(), Value: value})
	}
	sort.Slice(report.Known, func(i, j int) bool {
		return report.Known[i].Group < report.Known[j].Group
	})
	for _, rule := range result.Rules {
		report.Remaining = append(report.Remaining, rule.String())
	}
	return report
}

func renderReport(report solveReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %s in %d rounds\n", report.RunToken, report.Outcome, report.Rounds)
	b.WriteString("known:\n")
	if len(report.Known) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, entry := range report.Known {
		fmt.Fprintf(&b, "  %s = %d\n", entry.Group, entry.Value)
	}
	if len(report.Remaining) > 0 {
		b.WriteString("remaining:\n")
		for _, rule := range report.Remaining {
			fmt.Fprintf(&b, "  %s\n", rule)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// reportLoadErrors prints load errors and maps them to an exit code:
// validation problems are an expected failure, everything else is a
// command error.
func reportLoadErrors(formatter *OutputFormatter, errs []error) error {
	exitCode := ExitCommandError
	for _, err := range errs {
		code := ErrCodeGeneric
		if loadErr, ok := err.(*LoadError); ok {
			code = loadErr.Code
		}
		if code == ErrCodeInvalidSet {
			exitCode = ExitFailure
		}
		_ = formatter.Error(code, err.Error(), nil)
	}
	return WrapExitError(exitCode, fmt.Sprintf("%d error(s) loading constraints", len(errs)), errs[0])
}

// storeRecorder adapts the SQLite store to the solver's step sink.
type storeRecorder struct {
	ctx   context.Context
	store *store.Store
}

// RecordStep implements engine.Recorder.
func (r *storeRecorder) RecordStep(step ir.Step) error {
	_, err := r.store.WriteStep(r.ctx, step)
	return err
}
