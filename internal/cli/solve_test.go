package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minededuce/minededuce/internal/engine"
	"github.com/minededuce/minededuce/internal/ir"
	"github.com/minededuce/minededuce/internal/store"
)

const chainedDoc = `package boards

constraints: {
	name: "chained"
	rules: [
		{cause: "c1", fields: ["a", "b"], result: 2},
		{fields: ["b", "c"], result: 1},
	]
}
`

const contradictionDoc = `package boards

constraints: {
	name: "contradiction"
	rules: [
		{fields: ["a", "b"], result: 2},
		{fields: ["a"], result: 0},
	]
}
`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "board.cue")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestSolveChained(t *testing.T) {
	path := writeDoc(t, chainedDoc)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "solved")
	assert.Contains(t, output, "(a) = 1")
	assert.Contains(t, output, "(b) = 1")
	assert.Contains(t, output, "(c) = 0")
	assert.NotContains(t, output, "remaining:")
}

func TestSolveChainedJSON(t *testing.T) {
	path := writeDoc(t, chainedDoc)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var report solveReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, ir.OutcomeSolved, report.Outcome)
	require.Len(t, report.Known, 3)
	assert.Equal(t, knownEntry{Group: "(a)", Value: 1}, report.Known[0])
	assert.Equal(t, knownEntry{Group: "(b)", Value: 1}, report.Known[1])
	assert.Equal(t, knownEntry{Group: "(c)", Value: 0}, report.Known[2])
	assert.Empty(t, report.Remaining)
}

func TestSolvePartialKeepsRemaining(t *testing.T) {
	path := writeDoc(t, `package boards

constraints: {
	name: "partial"
	rules: [
		{fields: ["a", "b"], result: 1},
		{fields: ["b", "c"], result: 1},
	]
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "partial")
	assert.Contains(t, output, "remaining:")
	assert.Contains(t, output, "(b) + (a) = 1")
	assert.Contains(t, output, "(b) + (c) = 1")
}

func TestSolveContradiction(t *testing.T) {
	path := writeDoc(t, contradictionDoc)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeUnsatisfiable)
}

func TestSolveInvalidDocument(t *testing.T) {
	path := writeDoc(t, `package boards

constraints: {
	name: "bad"
	rules: [
		{fields: ["a"], result: 5},
	]
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeInvalidSet)
}

func TestSolveNonExistentPath(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/board.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestSolveRecordsTrace(t *testing.T) {
	path := writeDoc(t, chainedDoc)
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--db", dbPath})

	require.NoError(t, cmd.Execute())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ir.OutcomeSolved, runs[0].Outcome)
	assert.Equal(t, 2, runs[0].RuleCount)
	assert.Positive(t, runs[0].Rounds)

	steps, err := st.ReadSteps(context.Background(), runs[0].Token)
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	assert.Equal(t, ir.StepSplit, steps[0].Kind)
	for i, step := range steps {
		assert.Equal(t, int64(i+1), step.Seq)
	}
}

func TestSolveContradictionFinishesRun(t *testing.T) {
	path := writeDoc(t, contradictionDoc)
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--db", dbPath})

	err := cmd.Execute()
	require.Error(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ir.OutcomeFailedNegative, runs[0].Outcome)
}

func TestBuildRulesPreservesCause(t *testing.T) {
	set := &ir.ConstraintSet{
		Name: "causes",
		Rules: []ir.RuleSpec{
			{Cause: "c1", Fields: []string{"a"}, Result: 1},
			{Fields: []string{"b"}, Result: 0},
		},
	}

	rules := buildRules(set)
	require.Len(t, rules, 2)

	cause, ok := rules[0].Cause()
	require.True(t, ok)
	assert.Equal(t, "c1", cause)

	_, ok = rules[1].Cause()
	assert.False(t, ok)
}

func TestSolveFixedToken(t *testing.T) {
	path := writeDoc(t, chainedDoc)

	buf := &bytes.Buffer{}
	opts := &SolveOptions{
		RootOptions:    &RootOptions{Format: "text"},
		TokenGenerator: engine.NewFixedGenerator("run-0001"),
	}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	require.NoError(t, runSolve(opts, path, cmd))
	assert.Contains(t, buf.String(), "run run-0001: solved")
}
