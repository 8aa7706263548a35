package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "chained.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "chained", scenario.Name)
	require.Len(t, scenario.Rules, 2)
	assert.Equal(t, "c1", scenario.Rules[0].Cause)
	assert.Equal(t, []string{"a", "b"}, scenario.Rules[0].Fields)
	assert.Equal(t, 2, scenario.Rules[0].Result)
	assert.Equal(t, "solved", scenario.Expect.Outcome)
	assert.Equal(t, map[string]int{"(a)": 1, "(b)": 1, "(c)": 0}, scenario.Expect.Known)
}

func TestLoadScenariosSorted(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(scenarios), 3)

	// Glob results are sorted by filename.
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"chained", "contradiction", "overlap-partial"}, names)
}

func TestLoadScenarioMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - fields: [a]\n    result: 1\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestLoadScenarioNoRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: empty\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rules")
}

func TestLoadScenarioBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing scenario")
}
