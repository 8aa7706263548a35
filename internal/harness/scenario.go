package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/minededuce/minededuce/internal/ir"
)

// Scenario defines one conformance scenario: a rule set plus the expected
// fixed point.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name, so keep it filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// RunToken is an optional fixed run token. If empty, the harness
	// derives one from the name so traces stay deterministic.
	RunToken string `yaml:"run_token,omitempty"`

	// Rules is the constraint set to propagate, in order.
	Rules []ir.RuleSpec `yaml:"rules"`

	// Expect describes the expected fixed point.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the expected fixed point of a scenario.
type Expectation struct {
	// Outcome is the expected run outcome (solved, partial, or one of the
	// failure outcomes).
	Outcome string `yaml:"outcome"`

	// Known maps group renderings like "(a)" or "(a + b)" to their forced
	// values. Compared exactly: extra or missing entries fail.
	Known map[string]int `yaml:"known,omitempty"`

	// Remaining lists the expected renderings of rules still live at the
	// fixed point, in registration order.
	Remaining []string `yaml:"remaining,omitempty"`
}

// LoadScenario reads and parses one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	if len(scenario.Rules) == 0 {
		return nil, fmt.Errorf("scenario %s has no rules", path)
	}
	return &scenario, nil
}

// LoadScenarios reads all *.yaml scenario files in dir, sorted by filename
// so test order is stable.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
