package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunGolden loads the scenario at path, executes it and compares the
// snapshot against testdata/golden/{name}.golden. Regenerate with
// go test -update.
func RunGolden(t *testing.T, path string) {
	t.Helper()

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
