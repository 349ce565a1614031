package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/labelstore/internal/record"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
	FinalLabels  []string     `json:"final_labels"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any so it can go
// through record.MarshalCanonical, which only handles primitives, slices
// and maps. Zero-valued optional fields are omitted, mirroring the JSON
// tags.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"kind": event.Kind,
			"seq":  event.Seq,
		}
		if event.Labels != nil {
			eventMap["labels"] = event.Labels
		}
		if event.Kind == "remove" {
			eventMap["index"] = event.Index
		}
		if event.Kind == "move" {
			eventMap["from"] = event.From
			eventMap["to"] = event.To
		}
		if event.Doc != "" {
			eventMap["doc"] = event.Doc
		}
		if event.Label != "" {
			eventMap["label"] = event.Label
		}
		if event.Documents != nil {
			eventMap["documents"] = event.Documents
		}
		if event.Message != "" {
			eventMap["message"] = event.Message
		}
		if event.Kind == "import" {
			eventMap["count"] = event.Count
		}
		if event.Divergence {
			eventMap["divergence"] = event.Divergence
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
		"final_labels":  s.FinalLabels,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden
// file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution itself fails; a trace mismatch is
// a test failure via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result's trace against a golden
// file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		FinalLabels:  result.FinalLabels,
	}

	traceJSON, err := record.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
