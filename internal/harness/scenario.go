package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios exercise the engine through an ordered step list and assert on
// the resulting trace and final label sequence.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Base is the document namespace base URL.
	// Defaults to "https://notes.example/d/".
	Base string `yaml:"base,omitempty"`

	// Doc is the active document's URL. Required: every scenario runs
	// inside one session.
	Doc string `yaml:"doc"`

	// Title is the active document's title.
	Title string `yaml:"title,omitempty"`

	// Seed writes raw substrate values before the session loads.
	// Values are stored verbatim, so seeds can plant legacy arrays or
	// malformed text.
	Seed []SeedEntry `yaml:"seed,omitempty"`

	// Steps is the ordered operation list.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and label sequence.
	// Supported types: labels, divergence_count, trace_count
	Assertions []Assertion `yaml:"assertions"`
}

// SeedEntry is one raw substrate write applied before the flow starts.
type SeedEntry struct {
	// Doc is the document ID (not a URL; the key prefix is added).
	Doc string `yaml:"doc"`

	// Value is the raw stored text.
	Value string `yaml:"value"`
}

// Step is one operation in a scenario flow. Exactly one field must be set.
type Step struct {
	// Add appends a label to the active document.
	Add *string `yaml:"add,omitempty"`

	// Remove deletes the label at an index.
	Remove *int `yaml:"remove,omitempty"`

	// Move reorders a label.
	Move *MoveStep `yaml:"move,omitempty"`

	// Write stores a raw value for a document, playing an external writer.
	Write *WriteStep `yaml:"write,omitempty"`

	// Recheck runs one watcher comparison.
	Recheck *bool `yaml:"recheck,omitempty"`

	// Find scans for documents carrying a label.
	Find *string `yaml:"find,omitempty"`

	// Export builds the portable payload for a label.
	Export *string `yaml:"export,omitempty"`

	// Import merges an inline JSON payload.
	Import *string `yaml:"import,omitempty"`
}

// MoveStep reorders the label at From to position To.
type MoveStep struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// WriteStep stores Value under the document's key, bypassing the session.
type WriteStep struct {
	Doc   string `yaml:"doc"`
	Value string `yaml:"value"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "labels": final label sequence equals Labels exactly
	// - "divergence_count": rechecks reported divergence exactly Count times
	// - "trace_count": events of kind Op appear exactly Count times
	Type string `yaml:"type"`

	// Labels is the expected final sequence (used by labels).
	Labels []string `yaml:"labels,omitempty"`

	// Op is the trace event kind (used by trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of occurrences
	// (used by divergence_count, trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertLabels          = "labels"
	AssertDivergenceCount = "divergence_count"
	AssertTraceCount      = "trace_count"
)

// DefaultBase is the namespace used when a scenario omits base.
const DefaultBase = "https://notes.example/d/"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs
	// "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Doc == "" {
		return fmt.Errorf("doc is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, seed := range s.Seed {
		if seed.Doc == "" {
			return fmt.Errorf("seed[%d]: doc is required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that exactly one operation is set.
func validateStep(index int, step *Step) error {
	set := 0
	if step.Add != nil {
		set++
	}
	if step.Remove != nil {
		set++
	}
	if step.Move != nil {
		set++
	}
	if step.Write != nil {
		set++
	}
	if step.Recheck != nil {
		set++
	}
	if step.Find != nil {
		set++
	}
	if step.Export != nil {
		set++
	}
	if step.Import != nil {
		set++
	}

	if set == 0 {
		return fmt.Errorf("steps[%d]: no operation set", index)
	}
	if set > 1 {
		return fmt.Errorf("steps[%d]: exactly one operation per step", index)
	}
	if step.Write != nil && step.Write.Doc == "" {
		return fmt.Errorf("steps[%d]: write requires doc", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLabels:
		// An empty Labels list is a valid expectation (no labels left).
	case AssertDivergenceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for divergence_count", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
