// Package harness provides conformance testing for the label engine.
//
// The harness wires a fresh in-memory substrate, a session and the engine
// components, executes a scenario's steps, and records every operation and
// its observable outcome as a trace. Traces are compared against golden
// files for regression detection.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	base: https://notes.example/d/
//	doc: https://notes.example/d/doc1
//	title: "Doc One"
//	seed:
//	  - doc: doc2
//	    value: '["legacy","array"]'
//	steps:
//	  - add: "reading"
//	  - move: { from: 0, to: 1 }
//	  - remove: 0
//	  - write: { doc: doc1, value: '{"labels":["external"],...}' }
//	  - recheck: true
//	  - find: "reading"
//	  - export: "reading"
//	  - import: '{"label":"reading","documents":[...]}'
//	assertions:
//	  - type: labels
//	    labels: ["reading"]
//	  - type: divergence_count
//	    count: 1
//	  - type: trace_count
//	    op: add
//	    count: 1
//
// Seed entries write raw substrate values before the session loads, so
// scenarios can start from legacy or malformed records. Write steps do the
// same mid-flow, playing the role of an external writer for divergence
// scenarios.
//
// # Deterministic Testing
//
// Each scenario runs in an isolated in-memory SQLite database with a fixed
// session token, so identical scenarios produce identical traces across
// runs. Trace snapshots are serialized as canonical JSON before golden
// comparison.
package harness
