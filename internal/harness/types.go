package harness

// TraceEvent records one step's observable outcome.
// Only the fields relevant to the event kind are populated.
type TraceEvent struct {
	Kind       string   `json:"kind"` // "add", "remove", "move", "external_write", "recheck", "find", "export", "import"
	Labels     []string `json:"labels,omitempty"`
	Index      int      `json:"index,omitempty"`
	From       int      `json:"from,omitempty"`
	To         int      `json:"to,omitempty"`
	Doc        string   `json:"doc,omitempty"`
	Label      string   `json:"label,omitempty"`
	Documents  []string `json:"documents,omitempty"` // find/export hits, by title
	Message    string   `json:"message,omitempty"`   // import outcome or step error
	Count      int      `json:"count,omitempty"`     // import count
	Divergence bool     `json:"divergence,omitempty"`
	Seq        int      `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every assertion held and no step
	// failed unexpectedly.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// FinalLabels is the active document's label sequence after the last
	// step.
	FinalLabels []string `json:"final_labels"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Trace:       []TraceEvent{},
		FinalLabels: []string{},
		Errors:      []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event, assigning its sequence number.
func (r *Result) AddTrace(event TraceEvent) {
	event.Seq = len(r.Trace)
	r.Trace = append(r.Trace, event)
}

// DivergenceCount counts rechecks that observed an external change.
func (r *Result) DivergenceCount() int {
	n := 0
	for _, event := range r.Trace {
		if event.Kind == "recheck" && event.Divergence {
			n++
		}
	}
	return n
}

// CountKind counts trace events of the given kind.
func (r *Result) CountKind(kind string) int {
	n := 0
	for _, event := range r.Trace {
		if event.Kind == kind {
			n++
		}
	}
	return n
}
