package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/labelstore/internal/index"
	"github.com/roach88/labelstore/internal/labels"
	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/share"
	"github.com/roach88/labelstore/internal/substrate"
	"github.com/roach88/labelstore/internal/watch"
)

// sessionToken is the fixed token every scenario session uses, keeping
// traces identical across runs.
const sessionToken = "session-0001"

// harness holds the wired components for one scenario execution.
type harness struct {
	db      *substrate.DB
	sess    *session.Session
	store   *labels.Store
	index   *index.Index
	codec   *share.Codec
	watcher *watch.Watcher
	rec     record.Record
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. Seeds are
// applied before the session's first load, so the scenario's opening state
// is whatever the seeds planted.
//
// Step-level failures that are legitimate engine outcomes (stale indexes,
// rejected payloads) are recorded in the trace, not returned as errors.
// Only infrastructure failures (the in-memory database breaking) error out.
func Run(scenario *Scenario) (*Result, error) {
	db, err := substrate.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory substrate: %w", err)
	}
	defer db.Close()

	// Suppress engine logs in tests.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	base := scenario.Base
	if base == "" {
		base = DefaultBase
	}
	host, err := session.NewURLHost(base, scenario.Doc, scenario.Title)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario host: %w", err)
	}

	ctx := context.Background()

	for _, seed := range scenario.Seed {
		if err := db.Set(ctx, record.Key(seed.Doc), seed.Value); err != nil {
			return nil, fmt.Errorf("seed %q: %w", seed.Doc, err)
		}
	}

	sess, err := session.New(host, session.NewFixedGenerator(sessionToken))
	if err != nil {
		return nil, fmt.Errorf("scenario session: %w", err)
	}

	h := &harness{
		db:      db,
		sess:    sess,
		store:   labels.New(db, sess, logger),
		index:   index.New(db, logger),
		codec:   share.NewCodec(db, host, logger),
		watcher: watch.New(db, sess, logger),
	}
	h.rec = h.store.Load(ctx)

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, &step, result); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	result.FinalLabels = append([]string{}, h.rec.Labels...)
	evaluateAssertions(scenario, result)
	return result, nil
}

// executeStep runs one step and appends its trace event.
func (h *harness) executeStep(ctx context.Context, step *Step, result *Result) error {
	switch {
	case step.Add != nil:
		h.rec = h.store.Add(ctx, h.rec, *step.Add)
		result.AddTrace(TraceEvent{
			Kind:   "add",
			Label:  *step.Add,
			Labels: snapshot(h.rec.Labels),
		})

	case step.Remove != nil:
		event := TraceEvent{Kind: "remove", Index: *step.Remove}
		rec, err := h.store.Remove(ctx, h.rec, *step.Remove)
		if err != nil {
			event.Message = err.Error()
		} else {
			h.rec = rec
		}
		event.Labels = snapshot(h.rec.Labels)
		result.AddTrace(event)

	case step.Move != nil:
		event := TraceEvent{Kind: "move", From: step.Move.From, To: step.Move.To}
		rec, err := h.store.Reorder(ctx, h.rec, step.Move.From, step.Move.To)
		if err != nil {
			event.Message = err.Error()
		} else {
			h.rec = rec
		}
		event.Labels = snapshot(h.rec.Labels)
		result.AddTrace(event)

	case step.Write != nil:
		if err := h.db.Set(ctx, record.Key(step.Write.Doc), step.Write.Value); err != nil {
			return fmt.Errorf("external write: %w", err)
		}
		result.AddTrace(TraceEvent{Kind: "external_write", Doc: step.Write.Doc})

	case step.Recheck != nil:
		event := TraceEvent{Kind: "recheck"}
		diverged, err := h.watcher.Recheck(ctx)
		if err != nil {
			event.Message = err.Error()
		}
		if diverged {
			event.Divergence = true
			h.rec.Labels = h.sess.LastKnown()
		}
		event.Labels = snapshot(h.rec.Labels)
		result.AddTrace(event)

	case step.Find != nil:
		event := TraceEvent{Kind: "find", Label: *step.Find}
		refs, err := h.index.FindDocumentsWithLabel(ctx, *step.Find, h.sess.DocID)
		if err != nil {
			event.Message = err.Error()
		}
		// Scan order is unspecified; sort so traces stay deterministic.
		titles := make([]string, 0, len(refs))
		for _, ref := range refs {
			titles = append(titles, ref.Title)
		}
		slices.Sort(titles)
		event.Documents = titles
		result.AddTrace(event)

	case step.Export != nil:
		event := TraceEvent{Kind: "export", Label: *step.Export}
		payload, err := share.Export(ctx, h.index, *step.Export, h.sess.DocID)
		if err != nil {
			event.Message = err.Error()
		}
		titles := make([]string, 0, len(payload.Documents))
		for _, doc := range payload.Documents {
			titles = append(titles, doc.Title)
		}
		slices.Sort(titles)
		event.Documents = titles
		result.AddTrace(event)

	case step.Import != nil:
		res := h.codec.Import(ctx, []byte(*step.Import))
		result.AddTrace(TraceEvent{
			Kind:    "import",
			Message: res.Message,
			Count:   res.ImportedCount,
		})

	default:
		return fmt.Errorf("no operation set")
	}

	return nil
}

// evaluateAssertions checks every scenario assertion against the result.
func evaluateAssertions(scenario *Scenario, result *Result) {
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertLabels:
			if !slices.Equal(a.Labels, result.FinalLabels) {
				result.AddError(fmt.Sprintf(
					"assertions[%d]: final labels %v, expected %v",
					i, result.FinalLabels, a.Labels))
			}
		case AssertDivergenceCount:
			if got := result.DivergenceCount(); got != a.Count {
				result.AddError(fmt.Sprintf(
					"assertions[%d]: %d divergence(s) observed, expected %d",
					i, got, a.Count))
			}
		case AssertTraceCount:
			if got := result.CountKind(a.Op); got != a.Count {
				result.AddError(fmt.Sprintf(
					"assertions[%d]: %d %q event(s), expected %d",
					i, got, a.Op, a.Count))
			}
		}
	}
}

// snapshot copies a label sequence so later mutations don't rewrite history.
func snapshot(labels []string) []string {
	return append([]string{}, labels...)
}
