// Package watch detects divergence between a session's last-known label
// snapshot and the substrate's current value for the active document.
//
// The watcher owns no timer and runs no goroutine: rechecks happen only when
// the caller invokes them (on a visibility regain, a focus event, or a
// driver loop like the CLI's watch command). Detection is level-triggered -
// any number of external writes between two rechecks collapses into at most
// one observed transition.
package watch

import (
	"context"
	"log/slog"
	"slices"

	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/substrate"
)

// State is the watcher's position in its two-state machine.
type State int

const (
	// StateSynced means the snapshot matched the substrate at the last check.
	StateSynced State = iota
	// StateChecking is the transient state during a comparison.
	StateChecking
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StateChecking:
		return "checking"
	default:
		return "unknown"
	}
}

// Handler receives the new label snapshot when divergence is detected.
// Rendering is the handler's responsibility; the watcher has no other side
// effects beyond updating the session snapshot.
type Handler func(labels []string)

// Watcher reconciles one session against external writers to the same key.
//
// Not safe for concurrent use; like the rest of the engine it belongs to a
// single caller's event turn.
type Watcher struct {
	adapter  substrate.Adapter
	sess     *session.Session
	logger   *slog.Logger
	state    State
	handlers []Handler
}

// New creates a watcher for the session's active document.
func New(adapter substrate.Adapter, sess *session.Session, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{adapter: adapter, sess: sess, logger: logger, state: StateSynced}
}

// OnExternalChange registers a handler for divergence notifications.
// Handlers are invoked in registration order, at most once per Recheck.
func (w *Watcher) OnExternalChange(h Handler) {
	w.handlers = append(w.handlers, h)
}

// State returns the watcher's current state.
func (w *Watcher) State() State {
	return w.state
}

// Recheck re-reads the active document's record and compares its label
// sequence (by value, order-sensitive) to the session's last-known snapshot.
//
// On divergence the snapshot is replaced and every handler fires once with
// the new sequence; the return is (true, nil). On a match nothing happens.
// Read failures are logged and reported; no divergence is signaled for them.
func (w *Watcher) Recheck(ctx context.Context) (bool, error) {
	w.state = StateChecking
	defer func() { w.state = StateSynced }()

	key := record.Key(w.sess.DocID)
	raw, present, err := w.adapter.Get(ctx, key)
	if err != nil {
		w.logger.Warn("recheck read failed", "session", w.sess.Token, "key", key, "error", err)
		return false, err
	}

	rec, derr := record.Decode(raw, present)
	if derr != nil {
		w.logger.Warn("recheck found malformed record, comparing against empty",
			"session", w.sess.Token, "key", key, "error", derr)
	}

	last := w.sess.LastKnown()
	if slices.Equal(last, rec.Labels) {
		return false, nil
	}

	w.logger.Info("external change detected",
		"session", w.sess.Token,
		"doc", w.sess.DocID,
		"old", record.Fingerprint(last),
		"new", record.Fingerprint(rec.Labels))

	w.sess.SetLastKnown(rec.Labels)
	for _, h := range w.handlers {
		h(append([]string{}, rec.Labels...))
	}
	return true, nil
}
