package labels

import (
	"context"
	"log/slog"
	"strings"

	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/substrate"
)

// Store mutates and persists one session's label record.
type Store struct {
	adapter substrate.Adapter
	sess    *session.Session
	logger  *slog.Logger
}

// New creates a store for the session's active document.
func New(adapter substrate.Adapter, sess *session.Session, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{adapter: adapter, sess: sess, logger: logger}
}

// Load reads the active document's record from the substrate.
//
// Side effect: the decoded label sequence becomes the session's last-known
// snapshot for later divergence checks. Read failures degrade to the empty
// record - read paths never write and never fail the caller.
func (s *Store) Load(ctx context.Context) record.Record {
	key := record.Key(s.sess.DocID)

	raw, ok, err := s.adapter.Get(ctx, key)
	if err != nil {
		s.logger.Warn("substrate read failed, starting from empty record",
			"session", s.sess.Token, "key", key, "error", err)
		rec := record.Empty()
		s.sess.SetLastKnown(rec.Labels)
		return rec
	}

	rec, derr := record.Decode(raw, ok)
	if derr != nil {
		s.logger.Warn("stored record is malformed, degrading to empty",
			"session", s.sess.Token, "key", key, "error", derr)
	}
	s.sess.SetLastKnown(rec.Labels)
	return rec
}

// Persist re-derives the record's display metadata from the host, encodes it
// and writes it to the substrate. A substrate failure is logged and dropped:
// the returned in-memory record stays authoritative for this session, and
// the last-known snapshot advances either way.
func (s *Store) Persist(ctx context.Context, rec record.Record) record.Record {
	rec.Title = s.sess.Host.CurrentDocumentTitle()
	rec.URL = s.sess.Host.CurrentDocumentURL()

	key := record.Key(s.sess.DocID)
	encoded, err := record.Encode(rec)
	if err != nil {
		s.logger.Error("encode record failed, skipping write",
			"session", s.sess.Token, "key", key, "error", err)
		s.sess.SetLastKnown(rec.Labels)
		return rec
	}

	if err := s.adapter.Set(ctx, key, encoded); err != nil {
		s.logger.Warn("substrate write failed, keeping in-memory record",
			"session", s.sess.Token, "key", key, "error", err)
	}
	s.sess.SetLastKnown(rec.Labels)
	return rec
}

// Add appends trimmed text to the label sequence and persists. Duplicates
// are allowed; order is insertion order. Empty or whitespace-only text is a
// no-op returning the input record unchanged.
func (s *Store) Add(ctx context.Context, rec record.Record, text string) record.Record {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return rec
	}

	rec = rec.Clone()
	rec.Labels = append(rec.Labels, trimmed)
	return s.Persist(ctx, rec)
}

// Remove deletes the label at index and persists.
// Returns a *RangeError when index is stale; the record is unchanged then.
func (s *Store) Remove(ctx context.Context, rec record.Record, index int) (record.Record, error) {
	if index < 0 || index >= len(rec.Labels) {
		return rec, newRangeError("remove", index, len(rec.Labels))
	}

	rec = rec.Clone()
	rec.Labels = append(rec.Labels[:index], rec.Labels[index+1:]...)
	return s.Persist(ctx, rec), nil
}

// Reorder moves the label at from to position to and persists.
//
// Semantics are a splice pair, not a swap: the element is removed first, and
// to addresses the sequence after removal. Moving an item forward past
// several positions therefore lands it one slot earlier than a naive swap
// reading would suggest. from == to is a no-op without a write.
func (s *Store) Reorder(ctx context.Context, rec record.Record, from, to int) (record.Record, error) {
	n := len(rec.Labels)
	if from < 0 || from >= n {
		return rec, newRangeError("reorder", from, n)
	}
	if to < 0 || to >= n {
		return rec, newRangeError("reorder", to, n)
	}
	if from == to {
		return rec, nil
	}

	rec = rec.Clone()
	moved := rec.Labels[from]
	rec.Labels = append(rec.Labels[:from], rec.Labels[from+1:]...)
	rec.Labels = append(rec.Labels, "")
	copy(rec.Labels[to+1:], rec.Labels[to:])
	rec.Labels[to] = moved
	return s.Persist(ctx, rec), nil
}
