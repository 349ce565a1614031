// Package index answers "which documents carry label L" by scanning every
// stored record under the engine's key prefix.
//
// The index is derived, never materialized: each query re-reads the
// substrate, so it is always consistent with the latest writes at the cost
// of a full prefix scan. Result order follows substrate enumeration order,
// which is unspecified and not guaranteed stable across calls - callers
// requiring stable display order must sort explicitly. This is a known
// non-guarantee, not a defect.
package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/substrate"
)

// DocumentRef is one scan hit.
type DocumentRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsCurrent bool   `json:"is_current"`
}

// Index scans the substrate's label records.
type Index struct {
	adapter substrate.Adapter
	logger  *slog.Logger
}

// New creates an index over the given substrate.
func New(adapter substrate.Adapter, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{adapter: adapter, logger: logger}
}

// FindDocumentsWithLabel returns every document whose label sequence contains
// label as an exact element (case-sensitive, no normalization).
//
// Per-entry read and decode failures are skipped - one malformed record must
// not abort the scan. Only the prefix enumeration itself failing is an error.
// Returns an empty slice (not nil) when nothing matches.
func (ix *Index) FindDocumentsWithLabel(ctx context.Context, label, currentDocID string) ([]DocumentRef, error) {
	keys, err := ix.adapter.KeysWithPrefix(ctx, record.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("enumerate label records: %w", err)
	}

	refs := make([]DocumentRef, 0)
	for _, key := range keys {
		docID, ok := record.DocIDFromKey(key)
		if !ok {
			continue
		}

		raw, present, err := ix.adapter.Get(ctx, key)
		if err != nil {
			ix.logger.Debug("skipping unreadable record during scan", "key", key, "error", err)
			continue
		}
		rec, derr := record.Decode(raw, present)
		if derr != nil {
			ix.logger.Debug("skipping malformed record during scan", "key", key, "error", derr)
			continue
		}

		if !rec.HasLabel(label) {
			continue
		}
		refs = append(refs, DocumentRef{
			ID:        docID,
			Title:     rec.Title,
			URL:       rec.URL,
			IsCurrent: docID == currentDocID,
		})
	}

	return refs, nil
}
