package share

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/labelstore/internal/index"
	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/substrate"
)

// Export builds the portable payload for one label from an index scan.
// Document order is the scan's returned order.
func Export(ctx context.Context, ix *index.Index, label, currentDocID string) (Payload, error) {
	refs, err := ix.FindDocumentsWithLabel(ctx, label, currentDocID)
	if err != nil {
		return Payload{}, fmt.Errorf("export label %q: %w", label, err)
	}

	docs := make([]DocumentEntry, 0, len(refs))
	for _, ref := range refs {
		docs = append(docs, DocumentEntry{Title: ref.Title, URL: ref.URL})
	}
	return Payload{Label: label, Documents: docs}, nil
}

// Codec merges incoming payloads into the substrate.
//
// Imports bypass session bookkeeping deliberately: they target documents that
// are usually not the active one, so the last-known snapshot must not move.
type Codec struct {
	adapter substrate.Adapter
	host    session.Host
	logger  *slog.Logger
}

// NewCodec creates an import codec. The host supplies the URL-to-document-ID
// extraction rule; URLs outside its namespace are skipped.
func NewCodec(adapter substrate.Adapter, host session.Host, logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{adapter: adapter, host: host, logger: logger}
}

// Import validates raw as a payload and merges it.
// Payload-level failures return Success=false with no effects.
func (c *Codec) Import(ctx context.Context, raw []byte) ImportResult {
	if ferr := validatePayload(raw); ferr != nil {
		return ImportResult{Success: false, Message: ferr.Error()}
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// validatePayload already parsed the JSON; this guards type drift
		// between the schema and the Go struct.
		return ImportResult{Success: false, Message: newFormatError("payload does not match schema: %v", err).Error()}
	}

	return c.ImportPayload(ctx, payload)
}

// ImportPayload merges an already-validated payload.
//
// Per entry: no URL means skip; a URL outside the host's namespace means
// skip; storage failures mean skip. A document already carrying the label is
// left alone and not counted. Only appended-and-persisted labels count.
func (c *Codec) ImportPayload(ctx context.Context, payload Payload) ImportResult {
	imported := 0
	for _, doc := range payload.Documents {
		if doc.URL == "" {
			continue
		}
		docID, ok := c.host.ExtractDocumentID(doc.URL)
		if !ok {
			c.logger.Debug("skipping document outside namespace", "url", doc.URL)
			continue
		}

		key := record.Key(docID)
		raw, present, err := c.adapter.Get(ctx, key)
		if err != nil {
			c.logger.Warn("skipping unreadable record during import", "key", key, "error", err)
			continue
		}
		rec, derr := record.Decode(raw, present)
		if derr != nil {
			c.logger.Warn("malformed record during import, treating as empty", "key", key, "error", derr)
		}

		if rec.HasLabel(payload.Label) {
			continue
		}

		// Lazily created records take their display metadata from the
		// payload entry; existing records keep their own.
		if !present {
			if doc.Title != "" {
				rec.Title = doc.Title
			}
			rec.URL = doc.URL
		}
		rec.Labels = append(rec.Labels, payload.Label)

		encoded, err := record.Encode(rec)
		if err != nil {
			c.logger.Warn("skipping unencodable record during import", "key", key, "error", err)
			continue
		}
		if err := c.adapter.Set(ctx, key, encoded); err != nil {
			c.logger.Warn("skipping failed write during import", "key", key, "error", err)
			continue
		}
		imported++
	}

	return ImportResult{
		Success:       true,
		Message:       fmt.Sprintf("Imported label %q to %d document(s).", payload.Label, imported),
		ImportedCount: imported,
	}
}
