// Package share converts a label's document set to a portable payload and
// merges incoming payloads back into the substrate.
//
// Export is a snapshot, not a live reference: it captures title and URL per
// document in scan order and nothing else. Import is an additive merge - a
// document gains the payload's label only if it does not already carry it;
// existing labels are never removed or reordered.
//
// Payloads are validated against an embedded CUE schema before any effect.
// Payload-level failures (unparseable JSON, schema violations) abort the
// whole import with no partial effects; per-document failures inside the
// merge loop are logged and skipped, never aborting the remaining entries.
package share
