// Package record defines the persisted label record and its codec.
//
// One record is stored per document under the key "labelstore-<docID>". The
// current shape is a JSON object {labels, title, url}; a legacy shape (a bare
// JSON array of labels) is still accepted on read. The legacy-vs-current
// decision is made exactly once, at decode time, and normalized into Record -
// nothing downstream re-checks the stored shape.
//
// Decode never fails in a way the caller must branch on: malformed stored
// data degrades to the empty record, with a diagnostic error the caller logs.
// Encode produces canonical JSON (sorted keys, NFC-normalized strings, no
// HTML escaping), so Encode followed by Decode is the identity on well-formed
// records and byte-identical encodings imply equal records.
package record
