package record

import "strings"

const (
	// KeyPrefix distinguishes this engine's substrate entries from unrelated
	// keys written by other features sharing the same database.
	KeyPrefix = "labelstore-"

	// DefaultTitle is used when a stored record carries no title.
	DefaultTitle = "Untitled"
)

// Record is the persisted state for one document: its ordered label sequence
// plus display metadata. Label order is meaningful and user-controlled;
// duplicates are permitted.
type Record struct {
	Labels []string `json:"labels"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
}

// Empty returns the record used for unseen documents and degraded decodes.
func Empty() Record {
	return Record{Labels: []string{}, Title: DefaultTitle}
}

// HasLabel reports whether name is an exact element of the label sequence.
// Case-sensitive, no normalization.
func (r Record) HasLabel(name string) bool {
	for _, l := range r.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Clone returns a copy whose label slice does not alias r's.
func (r Record) Clone() Record {
	out := r
	out.Labels = append([]string(nil), r.Labels...)
	if out.Labels == nil {
		out.Labels = []string{}
	}
	return out
}

// Key maps a document ID to its substrate key.
func Key(docID string) string {
	return KeyPrefix + docID
}

// DocIDFromKey is the inverse of Key. Returns ok=false for keys outside the
// engine's prefix.
func DocIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	return key[len(KeyPrefix):], true
}
