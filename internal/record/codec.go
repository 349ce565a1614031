package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// storedRecord is the on-substrate object shape. Fields are optional; decode
// applies defaults.
type storedRecord struct {
	Labels []string `json:"labels"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
}

// Decode turns a raw substrate value into a Record.
//
// present=false (key absent) yields the empty record. A bare JSON array is
// the legacy shape and is wrapped with default metadata; the wrapping is
// lossless for the label sequence. A JSON object is read with per-field
// defaults. Anything else degrades to the empty record.
//
// The returned Record is always usable. The error return is a diagnostic for
// the caller to log (degraded decode) - it never accompanies a partial or
// unusable record, and callers must not branch on it.
func Decode(raw string, present bool) (Record, error) {
	if !present {
		return Empty(), nil
	}

	trimmed := strings.TrimSpace(raw)

	// Tagged-union probe: the legacy shape is a bare array, the current shape
	// is an object. Decided here, once.
	if strings.HasPrefix(trimmed, "[") {
		var labels []string
		if err := json.Unmarshal([]byte(trimmed), &labels); err != nil {
			return Empty(), fmt.Errorf("decode legacy record: %w", err)
		}
		if labels == nil {
			labels = []string{}
		}
		return Record{Labels: labels, Title: DefaultTitle, URL: ""}, nil
	}

	var stored storedRecord
	if err := json.Unmarshal([]byte(trimmed), &stored); err != nil {
		return Empty(), fmt.Errorf("decode record: %w", err)
	}

	rec := Record{Labels: stored.Labels, Title: stored.Title, URL: stored.URL}
	if rec.Labels == nil {
		rec.Labels = []string{}
	}
	if rec.Title == "" {
		rec.Title = DefaultTitle
	}
	return rec, nil
}

// Encode serializes a record as canonical JSON.
// Decode(Encode(r)) is the identity on well-formed records.
func Encode(r Record) (string, error) {
	labels := make([]any, len(r.Labels))
	for i, l := range r.Labels {
		labels[i] = l
	}

	data, err := MarshalCanonical(map[string]any{
		"labels": labels,
		"title":  r.Title,
		"url":    r.URL,
	})
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}
