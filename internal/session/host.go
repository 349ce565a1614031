package session

import (
	"fmt"
	"net/url"
	"strings"
)

// URLHost implements Host for documents addressed as a single path segment
// under a base URL (e.g. base https://notes.example/d/ and document
// https://notes.example/d/abc123, giving document ID "abc123").
type URLHost struct {
	base     *url.URL
	docURL   string
	docTitle string
}

// NewURLHost builds a host for the given namespace.
//
// base must be an absolute URL; its path is treated as a directory (a
// trailing slash is added if missing). docURL identifies the active document
// and may be empty when no document is active (find/export/import only).
func NewURLHost(base, docURL, docTitle string) (*URLHost, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &URLHost{base: u, docURL: docURL, docTitle: docTitle}, nil
}

// CurrentDocumentID extracts the active document's ID from its URL.
func (h *URLHost) CurrentDocumentID() (string, bool) {
	if h.docURL == "" {
		return "", false
	}
	return h.ExtractDocumentID(h.docURL)
}

// CurrentDocumentTitle returns the active document's title.
func (h *URLHost) CurrentDocumentTitle() string {
	return h.docTitle
}

// CurrentDocumentURL returns the active document's URL.
func (h *URLHost) CurrentDocumentURL() string {
	return h.docURL
}

// ExtractDocumentID returns the path segment under the base namespace.
// ok=false for unparseable URLs, URLs on a different origin, URLs outside
// the base path, and URLs nested deeper than one segment.
func (h *URLHost) ExtractDocumentID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if u.Scheme != h.base.Scheme || u.Host != h.base.Host {
		return "", false
	}

	rest, found := strings.CutPrefix(u.Path, h.base.Path)
	if !found {
		return "", false
	}
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// StaticHost is a fixed-value Host for tests.
//
// IDs maps URLs to the document IDs ExtractDocumentID should report;
// unlisted URLs extract as ok=false.
type StaticHost struct {
	ID    string
	Title string
	URL   string
	IDs   map[string]string
}

func (h *StaticHost) CurrentDocumentID() (string, bool) {
	return h.ID, h.ID != ""
}

func (h *StaticHost) CurrentDocumentTitle() string {
	return h.Title
}

func (h *StaticHost) CurrentDocumentURL() string {
	return h.URL
}

func (h *StaticHost) ExtractDocumentID(rawURL string) (string, bool) {
	id, ok := h.IDs[rawURL]
	return id, ok
}
