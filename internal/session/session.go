package session

import "errors"

// Host supplies the document context the engine cannot compute itself.
//
// CurrentDocumentID reports ok=false when no document is active; engine
// operations that need one cannot be constructed in that case.
// ExtractDocumentID applies the host's namespace rule to an arbitrary URL and
// reports ok=false when the URL does not belong to the host's documents.
type Host interface {
	CurrentDocumentID() (string, bool)
	CurrentDocumentTitle() string
	CurrentDocumentURL() string
	ExtractDocumentID(rawURL string) (string, bool)
}

// Session is one caller's working context: the active document plus the
// last-known label snapshot used for divergence checks.
//
// Sessions are not safe for concurrent use. The engine is single-threaded by
// design; a caller wanting two documents open holds two sessions.
type Session struct {
	// Token identifies this session in diagnostics. Time-sortable (UUIDv7)
	// in production so interleaved logs from multiple sessions read in
	// creation order.
	Token string

	// Host is the collaborator that owns document identity.
	Host Host

	// DocID is the active document, fixed at session creation.
	DocID string

	lastKnown []string
}

// New creates a session for the host's active document.
// Fails when the host reports no active document.
func New(host Host, gen TokenGenerator) (*Session, error) {
	docID, ok := host.CurrentDocumentID()
	if !ok {
		return nil, errors.New("host has no active document")
	}
	return &Session{
		Token:     gen.Generate(),
		Host:      host,
		DocID:     docID,
		lastKnown: []string{},
	}, nil
}

// LastKnown returns a copy of the last label sequence read from or written
// to the substrate for the active document.
func (s *Session) LastKnown() []string {
	return append([]string{}, s.lastKnown...)
}

// SetLastKnown replaces the snapshot. The slice is copied; later mutation of
// the argument does not leak into the session.
func (s *Session) SetLastKnown(labels []string) {
	s.lastKnown = append([]string{}, labels...)
}
