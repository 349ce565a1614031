// Package session holds the per-caller state of the label engine.
//
// The engine keeps no process-wide mutable state. Everything that used to be
// ambient - which document is active, what label sequence was last read from
// the substrate - lives in a Session value the caller owns for its lifetime
// and passes into engine constructors.
//
// The Host interface is the collaborator contract with the embedding
// application: it supplies the active document's identity and display
// metadata, and the URL-to-document-ID extraction rule used during imports.
// The engine never implements a host itself; URLHost is the path-based
// implementation the CLI uses, StaticHost is a test double.
package session
