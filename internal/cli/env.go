package cli

import (
	"log/slog"
	"os"

	"github.com/roach88/labelstore/internal/index"
	"github.com/roach88/labelstore/internal/labels"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/share"
	"github.com/roach88/labelstore/internal/substrate"
	"github.com/roach88/labelstore/internal/watch"
)

// env bundles the wired engine components for one CLI invocation.
// Commands open it, use what they need, and Close it.
type env struct {
	db     *substrate.DB
	host   *session.URLHost
	logger *slog.Logger
}

// openEnv wires the substrate and host from flags. A session is not created
// here: find, export and import work without an active document.
func openEnv(opts *RootOptions) (*env, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	host, err := session.NewURLHost(opts.Base, opts.Doc, opts.Title)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid --base", err)
	}

	db, err := substrate.Open(opts.DBPath, substrate.WithLogger(logger))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot open substrate", err)
	}

	return &env{db: db, host: host, logger: logger}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// requireSession creates the session for the active document.
// Mutating commands and the watch loop need one; it fails without --doc.
func (e *env) requireSession() (*session.Session, error) {
	sess, err := session.New(e.host, session.UUIDv7Generator{})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "no active document (set --doc to a URL under --base)", err)
	}
	return sess, nil
}

func (e *env) labelStore(sess *session.Session) *labels.Store {
	return labels.New(e.db, sess, e.logger)
}

func (e *env) index() *index.Index {
	return index.New(e.db, e.logger)
}

func (e *env) shareCodec() *share.Codec {
	return share.NewCodec(e.db, e.host, e.logger)
}

func (e *env) watcher(sess *session.Session) *watch.Watcher {
	return watch.New(e.db, sess, e.logger)
}

// currentDocID returns the active document ID or "" when none is set.
func (e *env) currentDocID() string {
	id, ok := e.host.CurrentDocumentID()
	if !ok {
		return ""
	}
	return id
}
