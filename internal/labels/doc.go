// Package labels owns the in-memory working copy of one document's ordered
// label list and the operations that mutate and persist it.
//
// The Store is a pure data-mutation API: operations take a record and return
// the new record. Nothing here notifies anyone - refresh notification is the
// watch package's job - so rendering logic never reaches into mutation
// internals.
//
// Persistence is best-effort by policy: a substrate write failure is logged
// and dropped, and the in-memory record remains authoritative for the
// session. The only errors operations propagate are precondition violations
// (stale indices), which are the caller's responsibility to avoid.
package labels
