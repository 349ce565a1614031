// Package substrate provides the SQLite-backed key-value substrate shared by
// every label session on the same machine.
//
// The substrate is deliberately thin: Get, Set, and KeysWithPrefix over a
// single entries table. It performs no caching - every call reflects the
// database's current value - and it is the engine's only side-effecting
// boundary to persistent state. Higher layers (labels, index, share, watch)
// reach it exclusively through the Adapter interface.
//
// # Sharing Model
//
// The database file is opened by independent processes (the "other windows"
// of the same document). WAL mode allows concurrent readers while one writer
// proceeds. The substrate provides no cross-process coordination beyond that:
// two sessions writing the same key race, and the last Set wins. Divergence
// is reconciled best-effort by the watch package, not arbitrated here.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforced even though the schema is a single table
package substrate
