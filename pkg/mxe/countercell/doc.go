// Package countercell is a caller-side home for the confession counter.
//
// The confession engine increments a cluster-bound counter ciphertext but
// leaves persistence and serialization to its caller. A Cell provides both:
// each Submit is one Store.Update, which reads the current counter
// ciphertext, runs confession.Engine.SubmitCounted and writes the result as a
// single atomic step. Concurrent Submit calls therefore observe distinct,
// consecutive identifiers, also across cells that share a database.
//
// Stores hold only the CBOR-encoded counter ciphertext. Three are provided:
//
//   - NewMemoryStore: process-local, for tests and demos.
//   - OpenSQLite: a single-row table in a WAL-mode SQLite database
//     (modernc.org/sqlite, no cgo).
//   - OpenPebble: a single key in a Pebble LSM store.
//
// SQLite stores may share one database file across processes: Update holds
// the database write lock (BEGIN IMMEDIATE) from read to write. Pebble locks
// its directory, so a Pebble store has a single owner.
package countercell
