// Package games persists the cached game catalog.
//
// Records are keyed by their normalized primary key. Writes are upserts with
// last-write-wins semantics; rows are never deleted. List-typed attributes
// are stored as JSON arrays and always read back as non-nil slices.
//
// Read order is the table's insertion order (rowid), which upserts preserve,
// so repeated syncs of an unchanged catalog leave the cache identical.
package games
