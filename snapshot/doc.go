// Package snapshot persists vectors in a pebble store.
//
// Each snapshot is written in a single synced batch: the previous
// contents under the same name are range-deleted, every element is
// written under its own key, and a meta record carries the journal
// sequence the snapshot covers. A reader therefore sees either the old
// snapshot or the new one, never a mix.
//
// Key layout:
//
//	idx/<name>              -> empty (name registry)
//	vec/<name>/m            -> meta (seq, length, created)
//	vec/<name>/e/<%020d>    -> encoded element
//
// Snapshot is decoupled from the journal; callers pair Meta.Seq with
// wal.Replay to resume from where the snapshot left off.
package snapshot
