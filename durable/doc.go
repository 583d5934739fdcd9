// Package durable keeps a vector recoverable across restarts.
//
// A durable Vector pairs an in-memory vector.Vector with a pebble
// snapshot store and a write-ahead journal. Every mutation is applied in
// memory, then journaled; Checkpoint writes a snapshot at the current journal
// sequence and drops the journal up to it. Open loads the latest
// snapshot and replays the journal records that follow it.
//
// On-disk layout under Config.Dir:
//
//	snapshots/     pebble store shared by every name (package snapshot)
//	wal/<name>/    journal of one name (package wal)
//
// A durable Vector is single-writer and NOT safe for concurrent use.
package durable
