// Package wal implements a write-ahead journal of vector mutations.
// Records are CRC-framed, sequence numbered and replayed in order on
// recovery; a torn tail left by a crash is trimmed on open.
package wal
