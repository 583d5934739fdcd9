package wal

import "log"

const defaultFileName = "journal.wal"

// Config defines configuration for a journal.
type Config struct {
	Dir string
	// SyncEveryRecord flushes and fsyncs after each Append. Otherwise
	// records are buffered until Sync or Close.
	SyncEveryRecord bool
	Logger          *log.Logger
}

func (c *Config) applyDefaults() {
	if c.Dir == "" {
		c.Dir = "./wal_data"
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
