package durable

import (
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDir  = "./vector_data"
	DefaultName = "default"
)

// Config defines where and how a durable vector is persisted.
type Config struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
	// SyncEveryRecord fsyncs the journal after every mutation.
	SyncEveryRecord bool `yaml:"sync_every_record"`
	// CheckpointEvery triggers a checkpoint after that many journaled
	// mutations. Zero disables automatic checkpoints.
	CheckpointEvery int         `yaml:"checkpoint_every"`
	Logger          *log.Logger `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Dir:  DefaultDir,
		Name: DefaultName,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Name == "" || c.Name == "." || c.Name == ".." || strings.ContainsAny(c.Name, `/\`) {
		return errors.Newf("durable: invalid name %q", c.Name)
	}
	if c.CheckpointEvery < 0 {
		return errors.Newf("durable: checkpoint_every must be >= 0, got %d", c.CheckpointEvery)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
