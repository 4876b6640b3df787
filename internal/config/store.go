package config

import "sync/atomic"

// Store is a set-once holder for the process configuration. The first Set
// wins; later attempts are rejected so the caller can log a warning instead
// of silently replacing live configuration under concurrent readers.
type Store struct {
	cfg atomic.Pointer[Config]
}

// Set installs cfg if no configuration has been installed yet. It reports
// whether the value was stored.
func (s *Store) Set(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	return s.cfg.CompareAndSwap(nil, cfg)
}

// Get returns the installed configuration, or nil before the first Set.
func (s *Store) Get() *Config {
	return s.cfg.Load()
}
