// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/homepage-api/internal/logging"
	"github.com/tomtom215/homepage-api/internal/metrics"
)

// ErrNoConfigFile is returned by Watch when the store was loaded without a config file.
var ErrNoConfigFile = errors.New("no config file to watch")

// Store holds the live configuration. Reads are safe while a reload swaps
// in a new tree.
type Store struct {
	path string

	mu       sync.RWMutex
	k        *koanf.Koanf
	cfg      *Config
	onReload []func(*Config)
}

// NewStore loads configuration from the discovered config file (if any) and
// the environment.
func NewStore() (*Store, error) {
	return NewStoreFromFile(findConfigFile())
}

// NewStoreFromFile loads configuration with path as the file layer.
// An empty path loads defaults and environment only.
func NewStoreFromFile(path string) (*Store, error) {
	k, cfg, err := loadKoanf(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, k: k, cfg: cfg}, nil
}

// Path returns the config file backing the store, or "" if none.
func (s *Store) Path() string {
	return s.path
}

// Config returns the current validated configuration snapshot.
// Callers must not mutate it.
func (s *Store) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Lookup returns the raw value at a dotted key such as "traffic.routes.1.name".
// A key that is set to the empty string is reported as present.
func (s *Store) Lookup(key string) (string, bool, error) {
	s.mu.RLock()
	v := s.k.Get(key)
	s.mu.RUnlock()

	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, true, nil
	case map[string]interface{}, []interface{}:
		return "", false, fmt.Errorf("config key %s is not a scalar value", key)
	default:
		return fmt.Sprint(val), true, nil
	}
}

// OnReload registers fn to run after every successful reload.
func (s *Store) OnReload(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Reload re-reads every layer. On failure the previous configuration stays live.
func (s *Store) Reload() error {
	k, cfg, err := loadKoanf(s.path)
	metrics.RecordConfigReload(err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.k = k
	s.cfg = cfg
	callbacks := make([]func(*Config), len(s.onReload))
	copy(callbacks, s.onReload)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

// Watch reloads the store whenever its config file changes and blocks until
// ctx is cancelled. It returns ErrNoConfigFile when there is nothing to watch.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return ErrNoConfigFile
	}

	logger := logging.WithComponent("config")
	provider, err := WatchConfigFile(s.path, func(err error) {
		if err != nil {
			logger.Warn().Err(err).Str("path", s.path).Msg("Config watcher error")
			return
		}
		if err := s.Reload(); err != nil {
			logger.Error().Err(err).Str("path", s.path).Msg("Config reload failed, keeping previous configuration")
			return
		}
		logger.Info().Str("path", s.path).Msg("Configuration reloaded")
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	if err := provider.Unwatch(); err != nil {
		logger.Debug().Err(err).Msg("Failed to stop config watcher")
	}
	return ctx.Err()
}
