// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package services

import (
	"context"
	"errors"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/logging"
)

// ConfigWatcher is satisfied by *config.Store.
type ConfigWatcher interface {
	Watch(ctx context.Context) error
}

var _ ConfigWatcher = (*config.Store)(nil)

// ConfigWatcherService reloads configuration whenever the config file changes.
// Running without a config file is not a failure: the service asks suture not
// to restart it.
type ConfigWatcherService struct {
	watcher ConfigWatcher
	name    string
}

// NewConfigWatcherService creates a watcher service for store.
func NewConfigWatcherService(watcher ConfigWatcher) *ConfigWatcherService {
	return &ConfigWatcherService{
		watcher: watcher,
		name:    "config-watcher",
	}
}

// Serve implements suture.Service.
func (c *ConfigWatcherService) Serve(ctx context.Context) error {
	err := c.watcher.Watch(ctx)
	if errors.Is(err, config.ErrNoConfigFile) {
		logger := logging.WithComponent(c.name)
		logger.Info().Msg("No config file loaded, hot reload disabled")
		return suture.ErrDoNotRestart
	}
	return err
}

// String implements fmt.Stringer.
func (c *ConfigWatcherService) String() string {
	return c.name
}
