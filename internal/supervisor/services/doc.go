// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Package services adapts long-running components to suture.Service so the
// supervisor tree can start, restart and stop them.
//
//   - HTTPServerService: serves the API until the tree shuts down
//   - ConfigWatcherService: hot-reloads the config file
package services
