// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package cache

import "time"

// Loader is the read-through contract handlers depend on.
// *Expiring implements it; tests can substitute a fake.
type Loader[T any] interface {
	// Get returns the fresh value for key, building it with factory when the
	// entry is missing or older than ttl.
	Get(key string, ttl time.Duration, factory func() (T, error)) (T, error)

	// Clear removes all entries.
	Clear()
}

var _ Loader[any] = (*Expiring[any])(nil)
