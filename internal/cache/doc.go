// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

/*
Package cache provides a time-bounded, one-entry-per-key cache in front of
expensive factory calls.

# Overview

Upstream handles such as a resolved weather site are costly to build and are
rate limited by their providers. Expiring wraps the construction so that calls
inside the TTL reuse the stored value and the first call after expiry builds a
fresh one:

	sites := cache.NewExpiring[*upstream.WeatherSite]("bom", clock.System{})

	site, err := sites.Get("bom:parramatta", 5*time.Minute, func() (*upstream.WeatherSite, error) {
	    return bom.SearchLocation(ctx, "parramatta")
	})

# Semantics

  - An entry is fresh while now < createdAt+ttl. A stale entry is never returned.
  - A failing factory stores nothing. Any previous entry is left as it was and
    the factory's error is returned to the caller unchanged.
  - Eviction is purely time based. There is no capacity limit and no
    access-count policy.
  - Clear drops every entry. It runs on startup and on configuration reload.

# Concurrency

Callers racing on a missing or stale key share a single factory call through
golang.org/x/sync/singleflight. The stored entry is always one complete result
of one factory call.

The cache never retries or times out a factory. Deadlines belong to the
closure, which normally captures the request context.
*/
package cache
