// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

/*
Package metrics provides Prometheus metrics for the dashboard backend.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Upstream providers:
  - upstream_requests_total{provider, result}
  - upstream_request_duration_seconds{provider}

Cache:
  - cache_hits_total{cache}
  - cache_misses_total{cache}
  - cache_factory_failures_total{cache}
  - cache_entries{cache}

Circuit breakers:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Routes and configuration:
  - traffic_routes_configured
  - traffic_routes_active
  - config_reloads_total{result}

The endpoint label uses the chi route pattern (for example
/api/transport/departures/{stopID}) so that path parameters do not create
unbounded label cardinality.
*/
package metrics
