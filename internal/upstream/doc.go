// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

/*
Package upstream provides clients for the external APIs behind the dashboard.

Providers:
  - BOMClient: Bureau of Meteorology locations, observations and forecasts
  - TransportClient: Transport NSW departure monitor
  - TomTomClient: geocoding (cached per address) and traffic-aware routing
  - HomeAssistantClient: entity states for person.* presence

Every provider shares the same request path (Client.GetJSON):
  - a golang.org/x/time/rate token bucket per provider
  - a sony/gobreaker circuit breaker per provider
  - goccy/go-json decoding
  - non-2xx responses returned as *StatusError with the body capped at 64KB
  - upstream_requests_total and upstream_request_duration_seconds metrics

Failed requests are not retried. Callers classify failures with errors.Is
against ErrNotConfigured, ErrNoResults, ErrGeocodeFailed, ErrNoRoute and
ErrCircuitOpen.
*/
package upstream
