// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotConfigured is returned when a provider's credentials are missing.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrNoResults is returned when a search or geocode yields nothing.
	ErrNoResults = errors.New("no results")

	// ErrGeocodeFailed wraps any failure to turn an address into coordinates.
	ErrGeocodeFailed = errors.New("could not geocode address")

	// ErrNoRoute is returned when the routing API returns no routes.
	ErrNoRoute = errors.New("no route found")

	// ErrCircuitOpen is returned when a provider's breaker rejects the call.
	ErrCircuitOpen = errors.New("provider temporarily unavailable")
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// clientError reports whether the upstream rejected the request itself, as
// opposed to being unhealthy. 429 counts as unhealthy.
func (e *StatusError) clientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != 429
}

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Uses io.LimitReader to prevent unbounded memory allocation.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
