// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/homepage-api/internal/config"
)

// testUpstream has a generous rate so the limiter never delays tests.
func testUpstream() config.UpstreamConfig {
	return config.UpstreamConfig{
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             100,
	}
}

func TestGetJSONDecodesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "bar", r.URL.Query().Get("foo"))
		assert.Equal(t, "token", r.Header.Get("X-Test"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok","count":3}`))
	}))
	defer server.Close()

	c := NewClient("test", testUpstream())
	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := c.GetJSON(context.Background(), server.URL, url.Values{"foo": {"bar"}}, http.Header{"X-Test": {"token"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestGetJSONStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("test", testUpstream())
	err := c.GetJSON(context.Background(), server.URL, nil, nil, &struct{}{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "upstream exploded")
	assert.Contains(t, err.Error(), "test request failed with status 502")
}

func TestGetJSONMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	c := NewClient("test", testUpstream())
	err := c.GetJSON(context.Background(), server.URL, nil, nil, &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode test response")
}

func TestGetJSONDoesNotLeakQueryOnTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	c := NewClient("test", testUpstream())
	err := c.GetJSON(context.Background(), endpoint, url.Values{"key": {"super-secret"}}, nil, &struct{}{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestReadBodyForErrorTruncates(t *testing.T) {
	t.Parallel()

	body := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize+10)))
	assert.True(t, strings.HasSuffix(string(body), "... (truncated)"))

	short := readBodyForError(strings.NewReader("short"))
	assert.Equal(t, "short", string(short))
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClientWithBreaker("breaker-trip", testUpstream(), DefaultBreakerSettings())
	for i := 0; i < 10; i++ {
		err := c.GetJSON(context.Background(), server.URL, nil, nil, &struct{}{})
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCircuitOpen))
	}
	assert.Equal(t, "open", c.BreakerState())

	err := c.GetJSON(context.Background(), server.URL, nil, nil, &struct{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, int32(10), hits.Load(), "open breaker must not reach the server")
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	settings := DefaultBreakerSettings()
	settings.MinRequests = 1
	c := NewClientWithBreaker("breaker-4xx", testUpstream(), settings)

	for i := 0; i < 5; i++ {
		err := c.GetJSON(context.Background(), server.URL, nil, nil, &struct{}{})
		require.Error(t, err)
	}
	assert.Equal(t, "closed", c.BreakerState())
}

func TestGetJSONHonoursContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("test", testUpstream())
	err := c.GetJSON(ctx, server.URL, nil, nil, &struct{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
