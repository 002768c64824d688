// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/metrics"
)

// Client is the HTTP layer shared by every provider. Each call waits on the
// provider's token bucket, runs inside its breaker and is recorded in metrics.
// Failed calls are never retried.
type Client struct {
	provider   string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *Breaker
}

// NewClient creates a client for one provider.
func NewClient(provider string, cfg config.UpstreamConfig) *Client {
	return NewClientWithBreaker(provider, cfg, DefaultBreakerSettings())
}

// NewClientWithBreaker creates a client with custom breaker settings.
func NewClientWithBreaker(provider string, cfg config.UpstreamConfig, bs BreakerSettings) *Client {
	return &Client{
		provider: provider,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: NewBreaker(provider+"-api", bs),
	}
}

// Provider returns the provider name used in metrics and errors.
func (c *Client) Provider() string {
	return c.provider
}

// BreakerState returns the provider breaker's current state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, header http.Header, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", c.provider, err)
	}

	start := time.Now()
	err := c.breaker.Execute(func() error {
		return c.do(ctx, endpoint, query, header, out)
	})
	metrics.RecordUpstreamRequest(c.provider, time.Since(start), err)
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, query url.Values, header http.Header, out interface{}) error {
	reqURL := endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", c.provider, err)
	}
	req.Header.Set("Accept", "application/json")
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the full URL, which can carry an API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.provider, err)
	}
	return nil
}
