// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/homepage-api/internal/config"
)

// StopEvent is one entry of the departure monitor's stopEvents array.
type StopEvent struct {
	IsRealtimeControlled   bool   `json:"isRealtimeControlled"`
	DepartureTimePlanned   string `json:"departureTimePlanned"`
	DepartureTimeEstimated string `json:"departureTimeEstimated"`
	Location               struct {
		Properties struct {
			PlatformName *string `json:"platformName"`
		} `json:"properties"`
	} `json:"location"`
	Transportation struct {
		Number      string `json:"number"`
		Destination struct {
			Name string `json:"name"`
		} `json:"destination"`
	} `json:"transportation"`
}

// Departure is the dashboard's view of a stop event.
type Departure struct {
	Time         string  `json:"time"`
	Destination  string  `json:"destination"`
	Line         string  `json:"line"`
	Platform     *string `json:"platform"`
	Realtime     bool    `json:"realtime"`
	DelayMinutes int     `json:"delay_minutes"`
}

// Departure converts the event. The delay is only computed for realtime
// events whose planned and estimated times both parse as RFC 3339.
func (e StopEvent) Departure() Departure {
	return Departure{
		Time:         e.DepartureTimePlanned,
		Destination:  e.Transportation.Destination.Name,
		Line:         e.Transportation.Number,
		Platform:     e.Location.Properties.PlatformName,
		Realtime:     e.IsRealtimeControlled,
		DelayMinutes: e.delayMinutes(),
	}
}

func (e StopEvent) delayMinutes() int {
	if !e.IsRealtimeControlled {
		return 0
	}
	planned, err := time.Parse(time.RFC3339, e.DepartureTimePlanned)
	if err != nil {
		return 0
	}
	estimated, err := time.Parse(time.RFC3339, e.DepartureTimeEstimated)
	if err != nil {
		return 0
	}
	return int(math.Round(estimated.Sub(planned).Minutes()))
}

type departureMonitorResponse struct {
	StopEvents []StopEvent `json:"stopEvents"`
}

// TransportClient reads the Transport NSW trip planner departure monitor.
type TransportClient struct {
	client  *Client
	baseURL string
	apiKey  string
}

// NewTransportClient creates a Transport NSW client.
func NewTransportClient(cfg config.TransportConfig, up config.UpstreamConfig) *TransportClient {
	return &TransportClient{
		client:  NewClient("transport_nsw", up),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Configured reports whether an API key is set.
func (t *TransportClient) Configured() bool {
	return t.apiKey != ""
}

// Client exposes the shared HTTP client.
func (t *TransportClient) Client() *Client {
	return t.client
}

// Departures returns upcoming stop events for a stop ID.
func (t *TransportClient) Departures(ctx context.Context, stopID string) ([]StopEvent, error) {
	if !t.Configured() {
		return nil, fmt.Errorf("transport NSW: %w", ErrNotConfigured)
	}

	q := url.Values{
		"outputFormat":          {"rapidJSON"},
		"coordOutputFormat":     {"EPSG:4326"},
		"mode":                  {"direct"},
		"type_dm":               {"stop"},
		"name_dm":               {stopID},
		"departureMonitorMacro": {"true"},
		"TfNSWDM":               {"true"},
		"version":               {"10.2.1.42"},
	}
	header := http.Header{"Authorization": {"apikey " + t.apiKey}}

	var resp departureMonitorResponse
	if err := t.client.GetJSON(ctx, t.baseURL+"/departure_mon", q, header, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch departures for stop %s: %w", stopID, err)
	}
	return resp.StopEvents, nil
}
