// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/homepage-api/internal/config"
)

// EntityState is one element of Home Assistant's /api/states response.
type EntityState struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastUpdated string                 `json:"last_updated"`
}

// Person is a person.* entity reduced to what the dashboard shows.
type Person struct {
	Name        *string  `json:"name"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	LastUpdated string   `json:"last_updated"`
}

// HomeAssistantClient reads entity states from the Home Assistant REST API.
type HomeAssistantClient struct {
	client  *Client
	baseURL string
	token   string
}

// NewHomeAssistantClient creates a Home Assistant client.
func NewHomeAssistantClient(cfg config.HomeAssistantConfig, up config.UpstreamConfig) *HomeAssistantClient {
	return &HomeAssistantClient{
		client:  NewClient("homeassistant", up),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
	}
}

// Configured reports whether a long-lived access token is set.
func (h *HomeAssistantClient) Configured() bool {
	return h.token != ""
}

// Client exposes the shared HTTP client.
func (h *HomeAssistantClient) Client() *Client {
	return h.client
}

// States returns every entity state.
func (h *HomeAssistantClient) States(ctx context.Context) ([]EntityState, error) {
	if !h.Configured() {
		return nil, fmt.Errorf("home assistant: %w", ErrNotConfigured)
	}

	header := http.Header{
		"Authorization": {"Bearer " + h.token},
		"Content-Type":  {"application/json"},
	}

	var states []EntityState
	if err := h.client.GetJSON(ctx, h.baseURL+"/api/states", nil, header, &states); err != nil {
		return nil, fmt.Errorf("failed to fetch Home Assistant states: %w", err)
	}
	return states, nil
}

// Persons keeps person.* entities in their original order.
func Persons(states []EntityState) []Person {
	persons := make([]Person, 0)
	for _, s := range states {
		if !strings.HasPrefix(s.EntityID, "person.") {
			continue
		}
		persons = append(persons, Person{
			Name:        stringAttr(s.Attributes, "friendly_name"),
			Location:    s.State,
			Latitude:    floatAttr(s.Attributes, "latitude"),
			Longitude:   floatAttr(s.Attributes, "longitude"),
			LastUpdated: s.LastUpdated,
		})
	}
	return persons
}

func stringAttr(attrs map[string]interface{}, key string) *string {
	if v, ok := attrs[key].(string); ok {
		return &v
	}
	return nil
}

func floatAttr(attrs map[string]interface{}, key string) *float64 {
	if v, ok := attrs[key].(float64); ok {
		return &v
	}
	return nil
}
