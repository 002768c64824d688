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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/homepage-api/internal/config"
)

const statesJSON = `[
  {"entity_id": "person.alex", "state": "home",
   "attributes": {"friendly_name": "Alex", "latitude": -33.81, "longitude": 151.0},
   "last_updated": "2025-10-27T05:00:00+00:00"},
  {"entity_id": "light.kitchen", "state": "on", "attributes": {}, "last_updated": "2025-10-27T05:01:00+00:00"},
  {"entity_id": "person.sam", "state": "not_home", "attributes": {},
   "last_updated": "2025-10-27T04:00:00+00:00"}
]`

func TestHomeAssistantStates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/states", r.URL.Path)
		assert.Equal(t, "Bearer ha-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(statesJSON))
	}))
	defer server.Close()

	client := NewHomeAssistantClient(config.HomeAssistantConfig{URL: server.URL + "/", Token: "ha-token"}, testUpstream())
	states, err := client.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 3)

	persons := Persons(states)
	require.Len(t, persons, 2)

	alex := persons[0]
	require.NotNil(t, alex.Name)
	assert.Equal(t, "Alex", *alex.Name)
	assert.Equal(t, "home", alex.Location)
	require.NotNil(t, alex.Latitude)
	assert.InDelta(t, -33.81, *alex.Latitude, 1e-9)
	assert.Equal(t, "2025-10-27T05:00:00+00:00", alex.LastUpdated)

	sam := persons[1]
	assert.Nil(t, sam.Name)
	assert.Nil(t, sam.Latitude)
	assert.Nil(t, sam.Longitude)
	assert.Equal(t, "not_home", sam.Location)
}

func TestHomeAssistantNotConfigured(t *testing.T) {
	t.Parallel()

	client := NewHomeAssistantClient(config.HomeAssistantConfig{URL: "http://homeassistant:8123"}, testUpstream())
	_, err := client.States(context.Background())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestPersonsEmpty(t *testing.T) {
	t.Parallel()

	persons := Persons(nil)
	assert.NotNil(t, persons)
	assert.Empty(t, persons)
}
