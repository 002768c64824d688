// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"net/http"

	"github.com/tomtom215/homepage-api/internal/cache"
	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/hoststatus"
	"github.com/tomtom215/homepage-api/internal/routes"
	"github.com/tomtom215/homepage-api/internal/upstream"
)

// Dependencies are the collaborators a Handler serves requests from.
type Dependencies struct {
	Store         *config.Store
	Clock         clock.Clock
	Routes        *routes.Registry
	WeatherSites  cache.Loader[*upstream.WeatherSite]
	Weather       *upstream.BOMClient
	Transport     *upstream.TransportClient
	Traffic       *upstream.TomTomClient
	HomeAssistant *upstream.HomeAssistantClient
	Services      *hoststatus.Checker
}

// Handler serves the dashboard endpoints.
type Handler struct {
	store         *config.Store
	clock         clock.Clock
	routes        *routes.Registry
	weatherSites  cache.Loader[*upstream.WeatherSite]
	weather       *upstream.BOMClient
	transport     *upstream.TransportClient
	traffic       *upstream.TomTomClient
	homeAssistant *upstream.HomeAssistantClient
	services      *hoststatus.Checker
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		store:         deps.Store,
		clock:         deps.Clock,
		routes:        deps.Routes,
		weatherSites:  deps.WeatherSites,
		weather:       deps.Weather,
		transport:     deps.Transport,
		traffic:       deps.Traffic,
		homeAssistant: deps.HomeAssistant,
		services:      deps.Services,
	}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// Health reports liveness and which credentialed providers are configured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: timestamp(h.clock.Now()),
		Services: map[string]string{
			"transport_nsw":  configuredLabel(h.transport.Configured()),
			"home_assistant": configuredLabel(h.homeAssistant.Configured()),
			"tomtom":         configuredLabel(h.traffic.Configured()),
		},
	})
}
