// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/homepage-api/internal/routes"
	"github.com/tomtom215/homepage-api/internal/upstream"
	"github.com/tomtom215/homepage-api/internal/validation"
)

// maxConcurrentRouteQueries bounds fan-out when reporting every active route.
const maxConcurrentRouteQueries = 3

// trafficRouteRequest holds the query parameters of /api/traffic/route.
type trafficRouteRequest struct {
	Origin      string `query:"origin" validate:"required"`
	Destination string `query:"destination" validate:"required"`
}

type trafficResponse struct {
	*upstream.TrafficReport
	Updated string `json:"updated"`
}

// routeConditions is one active route with either its traffic report or the
// reason it could not be produced.
type routeConditions struct {
	routes.Route
	Traffic *upstream.TrafficReport `json:"traffic,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

type routeConditionsResponse struct {
	Routes  []routeConditions `json:"routes"`
	Updated string            `json:"updated"`
}

// trafficErrorMessage returns the client-facing message for a traffic error.
func trafficErrorMessage(err error) string {
	switch {
	case errors.Is(err, upstream.ErrNotConfigured):
		return "TomTom API key not configured"
	case errors.Is(err, upstream.ErrGeocodeFailed):
		return "Could not geocode addresses"
	case errors.Is(err, upstream.ErrNoRoute):
		return "No route found"
	default:
		return err.Error()
	}
}

// TrafficRoute reports current driving conditions between two addresses.
func (h *Handler) TrafficRoute(w http.ResponseWriter, r *http.Request) {
	if !h.traffic.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, "TomTom API key not configured", nil)
		return
	}

	req := trafficRouteRequest{
		Origin:      r.URL.Query().Get("origin"),
		Destination: r.URL.Query().Get("destination"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "origin and destination required", verr)
		return
	}

	report, err := h.traffic.Traffic(r.Context(), req.Origin, req.Destination)
	if err != nil {
		respondError(w, r, statusForError(err), trafficErrorMessage(err), err)
		return
	}

	respondJSON(w, http.StatusOK, trafficResponse{
		TrafficReport: report,
		Updated:       timestamp(h.clock.Now()),
	})
}

// ActiveRoutes lists the configured routes whose schedule covers the current time.
func (h *Handler) ActiveRoutes(w http.ResponseWriter, r *http.Request) {
	active, err := h.routes.ListActive(h.clock.Now())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	respondJSON(w, http.StatusOK, active)
}

// ActiveRouteConditions reports traffic for every active route. A failure on
// one route is reported inline and does not fail the others.
func (h *Handler) ActiveRouteConditions(w http.ResponseWriter, r *http.Request) {
	if !h.traffic.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, "TomTom API key not configured", nil)
		return
	}

	now := h.clock.Now()
	active, err := h.routes.ListActive(now)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	results := make([]routeConditions, len(active))
	var g errgroup.Group
	g.SetLimit(maxConcurrentRouteQueries)
	for i, route := range active {
		g.Go(func() error {
			results[i] = routeConditions{Route: route}
			report, err := h.traffic.Traffic(r.Context(), route.Origin, route.Destination)
			if err != nil {
				results[i].Error = trafficErrorMessage(err)
				return nil
			}
			results[i].Traffic = report
			return nil
		})
	}
	_ = g.Wait()

	respondJSON(w, http.StatusOK, routeConditionsResponse{
		Routes:  results,
		Updated: timestamp(now),
	})
}
