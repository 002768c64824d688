// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/homepage-api/internal/upstream"
)

type departuresResponse struct {
	StopID     string               `json:"stopId"`
	Departures []upstream.Departure `json:"departures"`
	Updated    string               `json:"updated"`
}

// Departures returns the next departures from a Transport NSW stop.
func (h *Handler) Departures(w http.ResponseWriter, r *http.Request) {
	if !h.transport.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, "Transport NSW API key not configured", nil)
		return
	}

	stopID := chi.URLParam(r, "stopID")
	events, err := h.transport.Departures(r.Context(), stopID)
	if err != nil {
		respondError(w, r, statusForError(err), "Transport API error: "+err.Error(), err)
		return
	}

	limit := h.store.Config().Transport.DepartureLimit
	if len(events) > limit {
		events = events[:limit]
	}

	departures := make([]upstream.Departure, 0, len(events))
	for _, e := range events {
		departures = append(departures, e.Departure())
	}

	respondJSON(w, http.StatusOK, departuresResponse{
		StopID:     stopID,
		Departures: departures,
		Updated:    timestamp(h.clock.Now()),
	})
}
