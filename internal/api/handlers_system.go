// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"net/http"

	"github.com/tomtom215/homepage-api/internal/hoststatus"
	"github.com/tomtom215/homepage-api/internal/upstream"
)

type personsResponse struct {
	Persons []upstream.Person `json:"persons"`
}

type servicesResponse struct {
	Services []hoststatus.ServiceStatus `json:"services"`
}

// HomeAssistantLocations returns the location of every person.* entity.
func (h *Handler) HomeAssistantLocations(w http.ResponseWriter, r *http.Request) {
	if !h.homeAssistant.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, "Home Assistant not configured", nil)
		return
	}

	states, err := h.homeAssistant.States(r.Context())
	if err != nil {
		respondError(w, r, statusForError(err), err.Error(), err)
		return
	}

	respondJSON(w, http.StatusOK, personsResponse{Persons: upstream.Persons(states)})
}

// SystemServices reports the state of each configured host service unit.
func (h *Handler) SystemServices(w http.ResponseWriter, r *http.Request) {
	units := h.store.Config().System.Units
	respondJSON(w, http.StatusOK, servicesResponse{Services: h.services.Check(r.Context(), units)})
}
