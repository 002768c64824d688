// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/homepage-api/internal/upstream"
)

// weatherCacheKeyPrefix namespaces weather site handles in the cache.
const weatherCacheKeyPrefix = "bom:"

type weatherResponse struct {
	Location       upstream.Location     `json:"location"`
	Observations   upstream.Record       `json:"observations"`
	ForecastDaily  []upstream.Record     `json:"forecast_daily"`
	ForecastHourly []upstream.Record     `json:"forecast_hourly"`
	ForecastRain   upstream.RainForecast `json:"forecast_rain"`
	Updated        string                `json:"updated"`
}

// Weather returns observations and forecasts for the configured BOM location.
// The resolved site handle is cached; the weather itself is fetched per request.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.Config().Weather
	location := cfg.Location

	// The lookup is shared by concurrent callers, so it must not be cut
	// short by one of them disconnecting.
	lookupCtx := context.WithoutCancel(r.Context())
	site, err := h.weatherSites.Get(weatherCacheKeyPrefix+location, cfg.CacheTTL, func() (*upstream.WeatherSite, error) {
		return h.weather.SearchLocation(lookupCtx, location)
	})
	if err != nil {
		respondError(w, r, statusForError(err), "Failed to fetch BOM data: "+err.Error(), err)
		return
	}

	resp := weatherResponse{Location: site.Location()}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		obs, err := site.Observations(ctx)
		resp.Observations = obs
		return err
	})
	g.Go(func() error {
		daily, err := site.DailyForecasts(ctx)
		resp.ForecastDaily = daily
		return err
	})
	g.Go(func() error {
		hourly, err := site.HourlyForecasts(ctx)
		resp.ForecastHourly = hourly
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, statusForError(err), "Failed to fetch BOM data: "+err.Error(), err)
		return
	}

	resp.ForecastRain = upstream.RainFromDaily(resp.ForecastDaily)
	resp.Updated = timestamp(h.clock.Now())

	respondJSON(w, http.StatusOK, resp)
}
