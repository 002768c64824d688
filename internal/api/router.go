// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/homepage-api/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil middleware config uses the defaults.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi builds the HTTP handler.
//
// Middleware order:
//  1. RequestID (assigns X-Request-ID and seeds the logging context)
//  2. RealIP (so rate limiting keys on the client, not the proxy)
//  3. Recoverer
//  4. CORS
//
// Every /api route additionally passes through security headers, the per-IP
// rate limiter and Prometheus instrumentation.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	h := router.handler
	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", h.Health)
		r.Get("/bom/weather", h.Weather)
		r.Get("/transport/departures/{stopID}", h.Departures)

		r.Route("/traffic", func(r chi.Router) {
			r.Get("/route", h.TrafficRoute)
			r.Get("/routes/active", h.ActiveRoutes)
			r.Get("/routes/active/conditions", h.ActiveRouteConditions)
		})

		r.Get("/homeassistant/locations", h.HomeAssistantLocations)
		r.Get("/system/services", h.SystemServices)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
