// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

/*
Package api provides the HTTP surface of the dashboard backend.

Endpoints (all GET):

	/api/health                             provider configuration summary
	/api/bom/weather                        BOM observations and forecasts
	/api/transport/departures/{stopID}      next Transport NSW departures
	/api/traffic/route?origin=&destination= TomTom travel time between two addresses
	/api/traffic/routes/active              configured routes whose schedule is active now
	/api/traffic/routes/active/conditions   traffic for every active route
	/api/homeassistant/locations            person.* entity locations
	/api/system/services                    host service unit states
	/metrics                                Prometheus exposition

Errors are returned as {"error": "<message>"}. Status codes follow the error
kind: a provider without credentials or behind an open circuit breaker is 503,
a missing parameter or an address that cannot be geocoded is 400, an
unroutable pair is 404 and anything else is 500.

Usage:

	handler := api.NewHandler(api.Dependencies{...})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	srv := &http.Server{Handler: router.SetupChi()}
*/
package api
