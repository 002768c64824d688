// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

/*
Package main is the entry point for the Homepage API server.

The server backs a home dashboard with Bureau of Meteorology weather,
Transport NSW departures, TomTom traffic for scheduled commute routes,
Home Assistant person locations and host service status.

Component initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Clock: wall clock in the configured timezone (schedule evaluation)
 4. Upstream clients: rate limited, circuit-broken HTTP clients per provider
 5. HTTP Server: Chi router with middleware stack
 6. Supervisor Tree: Suture v4 running the HTTP server and the config watcher

Configuration:

	HTTP_PORT                  listen port (default 5000)
	BOM_LOCATION               weather search term (default parramatta)
	TRANSPORT_NSW_API_KEY      enables /api/transport
	TOMTOM_API_KEY             enables /api/traffic
	HOMEASSISTANT_URL          Home Assistant base URL (a path prefix is allowed)
	HOMEASSISTANT_TOKEN        enables /api/homeassistant
	SYSTEM_SERVICE_UNITS       comma separated units for /api/system/services
	TRAFFIC_ROUTE_<n>_NAME     route name (numbering starts at 1)
	TRAFFIC_ROUTE_<n>_ORIGIN   route origin address
	TRAFFIC_ROUTE_<n>_DESTINATION
	TRAFFIC_ROUTE_<n>_SCHEDULE e.g. "Mon-Fri 07:00-09:00" (default every day)
	CONFIG_PATH                YAML config file, watched for changes

Graceful shutdown on SIGINT/SIGTERM drains in-flight requests for up to 10
seconds.
*/
package main
