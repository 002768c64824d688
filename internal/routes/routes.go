// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Package routes enumerates configured traffic routes and filters them by
// their weekly schedule.
//
// Routes are numbered from 1 and read on every call, so configuration reloads
// take effect without a restart. Each route is described by four keys:
//
//	traffic.routes.1.name         (TRAFFIC_ROUTE_1_NAME)
//	traffic.routes.1.origin       (TRAFFIC_ROUTE_1_ORIGIN)
//	traffic.routes.1.destination  (TRAFFIC_ROUTE_1_DESTINATION)
//	traffic.routes.1.schedule     (TRAFFIC_ROUTE_1_SCHEDULE)
//
// Enumeration stops at the first ordinal without a name. A gap in the
// numbering therefore hides every later route.
package routes

import (
	"fmt"
	"time"

	"github.com/tomtom215/homepage-api/internal/metrics"
	"github.com/tomtom215/homepage-api/internal/schedule"
)

// Route field names used in configuration keys.
const (
	FieldName        = "name"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldSchedule    = "schedule"
)

// Route is one configured origin/destination pair.
type Route struct {
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	RouteNum    int    `json:"route_num"`
	Schedule    string `json:"schedule"`
}

// Lookup reads a single configuration value. ok is false when the key is not
// set at all, which is different from a key set to "".
type Lookup interface {
	Lookup(key string) (value string, ok bool, err error)
}

// Key returns the configuration key for field of route n.
func Key(n int, field string) string {
	return fmt.Sprintf("traffic.routes.%d.%s", n, field)
}

// Registry lists routes from a configuration source.
type Registry struct {
	source Lookup
}

// NewRegistry creates a Registry reading from source.
func NewRegistry(source Lookup) *Registry {
	return &Registry{source: source}
}

// ListAll returns every configured route in ordinal order.
func (r *Registry) ListAll() ([]Route, error) {
	var all []Route
	for n := 1; ; n++ {
		route, ok, err := r.load(n)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, route)
	}
}

// ListActive returns the routes whose schedule is open at now, in ordinal
// order. A configuration error aborts the listing.
func (r *Registry) ListActive(now time.Time) ([]Route, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}

	active := make([]Route, 0, len(all))
	for _, route := range all {
		if schedule.IsActive(route.Schedule, now) {
			active = append(active, route)
		}
	}

	metrics.ConfiguredRoutes.Set(float64(len(all)))
	metrics.ActiveRoutes.Set(float64(len(active)))
	return active, nil
}

// load reads route n. ok is false when the route has no name.
func (r *Registry) load(n int) (Route, bool, error) {
	name, ok, err := r.get(n, FieldName)
	if err != nil {
		return Route{}, false, err
	}
	if !ok || name == "" {
		return Route{}, false, nil
	}

	origin, _, err := r.get(n, FieldOrigin)
	if err != nil {
		return Route{}, false, err
	}
	destination, _, err := r.get(n, FieldDestination)
	if err != nil {
		return Route{}, false, err
	}
	sched, ok, err := r.get(n, FieldSchedule)
	if err != nil {
		return Route{}, false, err
	}
	if !ok {
		sched = schedule.AllDay
	}

	return Route{
		Name:        name,
		Origin:      origin,
		Destination: destination,
		RouteNum:    n,
		Schedule:    sched,
	}, true, nil
}

func (r *Registry) get(n int, field string) (string, bool, error) {
	key := Key(n, field)
	v, ok, err := r.source.Lookup(key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, ok, nil
}
