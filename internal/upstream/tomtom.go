// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/homepage-api/internal/cache"
	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/config"
)

// Traffic status values.
const (
	StatusHeavy    = "heavy"
	StatusModerate = "moderate"
	StatusClear    = "clear"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the point as "lat,lon", the form the routing API expects.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// RouteSummary is the summary block of the first calculated route.
type RouteSummary struct {
	LengthInMeters        int `json:"lengthInMeters"`
	TravelTimeInSeconds   int `json:"travelTimeInSeconds"`
	TrafficDelayInSeconds int `json:"trafficDelayInSeconds"`
}

// TrafficReport is a route's current driving conditions.
type TrafficReport struct {
	Origin              string  `json:"origin"`
	Destination         string  `json:"destination"`
	TravelTimeMinutes   int     `json:"travelTimeMinutes"`
	TrafficDelayMinutes int     `json:"trafficDelayMinutes"`
	DistanceKm          float64 `json:"distanceKm"`
	Status              string  `json:"status"`
}

type geocodeResponse struct {
	Results []struct {
		Position Coordinates `json:"position"`
	} `json:"results"`
}

type routeResponse struct {
	Routes []struct {
		Summary RouteSummary `json:"summary"`
	} `json:"routes"`
}

// TomTomClient wraps the TomTom search and routing APIs.
type TomTomClient struct {
	client        *Client
	baseURL       string
	apiKey        string
	countrySet    string
	geocodeTTL    time.Duration
	heavyDelay    time.Duration
	moderateDelay time.Duration
	geocodes      *cache.Expiring[Coordinates]
}

// NewTomTomClient creates a TomTom client. Geocode results are cached per
// address on clk.
func NewTomTomClient(cfg config.TrafficConfig, up config.UpstreamConfig, clk clock.Clock) *TomTomClient {
	return &TomTomClient{
		client:        NewClient("tomtom", up),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		countrySet:    cfg.CountrySet,
		geocodeTTL:    cfg.GeocodeCacheTTL,
		heavyDelay:    cfg.HeavyDelay,
		moderateDelay: cfg.ModerateDelay,
		geocodes:      cache.NewExpiring[Coordinates]("tomtom_geocode", clk),
	}
}

// Configured reports whether an API key is set.
func (t *TomTomClient) Configured() bool {
	return t.apiKey != ""
}

// Client exposes the shared HTTP client.
func (t *TomTomClient) Client() *Client {
	return t.client
}

// GeocodeCache exposes the geocode cache for status reporting.
func (t *TomTomClient) GeocodeCache() *cache.Expiring[Coordinates] {
	return t.geocodes
}

// Geocode resolves an address to its best match.
func (t *TomTomClient) Geocode(ctx context.Context, address string) (Coordinates, error) {
	if !t.Configured() {
		return Coordinates{}, fmt.Errorf("tomtom: %w", ErrNotConfigured)
	}
	return t.geocodes.Get(address, t.geocodeTTL, func() (Coordinates, error) {
		return t.geocode(ctx, address)
	})
}

func (t *TomTomClient) geocode(ctx context.Context, address string) (Coordinates, error) {
	endpoint := t.baseURL + "/search/2/geocode/" + url.PathEscape(address) + ".json"
	q := url.Values{
		"key":        {t.apiKey},
		"countrySet": {t.countrySet},
		"limit":      {"1"},
	}

	var resp geocodeResponse
	if err := t.client.GetJSON(ctx, endpoint, q, nil, &resp); err != nil {
		return Coordinates{}, fmt.Errorf("failed to geocode %q: %w", address, err)
	}
	if len(resp.Results) == 0 {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", address, ErrNoResults)
	}
	return resp.Results[0].Position, nil
}

// CalculateRoute returns the summary of the fastest car route with live traffic.
func (t *TomTomClient) CalculateRoute(ctx context.Context, from, to Coordinates) (RouteSummary, error) {
	if !t.Configured() {
		return RouteSummary{}, fmt.Errorf("tomtom: %w", ErrNotConfigured)
	}

	endpoint := t.baseURL + "/routing/1/calculateRoute/" + from.String() + ":" + to.String() + "/json"
	q := url.Values{
		"key":        {t.apiKey},
		"traffic":    {"true"},
		"travelMode": {"car"},
	}

	var resp routeResponse
	if err := t.client.GetJSON(ctx, endpoint, q, nil, &resp); err != nil {
		return RouteSummary{}, fmt.Errorf("failed to calculate route: %w", err)
	}
	if len(resp.Routes) == 0 {
		return RouteSummary{}, ErrNoRoute
	}
	return resp.Routes[0].Summary, nil
}

// Traffic geocodes both addresses and reports current conditions between them.
// Any geocoding failure is reported as ErrGeocodeFailed.
func (t *TomTomClient) Traffic(ctx context.Context, origin, destination string) (*TrafficReport, error) {
	if !t.Configured() {
		return nil, fmt.Errorf("tomtom: %w", ErrNotConfigured)
	}

	from, err := t.Geocode(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeocodeFailed, err)
	}
	to, err := t.Geocode(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeocodeFailed, err)
	}

	summary, err := t.CalculateRoute(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &TrafficReport{
		Origin:              origin,
		Destination:         destination,
		TravelTimeMinutes:   roundMinutes(summary.TravelTimeInSeconds),
		TrafficDelayMinutes: roundMinutes(summary.TrafficDelayInSeconds),
		DistanceKm:          math.Round(float64(summary.LengthInMeters)/100) / 10,
		Status:              t.classify(time.Duration(summary.TrafficDelayInSeconds) * time.Second),
	}, nil
}

// classify maps a traffic delay onto a status. Both bounds are exclusive.
func (t *TomTomClient) classify(delay time.Duration) string {
	switch {
	case delay > t.heavyDelay:
		return StatusHeavy
	case delay > t.moderateDelay:
		return StatusModerate
	default:
		return StatusClear
	}
}

// roundMinutes converts seconds to minutes, rounding halves to even.
func roundMinutes(seconds int) int {
	return int(math.RoundToEven(float64(seconds) / 60))
}
