// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/homepage-api/internal/config"
)

// observationGeohashLen is the geohash precision the observations endpoint accepts.
const observationGeohashLen = 6

// Location is a resolved Bureau of Meteorology forecast location.
type Location struct {
	Geohash   string  `json:"geohash"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Postcode  string  `json:"postcode,omitempty"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Record is an upstream object passed through to the dashboard unchanged.
type Record map[string]interface{}

// RainForecast summarises today's rain outlook.
type RainForecast struct {
	Amount    string  `json:"amount"`
	Chance    string  `json:"chance"`
	StartTime *string `json:"start_time"`
}

type bomEnvelope[T any] struct {
	Data T `json:"data"`
}

// BOMClient reads the public Bureau of Meteorology API. No key is required.
type BOMClient struct {
	client  *Client
	baseURL string
}

// NewBOMClient creates a BOM client.
func NewBOMClient(cfg config.WeatherConfig, up config.UpstreamConfig) *BOMClient {
	return &BOMClient{
		client:  NewClient("bom", up),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Client exposes the shared HTTP client (breaker state for status reporting).
func (b *BOMClient) Client() *Client {
	return b.client
}

// SearchLocation resolves a place name to its first search match and returns
// a site handle bound to that location's geohash.
func (b *BOMClient) SearchLocation(ctx context.Context, query string) (*WeatherSite, error) {
	var search bomEnvelope[[]Location]
	q := url.Values{"search": {query}}
	if err := b.client.GetJSON(ctx, b.baseURL+"/locations", q, nil, &search); err != nil {
		return nil, fmt.Errorf("failed to search BOM location %q: %w", query, err)
	}
	if len(search.Data) == 0 {
		return nil, fmt.Errorf("BOM location %q: %w", query, ErrNoResults)
	}

	geohash := search.Data[0].Geohash
	var detail bomEnvelope[Location]
	if err := b.client.GetJSON(ctx, b.baseURL+"/locations/"+url.PathEscape(geohash), nil, nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch BOM location %s: %w", geohash, err)
	}
	if detail.Data.Geohash == "" {
		detail.Data.Geohash = geohash
	}

	return &WeatherSite{bom: b, location: detail.Data}, nil
}

// WeatherSite fetches observations and forecasts for one resolved location.
// It holds no weather data itself, so it is safe to cache for long periods.
type WeatherSite struct {
	bom      *BOMClient
	location Location
}

// Location returns the resolved location.
func (s *WeatherSite) Location() Location {
	return s.location
}

func (s *WeatherSite) path(geohash, suffix string) string {
	return s.bom.baseURL + "/locations/" + url.PathEscape(geohash) + suffix
}

// Observations returns the latest observations near the site.
func (s *WeatherSite) Observations(ctx context.Context) (Record, error) {
	geohash := s.location.Geohash
	if len(geohash) > observationGeohashLen {
		geohash = geohash[:observationGeohashLen]
	}

	var resp bomEnvelope[Record]
	if err := s.bom.client.GetJSON(ctx, s.path(geohash, "/observations"), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch BOM observations: %w", err)
	}
	return resp.Data, nil
}

// DailyForecasts returns the 7-day forecast, today first.
func (s *WeatherSite) DailyForecasts(ctx context.Context) ([]Record, error) {
	var resp bomEnvelope[[]Record]
	if err := s.bom.client.GetJSON(ctx, s.path(s.location.Geohash, "/forecasts/daily"), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch BOM daily forecasts: %w", err)
	}
	return resp.Data, nil
}

// HourlyForecasts returns the hourly forecast.
func (s *WeatherSite) HourlyForecasts(ctx context.Context) ([]Record, error) {
	var resp bomEnvelope[[]Record]
	if err := s.bom.client.GetJSON(ctx, s.path(s.location.Geohash, "/forecasts/hourly"), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch BOM hourly forecasts: %w", err)
	}
	return resp.Data, nil
}

// RainForecast returns today's rain outlook.
func (s *WeatherSite) RainForecast(ctx context.Context) (RainForecast, error) {
	daily, err := s.DailyForecasts(ctx)
	if err != nil {
		return RainForecast{}, err
	}
	return RainFromDaily(daily), nil
}

// RainFromDaily derives the rain outlook from the first daily forecast:
// amount as "min-maxmm" and chance as "N%". StartTime is the forecast date
// when any rain is possible.
func RainFromDaily(daily []Record) RainForecast {
	out := RainForecast{Amount: "0mm", Chance: "0%"}
	if len(daily) == 0 {
		return out
	}

	today := daily[0]
	rain, _ := today["rain"].(map[string]interface{})
	if rain == nil {
		return out
	}

	units := "mm"
	if amount, ok := rain["amount"].(map[string]interface{}); ok {
		if u, ok := amount["units"].(string); ok && u != "" {
			units = u
		}
		minAmount, hasMin := amount["min"].(float64)
		maxAmount, hasMax := amount["max"].(float64)
		switch {
		case hasMin && hasMax:
			out.Amount = formatNumber(minAmount) + "-" + formatNumber(maxAmount) + units
		case hasMin:
			out.Amount = formatNumber(minAmount) + units
		case hasMax:
			out.Amount = "0-" + formatNumber(maxAmount) + units
		}
	}

	if chance, ok := rain["chance"].(float64); ok {
		out.Chance = formatNumber(chance) + "%"
		if date, ok := today["date"].(string); ok && chance > 0 {
			out.StartTime = &date
		}
	}

	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
