// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Data Sources:
//     - Weather: Bureau of Meteorology location and cache lifetime
//     - Transport: Transport NSW departure monitor
//     - Traffic: TomTom geocoding/routing and the configured commute routes
//     - HomeAssistant: person entity locations
//     - System: host service units reported on the dashboard
//
//  2. Infrastructure:
//     - Server: HTTP server configuration (port, host, timeout, timezone)
//     - Upstream: outbound HTTP timeout and request rate
//
//  3. Security:
//     - CORS origins and per-IP rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Traffic routes are deliberately not part of this struct. They are read key by
// key from the live Store (traffic.routes.<n>.<field>) so that edits to the
// config file take effect without a restart.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Logging       LoggingConfig       `koanf:"logging"`
	Security      SecurityConfig      `koanf:"security"`
	Upstream      UpstreamConfig      `koanf:"upstream"`
	Weather       WeatherConfig       `koanf:"weather"`
	Transport     TransportConfig     `koanf:"transport"`
	Traffic       TrafficConfig       `koanf:"traffic"`
	HomeAssistant HomeAssistantConfig `koanf:"homeassistant"`
	System        SystemConfig        `koanf:"system"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
	Timezone    string        `koanf:"timezone"` // IANA zone used for schedule evaluation; empty means the host's local zone
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// UpstreamConfig holds settings shared by every outbound API client
type UpstreamConfig struct {
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
}

// WeatherConfig holds Bureau of Meteorology settings
type WeatherConfig struct {
	Location string        `koanf:"location" validate:"required"`
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	BaseURL  string        `koanf:"base_url" validate:"required,url"`
}

// TransportConfig holds Transport NSW Open Data settings
type TransportConfig struct {
	APIKey         string `koanf:"api_key"`
	BaseURL        string `koanf:"base_url" validate:"required,url"`
	DepartureLimit int    `koanf:"departure_limit" validate:"min=1,max=50"`
}

// TrafficConfig holds TomTom settings and traffic status thresholds
type TrafficConfig struct {
	APIKey          string        `koanf:"api_key"`
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	CountrySet      string        `koanf:"country_set" validate:"required"`
	GeocodeCacheTTL time.Duration `koanf:"geocode_cache_ttl" validate:"gt=0"`
	HeavyDelay      time.Duration `koanf:"heavy_delay" validate:"gt=0"`
	ModerateDelay   time.Duration `koanf:"moderate_delay" validate:"gt=0"`
}

// HomeAssistantConfig holds Home Assistant REST API settings
type HomeAssistantConfig struct {
	URL   string `koanf:"url"`
	Token string `koanf:"token"`
}

// SystemConfig holds host service status settings
type SystemConfig struct {
	Units   []string      `koanf:"units"`
	Command string        `koanf:"command" validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// TransportConfigured reports whether the Transport NSW API key is set.
func (c *Config) TransportConfigured() bool {
	return c.Transport.APIKey != ""
}

// TrafficConfigured reports whether the TomTom API key is set.
func (c *Config) TrafficConfigured() bool {
	return c.Traffic.APIKey != ""
}

// HomeAssistantConfigured reports whether a Home Assistant token is set.
func (c *Config) HomeAssistantConfigured() bool {
	return c.HomeAssistant.Token != ""
}

// Load reads configuration from defaults, the optional config file and
// environment variables (later sources override earlier ones).
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
