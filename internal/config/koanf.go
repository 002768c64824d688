// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/homepage-api/config.yaml",
	"/etc/homepage-api/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
			Timezone:    "", // host local time
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Upstream: UpstreamConfig{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Weather: WeatherConfig{
			Location: "parramatta",
			CacheTTL: 5 * time.Minute,
			BaseURL:  "https://api.weather.bom.gov.au/v1",
		},
		Transport: TransportConfig{
			APIKey:         "",
			BaseURL:        "https://api.transport.nsw.gov.au/v1/tp",
			DepartureLimit: 5,
		},
		Traffic: TrafficConfig{
			APIKey:          "",
			BaseURL:         "https://api.tomtom.com",
			CountrySet:      "AU",
			GeocodeCacheTTL: 24 * time.Hour,
			HeavyDelay:      10 * time.Minute,
			ModerateDelay:   5 * time.Minute,
		},
		HomeAssistant: HomeAssistantConfig{
			URL:   "http://homeassistant:8123",
			Token: "",
		},
		System: SystemConfig{
			Units:   []string{},
			Command: "systemctl",
			Timeout: 5 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	_, cfg, err := loadKoanf(findConfigFile())
	return cfg, err
}

// loadKoanf builds a fully layered koanf instance and the validated Config
// unmarshaled from it. An empty configPath skips the file layer.
func loadKoanf(configPath string) (*koanf.Koanf, *Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// BOM_LOCATION -> weather.location
	// TRAFFIC_ROUTE_1_NAME -> traffic.routes.1.name
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return k, cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"system.units",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			// Already a slice (from YAML or defaults)
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",
	"tz_name":      "server.timezone",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Upstream mappings
	"upstream_timeout":             "upstream.timeout",
	"upstream_requests_per_second": "upstream.requests_per_second",
	"upstream_burst":               "upstream.burst",

	// Weather mappings
	"bom_location":  "weather.location",
	"bom_cache_ttl": "weather.cache_ttl",
	"bom_base_url":  "weather.base_url",

	// Transport NSW mappings
	"transport_nsw_api_key":         "transport.api_key",
	"transport_nsw_base_url":        "transport.base_url",
	"transport_nsw_departure_limit": "transport.departure_limit",

	// TomTom mappings
	"tomtom_api_key":           "traffic.api_key",
	"tomtom_base_url":          "traffic.base_url",
	"tomtom_country_set":       "traffic.country_set",
	"tomtom_geocode_cache_ttl": "traffic.geocode_cache_ttl",
	"traffic_heavy_delay":      "traffic.heavy_delay",
	"traffic_moderate_delay":   "traffic.moderate_delay",

	// Home Assistant mappings
	"homeassistant_url":   "homeassistant.url",
	"homeassistant_token": "homeassistant.token",

	// System service mappings
	"system_service_units":   "system.units",
	"system_service_command": "system.command",
	"system_service_timeout": "system.timeout",
}

// routeEnvPattern matches TRAFFIC_ROUTE_<n>_<FIELD> (already lower-cased).
var routeEnvPattern = regexp.MustCompile(`^traffic_route_(\d+)_([a-z_]+)$`)

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - BOM_LOCATION -> weather.location
//   - TOMTOM_API_KEY -> traffic.api_key
//   - TRAFFIC_ROUTE_2_DESTINATION -> traffic.routes.2.destination
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	if m := routeEnvPattern.FindStringSubmatch(key); m != nil {
		return "traffic.routes." + m[1] + "." + m[2]
	}

	// Unmapped keys are skipped so random environment variables
	// do not pollute the config tree.
	return ""
}

// WatchConfigFile watches path and invokes callback on every change event.
// The returned provider must be stopped with Unwatch when no longer needed.
func WatchConfigFile(path string, callback func(err error)) (*file.File, error) {
	provider := file.Provider(path)

	err := provider.Watch(func(event interface{}, err error) {
		callback(err)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch config file %s: %w", path, err)
	}
	return provider, nil
}
