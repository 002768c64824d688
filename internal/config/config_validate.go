// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/homepage-api/internal/validation"
)

// Validate checks struct tag rules first, then rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateTraffic(); err != nil {
		return err
	}

	return c.validateHomeAssistant()
}

// validateServer checks that the schedule timezone can be loaded.
func (c *Config) validateServer() error {
	if c.Server.Timezone == "" {
		return nil
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("server.timezone %q is invalid: %w", c.Server.Timezone, err)
	}
	return nil
}

// validateTraffic checks that the status thresholds are ordered.
func (c *Config) validateTraffic() error {
	if c.Traffic.ModerateDelay >= c.Traffic.HeavyDelay {
		return fmt.Errorf("traffic.moderate_delay (%v) must be less than traffic.heavy_delay (%v)",
			c.Traffic.ModerateDelay, c.Traffic.HeavyDelay)
	}
	return nil
}

// validateHomeAssistant validates the Home Assistant URL (only if a token is set)
func (c *Config) validateHomeAssistant() error {
	if !c.HomeAssistantConfigured() {
		return nil
	}
	if err := validateBaseURL(c.HomeAssistant.URL); err != nil {
		return fmt.Errorf("homeassistant.url is invalid: %w", err)
	}
	return nil
}
