// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Command homepagectl inspects Homepage API configuration without starting
// the server: it validates the layered config, lists traffic routes with
// their schedule state and evaluates schedule expressions.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/config"
)

var (
	configPath string
	atFlag     string
)

var rootCmd = &cobra.Command{
	Use:           "homepagectl",
	Short:         "Inspect Homepage API configuration",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: $CONFIG_PATH or config.yaml)")
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "",
		"evaluate schedules at this RFC 3339 time instead of now")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadStore loads configuration the same way the server does.
func loadStore() (*config.Store, error) {
	if configPath != "" {
		store, err := config.NewStoreFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return store, nil
	}
	store, err := config.NewStore()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return store, nil
}

// evaluationTime returns --at if set, otherwise now in the configured timezone.
// An --at value keeps the offset it was written with.
func evaluationTime(timezone string) (time.Time, error) {
	clk, err := clock.NewSystem(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	if atFlag == "" {
		return clk.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value: %w", err)
	}
	return t, nil
}
