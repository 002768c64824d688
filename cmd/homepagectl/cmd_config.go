// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/homepage-api/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate configuration and print the effective settings",
	Long: `Load defaults, the config file and environment variables exactly as the
server does, validate the result and print the effective settings.
Credentials are reported as set or unset, never printed.

Examples:
  homepagectl config
  homepagectl config --config /etc/homepage-api/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), store)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func setLabel(ok bool) string {
	if ok {
		return "set"
	}
	return "unset"
}

func printConfig(out io.Writer, store *config.Store) error {
	cfg := store.Config()

	source := store.Path()
	if source == "" {
		source = "(none, defaults and environment only)"
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"config file", source},
		{"listen", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)},
		{"timezone", valueOr(cfg.Server.Timezone, "(local)")},
		{"log level", cfg.Logging.Level},
		{"weather location", cfg.Weather.Location},
		{"weather cache ttl", cfg.Weather.CacheTTL.String()},
		{"transport api key", setLabel(cfg.TransportConfigured())},
		{"tomtom api key", setLabel(cfg.TrafficConfigured())},
		{"home assistant", fmt.Sprintf("%s (token %s)", cfg.HomeAssistant.URL, setLabel(cfg.HomeAssistantConfigured()))},
		{"service units", valueOr(strings.Join(cfg.System.Units, ", "), "(none)")},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(out, "configuration OK")
	return err
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
