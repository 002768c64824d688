// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/homepage-api/internal/api"
	"github.com/tomtom215/homepage-api/internal/cache"
	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/hoststatus"
	"github.com/tomtom215/homepage-api/internal/logging"
	"github.com/tomtom215/homepage-api/internal/routes"
	"github.com/tomtom215/homepage-api/internal/supervisor"
	"github.com/tomtom215/homepage-api/internal/supervisor/services"
	"github.com/tomtom215/homepage-api/internal/upstream"
)

func main() {
	// Load configuration first to get logging settings
	store, err := config.NewStore()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg := store.Config()

	logging.Init(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Caller:      cfg.Logging.Caller,
		Timestamp:   true,
		Output:      os.Stderr,
		Environment: cfg.Server.Environment,
	})

	logging.Info().
		Str("config_file", store.Path()).
		Str("weather_location", cfg.Weather.Location).
		Bool("transport_nsw", cfg.TransportConfigured()).
		Bool("tomtom", cfg.TrafficConfigured()).
		Bool("home_assistant", cfg.HomeAssistantConfigured()).
		Strs("service_units", cfg.System.Units).
		Msg("Configuration loaded")

	clk, err := clock.NewSystem(cfg.Server.Timezone)
	if err != nil {
		logging.Fatal().Err(err).Str("timezone", cfg.Server.Timezone).Msg("Failed to load timezone")
	}

	weatherSites := cache.NewExpiring[*upstream.WeatherSite]("bom_site", clk)

	// Upstream credentials and URLs are fixed at startup. Routes, units and
	// the weather location are read per request, so a reload only needs to
	// drop the cached site and apply the new log level.
	store.OnReload(func(c *config.Config) {
		weatherSites.Clear()
		logging.SetLevelString(c.Logging.Level)
		logging.Info().Str("weather_location", c.Weather.Location).Msg("Applied reloaded configuration")
	})

	handler := api.NewHandler(api.Dependencies{
		Store:         store,
		Clock:         clk,
		Routes:        routes.NewRegistry(store),
		WeatherSites:  weatherSites,
		Weather:       upstream.NewBOMClient(cfg.Weather, cfg.Upstream),
		Transport:     upstream.NewTransportClient(cfg.Transport, cfg.Upstream),
		Traffic:       upstream.NewTomTomClient(cfg.Traffic, cfg.Upstream, clk),
		HomeAssistant: upstream.NewHomeAssistantClient(cfg.HomeAssistant, cfg.Upstream),
		Services:      hoststatus.NewChecker(cfg.System, nil),
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog.Logger; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddBackgroundService(services.NewConfigWatcherService(store))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Homepage API stopped")
}
