// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/homepage-api/internal/cache"
	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/hoststatus"
	"github.com/tomtom215/homepage-api/internal/routes"
	"github.com/tomtom215/homepage-api/internal/upstream"
)

// monday0800 is inside the "Work" route's Mon-Fri 07:00-09:00 window.
var monday0800 = time.Date(2025, 10, 27, 8, 0, 0, 0, time.UTC)

// fakeProviders serves every upstream API the handlers talk to.
//
// TomTom geocodes "Home", "Work" and "Island"; routing to Island finds no route.
type fakeProviders struct {
	server       *httptest.Server
	searchHits   atomic.Int32
	geocodeHits  atomic.Int32
	failStates   atomic.Bool
	tfnswAuthHdr atomic.Value
}

func newFakeProviders(t *testing.T) *fakeProviders {
	t.Helper()

	f := &fakeProviders{}
	mux := http.NewServeMux()

	mux.HandleFunc("/bom/v1/locations", func(w http.ResponseWriter, r *http.Request) {
		f.searchHits.Add(1)
		if r.URL.Query().Get("search") != "parramatta" {
			_, _ = w.Write([]byte(`{"data": []}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"geohash": "r3gx2f9", "name": "Parramatta", "state": "NSW"}]}`))
	})
	mux.HandleFunc("/bom/v1/locations/r3gx2f9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"geohash": "r3gx2f9", "id": "Parramatta-r3gx2f9", "name": "Parramatta", "state": "NSW"}}`))
	})
	mux.HandleFunc("/bom/v1/locations/r3gx2f/observations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"temp": 22.5, "humidity": 65}}`))
	})
	mux.HandleFunc("/bom/v1/locations/r3gx2f9/forecasts/daily", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"date": "2025-10-27T13:00:00Z", "temp_max": 28,
			"rain": {"amount": {"min": 0, "max": 2, "units": "mm"}, "chance": 20}}]}`))
	})
	mux.HandleFunc("/bom/v1/locations/r3gx2f9/forecasts/hourly", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"time": "2025-10-27T12:00:00Z", "temp": 24}]}`))
	})

	mux.HandleFunc("/tfnsw/departure_mon", func(w http.ResponseWriter, r *http.Request) {
		f.tfnswAuthHdr.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"stopEvents": [
			{"isRealtimeControlled": true,
			 "departureTimePlanned": "2025-10-27T08:10:00Z", "departureTimeEstimated": "2025-10-27T08:13:00Z",
			 "location": {"properties": {"platformName": "Platform 2"}},
			 "transportation": {"number": "T1", "destination": {"name": "Central"}}},
			{"isRealtimeControlled": false,
			 "departureTimePlanned": "2025-10-27T08:20:00Z",
			 "location": {"properties": {}},
			 "transportation": {"number": "T5", "destination": {"name": "Leppington"}}},
			{"isRealtimeControlled": false,
			 "departureTimePlanned": "2025-10-27T08:30:00Z",
			 "location": {"properties": {}},
			 "transportation": {"number": "T1", "destination": {"name": "Emu Plains"}}}
		]}`))
	})

	mux.HandleFunc("/tomtom/search/2/geocode/", func(w http.ResponseWriter, r *http.Request) {
		f.geocodeHits.Add(1)
		switch strings.TrimPrefix(r.URL.Path, "/tomtom/search/2/geocode/") {
		case "Home.json":
			_, _ = w.Write([]byte(`{"results": [{"position": {"lat": -33.8, "lon": 151}}]}`))
		case "Work.json":
			_, _ = w.Write([]byte(`{"results": [{"position": {"lat": -33.87, "lon": 151.21}}]}`))
		case "Island.json":
			_, _ = w.Write([]byte(`{"results": [{"position": {"lat": -40, "lon": 160}}]}`))
		default:
			_, _ = w.Write([]byte(`{"results": []}`))
		}
	})
	mux.HandleFunc("/tomtom/routing/1/calculateRoute/", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "-40,160") {
			_, _ = w.Write([]byte(`{"routes": []}`))
			return
		}
		_, _ = w.Write([]byte(`{"routes": [{"summary": {"lengthInMeters": 23456, "travelTimeInSeconds": 1830, "trafficDelayInSeconds": 420}}]}`))
	})

	mux.HandleFunc("/ha/api/states", func(w http.ResponseWriter, r *http.Request) {
		if f.failStates.Load() {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[
			{"entity_id": "person.alex", "state": "home",
			 "attributes": {"friendly_name": "Alex", "latitude": -33.81, "longitude": 151.0},
			 "last_updated": "2025-10-27T05:00:00+00:00"},
			{"entity_id": "light.kitchen", "state": "on", "attributes": {}, "last_updated": "2025-10-27T05:01:00+00:00"}
		]`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

const configuredYAML = `
upstream:
  requests_per_second: 1000
  burst: 100
security:
  rate_limit_disabled: true
weather:
  location: %[2]s
  base_url: %[1]s/bom/v1
transport:
  api_key: tfnsw-key
  base_url: %[1]s/tfnsw
  departure_limit: 2
traffic:
  api_key: tt-key
  base_url: %[1]s/tomtom
  routes:
    "1":
      name: Commute
      origin: Home
      destination: Work
      schedule: Mon-Fri 07:00-09:00
    "2":
      name: Ferry
      origin: Home
      destination: Island
      schedule: ""
    "3":
      name: Nowhere
      origin: Home
      destination: Atlantis
homeassistant:
  url: %[1]s/ha
  token: ha-token
system:
  units:
    - nginx.service
    - backup.service
`

const unconfiguredYAML = `
upstream:
  requests_per_second: 1000
  burst: 100
security:
  rate_limit_disabled: true
weather:
  base_url: %[1]s/bom/v1
transport:
  base_url: %[1]s/tfnsw
traffic:
  base_url: %[1]s/tomtom
homeassistant:
  url: %[1]s/ha
`

type unitRunner map[string]string

func (u unitRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	state := u[args[len(args)-1]]
	if state != "active" {
		return []byte(state + "\n"), fmt.Errorf("exit status 3")
	}
	return []byte(state + "\n"), nil
}

type testEnv struct {
	providers *fakeProviders
	clock     *clock.Manual
	store     *config.Store
	sites     *cache.Expiring[*upstream.WeatherSite]
	handler   http.Handler
}

func newTestEnvFromYAML(t *testing.T, yamlTemplate, location string) *testEnv {
	t.Helper()

	providers := newFakeProviders(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(fmt.Sprintf(yamlTemplate, providers.server.URL, location)), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	store, err := config.NewStoreFromFile(path)
	if err != nil {
		t.Fatalf("NewStoreFromFile() error = %v", err)
	}
	cfg := store.Config()
	clk := clock.NewManual(monday0800)
	sites := cache.NewExpiring[*upstream.WeatherSite]("test_weather", clk)

	handler := NewHandler(Dependencies{
		Store:         store,
		Clock:         clk,
		Routes:        routes.NewRegistry(store),
		WeatherSites:  sites,
		Weather:       upstream.NewBOMClient(cfg.Weather, cfg.Upstream),
		Transport:     upstream.NewTransportClient(cfg.Transport, cfg.Upstream),
		Traffic:       upstream.NewTomTomClient(cfg.Traffic, cfg.Upstream, clk),
		HomeAssistant: upstream.NewHomeAssistantClient(cfg.HomeAssistant, cfg.Upstream),
		Services: hoststatus.NewChecker(cfg.System, unitRunner{
			"nginx.service":  "active",
			"backup.service": "failed",
		}),
	})

	return &testEnv{
		providers: providers,
		clock:     clk,
		store:     store,
		sites:     sites,
		handler:   NewRouter(handler, ChiMiddlewareConfigFromSecurity(cfg.Security)).SetupChi(),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvFromYAML(t, configuredYAML, "parramatta")
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, wantStatus, rec.Body.String())
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error != wantMessage {
		t.Errorf("error = %q, want %q", body.Error, wantMessage)
	}
}
