// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/homepage-api/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Run("labels requests with the route pattern", func(t *testing.T) {
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/api/test/departures/{stopID}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/test/departures/{stopID}", "200")
		before := testutil.ToFloat64(counter)

		for _, stop := range []string{"200060", "10101100"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test/departures/"+stop, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}
		}

		if got := testutil.ToFloat64(counter) - before; got != 2 {
			t.Errorf("Expected 2 requests recorded under the route pattern, got %v", got)
		}
	})

	t.Run("records error status codes", func(t *testing.T) {
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/api/test/broken", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/test/broken", "503")
		before := testutil.ToFloat64(counter)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test/broken", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", rec.Code)
		}
		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("Expected 1 request recorded, got %v", got)
		}
	})

	t.Run("labels unrouted requests as unmatched", func(t *testing.T) {
		handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		counter := metrics.APIRequestsTotal.WithLabelValues("GET", unmatchedEndpoint, "418")
		before := testutil.ToFloat64(counter)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything/goes", nil))

		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("Expected 1 unmatched request recorded, got %v", got)
		}
	})

	t.Run("defaults to 200 when WriteHeader not called", func(t *testing.T) {
		handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Hello"))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected default status 200, got %d", rec.Code)
		}
	})
}

func TestMetricsResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("captures status code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		wrapper := &metricsResponseWriter{
			ResponseWriter: rec,
			statusCode:     http.StatusOK,
		}

		wrapper.WriteHeader(http.StatusNotFound)

		if wrapper.statusCode != http.StatusNotFound {
			t.Errorf("Expected status code 404, got %d", wrapper.statusCode)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected underlying recorder status 404, got %d", rec.Code)
		}
	})

	t.Run("keeps the first status code", func(t *testing.T) {
		t.Parallel()
		wrapper := &metricsResponseWriter{
			ResponseWriter: httptest.NewRecorder(),
			statusCode:     http.StatusOK,
		}

		wrapper.WriteHeader(http.StatusCreated)
		wrapper.WriteHeader(http.StatusInternalServerError)

		if wrapper.statusCode != http.StatusCreated {
			t.Errorf("Expected status code 201, got %d", wrapper.statusCode)
		}
	})

	t.Run("unwraps to the underlying writer", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		wrapper := &metricsResponseWriter{ResponseWriter: rec}

		if wrapper.Unwrap() != rec {
			t.Error("Expected Unwrap to return the wrapped recorder")
		}
	})
}
