// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/homepage-api/internal/logging"
)

func serveWithRequestID(t *testing.T, header string) (responseID, contextID, correlationID string) {
	t.Helper()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = logging.RequestID(r.Context())
		correlationID = logging.CorrelationID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Header().Get(RequestIDHeader), contextID, correlationID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	responseID, contextID, correlationID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if contextID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", contextID, responseID)
	}
	if correlationID == "" {
		t.Error("Expected correlation ID in context")
	}
}

func TestRequestID_PreservesUpstreamProxyID(t *testing.T) {
	responseID, contextID, _ := serveWithRequestID(t, "proxy-abc-123")

	if responseID != "proxy-abc-123" {
		t.Errorf("Expected upstream ID to be preserved, got %s", responseID)
	}
	if contextID != "proxy-abc-123" {
		t.Errorf("Expected upstream ID in context, got %s", contextID)
	}
}

func TestRequestID_RejectsUnsafeUpstreamID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"contains space", "abc def"},
		{"contains control character", "abc\tdef"},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseID, _, _ := serveWithRequestID(t, tt.header)
			if responseID == tt.header {
				t.Errorf("Expected unsafe ID %q to be replaced", tt.header)
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("Replacement ID is not a valid UUID: %v", err)
			}
		})
	}
}

func TestRequestID_MultipleRequests(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, _, _ := serveWithRequestID(t, "")
		if seen[id] {
			t.Errorf("Duplicate request ID generated: %s", id)
		}
		seen[id] = true
	}
}
