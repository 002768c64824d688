// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type requestKey struct{}

// requestIDs identifies one inbound dashboard request. The correlation ID is
// a short tag for grepping the upstream calls a single request fans out to
// (the weather endpoint alone makes three).
type requestIDs struct {
	request     string
	correlation string
}

// NewRequestID returns a random UUID for a request that arrived without one.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID attaches requestID and a fresh 8-character correlation ID to ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestKey{}, requestIDs{
		request:     requestID,
		correlation: uuid.NewString()[:8],
	})
}

// RequestID returns the request ID stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	ids, _ := ctx.Value(requestKey{}).(requestIDs)
	return ids.request
}

// CorrelationID returns the correlation ID stored by WithRequestID, or "".
func CorrelationID(ctx context.Context) string {
	ids, _ := ctx.Value(requestKey{}).(requestIDs)
	return ids.correlation
}

// Ctx returns the global logger carrying request_id and correlation_id from ctx.
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Transport API error")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()
	if ids, ok := ctx.Value(requestKey{}).(requestIDs); ok {
		logCtx = logCtx.Str("request_id", ids.request).Str("correlation_id", ids.correlation)
	}
	logger := logCtx.Logger()
	return &logger
}
