// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Package clock provides the time source used by schedule evaluation and the
// expiring cache. Production code uses System; tests use Manual so that
// weekday and time-of-day decisions are deterministic.
package clock

import (
	"sync"
	"time"
)

// Clock is a source of the current local time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and converts it to a fixed location.
// A nil Location means time.Local.
type System struct {
	Location *time.Location
}

// NewSystem returns a System clock for the named IANA zone. An empty name
// selects the process local zone.
func NewSystem(zone string) (System, error) {
	if zone == "" {
		return System{Location: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return System{}, err
	}
	return System{Location: loc}, nil
}

// Now implements Clock.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock reading t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now implements Clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
