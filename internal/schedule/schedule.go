// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Package schedule evaluates weekly time windows such as "Mon-Fri 07:00-09:00".
//
// A schedule names a set of weekdays and a same-day time-of-day window. Routes
// carry a schedule so the dashboard only shows them when they are relevant,
// for example a commute route on weekday mornings.
//
// Evaluation is fail-open: an empty or unparseable schedule is always active,
// so a typo in configuration never hides a route.
//
// Known limitations, kept deliberately:
//   - Day ranges only run forward. "Fri-Mon" resolves to no days at all.
//   - Times are compared as zero-padded "HH:MM" strings, so a window that
//     crosses midnight ("22:00-06:00") never matches.
package schedule

import (
	"regexp"
	"strings"
	"time"
)

// AllDay is the schedule used when a route does not configure one.
const AllDay = "Daily 00:00-23:59"

// Fallback indices for day abbreviations that are not recognised.
const (
	rangeStartFallback = 0 // Monday
	rangeEndFallback   = 4 // Friday
	singleDayFallback  = 0 // Monday
)

// pattern is matched against the start of the text only; trailing input is ignored.
// The day token accepts Unicode letters and digits, so a non-ASCII token such
// as "Lündi" reaches the day fallbacks instead of failing the match.
var pattern = regexp.MustCompile(`^([\p{L}\p{N}_-]+)\s+(\d{2}:\d{2})-(\d{2}:\d{2})`)

var weekdays = map[string]int{
	"mon": 0,
	"tue": 1,
	"wed": 2,
	"thu": 3,
	"fri": 4,
	"sat": 5,
	"sun": 6,
}

// Spec is a parsed schedule. Days uses 0=Monday through 6=Sunday.
// Start and End are the literal "HH:MM" strings from the source text.
type Spec struct {
	Days  []int
	Start string
	End   string
}

// Parse parses a schedule of the form "<days> <HH:MM>-<HH:MM>".
//
// The day token is case-insensitive and may be "daily", a single three-letter
// abbreviation ("Mon") or a forward range ("Mon-Fri"). ok is false when the
// text is empty or does not match.
func Parse(text string) (spec Spec, ok bool) {
	if text == "" {
		return Spec{}, false
	}

	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Spec{}, false
	}

	days, ok := parseDays(strings.ToLower(m[1]))
	if !ok {
		return Spec{}, false
	}

	return Spec{Days: days, Start: m[2], End: m[3]}, true
}

func parseDays(token string) ([]int, bool) {
	if token == "daily" {
		return []int{0, 1, 2, 3, 4, 5, 6}, true
	}

	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		if len(parts) != 2 {
			return nil, false
		}
		start := dayIndex(parts[0], rangeStartFallback)
		end := dayIndex(parts[1], rangeEndFallback)

		days := make([]int, 0, 7)
		for d := start; d <= end; d++ {
			days = append(days, d)
		}
		return days, true
	}

	return []int{dayIndex(token, singleDayFallback)}, true
}

func dayIndex(abbrev string, fallback int) int {
	if idx, ok := weekdays[abbrev]; ok {
		return idx
	}
	return fallback
}

// Weekday returns the Monday-based weekday index of t.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Contains reports whether t falls on one of the spec's days and inside its
// time window. Both window ends are inclusive at minute resolution.
func (s Spec) Contains(t time.Time) bool {
	if !s.hasDay(Weekday(t)) {
		return false
	}
	current := t.Format("15:04")
	return s.Start <= current && current <= s.End
}

func (s Spec) hasDay(day int) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

// IsActive reports whether the schedule text is open at now. Empty and
// unparseable schedules are always active.
func IsActive(text string, now time.Time) bool {
	if text == "" {
		return true
	}
	spec, ok := Parse(text)
	if !ok {
		return true
	}
	return spec.Contains(now)
}
