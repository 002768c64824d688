// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  timezone: UTC
weather:
  location: penrith
transport:
  api_key: secret-transport-key
traffic:
  routes:
    1:
      name: Commute
      origin: Home
      destination: Work
      schedule: Mon-Fri 07:00-09:00
    2:
      name: Weekend
      origin: Home
      destination: Beach
      schedule: Sat 08:00-12:00
    3:
      name: Anytime
      origin: Home
      destination: Shops
system:
  units:
    - nginx.service
`

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, atFlag = "", ""
	t.Cleanup(func() { configPath, atFlag = "", "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, path)
	assert.Contains(t, out, "penrith")
	assert.Contains(t, out, "nginx.service")
	assert.Regexp(t, `transport api key\s+set`, out)
	assert.Regexp(t, `tomtom api key\s+unset`, out)
	assert.NotContains(t, out, "secret-transport-key")
	assert.Contains(t, out, "configuration OK")
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := execute(t, "config", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestConfigCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRoutesCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	// Monday 08:00 UTC
	out, err := execute(t, "routes", "--config", path, "--at", "2025-10-27T08:00:00Z")
	require.NoError(t, err)

	assert.Contains(t, out, "evaluated at 2025-10-27T08:00:00Z")
	assert.Regexp(t, `1\s+Commute\s+Home\s+Work\s+Mon,Tue,Wed,Thu,Fri 07:00-09:00\s+active`, out)
	assert.Regexp(t, `2\s+Weekend\s+Home\s+Beach\s+Sat 08:00-12:00\s+inactive`, out)
	assert.Regexp(t, `3\s+Anytime\s+Home\s+Shops\s+Mon,Tue,Wed,Thu,Fri,Sat,Sun 00:00-23:59\s+active`, out)
}

func TestRoutesCommand_NoRoutes(t *testing.T) {
	path := writeConfig(t, "weather:\n  location: penrith\n")

	out, err := execute(t, "routes", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no routes configured")
}

func TestRoutesCommand_InvalidAt(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	_, err := execute(t, "routes", "--config", path, "--at", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --at value")
}

func TestScheduleCommand(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		at       string
		wantDesc string
		wantAt   string
	}{
		{"weekday inside window", "Mon-Fri 07:00-09:00", "2025-10-27T08:30:00Z", "Mon,Tue,Wed,Thu,Fri 07:00-09:00", "active"},
		{"weekday outside window", "Mon-Fri 07:00-09:00", "2025-10-27T10:00:00Z", "Mon,Tue,Wed,Thu,Fri 07:00-09:00", "inactive"},
		{"unparseable is always active", "whenever", "2025-10-27T03:00:00Z", "always (unparseable)", "active"},
		{"daily", "Daily 06:00-07:00", "2025-11-01T06:30:00Z", "Mon,Tue,Wed,Thu,Fri,Sat,Sun 06:00-07:00", "active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "schedule", tt.expr, "--at", tt.at)
			require.NoError(t, err)
			assert.Contains(t, out, "schedule: "+tt.wantDesc+"\n")
			assert.Contains(t, out, ": "+tt.wantAt+"\n")
		})
	}
}

func TestScheduleCommand_RequiresExpression(t *testing.T) {
	_, err := execute(t, "schedule")
	require.Error(t, err)
}

func TestDescribeSchedule_Empty(t *testing.T) {
	assert.Equal(t, "always (empty)", describeSchedule(""))
}
