// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

// Package hoststatus reports whether host service units (VPN tunnels,
// container runtimes) are running, by asking systemd.
package hoststatus

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/homepage-api/internal/config"
	"github.com/tomtom215/homepage-api/internal/logging"
)

// StateUnknown is reported when the unit manager produced no output.
const StateUnknown = "unknown"

// maxConcurrentChecks bounds how many unit queries run at once.
const maxConcurrentChecks = 4

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

// Run executes name with args. Output is returned even when the command exits non-zero.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ServiceStatus is one unit's state.
type ServiceStatus struct {
	Unit   string `json:"unit"`
	Active bool   `json:"active"`
	State  string `json:"state"`
}

// Checker queries unit states.
type Checker struct {
	runner  Runner
	command string
	timeout time.Duration
}

// NewChecker creates a checker. A nil runner uses ExecRunner.
func NewChecker(cfg config.SystemConfig, runner Runner) *Checker {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Checker{
		runner:  runner,
		command: cfg.Command,
		timeout: cfg.Timeout,
	}
}

// Check returns the state of every unit, in the order given.
// A failed query never fails the whole report.
func (c *Checker) Check(ctx context.Context, units []string) []ServiceStatus {
	results := make([]ServiceStatus, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, unit := range units {
		g.Go(func() error {
			results[i] = c.checkUnit(gctx, unit)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

func (c *Checker) checkUnit(ctx context.Context, unit string) ServiceStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.runner.Run(ctx, c.command, "is-active", unit)
	state := strings.TrimSpace(string(out))
	if state == "" {
		state = StateUnknown
	}
	if err != nil {
		// systemctl exits non-zero for inactive and failed units; only
		// an empty answer is worth logging.
		if state == StateUnknown {
			logging.Ctx(ctx).Debug().Err(err).Str("unit", unit).Msg("Service status query failed")
		}
	}

	return ServiceStatus{
		Unit:   unit,
		Active: state == "active",
		State:  state,
	}
}
