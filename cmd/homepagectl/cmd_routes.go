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
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/homepage-api/internal/routes"
	"github.com/tomtom215/homepage-api/internal/schedule"
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List configured traffic routes and whether each is active",
	Long: `List every configured traffic route in order, the schedule as it is
interpreted and whether the route is active now (or at --at).

Examples:
  homepagectl routes
  homepagectl routes --at 2025-10-27T08:00:00+11:00`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		now, err := evaluationTime(store.Config().Server.Timezone)
		if err != nil {
			return err
		}
		all, err := routes.NewRegistry(store).ListAll()
		if err != nil {
			return err
		}
		return printRoutes(cmd.OutOrStdout(), all, now)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule EXPRESSION",
	Short: "Explain a schedule expression",
	Long: `Show how a schedule expression such as "Mon-Fri 07:00-09:00" is
interpreted and whether it is active now (or at --at).

Examples:
  homepagectl schedule "Mon-Fri 07:00-09:00"
  homepagectl schedule "Sat 08:00-12:00" --at 2025-11-01T09:30:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := evaluationTime("")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "schedule: %s\n", describeSchedule(args[0]))
		fmt.Fprintf(out, "at %s: %s\n", now.Format(time.RFC3339), activeLabel(schedule.IsActive(args[0], now)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// describeSchedule renders the parsed form of a schedule expression.
func describeSchedule(text string) string {
	if text == "" {
		return "always (empty)"
	}
	spec, ok := schedule.Parse(text)
	if !ok {
		return "always (unparseable)"
	}
	if len(spec.Days) == 0 {
		return fmt.Sprintf("never (no days) %s-%s", spec.Start, spec.End)
	}
	days := make([]string, 0, len(spec.Days))
	for _, d := range spec.Days {
		days = append(days, dayNames[d])
	}
	return fmt.Sprintf("%s %s-%s", strings.Join(days, ","), spec.Start, spec.End)
}

func printRoutes(out io.Writer, all []routes.Route, now time.Time) error {
	if len(all) == 0 {
		_, err := fmt.Fprintln(out, "no routes configured")
		return err
	}

	fmt.Fprintf(out, "evaluated at %s\n", now.Format(time.RFC3339))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tORIGIN\tDESTINATION\tSCHEDULE\tSTATE")
	for _, r := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.RouteNum, r.Name, r.Origin, r.Destination,
			describeSchedule(r.Schedule), activeLabel(schedule.IsActive(r.Schedule, now)))
	}
	return w.Flush()
}
