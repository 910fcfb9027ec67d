package main

import (
	"context"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				s, err := c.client.DashboardStats(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				printf(tw, "jobs\t%d\topen %d\tin progress %d\tcompleted %d\n", s.Jobs.Total, s.Jobs.Open, s.Jobs.InProgress, s.Jobs.Completed)
				printf(tw, "rentals\t%d\tactive %d\treturned %d\n", s.Rentals.Total, s.Rentals.Active, s.Rentals.Completed)
				printf(tw, "devices\t%d\tavailable %d\trented %d\n", s.Devices.Total, s.Devices.Available, s.Devices.Rented)
				printf(tw, "users\t%d\tadmins %d\temployees %d\n", s.Users.Total, s.Users.Admins, s.Users.Employees)
				return tw.Flush()
			})
		},
	}
}
