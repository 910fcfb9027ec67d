package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func newJobsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List, post and work on repair jobs",
	}
	cmd.AddCommand(
		newJobsListCmd(c),
		newJobsShowCmd(c),
		newJobsCreateCmd(c),
		newJobActionCmd(c, "accept", "Take an open job"),
		newJobActionCmd(c, "complete", "Mark a job in progress as completed"),
	)
	return cmd
}

// jobsTable offers the same accept and complete actions as the web console
func (c *cli) jobsTable() *datatable.Table {
	return datatable.New(jobColumns, datatable.Options{
		EmptyState: &datatable.EmptyState{Title: "No jobs", Message: "Jobs appear here once they are posted."},
		RowActions: []datatable.RowAction{
			{
				Name:     "accept",
				Label:    "Accept",
				Disabled: func(rec datatable.Record) bool { return datatable.Stringify(rec["status"]) != string(types.JobOpen) },
				OnClick: func(ctx context.Context, rec datatable.Record) error {
					id, err := datatable.IntField(rec, "id")
					if err != nil {
						return err
					}
					_, err = c.client.AcceptJob(ctx, id)
					return err
				},
			},
			{
				Name:  "complete",
				Label: "Complete",
				Disabled: func(rec datatable.Record) bool {
					return datatable.Stringify(rec["status"]) != string(types.JobInProgress)
				},
				OnClick: func(ctx context.Context, rec datatable.Record) error {
					id, err := datatable.IntField(rec, "id")
					if err != nil {
						return err
					}
					_, err = c.client.CompleteJob(ctx, id, types.JobStatus(datatable.Stringify(rec["status"])))
					return err
				},
			},
		},
	})
}

func (c *cli) jobRecords(ctx context.Context) ([]datatable.Record, error) {
	jobs, err := c.client.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(jobs)
}

func newJobsListCmd(c *cli) *cobra.Command {
	var flags tableFlags
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.jobRecords(ctx)
				if err != nil {
					return err
				}
				return flags.writeRecords(cmd.OutOrStdout(), c.jobsTable(), filterRecords(records, "status", status))
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "only jobs with this status: open, in_progress or completed")
	return cmd
}

func newJobsShowCmd(c *cli) *cobra.Command {
	var reports bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a job as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context) error {
				job, _, err := c.client.Job(ctx, id)
				if err != nil {
					return err
				}
				var shown any = job
				if reports {
					rs, err := c.client.ReportsByJob(ctx, id)
					if err != nil {
						return err
					}
					shown = map[string]any{"job": job, "reports": rs}
				}
				return printRecord(cmd.OutOrStdout(), shown, c.color(cmd.OutOrStdout()))
			})
		},
	}
	cmd.Flags().BoolVar(&reports, "reports", false, "include the job's completion reports")
	return cmd
}

func newJobsCreateCmd(c *cli) *cobra.Command {
	var job types.NewJob
	var priority string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Priority = types.Priority(priority)
			return c.run(cmd, func(ctx context.Context) error {
				created, err := c.client.CreateJob(ctx, job)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Posted job #%d for %s\n", created.ID, created.CustomerName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&job.CustomerName, "customer", "", "customer name")
	cmd.Flags().StringVar(&job.PhoneNumber, "phone", "", "customer phone number")
	cmd.Flags().StringVar(&job.Location, "location", "", "where the work is")
	cmd.Flags().StringVar(&job.Issue, "issue", "", "what needs doing")
	cmd.Flags().StringVar(&job.WorkDate, "date", "", "work date, YYYY-MM-DD")
	cmd.Flags().StringVar(&priority, "priority", string(types.PriorityMedium), "low, medium or high")
	return cmd
}

func newJobActionCmd(c *cli, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.jobRecords(ctx)
				if err != nil {
					return err
				}
				if err := dispatch(ctx, c.jobsTable(), records, id, action, "job"); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Job #%d: %s done\n", id, action)
				return nil
			})
		},
	}
}
