package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func newReportsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List and submit job completion reports",
	}
	cmd.AddCommand(newReportsListCmd(c), newReportsSubmitCmd(c))
	return cmd
}

func newReportsListCmd(c *cli) *cobra.Command {
	var flags tableFlags
	var jobID int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				var reports []types.Report
				var err error
				if jobID > 0 {
					reports, err = c.client.ReportsByJob(ctx, jobID)
				} else {
					reports, err = c.client.Reports(ctx)
				}
				if err != nil {
					return err
				}
				records, err := datatable.RecordsFrom(reports)
				if err != nil {
					return err
				}
				t := datatable.New(reportColumns, datatable.Options{
					EmptyState: &datatable.EmptyState{Title: "No reports"},
				})
				return flags.writeRecords(cmd.OutOrStdout(), t, records)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&jobID, "job", 0, "only reports for this job")
	return cmd
}

// newReportsSubmitCmd files a report and completes the job, reporting which step failed if only the first succeeded
func newReportsSubmitCmd(c *cli) *cobra.Command {
	var report types.NewReport
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the completion report for a job in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				job, _, err := c.client.Job(ctx, report.Job)
				if err != nil {
					return err
				}
				saved, err := c.client.SubmitReport(ctx, report, job.Status)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Report #%d submitted, job #%d completed\n", saved.ID, report.Job)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&report.Job, "job", 0, "job id")
	cmd.Flags().StringVar(&report.CompanyName, "company", "", "company name")
	cmd.Flags().StringVar(&report.TimeTaken, "time", "", "time taken, e.g. \"2 hours\"")
	cmd.Flags().StringVar(&report.EquipmentUsed, "equipment", "", "equipment used")
	cmd.Flags().StringVar(&report.WorkDescription, "description", "", "description of the work")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
