package client

import (
	"context"
	"fmt"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

func (c *Client) Reports(ctx context.Context) ([]types.Report, error) {
	body, err := c.Get(ctx, EndpointReports)
	if err != nil {
		return nil, err
	}
	return decodeList[types.Report](body, "decoding reports response")
}

// ReportsByJob returns the completion reports filed for one job
func (c *Client) ReportsByJob(ctx context.Context, jobID int) ([]types.Report, error) {
	body, err := c.Get(ctx, ReportsByJob(jobID))
	if err != nil {
		return nil, err
	}
	return decodeList[types.Report](body, "decoding job reports response")
}

// SubmitReport files a completion report and then marks the job completed.
//
// The two steps are separate requests. When the report is saved but the job update fails the
// returned error is a *PartialError and the saved report is still returned.
func (c *Client) SubmitReport(ctx context.Context, report types.NewReport, jobStatus types.JobStatus) (*types.Report, error) {
	if err := report.Validate(); err != nil {
		return nil, NewClientInputError(err)
	}
	if err := jobStatus.CheckTransition(types.JobCompleted); err != nil {
		return nil, NewClientInputError(err)
	}

	body, err := c.Post(ctx, EndpointReports, report)
	if err != nil {
		return nil, err
	}
	saved, err := decode[types.Report](body, "decoding submit report response")
	if err != nil {
		return nil, err
	}

	if _, err := c.CompleteJob(ctx, report.Job, jobStatus); err != nil {
		return &saved, &PartialError{
			Completed: fmt.Sprintf("Report #%d was saved", saved.ID),
			Err:       err,
		}
	}
	return &saved, nil
}
