package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Jobs returns every job, newest first
func (c *Client) Jobs(ctx context.Context) ([]types.Job, error) {
	body, err := c.Get(ctx, EndpointJobs)
	if err != nil {
		return nil, err
	}
	return decodeList[types.Job](body, "decoding jobs response")
}

// Job returns one job and the ETag the backend sent with it ("" when none)
func (c *Client) Job(ctx context.Context, id int) (*types.Job, string, error) {
	res, err := c.send(ctx, http.MethodGet, JobDetail(id), nil, requestOptions{})
	if err != nil {
		return nil, "", err
	}
	job, err := decode[types.Job](res.Body, "decoding job response")
	if err != nil {
		return nil, "", err
	}
	return &job, res.Header.Get("ETag"), nil
}

// CreateJob posts a new job. New jobs always start open.
func (c *Client) CreateJob(ctx context.Context, job types.NewJob) (*types.Job, error) {
	if job.Priority == "" {
		job.Priority = types.PriorityMedium
	}
	if err := job.Validate(); err != nil {
		return nil, NewClientInputError(err)
	}
	job.Status = types.JobOpen

	body, err := c.Post(ctx, EndpointJobs, job)
	if err != nil {
		return nil, err
	}
	created, err := decode[types.Job](body, "decoding create job response")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AcceptJob moves an open job to in_progress.
//
// Two employees may try to accept the same job. The job is re-read first and the update is refused
// with ErrConflict unless it is still open; when the backend supplies an ETag the update is made
// conditional on it, and a 409/412 answer is also reported as ErrConflict.
func (c *Client) AcceptJob(ctx context.Context, id int) (*types.Job, error) {
	current, etag, err := c.Job(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.Status.CheckTransition(types.JobInProgress); err != nil {
		if current.Status == types.JobInProgress {
			return nil, newJobConflictError(0, fmt.Sprintf("job %d is already in progress", id), err)
		}
		return nil, NewClientInputError(err)
	}

	opts := requestOptions{}
	if etag != "" {
		opts.header = http.Header{"If-Match": {etag}}
	}
	res, err := c.send(ctx, http.MethodPatch, JobDetail(id), map[string]types.JobStatus{"status": types.JobInProgress}, opts)
	if err != nil {
		var ce *ClientError
		if errors.As(err, &ce) && ce.Kind == KindConflict {
			return nil, newJobConflictError(ce.StatusCode, ce.LogMessage, err)
		}
		return nil, err
	}
	return decodeUpdatedJob(res, current, types.JobInProgress)
}

// CompleteJob marks an in-progress job completed. from is the status the caller last saw;
// illegal moves are refused without a request.
func (c *Client) CompleteJob(ctx context.Context, id int, from types.JobStatus) (*types.Job, error) {
	if err := from.CheckTransition(types.JobCompleted); err != nil {
		return nil, NewClientInputError(err)
	}
	res, err := c.send(ctx, http.MethodPatch, JobDetail(id), map[string]types.JobStatus{"status": types.JobCompleted}, requestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeUpdatedJob(res, &types.Job{ID: id}, types.JobCompleted)
}

// decodeUpdatedJob returns the job from a PATCH response; a 204 falls back to the previous copy with the new status
func decodeUpdatedJob(res *response, previous *types.Job, status types.JobStatus) (*types.Job, error) {
	if res.Body == nil {
		updated := *previous
		updated.Status = status
		return &updated, nil
	}
	job, err := decode[types.Job](res.Body, "decoding job update response")
	if err != nil {
		return nil, err
	}
	return &job, nil
}
