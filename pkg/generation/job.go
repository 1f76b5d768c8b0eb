package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// JobClient talks to a job-based backend: submit returns a job identifier,
// then the job is polled at a fixed interval until it reaches a terminal
// status or the attempt bound is exceeded.
type JobClient struct {
	API          *API
	PollInterval time.Duration
	MaxAttempts  int
}

// Make sure we conform to the interface
var _ Client = (*JobClient)(nil)

// NewJobClient creates a JobClient.
func NewJobClient(api *API, pollInterval time.Duration, maxAttempts int) *JobClient {
	return &JobClient{
		API:          api,
		PollInterval: pollInterval,
		MaxAttempts:  maxAttempts,
	}
}

// Submit starts a generation job. The idempotency key is forwarded so backend
// retries of the same logical attempt do not start a second job.
func (c *JobClient) Submit(ctx context.Context, req GenerateRequest, idempotencyKey string) (*Job, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var job Job
	if err := c.API.do(ctx, http.MethodPost, "/generate", headers, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJob retrieves the current state of a job.
func (c *JobClient) GetJob(ctx context.Context, jobID string) (*Job, error) {
	if jobID == "" {
		return nil, fmt.Errorf("getJob requires a jobId")
	}

	var job Job
	if err := c.API.do(ctx, http.MethodGet, "/generate/"+jobID, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Poll polls the job until it reaches a terminal status. Cancellation is
// checked before every wait and before every poll request; a wait in progress
// is cancelled immediately when the context fires.
func (c *JobClient) Poll(ctx context.Context, jobID string, onUpdate func(job *Job)) (*Job, error) {
	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if onUpdate != nil {
			onUpdate(job)
		}

		if job.Status.Terminal() {
			if job.Status.Succeeded() {
				return job, nil
			}
			return nil, &JobFailedError{JobID: jobID, Status: job.Status}
		}

		timer := time.NewTimer(c.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("%w: job %s after %d attempts", ErrPollTimeout, jobID, c.MaxAttempts)
}

// Generate submits a job and polls it to completion, returning the normalized
// artifact.
func (c *JobClient) Generate(ctx context.Context, req GenerateRequest, opts GenerateOptions) (*Artifact, error) {
	job, err := c.Submit(ctx, req, opts.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if opts.OnAccepted != nil {
		if err := opts.OnAccepted(job); err != nil {
			return nil, err
		}
	}

	final := job
	if !job.Status.Terminal() {
		final, err = c.Poll(ctx, job.JobID, opts.OnUpdate)
		if err != nil {
			return nil, err
		}
	} else if !job.Status.Succeeded() {
		return nil, &JobFailedError{JobID: job.JobID, Status: job.Status}
	}

	return final.artifact()
}

// artifact normalizes a succeeded job into the common result shape.
func (j *Job) artifact() (*Artifact, error) {
	imageRef := ""
	if j.Image != nil {
		switch {
		case j.Image.URL != "":
			imageRef = j.Image.URL
		case j.Image.Base64 != "":
			imageRef = dataURL(j.Image.Base64)
		}
	}
	if imageRef == "" || j.Metadata == nil || j.Metadata.ID == "" || j.Metadata.Name == "" {
		return nil, fmt.Errorf("invalid job response: missing expected fields")
	}

	generatedAt := time.Now()
	if j.GeneratedAt != nil {
		generatedAt = *j.GeneratedAt
	}

	return &Artifact{
		ItemID:         j.Metadata.ID,
		DisplayName:    j.Metadata.Name,
		ImageReference: imageRef,
		Rarity:         j.Metadata.Rarity,
		GeneratedAt:    generatedAt,
	}, nil
}
