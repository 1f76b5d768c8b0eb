package generation

import (
	"context"
	"time"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// GenerateRequest describes what the caller wants generated.
type GenerateRequest struct {
	Prompt string `json:"prompt,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Artifact is the normalized result of a finished generation, independent of
// which protocol produced it.
type Artifact struct {
	ItemID         string
	DisplayName    string
	ImageReference string
	Rarity         models.Rarity
	GeneratedAt    time.Time
}

// Job is the wire representation of a generation job.
type Job struct {
	JobID         string           `json:"jobId"`
	Status        models.JobStatus `json:"status"`
	ChargeApplied *bool            `json:"chargeApplied,omitempty"`
	Balance       *int64           `json:"balance,omitempty"`
	Image         *JobImage        `json:"image,omitempty"`
	Metadata      *Metadata        `json:"metadata,omitempty"`
	GeneratedAt   *time.Time       `json:"generatedAt,omitempty"`
}

// JobImage is the finished image reference attached to a succeeded job.
type JobImage struct {
	URL    string `json:"url,omitempty"`
	Base64 string `json:"base64,omitempty"`
}

// Metadata describes the generated creature.
type Metadata struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Rarity models.Rarity `json:"rarity"`
}

// GenerateOptions carries per-call hooks and the idempotency key forwarded to
// the backend.
type GenerateOptions struct {
	IdempotencyKey string

	// OnAccepted is invoked once the backend has accepted the request, before
	// any polling. The job carries the backend's charge accounting when it
	// reports one. A non-nil error aborts the generation.
	OnAccepted func(job *Job) error

	// OnUpdate is invoked after every poll response.
	OnUpdate func(job *Job)
}

// Client is the remote generation service. Implementations differ by backend
// protocol (job-based submit+poll, or a single synchronous call) and are
// selected by configuration at construction.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest, opts GenerateOptions) (*Artifact, error)
}
