package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// SyncClient talks to a backend that generates in a single blocking request.
// The whole call is bounded by Timeout.
type SyncClient struct {
	API     *API
	Timeout time.Duration
}

// Make sure we conform to the interface
var _ Client = (*SyncClient)(nil)

// NewSyncClient creates a SyncClient.
func NewSyncClient(api *API, timeout time.Duration) *SyncClient {
	return &SyncClient{
		API:     api,
		Timeout: timeout,
	}
}

type syncResponse struct {
	ImageBase64   string     `json:"imageBase64"`
	Metadata      *Metadata  `json:"metadata"`
	ChargeApplied *bool      `json:"chargeApplied,omitempty"`
	Balance       *int64     `json:"balance,omitempty"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`
}

// Generate performs the single synchronous call and normalizes the result.
// Hitting the overall deadline is reported as a timeout distinct from caller
// cancellation.
func (c *SyncClient) Generate(ctx context.Context, req GenerateRequest, opts GenerateOptions) (*Artifact, error) {
	callCtx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	headers := map[string]string{}
	if opts.IdempotencyKey != "" {
		headers["Idempotency-Key"] = opts.IdempotencyKey
	}

	var resp syncResponse
	if err := c.API.do(callCtx, http.MethodGet, "/generate", headers, req, &resp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("generation request timed out after %s: %w", c.Timeout, err)
		}
		return nil, err
	}

	if opts.OnAccepted != nil {
		job := &Job{
			Status:        models.JobSucceeded,
			ChargeApplied: resp.ChargeApplied,
			Balance:       resp.Balance,
		}
		if err := opts.OnAccepted(job); err != nil {
			return nil, err
		}
	}

	if resp.ImageBase64 == "" || resp.Metadata == nil || resp.Metadata.ID == "" || resp.Metadata.Name == "" {
		return nil, fmt.Errorf("invalid generation response: missing expected fields")
	}

	generatedAt := time.Now()
	if resp.GeneratedAt != nil {
		generatedAt = *resp.GeneratedAt
	}

	return &Artifact{
		ItemID:         resp.Metadata.ID,
		DisplayName:    resp.Metadata.Name,
		ImageReference: dataURL(resp.ImageBase64),
		Rarity:         resp.Metadata.Rarity,
		GeneratedAt:    generatedAt,
	}, nil
}

// dataURL wraps raw base64 image bytes as a browser-renderable reference.
func dataURL(base64 string) string {
	return "data:image/png;base64," + base64
}
