package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeforge/pokeforge/pkg/models"
)

func jobBackend(t *testing.T, statuses []models.JobStatus, final *Job) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	polls := &atomic.Int32{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/generate":
			json.NewEncoder(w).Encode(Job{JobID: "job-1", Status: models.JobQueued})
		case r.Method == http.MethodGet && r.URL.Path == "/generate/job-1":
			n := int(polls.Add(1)) - 1
			if n < len(statuses) {
				json.NewEncoder(w).Encode(Job{JobID: "job-1", Status: statuses[n]})
				return
			}
			json.NewEncoder(w).Encode(final)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return server, polls
}

func succeededJob() *Job {
	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Job{
		JobID:  "job-1",
		Status: models.JobSucceeded,
		Image:  &JobImage{URL: "https://cdn.example.com/pokemon-1.png"},
		Metadata: &Metadata{
			ID:     "pokemon-1",
			Name:   "Sparkfin",
			Rarity: models.RarityRare,
		},
		GeneratedAt: &generatedAt,
	}
}

func TestJobClient_GenerateSuccess(t *testing.T) {
	server, _ := jobBackend(t, []models.JobStatus{models.JobRunning}, succeededJob())
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)

	var seen []models.JobStatus
	artifact, err := client.Generate(context.Background(), GenerateRequest{Prompt: "electric fish"}, GenerateOptions{
		IdempotencyKey: "key-1",
		OnUpdate:       func(job *Job) { seen = append(seen, job.Status) },
	})
	require.NoError(t, err)

	assert.Equal(t, "pokemon-1", artifact.ItemID)
	assert.Equal(t, "Sparkfin", artifact.DisplayName)
	assert.Equal(t, "https://cdn.example.com/pokemon-1.png", artifact.ImageReference)
	assert.Equal(t, models.RarityRare, artifact.Rarity)
	assert.Equal(t, []models.JobStatus{models.JobRunning, models.JobSucceeded}, seen)
}

func TestJobClient_ForwardsIdempotencyKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(succeededJob())
	}))
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{IdempotencyKey: "attempt-7"})
	require.NoError(t, err)
	assert.Equal(t, "attempt-7", gotKey)
}

func TestJobClient_OnAcceptedSeesChargeAccounting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/generate":
			charged := true
			balance := int64(90)
			json.NewEncoder(w).Encode(Job{
				JobID:         "job-1",
				Status:        models.JobQueued,
				ChargeApplied: &charged,
				Balance:       &balance,
			})
		default:
			json.NewEncoder(w).Encode(succeededJob())
		}
	}))
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)

	var accepted *Job
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{
		OnAccepted: func(job *Job) error {
			accepted = job
			return nil
		},
	})
	require.NoError(t, err)
	require.NotNil(t, accepted)
	require.NotNil(t, accepted.Balance)
	assert.Equal(t, int64(90), *accepted.Balance)
	require.NotNil(t, accepted.ChargeApplied)
	assert.True(t, *accepted.ChargeApplied)
}

func TestJobClient_OnAcceptedErrorAborts(t *testing.T) {
	server, polls := jobBackend(t, nil, succeededJob())
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{
		OnAccepted: func(job *Job) error { return fmt.Errorf("balance sync failed") },
	})
	assert.EqualError(t, err, "balance sync failed")
	assert.Equal(t, int32(0), polls.Load())
}

func TestJobClient_JobFailure(t *testing.T) {
	server, _ := jobBackend(t, []models.JobStatus{models.JobRunning}, &Job{JobID: "job-1", Status: models.JobFailed})
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})

	var failed *JobFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "job-1", failed.JobID)
	assert.Equal(t, models.JobFailed, failed.Status)
}

func TestJobClient_PollTimeout(t *testing.T) {
	running := make([]models.JobStatus, 20)
	for i := range running {
		running[i] = models.JobRunning
	}
	server, polls := jobBackend(t, running, succeededJob())
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 3)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})

	assert.True(t, errors.Is(err, ErrPollTimeout))
	assert.Equal(t, int32(3), polls.Load())
}

func TestJobClient_PollCancellationDuringWait(t *testing.T) {
	running := make([]models.JobStatus, 20)
	for i := range running {
		running[i] = models.JobRunning
	}
	server, _ := jobBackend(t, running, succeededJob())
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Minute, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Generate(ctx, GenerateRequest{}, GenerateOptions{})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("poll did not stop after cancellation")
	}
}

func TestJobClient_Base64ImageBecomesDataURL(t *testing.T) {
	job := succeededJob()
	job.Image = &JobImage{Base64: "aGVsbG8="}
	server, _ := jobBackend(t, nil, job)
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)
	artifact, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", artifact.ImageReference)
}

func TestJobClient_MissingMetadataRejected(t *testing.T) {
	job := succeededJob()
	job.Metadata = nil
	server, _ := jobBackend(t, nil, job)
	defer server.Close()

	client := NewJobClient(NewAPI(server.URL, ""), time.Millisecond, 10)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})
	assert.ErrorContains(t, err, "missing expected fields")
}
