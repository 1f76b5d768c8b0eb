package generation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeforge/pokeforge/pkg/models"
)

func TestSyncClient_GenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"imageBase64": "aGVsbG8=",
			"metadata": {"id": "pokemon-2", "name": "Mossling", "rarity": "common"},
			"generatedAt": "2026-03-01T12:00:00Z"
		}`))
	}))
	defer server.Close()

	client := NewSyncClient(NewAPI(server.URL, ""), time.Second)
	artifact, err := client.Generate(context.Background(), GenerateRequest{Prompt: "moss creature"}, GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, "pokemon-2", artifact.ItemID)
	assert.Equal(t, "Mossling", artifact.DisplayName)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", artifact.ImageReference)
	assert.Equal(t, models.RarityCommon, artifact.Rarity)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), artifact.GeneratedAt)
}

func TestSyncClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewSyncClient(NewAPI(server.URL, ""), 20*time.Millisecond)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})
	assert.ErrorContains(t, err, "timed out")
}

func TestSyncClient_OnAcceptedSeesBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"imageBase64": "aGVsbG8=",
			"metadata": {"id": "pokemon-3", "name": "Cinderpup", "rarity": "epic"},
			"chargeApplied": true,
			"balance": 80
		}`))
	}))
	defer server.Close()

	client := NewSyncClient(NewAPI(server.URL, ""), time.Second)

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
	assert.Equal(t, int64(80), *accepted.Balance)
}

func TestSyncClient_MissingFieldsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imageBase64": "aGVsbG8="}`))
	}))
	defer server.Close()

	client := NewSyncClient(NewAPI(server.URL, ""), time.Second)
	_, err := client.Generate(context.Background(), GenerateRequest{}, GenerateOptions{})
	assert.ErrorContains(t, err, "missing expected fields")
}
