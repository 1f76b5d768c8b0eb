package generation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeforge/pokeforge/pkg/forge"
	genclient "github.com/pokeforge/pokeforge/pkg/generation"
	genhandler "github.com/pokeforge/pokeforge/pkg/handlers/generation"
	"github.com/pokeforge/pokeforge/pkg/ledger"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

type stubService struct {
	result *forge.GenerateResult
	err    error
	params forge.GenerateParams
}

func (s *stubService) Generate(_ context.Context, params forge.GenerateParams) (*forge.GenerateResult, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func post(t *testing.T, h *genhandler.GenerationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader([]byte(body)))
	rr := httptest.NewRecorder()
	h.GeneratePokemon(rr, req)
	return rr
}

func TestGeneratePokemon(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &stubService{result: &forge.GenerateResult{
			Item:           &models.CreatureItem{ID: "pokemon-1", Name: "Sparkfin"},
			Balance:        90,
			IdempotencyKey: "attempt-1",
		}}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{"prompt": "electric fish", "idempotencyKey": "attempt-1"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "electric fish", svc.params.Prompt)
		assert.Equal(t, "attempt-1", svc.params.IdempotencyKey)

		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.JSONEq(t, `90`, string(resp["balance"]))
	})

	t.Run("InvalidBody", func(t *testing.T) {
		h := genhandler.NewGenerationHandler(&stubService{})
		rr := post(t, h, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InsufficientTokens", func(t *testing.T) {
		svc := &stubService{err: &ledger.InsufficientTokensError{Balance: 5, Required: 10}}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Insufficient tokens")
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		svc := &stubService{err: &validation.Error{Reason: validation.ReasonNameTooLong}}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("PollTimeout", func(t *testing.T) {
		svc := &stubService{err: genclient.ErrPollTimeout}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
	})

	t.Run("JobFailure", func(t *testing.T) {
		svc := &stubService{err: &genclient.JobFailedError{JobID: "job-1", Status: models.JobFailed}}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("BalanceNotReady", func(t *testing.T) {
		svc := &stubService{err: ledger.ErrBalanceNotReady}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("UnknownError", func(t *testing.T) {
		svc := &stubService{err: errors.New("boom")}
		h := genhandler.NewGenerationHandler(svc)

		rr := post(t, h, `{}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
