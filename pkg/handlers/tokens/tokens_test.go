package tokens_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenshandler "github.com/pokeforge/pokeforge/pkg/handlers/tokens"
	"github.com/pokeforge/pokeforge/pkg/ledger"
)

type stubProvider struct {
	balance int64
	err     error
}

func (s *stubProvider) Balance() (int64, error) {
	return s.balance, s.err
}

func TestGetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h := tokenshandler.NewTokensHandler(&stubProvider{balance: 100})

		req := httptest.NewRequest(http.MethodGet, "/tokens/balance", nil)
		rr := httptest.NewRecorder()
		h.GetBalance(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Balance int64 `json:"balance"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(100), resp.Balance)
	})

	t.Run("NotReady", func(t *testing.T) {
		h := tokenshandler.NewTokensHandler(&stubProvider{err: ledger.ErrBalanceNotReady})

		req := httptest.NewRequest(http.MethodGet, "/tokens/balance", nil)
		rr := httptest.NewRecorder()
		h.GetBalance(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
