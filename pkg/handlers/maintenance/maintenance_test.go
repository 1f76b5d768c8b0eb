package maintenance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mainthandler "github.com/pokeforge/pokeforge/pkg/handlers/maintenance"
	"github.com/pokeforge/pokeforge/pkg/models"
	"github.com/pokeforge/pokeforge/pkg/storage/mocks"
	"github.com/pokeforge/pokeforge/pkg/validation"
)

type stubLedger struct {
	reloads int
	err     error
}

func (s *stubLedger) Initialize(_ context.Context) error {
	s.reloads++
	return s.err
}

func testRules() validation.Rules {
	return validation.Rules{
		MaxNameLength:   50,
		MaxPromptLength: 300,
		Rarities:        []string{"common", "rare"},
	}
}

func TestExportData(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("Export", mock.Anything).Return(&models.Snapshot{
			Tokens:   &models.TokenBalance{ID: models.TokenDocumentID, Balance: 90},
			Pokemons: []models.CreatureItem{{ID: "pokemon-1"}},
		}, nil)

		h := mainthandler.NewMaintenanceHandler(mockStorage, &stubLedger{}, testRules(), 100)

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		rr := httptest.NewRecorder()
		h.ExportData(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var snapshot models.Snapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
		require.NotNil(t, snapshot.Tokens)
		assert.Equal(t, int64(90), snapshot.Tokens.Balance)
		assert.Len(t, snapshot.Pokemons, 1)
	})
}

func TestImportData(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("Import", mock.Anything, mock.Anything).Return(nil)

		led := &stubLedger{}
		h := mainthandler.NewMaintenanceHandler(mockStorage, led, testRules(), 100)

		body, _ := json.Marshal(models.Snapshot{
			Tokens: &models.TokenBalance{ID: models.TokenDocumentID, Balance: 50},
		})
		req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.ImportData(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, 1, led.reloads, "ledger must reload after an import")
	})

	t.Run("Invalid Item Rejected", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)

		h := mainthandler.NewMaintenanceHandler(mockStorage, &stubLedger{}, testRules(), 100)

		body, _ := json.Marshal(models.Snapshot{
			Pokemons: []models.CreatureItem{{ID: "pokemon-1", Name: "", ImageURL: "https://example.com/a.png"}},
		})
		req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.ImportData(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		h := mainthandler.NewMaintenanceHandler(mocks.NewStorage(t), &stubLedger{}, testRules(), 100)

		req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader([]byte(`{not json`)))
		rr := httptest.NewRecorder()
		h.ImportData(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestResetData(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("Reset", mock.Anything, int64(100)).Return(nil)

		led := &stubLedger{}
		h := mainthandler.NewMaintenanceHandler(mockStorage, led, testRules(), 100)

		req := httptest.NewRequest(http.MethodPost, "/reset", nil)
		rr := httptest.NewRecorder()
		h.ResetData(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, 1, led.reloads, "ledger must reload after a reset")
	})
}
