package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// API is the shared HTTP plumbing for the generation backend: base URL,
// bearer auth and error decoding. Both protocol clients embed it, and it also
// serves the optional balance and resale endpoints.
type API struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

// NewAPI creates an API with a default HTTP client.
func NewAPI(baseURL, authToken string) *API {
	return &API{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AuthToken:  authToken,
		HTTPClient: &http.Client{},
	}
}

type apiErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// do performs one request against the backend. Non-2xx responses become
// *HTTPError; transport failures are wrapped unless the context was cancelled,
// in which case the context error passes through untouched.
func (a *API) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.AuthToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("generation api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeHTTPError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeHTTPError(resp *http.Response) error {
	httpErr := &HTTPError{Status: resp.StatusCode, Message: resp.Status}

	var parsed apiErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil {
		if parsed.Error != nil {
			httpErr.Code = parsed.Error.Code
			if parsed.Error.Message != "" {
				httpErr.Message = parsed.Error.Message
			}
		} else {
			httpErr.Code = parsed.Code
			if parsed.Message != "" {
				httpErr.Message = parsed.Message
			}
		}
	}

	return httpErr
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// FetchBalance reads the authoritative balance from the backend.
func (a *API) FetchBalance(ctx context.Context) (int64, error) {
	var resp balanceResponse
	if err := a.do(ctx, http.MethodGet, "/tokens/balance", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// SellResponse is the backend's answer to a resale. Balance is set when the
// backend keeps its own accounting.
type SellResponse struct {
	Balance *int64 `json:"balance,omitempty"`
}

// Sell reports a resale to the backend.
func (a *API) Sell(ctx context.Context, pokemonID string) (*SellResponse, error) {
	if pokemonID == "" {
		return nil, fmt.Errorf("sell requires a pokemon id")
	}

	var resp SellResponse
	body := map[string]string{"pokemonId": pokemonID}
	if err := a.do(ctx, http.MethodPost, "/sell", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// withTimeout returns ctx bounded by d when d > 0.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
