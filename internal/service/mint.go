package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

var (
	ErrMintRejected        = errors.New("minting service rejected the request")
	ErrMinterNotConfigured = errors.New("minting service is not configured")
)

const maxErrorBody = 512

type Minter interface {
	Mint(ctx context.Context, req *entity.MintRequest) (*entity.MintReceipt, error)
}

type httpMinter struct {
	client *http.Client
	url    string
	apiKey string
}

// NewHTTPMinter - posts mint requests as JSON to url. Each call carries a fresh Idempotency-Key.
func NewHTTPMinter(url, apiKey string, timeout time.Duration) Minter {
	return &httpMinter{
		client: &http.Client{Timeout: timeout},
		url:    url,
		apiKey: apiKey,
	}
}

func (that *httpMinter) Mint(ctx context.Context, req *entity.MintRequest) (*entity.MintReceipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mint request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create mint request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())
	if that.apiKey != "" {
		httpReq.Header.Set("X-API-Key", that.apiKey)
	}

	resp, err := that.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call minting service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrMintRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}

	var receipt entity.MintReceipt
	if err = json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode mint response: %w", err)
	}

	if receipt.ID == "" {
		return nil, fmt.Errorf("%w: response has no id", ErrMintRejected)
	}

	return &receipt, nil
}
