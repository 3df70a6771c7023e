package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pqcguard/internal/config"
	"pqcguard/pkg/logger"
)

// HTTPExecutor talks to an ansible-runner style HTTP service.
type HTTPExecutor struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *logger.Logger
}

// NewHTTP creates an executor client from config.
func NewHTTP(cfg config.ExecutorConfig, log *logger.Logger) *HTTPExecutor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPExecutor{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  log.WithComponent("executor"),
	}
}

// Execute submits the playbook run and waits for its result.
func (e *HTTPExecutor) Execute(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal execution request: %w", err)
	}

	url := e.baseURL + "/api/v1/playbooks/run"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build execution request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("X-API-Key", e.apiKey)
	}

	e.logger.Debug().Str("playbook", req.Playbook).Msg("submitting playbook run")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}

	return result, nil
}
