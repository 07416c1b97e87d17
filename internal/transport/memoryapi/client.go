package memoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voicebook/rolodex/internal/domain"
)

// Client talks to the external memory service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds memory service client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a memory service client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}
}

type captureRequest struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
}

type captureResponse struct {
	Success    bool    `json:"success"`
	Person     string  `json:"person"`
	Details    string  `json:"details"`
	Confidence float64 `json:"confidence"`
}

type recallRequest struct {
	Query  string `json:"query"`
	UserID string `json:"userId"`
}

type recallResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Capture stores a free-form memory note for a user.
func (c *Client) Capture(ctx context.Context, userID, text string) (domain.MemoryCapture, error) {
	var resp captureResponse
	err := c.post(ctx, "/api/capture-memory", captureRequest{Text: text, UserID: userID}, &resp)
	if err != nil {
		return domain.MemoryCapture{}, err
	}
	return domain.MemoryCapture{
		Success:    resp.Success,
		Person:     resp.Person,
		Details:    resp.Details,
		Confidence: resp.Confidence,
	}, nil
}

// Recall queries stored memories for a user.
func (c *Client) Recall(ctx context.Context, userID, query string) (domain.MemoryRecall, error) {
	var resp recallResponse
	err := c.post(ctx, "/api/recall-memory", recallRequest{Query: query, UserID: userID}, &resp)
	if err != nil {
		return domain.MemoryRecall{}, err
	}
	return domain.MemoryRecall{
		Success: resp.Success,
		Message: resp.Message,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("memory service %s: %w: %w", path, domain.ErrMemoryServiceError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Memory service returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("memory service %s: status %d: %w", path, resp.StatusCode, domain.ErrMemoryServiceError)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("memory service %s: decode response: %w: %w", path, domain.ErrMemoryServiceError, err)
	}
	return nil
}
