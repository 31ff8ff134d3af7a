// Package ollama is a thin client for a locally hosted Ollama server.
// It exposes whole-response generation and embeddings; streaming is left
// to the presentation layer.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"eduagent/pkg/config"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable means the server could not be reached at all
	// (typically "ollama serve" was never started).
	ErrUnavailable = errors.New("ollama server unreachable")
	// ErrTimeout means the request expired before the model answered.
	ErrTimeout = errors.New("ollama request timed out")
	// ErrEmptyResponse means the server answered 200 with no generated text.
	ErrEmptyResponse = errors.New("ollama returned an empty response")
)

// StatusError is returned for non-2xx responses from the server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama request failed with status %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL    string
	model      string
	embedModel string
	options    generateOptions
	httpClient *http.Client
	logger     *zap.Logger
}

type generateOptions struct {
	Temperature   float64 `json:"temperature"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingsResponse struct {
	Embedding []float32 `json:"embedding"`
}

func NewClient(cfg *config.OllamaConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		embedModel: cfg.EmbeddingModel,
		options: generateOptions{
			Temperature:   cfg.Temperature,
			NumPredict:    cfg.NumPredict,
			RepeatPenalty: cfg.RepeatPenalty,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Generate sends a prompt and blocks until the full response arrives.
// Transport failures are classified into ErrUnavailable, ErrTimeout,
// *StatusError or ErrEmptyResponse so callers can map them to user-facing
// messages without inspecting raw errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: c.options,
	}

	var genResp generateResponse
	if err := c.post(ctx, "/api/generate", reqBody, &genResp); err != nil {
		return "", err
	}

	answer := strings.TrimSpace(genResp.Response)
	if answer == "" {
		return "", ErrEmptyResponse
	}

	return answer, nil
}

// Embeddings converts text into a vector using the configured embedding model.
func (c *Client) Embeddings(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingsRequest{
		Model:  c.embedModel,
		Prompt: text,
	}

	var embResp embeddingsResponse
	if err := c.post(ctx, "/api/embeddings", reqBody, &embResp); err != nil {
		return nil, err
	}

	if len(embResp.Embedding) == 0 {
		return nil, ErrEmptyResponse
	}

	return embResp.Embedding, nil
}

// Ping checks whether the server is up. Detection only; starting or
// pulling models is an operator concern.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := classifyTransportError(err)
		c.logger.Warn("Ollama request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return classified
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Ollama returned non-OK status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
