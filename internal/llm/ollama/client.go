// Package ollama invokes the locally hosted BiobyIA fine-tune through the
// Ollama generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	ModelID    string
	MaxRetries int
	RetryDelay time.Duration
}

func NewClient(baseURL string, modelID string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("Ollama base URL is required")
	}
	if modelID == "" {
		return nil, fmt.Errorf("Ollama model ID is required")
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		BaseURL:    baseURL,
		ModelID:    modelID,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
	}, nil
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response   string `json:"response"`
	DoneReason string `json:"done_reason"`
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	payload := generateRequest{
		Model:  c.ModelID,
		Prompt: request.Prompt,
		Stream: false,
		Options: generateOptions{
			NumPredict:  request.MaxTokens,
			Temperature: request.Temperature,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke ollama model: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, data)
	}

	var response generateResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ollama response: %w", err)
	}

	return &llm.LLMResponse{
		Content:    response.Response,
		StopReason: response.DoneReason,
	}, nil
}

// InvokeModelWithRetry retries on any transport error. The local Ollama
// daemon fails in bursts when the model is being loaded, so a flat delay
// is enough.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	var lastErr error

	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		response, err := c.InvokeModel(ctx, request)
		if err == nil {
			return response, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.RetryDelay):
		}
	}

	return nil, fmt.Errorf("max retries %d exceeded: %w", c.MaxRetries, lastErr)
}
