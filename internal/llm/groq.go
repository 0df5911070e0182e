// Package llm talks to the Groq OpenAI-compatible chat API for investment
// commentary. The model output is advisory text only; nothing in here
// influences scoring or ranking.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stacksfolio/yield-radar/internal/metrics"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// Model auto-selection: short prompts go to the fast instant model,
	// longer analytical prompts to the larger one.
	fastModel       = "llama-3.1-8b-instant"
	versatileModel  = "llama-3.3-70b-versatile"
	shortPromptSize = 250
)

// ErrMissingAPIKey is returned when no Groq credential is configured. It
// is surfaced to the caller as an explicit error: there is no meaningful
// fallback commentary.
var ErrMissingAPIKey = errors.New("groq api key not configured")

// Client is a minimal Groq chat-completions client.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: groqBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one user prompt and returns the model's text. An empty
// model selects automatically by prompt length.
func (c *Client) Complete(ctx context.Context, prompt, model string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if model == "" {
		model = pickModel(prompt)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(model, "error").Inc()
		return "", fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.LLMRequestsTotal.WithLabelValues(model, "error").Inc()
		return "", fmt.Errorf("groq status: %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(model, "error").Inc()
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		metrics.LLMRequestsTotal.WithLabelValues(model, "empty").Inc()
		return "", fmt.Errorf("groq: no choices in response")
	}

	metrics.LLMRequestsTotal.WithLabelValues(model, "ok").Inc()
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ListModels returns the model ids available to the configured key.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("build models request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq models status: %d", resp.StatusCode)
	}

	var parsed struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode groq models: %w", err)
	}

	models := make([]string, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

func pickModel(prompt string) string {
	if len(prompt) < shortPromptSize {
		return fastModel
	}
	return versatileModel
}
