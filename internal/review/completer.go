package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"productpraat/internal/pkg/config"
	"productpraat/internal/pkg/errs"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096
)

// ChatCompleter talks to an OpenAI-compatible chat completions endpoint.
type ChatCompleter struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewChatCompleter(cfg config.AIConfig) *ChatCompleter {
	return &ChatCompleter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ChatCompleter) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", errs.New("text completion api key is not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": defaultTemperature,
		"max_tokens":  defaultMaxTokens,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to encode completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errs.Wrap(err, "failed to build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.Wrap(err, "completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errs.Wrap(err, "failed to read completion response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.New(fmt.Sprintf("completion endpoint returned %d", resp.StatusCode))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", errs.Wrap(err, "failed to decode completion response")
	}
	if len(decoded.Choices) == 0 {
		return "", errs.New("completion response has no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
