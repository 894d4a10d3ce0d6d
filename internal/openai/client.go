// Package openai provides the completion collaborator: a client for
// OpenAI-compatible chat-completion APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
)

// Config holds the client configuration. APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat-completions endpoint. The client
// is read-only after construction and safe for concurrent use; a single
// value may be shared by every agent of every run.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a completion client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(zap.String("component", "openai_client")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason,omitempty"`
	Message      chatMessage `json:"message"`
}

type chatResponse struct {
	ID      string       `json:"id,omitempty"`
	Model   string       `json:"model,omitempty"`
	Choices []chatChoice `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one system + user message pair and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "unable to marshal completion request")
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "unable to build completion request")
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrMsg(resp.Body)

		return "", errors.Errorf("completion request rejected: status=%d msg=%s", resp.StatusCode, msg)
	}

	var chatResp chatResponse

	err = json.NewDecoder(resp.Body).Decode(&chatResp)
	if err != nil {
		return "", errors.Wrap(err, "unable to decode completion response")
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	c.logger.Debug("completion call finished",
		zap.String("model", c.cfg.Model),
		zap.Duration("duration", time.Since(start)),
	)

	return chatResp.Choices[0].Message.Content, nil
}

func readErrMsg(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}

	return string(raw)
}
