// Package serper provides the search collaborator used by the Researcher:
// a client for the serper.dev Google search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://google.serper.dev/search"
	defaultTimeout = 30 * time.Second
)

// Config holds the client configuration. APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the serper.dev search endpoint. Read-only after
// construction and safe for concurrent use.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a search client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(zap.String("component", "serper_client")),
	}
}

type searchRequest struct {
	Q string `json:"q"`
}

// Search posts the query and returns the result payload as indented JSON,
// ready to be injected into a completion prompt as context.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(searchRequest{Q: query})
	if err != nil {
		return "", errors.Wrap(err, "unable to marshal search request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "unable to build search request")
	}

	httpReq.Header.Set("X-Api-Key", c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "unable to read search response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("search request rejected: status=%d msg=%s", resp.StatusCode, string(raw))
	}

	var pretty bytes.Buffer

	err = json.Indent(&pretty, raw, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "unable to format search response")
	}

	c.logger.Debug("search call finished",
		zap.String("query", query),
		zap.Duration("duration", time.Since(start)),
	)

	return pretty.String(), nil
}
