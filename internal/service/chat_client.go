package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chatwidget/internal/config"
	"chatwidget/internal/model"
	"chatwidget/internal/utils"
	"chatwidget/pkg/logger"
)

const maxBodyBytes = 1 << 20

// ChatService answers a single user query.
type ChatService interface {
	SendQuery(ctx context.Context, query string) (string, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.ServiceConfig) *Client {
	return NewClientWithHTTP(cfg.BaseURL, utils.NewHTTPClient(cfg.Timeout))
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SendQuery posts {"query": query} to /api/chat and returns the reply text.
// A 2xx answer with an empty reply is returned as "" with no error; callers
// decide how to treat it.
func (c *Client) SendQuery(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(model.ChatRequest{Query: query})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warnf("Chat request failed after %s: %v", time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	var payload model.ChatResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := DefaultFailureMessage
		if decodeErr == nil && payload.Error != "" {
			message = payload.Error
		}
		logger.Warnf("Chat service returned %d: %s", resp.StatusCode, message)
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("invalid response body: %w", decodeErr)
	}

	logger.WithField("cached", payload.Cached).Debugf("Chat reply received in %s", time.Since(start))
	return payload.Response, nil
}

func (c *Client) Health(ctx context.Context) (*model.HealthResponse, error) {
	var out model.HealthResponse
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*model.StatsResponse, error) {
	var out model.StatsResponse
	if err := c.getJSON(ctx, "/api/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload model.ChatResponse
		message := DefaultFailureMessage
		if json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload) == nil && payload.Error != "" {
			message = payload.Error
		}
		return &ServiceError{StatusCode: resp.StatusCode, Message: message}
	}

	return json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out)
}
